package validation

// Listing limits.
const (
	DefaultLimit = 100
	MaxLimit     = 1000

	DefaultSearchMinVolume   = 100
	DefaultSearchMaxPosition = 50
	DefaultSearchLimit       = 100
	DefaultTopLimit          = 20
)

// KeywordQuery holds the query parameters for listing and exporting keywords.
// Pointer fields distinguish an absent parameter from an explicit zero.
type KeywordQuery struct {
	Limit       *int   `query:"limit" validate:"omitnil,gte=1,lte=1000"`
	Offset      int    `query:"offset" validate:"gte=0"`
	MinVolume   *int64 `query:"min_volume" validate:"omitnil,gte=0"`
	MaxPosition *int   `query:"max_position" validate:"omitnil,gte=0"`
	Intent      string `query:"intent"`
	Location    string `query:"location"`
	Sort        string `query:"sort"`
	Direction   string `query:"direction"`
	Format      string `query:"format" validate:"omitempty,oneof=csv xlsx"`
}

// LimitOr returns the requested limit or def.
func (q *KeywordQuery) LimitOr(def int) int {
	if q.Limit == nil {
		return def
	}
	return *q.Limit
}

// MinVolumeOr returns the requested minimum volume or def.
func (q *KeywordQuery) MinVolumeOr(def int64) int64 {
	if q.MinVolume == nil {
		return def
	}
	return *q.MinVolume
}

// MaxPositionOr returns the requested maximum position or def.
func (q *KeywordQuery) MaxPositionOr(def int) int {
	if q.MaxPosition == nil {
		return def
	}
	return *q.MaxPosition
}

// OpportunityQuery holds the parameters for competitor opportunity listings.
type OpportunityQuery struct {
	MinVolume *int64 `query:"min_volume" validate:"omitnil,gte=0"`
	Limit     *int   `query:"limit" validate:"omitnil,gte=1,lte=1000"`
}

// ImportForm is the multipart form for keyword CSV uploads.
type ImportForm struct {
	Site string `form:"site" validate:"required,site"`
}
