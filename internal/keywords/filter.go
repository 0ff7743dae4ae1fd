package keywords

import (
	"fmt"

	"seodash/internal/models"
)

// AnyLocation disables location filtering.
const AnyLocation = "any"

// Criteria selects keyword records. Zero values disable each predicate:
// MaxPosition 0 means no position bound, an empty Intent or "none" means no
// intent filter and an empty Location or "any" means every location.
type Criteria struct {
	MinVolume   int64
	MaxPosition int
	Intent      Intent
	Location    string
}

// Validate checks the criteria and normalises the intent name.
func (c *Criteria) Validate() error {
	if c.MinVolume < 0 {
		return paramErr("min_volume", fmt.Sprint(c.MinVolume), ErrInvalidCriteria)
	}
	if c.MaxPosition < 0 {
		return paramErr("max_position", fmt.Sprint(c.MaxPosition), ErrInvalidCriteria)
	}
	in, err := ParseIntent(string(c.Intent))
	if err != nil {
		return err
	}
	c.Intent = in
	return nil
}

func (c *Criteria) match(r *models.KeywordRecord) bool {
	if r.Volume < c.MinVolume {
		return false
	}
	if c.MaxPosition > 0 {
		if r.CurrentPosition == models.NotRankingPosition || r.CurrentPosition > c.MaxPosition {
			return false
		}
	}
	if !c.Intent.Matches(r) {
		return false
	}
	if c.Location != "" && c.Location != AnyLocation && r.Location != c.Location {
		return false
	}
	return true
}

// Filter returns the records matching c, in their original order.
func Filter(records []models.KeywordRecord, c Criteria) ([]models.KeywordRecord, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	out := make([]models.KeywordRecord, 0, len(records))
	for i := range records {
		if c.match(&records[i]) {
			out = append(out, records[i])
		}
	}
	return out, nil
}
