package models

// Comparison status values, from the tracked site's point of view.
const (
	StatusBetter     = "better"
	StatusWorse      = "worse"
	StatusSame       = "same"
	StatusNotRanking = "not_ranking"
)

// ComparisonRecord is a per-keyword head-to-head between a competitor and the
// tracked site.
type ComparisonRecord struct {
	Keyword            string  `json:"keyword"`
	Volume             int64   `json:"volume"`
	KeywordDifficulty  float64 `json:"keyword_difficulty"`
	CompetitorPosition int     `json:"competitor_position"`
	CompetitorTraffic  int64   `json:"competitor_traffic"`
	CompetitorURL      string  `json:"competitor_url"`
	TrackedPosition    int     `json:"tracked_position"`
	TrackedTraffic     int64   `json:"tracked_traffic"`
	TrackedURL         string  `json:"tracked_url"`
	Status             string  `json:"status"`
	OpportunityScore   float64 `json:"opportunity_score"`
}
