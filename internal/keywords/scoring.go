package keywords

import (
	"math"

	"seodash/internal/models"
)

// ComparisonInput is what a Scorer sees of one head-to-head.
type ComparisonInput struct {
	Keyword            string
	Volume             int64
	KeywordDifficulty  float64
	TrackedPosition    int
	TrackedTraffic     int64
	CompetitorPosition int
	CompetitorTraffic  int64
	Status             string
}

// TrafficGap is the competitor's traffic lead, never negative.
func (in ComparisonInput) TrafficGap() int64 {
	return max(in.CompetitorTraffic-in.TrackedTraffic, 0)
}

// Scorer assigns an opportunity score to a comparison. Higher means a larger
// gap worth closing.
type Scorer interface {
	Score(in ComparisonInput) float64
}

// ScorerFunc adapts a plain function to Scorer.
type ScorerFunc func(in ComparisonInput) float64

func (f ScorerFunc) Score(in ComparisonInput) float64 {
	return f(in)
}

// ZeroScorer scores everything 0.
var ZeroScorer Scorer = ScorerFunc(func(ComparisonInput) float64 { return 0 })

// Saturation points for the weighted score's log scales.
const (
	trafficGapSaturation = 10000
	volumeSaturation     = 100000
)

// WeightedScorer blends traffic gap, search volume and ease (100 minus
// difficulty) into a score in [0,100]. Each factor is log-scaled to [0,1]
// and weighted; negative weights count as zero. Keywords where the tracked
// site already ranks better score 0.
type WeightedScorer struct {
	TrafficGap float64 `yaml:"traffic_gap"`
	Volume     float64 `yaml:"volume"`
	Difficulty float64 `yaml:"difficulty"`
}

// DefaultWeights is the scorer used when none is configured.
var DefaultWeights = WeightedScorer{TrafficGap: 0.5, Volume: 0.3, Difficulty: 0.2}

func (w WeightedScorer) Score(in ComparisonInput) float64 {
	if in.Status == models.StatusBetter {
		return 0
	}
	wg, wv, wd := max(w.TrafficGap, 0), max(w.Volume, 0), max(w.Difficulty, 0)
	total := wg + wv + wd
	if total == 0 {
		return 0
	}
	gap := logScale(float64(in.TrafficGap()), trafficGapSaturation)
	vol := logScale(float64(max(in.Volume, 0)), volumeSaturation)
	ease := 1 - clamp(in.KeywordDifficulty, 0, 100)/100
	return clamp(100*(wg*gap+wv*vol+wd*ease)/total, 0, 100)
}

func logScale(v, saturation float64) float64 {
	if v <= 0 {
		return 0
	}
	return math.Min(1, math.Log10(1+v)/math.Log10(1+saturation))
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
