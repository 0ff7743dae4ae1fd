// Package recommend derives content recommendations from a site's keywords.
package recommend

import (
	"math"

	"seodash/internal/models"
)

// clickThrough is the expected organic click-through rate by position.
var clickThrough = [...]float64{
	0,
	0.28, 0.15, 0.11, 0.08, 0.07,
	0.05, 0.04, 0.03, 0.03, 0.02,
}

// secondPageCTR applies to positions 11 to 20.
const secondPageCTR = 0.01

// CTR returns the expected click-through rate at position. Positions past the
// second page, and the unranked sentinel, earn nothing.
func CTR(position int) float64 {
	switch {
	case position >= 1 && position < len(clickThrough):
		return clickThrough[position]
	case position > 10 && position <= 20:
		return secondPageCTR
	default:
		return 0
	}
}

// EstimatedTraffic is the monthly traffic volume would earn at position.
func EstimatedTraffic(volume int64, position int) int64 {
	return int64(math.Round(float64(volume) * CTR(position)))
}

// trafficGain is the traffic won by moving r from its current position to target.
func trafficGain(r *models.KeywordRecord, target int) int64 {
	gain := EstimatedTraffic(r.Volume, target) - EstimatedTraffic(r.Volume, r.EffectivePosition())
	return max(gain, 0)
}
