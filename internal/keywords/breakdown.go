package keywords

import (
	"cmp"
	"slices"
	"strings"

	"seodash/internal/models"
)

// IntentStat aggregates the records carrying one intent flag.
type IntentStat struct {
	Intent      Intent   `json:"intent"`
	Count       int      `json:"count"`
	TotalVolume int64    `json:"totalVolume"`
	AvgPosition *float64 `json:"avgPosition"`
}

// IntentBreakdown reports every intent flag, in Intents order. A record with
// several flags counts toward each of them.
func IntentBreakdown(records []models.KeywordRecord) []IntentStat {
	out := make([]IntentStat, 0, len(Intents))
	for _, in := range Intents {
		stat := IntentStat{Intent: in}
		var posSum int64
		var ranked int
		for i := range records {
			r := &records[i]
			if !in.Matches(r) {
				continue
			}
			stat.Count++
			stat.TotalVolume += r.Volume
			if r.IsRanked() {
				ranked++
				posSum += int64(r.CurrentPosition)
			}
		}
		stat.AvgPosition = mean(posSum, ranked)
		out = append(out, stat)
	}
	return out
}

// LocationStat aggregates one location.
type LocationStat struct {
	Location     string `json:"location"`
	Count        int    `json:"count"`
	TotalTraffic int64  `json:"totalTraffic"`
}

// LocationBreakdown groups records by location, largest first and then by name.
func LocationBreakdown(records []models.KeywordRecord) []LocationStat {
	byName := make(map[string]*LocationStat)
	for i := range records {
		r := &records[i]
		s, ok := byName[r.Location]
		if !ok {
			s = &LocationStat{Location: r.Location}
			byName[r.Location] = s
		}
		s.Count++
		s.TotalTraffic += r.OrganicTraffic
	}
	out := make([]LocationStat, 0, len(byName))
	for _, s := range byName {
		out = append(out, *s)
	}
	slices.SortFunc(out, func(a, b LocationStat) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return strings.Compare(a.Location, b.Location)
	})
	return out
}

// DefaultSERPFeatures are the result-page features reported when the caller
// does not name its own.
var DefaultSERPFeatures = []string{
	"Sitelinks",
	"People also ask",
	"Local pack",
	"Thumbnail",
	"Video preview",
	"Knowledge panel",
	"AI Overview",
	"Shopping",
}

// SERPFeatureStat aggregates the records whose SERP features mention a feature.
type SERPFeatureStat struct {
	Feature      string   `json:"feature"`
	Count        int      `json:"count"`
	Percentage   float64  `json:"percentage"`
	AvgVolume    float64  `json:"avgVolume"`
	AvgPosition  *float64 `json:"avgPosition"`
	TotalTraffic int64    `json:"totalTraffic"`
}

// SERPFeatureBreakdown matches each feature as a case-insensitive substring
// of the record's SERP feature list.
func SERPFeatureBreakdown(records []models.KeywordRecord, features []string) []SERPFeatureStat {
	if len(features) == 0 {
		features = DefaultSERPFeatures
	}
	lowered := make([]string, len(records))
	for i := range records {
		lowered[i] = strings.ToLower(records[i].SERPFeatures)
	}

	out := make([]SERPFeatureStat, 0, len(features))
	for _, f := range features {
		needle := strings.ToLower(f)
		stat := SERPFeatureStat{Feature: f}
		var volSum, posSum int64
		var ranked int
		for i := range records {
			if needle == "" || !strings.Contains(lowered[i], needle) {
				continue
			}
			r := &records[i]
			stat.Count++
			volSum += r.Volume
			stat.TotalTraffic += r.OrganicTraffic
			if r.IsRanked() {
				ranked++
				posSum += int64(r.CurrentPosition)
			}
		}
		if stat.Count > 0 {
			stat.AvgVolume = float64(volSum) / float64(stat.Count)
			stat.Percentage = float64(stat.Count) / float64(len(records)) * 100
		}
		stat.AvgPosition = mean(posSum, ranked)
		out = append(out, stat)
	}
	return out
}

// Content gap thresholds.
const (
	gapLimit           = 15
	highVolumeMin      = 500
	highVolumeMinPos   = 21
	mediumVolumeMin    = 100
	mediumVolumeMinPos = 11
	mediumVolumeMaxPos = 30
)

// ContentGaps splits under-served keywords into two lists, each ordered by
// volume and capped at fifteen.
type ContentGaps struct {
	HighVolumeGaps            []models.KeywordRecord `json:"highVolumeGaps"`
	MediumVolumeOpportunities []models.KeywordRecord `json:"mediumVolumeOpportunities"`
}

// FindContentGaps returns high volume keywords ranking 21 or worse (unranked
// included) and medium volume keywords ranking 11 to 30.
func FindContentGaps(records []models.KeywordRecord) ContentGaps {
	var high, medium []models.KeywordRecord
	for i := range records {
		r := &records[i]
		switch {
		case r.Volume >= highVolumeMin && r.CurrentPosition >= highVolumeMinPos:
			high = append(high, *r)
		case r.Volume >= mediumVolumeMin && r.Volume < highVolumeMin &&
			r.CurrentPosition >= mediumVolumeMinPos && r.CurrentPosition <= mediumVolumeMaxPos:
			medium = append(medium, *r)
		}
	}
	return ContentGaps{
		HighVolumeGaps:            byVolume(high, gapLimit),
		MediumVolumeOpportunities: byVolume(medium, gapLimit),
	}
}

// HighPerformers returns page-one keywords with volume >= 100, most traffic first.
func HighPerformers(records []models.KeywordRecord, n int) []models.KeywordRecord {
	var hits []models.KeywordRecord
	for i := range records {
		r := &records[i]
		if r.IsRanked() && r.CurrentPosition <= 10 && r.Volume >= 100 {
			hits = append(hits, *r)
		}
	}
	sorted, _ := Sort(hits, MetricTraffic, Descending)
	return truncate(sorted, n)
}

// ImprovementOpportunities returns keywords ranking 11 to 20 with volume >= 50,
// highest volume first.
func ImprovementOpportunities(records []models.KeywordRecord, n int) []models.KeywordRecord {
	var hits []models.KeywordRecord
	for i := range records {
		r := &records[i]
		if r.CurrentPosition >= 11 && r.CurrentPosition <= 20 && r.Volume >= 50 {
			hits = append(hits, *r)
		}
	}
	return byVolume(hits, n)
}

func byVolume(records []models.KeywordRecord, n int) []models.KeywordRecord {
	sorted, _ := Sort(records, MetricVolume, Descending)
	return truncate(sorted, n)
}

func mean(sum int64, n int) *float64 {
	if n == 0 {
		return nil
	}
	v := float64(sum) / float64(n)
	return &v
}
