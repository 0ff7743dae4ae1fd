package keywords

import "seodash/internal/models"

// Summary holds collection totals. AvgPosition is nil when nothing ranks.
type Summary struct {
	TotalKeywords  int      `json:"totalKeywords"`
	TotalVolume    int64    `json:"totalVolume"`
	TotalTraffic   int64    `json:"totalTraffic"`
	AvgPosition    *float64 `json:"avgPosition"`
	RankedKeywords int      `json:"rankedKeywords"`
}

// Summarize computes totals over records and the mean position of the ranked ones.
func Summarize(records []models.KeywordRecord) Summary {
	var s Summary
	var posSum int64
	for i := range records {
		r := &records[i]
		s.TotalKeywords++
		s.TotalVolume += r.Volume
		s.TotalTraffic += r.OrganicTraffic
		if r.IsRanked() {
			s.RankedKeywords++
			posSum += int64(r.CurrentPosition)
		}
	}
	s.AvgPosition = mean(posSum, s.RankedKeywords)
	return s
}

// SummarizeCompetitor builds the aggregate record for a competitor site.
func SummarizeCompetitor(site, displayName string, records []models.KeywordRecord) models.CompetitorRecord {
	s := Summarize(records)
	if displayName == "" {
		displayName = site
	}
	return models.CompetitorRecord{
		SiteName:        site,
		DisplayName:     displayName,
		TotalKeywords:   s.TotalKeywords,
		TotalTraffic:    s.TotalTraffic,
		AveragePosition: s.AvgPosition,
		TotalVolume:     s.TotalVolume,
	}
}
