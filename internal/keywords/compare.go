package keywords

import (
	"cmp"
	"slices"

	"seodash/internal/models"
)

// CompareToCompetitor produces one comparison per competitor record, in the
// competitor's order. Keywords match exactly and case-sensitively; when the
// tracked set holds a keyword more than once the first occurrence wins. A nil
// scorer uses DefaultWeights.
func CompareToCompetitor(tracked, competitor []models.KeywordRecord, scorer Scorer) []models.ComparisonRecord {
	if scorer == nil {
		scorer = DefaultWeights
	}
	index := indexByKeyword(tracked)

	out := make([]models.ComparisonRecord, 0, len(competitor))
	for i := range competitor {
		c := &competitor[i]
		rec := models.ComparisonRecord{
			Keyword:            c.Keyword,
			Volume:             c.Volume,
			KeywordDifficulty:  c.KeywordDifficulty,
			CompetitorPosition: c.EffectivePosition(),
			CompetitorTraffic:  c.OrganicTraffic,
			CompetitorURL:      c.CurrentURL,
			TrackedPosition:    models.NotRankingPosition,
		}
		if t, ok := index[c.Keyword]; ok {
			rec.TrackedPosition = t.EffectivePosition()
			rec.TrackedTraffic = t.OrganicTraffic
			rec.TrackedURL = t.CurrentURL
		}
		rec.Status = status(rec.TrackedPosition, rec.CompetitorPosition)
		rec.OpportunityScore = scorer.Score(comparisonInput(&rec))
		out = append(out, rec)
	}
	return out
}

func indexByKeyword(records []models.KeywordRecord) map[string]*models.KeywordRecord {
	index := make(map[string]*models.KeywordRecord, len(records))
	for i := range records {
		if _, ok := index[records[i].Keyword]; !ok {
			index[records[i].Keyword] = &records[i]
		}
	}
	return index
}

func status(tracked, competitor int) string {
	switch {
	case tracked == models.NotRankingPosition:
		return models.StatusNotRanking
	case tracked < competitor:
		return models.StatusBetter
	case tracked > competitor:
		return models.StatusWorse
	default:
		return models.StatusSame
	}
}

func comparisonInput(r *models.ComparisonRecord) ComparisonInput {
	return ComparisonInput{
		Keyword:            r.Keyword,
		Volume:             r.Volume,
		KeywordDifficulty:  r.KeywordDifficulty,
		TrackedPosition:    r.TrackedPosition,
		TrackedTraffic:     r.TrackedTraffic,
		CompetitorPosition: r.CompetitorPosition,
		CompetitorTraffic:  r.CompetitorTraffic,
		Status:             r.Status,
	}
}

// Opportunity is a keyword a competitor wins on page one while the tracked
// site trails or does not rank.
type Opportunity struct {
	Keyword            string  `json:"keyword"`
	Volume             int64   `json:"volume"`
	KeywordDifficulty  float64 `json:"keyword_difficulty"`
	TrackedPosition    int     `json:"tracked_position"`
	Competitor         string  `json:"competitor"`
	CompetitorPosition int     `json:"competitor_position"`
	CompetitorURL      string  `json:"competitor_url"`
	Status             string  `json:"status"`
	OpportunityScore   float64 `json:"opportunity_score"`
}

// CompetitorOpportunities collects keywords with volume >= minVolume where
// some competitor ranks in the top 10 and the tracked site is worse or absent.
// Each keyword appears once, attributed to its best placed competitor, with
// sites visited in name order. Results are ordered by score, highest first.
func CompetitorOpportunities(tracked []models.KeywordRecord, competitors map[string][]models.KeywordRecord, minVolume int64, n int, scorer Scorer) []Opportunity {
	if scorer == nil {
		scorer = DefaultWeights
	}
	sites := make([]string, 0, len(competitors))
	for site := range competitors {
		sites = append(sites, site)
	}
	slices.Sort(sites)

	var out []Opportunity
	seen := make(map[string]int)
	for _, site := range sites {
		for _, cmpRec := range CompareToCompetitor(tracked, competitors[site], scorer) {
			if cmpRec.Volume < minVolume || cmpRec.CompetitorPosition > 10 {
				continue
			}
			if cmpRec.Status != models.StatusWorse && cmpRec.Status != models.StatusNotRanking {
				continue
			}
			opp := Opportunity{
				Keyword:            cmpRec.Keyword,
				Volume:             cmpRec.Volume,
				KeywordDifficulty:  cmpRec.KeywordDifficulty,
				TrackedPosition:    cmpRec.TrackedPosition,
				Competitor:         site,
				CompetitorPosition: cmpRec.CompetitorPosition,
				CompetitorURL:      cmpRec.CompetitorURL,
				Status:             cmpRec.Status,
				OpportunityScore:   cmpRec.OpportunityScore,
			}
			if idx, ok := seen[opp.Keyword]; ok {
				if opp.CompetitorPosition < out[idx].CompetitorPosition {
					out[idx] = opp
				}
				continue
			}
			seen[opp.Keyword] = len(out)
			out = append(out, opp)
		}
	}

	slices.SortStableFunc(out, func(a, b Opportunity) int {
		return cmp.Compare(b.OpportunityScore, a.OpportunityScore)
	})
	if n <= 0 {
		return []Opportunity{}
	}
	if n < len(out) {
		out = out[:n]
	}
	if out == nil {
		out = []Opportunity{}
	}
	return out
}
