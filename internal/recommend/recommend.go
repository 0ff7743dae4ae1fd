package recommend

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"seodash/internal/keywords"
	"seodash/internal/models"
)

// Priority labels.
const (
	PriorityHigh   = "High"
	PriorityMedium = "Medium"
	PriorityLow    = "Low"
)

// TargetPosition is the position new content is planned to reach.
const TargetPosition = 3

// Limits caps each recommendation list.
type Limits struct {
	NewContent    int
	Improvements  int
	TopicClusters int
}

// DefaultLimits matches the dashboard's recommendation panels.
func DefaultLimits() Limits {
	return Limits{NewContent: 8, Improvements: 12, TopicClusters: 3}
}

// NewContent proposes a page for a keyword the site does not serve well.
type NewContent struct {
	Title            string  `json:"title"`
	Keyword          string  `json:"keyword"`
	Volume           int64   `json:"volume"`
	Difficulty       float64 `json:"difficulty"`
	CurrentPosition  int     `json:"current_position"`
	PotentialTraffic int64   `json:"potential_traffic"`
	ContentType      string  `json:"content_type"`
	Priority         string  `json:"priority"`
}

// Improvement proposes reworking an existing page close to the top.
type Improvement struct {
	Keyword              string `json:"keyword"`
	CurrentURL           string `json:"current_url"`
	CurrentPosition      int    `json:"current_position"`
	TargetPosition       int    `json:"target_position"`
	PotentialTrafficGain int64  `json:"potential_traffic_gain"`
	ImprovementType      string `json:"improvement_type"`
	Priority             string `json:"priority"`
}

// TopicCluster groups keywords sharing a leading phrase into a pillar page
// and its supporting pieces.
type TopicCluster struct {
	Name               string   `json:"cluster_name"`
	PrimaryKeyword     string   `json:"primary_keyword"`
	SupportingKeywords []string `json:"supporting_keywords"`
	ContentPieces      int      `json:"content_pieces"`
	PotentialTraffic   int64    `json:"potential_traffic"`
	Priority           string   `json:"priority"`
}

// Summary totals a Report.
type Summary struct {
	NewContentProposals  int    `json:"new_content_proposals"`
	ImprovementProposals int    `json:"improvement_proposals"`
	PotentialTraffic     int64  `json:"potential_traffic"`
	Priority             string `json:"priority"`
}

// Report is the full set of recommendations for one site.
type Report struct {
	Summary       Summary        `json:"summary"`
	NewContent    []NewContent   `json:"new_content"`
	Improvements  []Improvement  `json:"improvements"`
	TopicClusters []TopicCluster `json:"topic_clusters"`
}

// Build computes every recommendation list for records.
func Build(records []models.KeywordRecord, limits Limits) Report {
	newContent := NewContentIdeas(records, limits.NewContent)
	improvements := Improvements(records, limits.Improvements)

	var potential int64
	for _, n := range newContent {
		potential += n.PotentialTraffic
	}

	return Report{
		Summary: Summary{
			NewContentProposals:  len(newContent),
			ImprovementProposals: len(improvements),
			PotentialTraffic:     potential,
			Priority:             summaryPriority(potential),
		},
		NewContent:    newContent,
		Improvements:  improvements,
		TopicClusters: TopicClusters(records, limits.TopicClusters),
	}
}

func summaryPriority(potential int64) string {
	switch {
	case potential > 20000:
		return PriorityHigh
	case potential > 10000:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

func itemPriority(traffic, high, medium int64) string {
	switch {
	case traffic > high:
		return PriorityHigh
	case traffic > medium:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

// NewContentIdeas turns high volume content gaps into page proposals,
// highest potential first.
func NewContentIdeas(records []models.KeywordRecord, n int) []NewContent {
	gaps := keywords.FindContentGaps(records).HighVolumeGaps
	out := make([]NewContent, 0, len(gaps))
	for i := range gaps {
		r := &gaps[i]
		potential := EstimatedTraffic(r.Volume, TargetPosition)
		out = append(out, NewContent{
			Title:            title(r.Keyword),
			Keyword:          r.Keyword,
			Volume:           r.Volume,
			Difficulty:       r.KeywordDifficulty,
			CurrentPosition:  r.EffectivePosition(),
			PotentialTraffic: potential,
			ContentType:      contentType(r),
			Priority:         itemPriority(potential, 2000, 500),
		})
	}
	slices.SortStableFunc(out, func(a, b NewContent) int {
		return cmp.Compare(b.PotentialTraffic, a.PotentialTraffic)
	})
	return head(out, n)
}

// Improvements lists ranked pages in positions 4 to 20 by the traffic they
// would gain reaching the top three (from page one) or the top ten.
func Improvements(records []models.KeywordRecord, n int) []Improvement {
	var out []Improvement
	for i := range records {
		r := &records[i]
		if r.CurrentURL == "" || r.CurrentPosition < 4 || r.CurrentPosition > 20 {
			continue
		}
		target, kind := 3, "Content Enhancement"
		if r.CurrentPosition > 10 {
			target, kind = 10, "On-Page Optimization"
		}
		gain := trafficGain(r, target)
		out = append(out, Improvement{
			Keyword:              r.Keyword,
			CurrentURL:           r.CurrentURL,
			CurrentPosition:      r.CurrentPosition,
			TargetPosition:       target,
			PotentialTrafficGain: gain,
			ImprovementType:      kind,
			Priority:             itemPriority(gain, 1000, 250),
		})
	}
	slices.SortStableFunc(out, func(a, b Improvement) int {
		return cmp.Compare(b.PotentialTrafficGain, a.PotentialTrafficGain)
	})
	return head(out, n)
}

const (
	clusterMinVolume  = 100
	clusterSupporting = 5
)

// TopicClusters groups keywords with volume >= 100 by their first two words.
// Groups need at least two keywords; the highest volume keyword leads and the
// next five support it.
func TopicClusters(records []models.KeywordRecord, n int) []TopicCluster {
	groups := make(map[string][]models.KeywordRecord)
	var order []string
	for i := range records {
		r := &records[i]
		if r.Volume < clusterMinVolume {
			continue
		}
		key := clusterKey(r.Keyword)
		if key == "" {
			continue
		}
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], *r)
	}

	var out []TopicCluster
	for _, key := range order {
		members := groups[key]
		if len(members) < 2 {
			continue
		}
		sorted, _ := keywords.Sort(members, keywords.MetricVolume, keywords.Descending)
		sorted = head(sorted, clusterSupporting+1)

		var potential int64
		supporting := make([]string, 0, len(sorted)-1)
		for i := range sorted {
			potential += EstimatedTraffic(sorted[i].Volume, TargetPosition)
			if i > 0 {
				supporting = append(supporting, sorted[i].Keyword)
			}
		}
		out = append(out, TopicCluster{
			Name:               title(key),
			PrimaryKeyword:     sorted[0].Keyword,
			SupportingKeywords: supporting,
			ContentPieces:      len(sorted),
			PotentialTraffic:   potential,
			Priority:           itemPriority(potential, 5000, 1000),
		})
	}
	slices.SortStableFunc(out, func(a, b TopicCluster) int {
		return cmp.Compare(b.PotentialTraffic, a.PotentialTraffic)
	})
	return head(out, n)
}

func clusterKey(keyword string) string {
	words := strings.Fields(strings.ToLower(keyword))
	if len(words) > 2 {
		words = words[:2]
	}
	return strings.Join(words, " ")
}

func contentType(r *models.KeywordRecord) string {
	switch {
	case r.Local:
		return "Listing"
	case r.Transactional, r.Commercial:
		return "Comparison"
	case r.Informational:
		return "Guide"
	default:
		return "Article"
	}
}

// Casers are stateful, so each call builds its own.
func title(s string) string {
	return cases.Title(language.English).String(s)
}

func head[T any](s []T, n int) []T {
	if n <= 0 {
		return []T{}
	}
	if len(s) > n {
		return s[:n]
	}
	if s == nil {
		return []T{}
	}
	return s
}
