package keywords

import (
	"cmp"
	"slices"
	"strings"

	"seodash/internal/models"
)

// Metric is a sortable keyword field.
type Metric string

const (
	MetricTraffic    Metric = "traffic"
	MetricVolume     Metric = "volume"
	MetricPosition   Metric = "position"
	MetricDifficulty Metric = "difficulty"
)

// Direction is a sort direction.
type Direction string

const (
	Ascending  Direction = "ascending"
	Descending Direction = "descending"
)

// ParseMetric converts a request value to a Metric.
func ParseMetric(s string) (Metric, error) {
	switch m := Metric(strings.ToLower(strings.TrimSpace(s))); m {
	case MetricTraffic, MetricVolume, MetricPosition, MetricDifficulty:
		return m, nil
	}
	return "", paramErr("sort", s, ErrUnsupportedMetric)
}

// ParseDirection converts a request value to a Direction. "asc" and "desc"
// are accepted as short forms.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ascending", "asc":
		return Ascending, nil
	case "descending", "desc":
		return Descending, nil
	}
	return "", paramErr("direction", s, ErrUnsupportedDirection)
}

// DefaultDirection is the natural "best first" order for a metric.
func DefaultDirection(m Metric) Direction {
	if m == MetricPosition {
		return Ascending
	}
	return Descending
}

// SortKey is one level of a multi-key ordering.
type SortKey struct {
	Metric    Metric
	Direction Direction
}

// SearchOrder is the keyword search ordering: traffic high to low, then
// position best first.
var SearchOrder = []SortKey{
	{Metric: MetricTraffic, Direction: Descending},
	{Metric: MetricPosition, Direction: Ascending},
}

func (k SortKey) validate() error {
	switch k.Metric {
	case MetricTraffic, MetricVolume, MetricPosition, MetricDifficulty:
	default:
		return paramErr("sort", string(k.Metric), ErrUnsupportedMetric)
	}
	switch k.Direction {
	case Ascending, Descending:
	default:
		return paramErr("direction", string(k.Direction), ErrUnsupportedDirection)
	}
	return nil
}

func (k SortKey) compare(a, b *models.KeywordRecord) int {
	var c int
	switch k.Metric {
	case MetricTraffic:
		c = cmp.Compare(a.OrganicTraffic, b.OrganicTraffic)
	case MetricVolume:
		c = cmp.Compare(a.Volume, b.Volume)
	case MetricDifficulty:
		c = cmp.Compare(a.KeywordDifficulty, b.KeywordDifficulty)
	case MetricPosition:
		// Unranked records sink to the bottom in both directions.
		ar, br := a.IsRanked(), b.IsRanked()
		switch {
		case !ar && !br:
			return 0
		case !ar:
			return 1
		case !br:
			return -1
		}
		c = cmp.Compare(a.CurrentPosition, b.CurrentPosition)
	}
	if k.Direction == Descending {
		return -c
	}
	return c
}

// Sort returns a stably sorted copy of records.
func Sort(records []models.KeywordRecord, metric Metric, dir Direction) ([]models.KeywordRecord, error) {
	return SortBy(records, SortKey{Metric: metric, Direction: dir})
}

// SortBy returns a stably sorted copy of records ordered by keys in turn.
func SortBy(records []models.KeywordRecord, keys ...SortKey) ([]models.KeywordRecord, error) {
	for _, k := range keys {
		if err := k.validate(); err != nil {
			return nil, err
		}
	}
	out := slices.Clone(records)
	if out == nil {
		out = []models.KeywordRecord{}
	}
	slices.SortStableFunc(out, func(a, b models.KeywordRecord) int {
		for _, k := range keys {
			if c := k.compare(&a, &b); c != 0 {
				return c
			}
		}
		return 0
	})
	return out, nil
}

// TopN sorts by metric in its default direction and keeps the first n records.
func TopN(records []models.KeywordRecord, n int, metric Metric) ([]models.KeywordRecord, error) {
	sorted, err := Sort(records, metric, DefaultDirection(metric))
	if err != nil {
		return nil, err
	}
	return truncate(sorted, n), nil
}

func truncate(records []models.KeywordRecord, n int) []models.KeywordRecord {
	if n <= 0 {
		return []models.KeywordRecord{}
	}
	if n < len(records) {
		return records[:n]
	}
	return records
}
