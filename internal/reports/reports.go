// Package reports assembles the dashboard's analysis views for a site and
// keeps them in the report cache.
package reports

import (
	"context"
	"fmt"

	"seodash/internal/cache"
	"seodash/internal/keywords"
	"seodash/internal/models"
	"seodash/internal/recommend"
)

// Cache kinds beyond the persisted snapshot kinds.
const (
	KindSERPFeatures    = "serp_features"
	KindRecommendations = "recommendations"
)

// List sizes used by the dashboard panels.
const (
	highPerformerLimit = 20
	improvementLimit   = 20
)

// SummaryReport is the headline statistics of a site.
type SummaryReport struct {
	Site string `json:"site"`
	keywords.Summary
	TopPerformingKeywords int `json:"topPerformingKeywords"`
}

// PerformanceReport breaks a site's keywords down by position and intent.
type PerformanceReport struct {
	Site                     string                 `json:"site"`
	Distribution             keywords.Distribution  `json:"distribution"`
	Intents                  []keywords.IntentStat  `json:"intents"`
	HighPerformers           []models.KeywordRecord `json:"highPerformers"`
	ImprovementOpportunities []models.KeywordRecord `json:"improvementOpportunities"`
}

// BuildSummary computes the summary report of records.
func BuildSummary(site string, records []models.KeywordRecord) SummaryReport {
	dist := keywords.BucketByPosition(records)
	return SummaryReport{
		Site:                  site,
		Summary:               keywords.Summarize(records),
		TopPerformingKeywords: dist.Top3.Count,
	}
}

// BuildPerformance computes the performance report of records.
func BuildPerformance(site string, records []models.KeywordRecord) PerformanceReport {
	return PerformanceReport{
		Site:                     site,
		Distribution:             keywords.BucketByPosition(records),
		Intents:                  keywords.IntentBreakdown(records),
		HighPerformers:           keywords.HighPerformers(records, highPerformerLimit),
		ImprovementOpportunities: keywords.ImprovementOpportunities(records, improvementLimit),
	}
}

// SnapshotStore persists computed reports.
type SnapshotStore interface {
	SaveSnapshot(ctx context.Context, site, kind string, payload any) (*models.Snapshot, error)
}

// Service serves reports from the cache, computing them from the store on a miss.
type Service struct {
	store keywords.Store
	cache *cache.Client
}

// NewService creates a report service. A nil cache computes every request.
func NewService(store keywords.Store, c *cache.Client) *Service {
	return &Service{store: store, cache: c}
}

// Store returns the keyword store behind the service.
func (s *Service) Store() keywords.Store {
	return s.store
}

func remember[T any](ctx context.Context, s *Service, site, kind string, build func([]models.KeywordRecord) T) (T, error) {
	return cache.Remember(ctx, s.cache, cache.ReportKey(site, kind), func(ctx context.Context) (T, error) {
		records, err := s.store.Keywords(ctx, site)
		if err != nil {
			var zero T
			return zero, err
		}
		return build(records), nil
	})
}

// Summary returns the summary report of site.
func (s *Service) Summary(ctx context.Context, site string) (SummaryReport, error) {
	return remember(ctx, s, site, models.SnapshotSummary, func(r []models.KeywordRecord) SummaryReport {
		return BuildSummary(site, r)
	})
}

// Performance returns the performance report of site.
func (s *Service) Performance(ctx context.Context, site string) (PerformanceReport, error) {
	return remember(ctx, s, site, models.SnapshotPerformance, func(r []models.KeywordRecord) PerformanceReport {
		return BuildPerformance(site, r)
	})
}

// ContentGaps returns the content gap lists of site.
func (s *Service) ContentGaps(ctx context.Context, site string) (keywords.ContentGaps, error) {
	return remember(ctx, s, site, models.SnapshotContentGaps, keywords.FindContentGaps)
}

// SERPFeatures returns the SERP feature breakdown of site.
func (s *Service) SERPFeatures(ctx context.Context, site string) ([]keywords.SERPFeatureStat, error) {
	return remember(ctx, s, site, KindSERPFeatures, func(r []models.KeywordRecord) []keywords.SERPFeatureStat {
		return keywords.SERPFeatureBreakdown(r, keywords.DefaultSERPFeatures)
	})
}

// Recommendations returns the content recommendations of site.
func (s *Service) Recommendations(ctx context.Context, site string) (recommend.Report, error) {
	return remember(ctx, s, site, KindRecommendations, func(r []models.KeywordRecord) recommend.Report {
		return recommend.Build(r, recommend.DefaultLimits())
	})
}

// Warm fills the cache with the summary, performance and content gap reports of site.
func (s *Service) Warm(ctx context.Context, site string) error {
	if _, err := s.Summary(ctx, site); err != nil {
		return fmt.Errorf("warm summary for %s: %w", site, err)
	}
	if _, err := s.Performance(ctx, site); err != nil {
		return fmt.Errorf("warm performance for %s: %w", site, err)
	}
	if _, err := s.ContentGaps(ctx, site); err != nil {
		return fmt.Errorf("warm content gaps for %s: %w", site, err)
	}
	return nil
}

// Refresh drops the cached reports of site, recomputes them and saves each as
// a snapshot.
func (s *Service) Refresh(ctx context.Context, site string, snapshots SnapshotStore) ([]*models.Snapshot, error) {
	if err := s.cache.Invalidate(ctx, site); err != nil {
		return nil, fmt.Errorf("invalidate %s: %w", site, err)
	}

	records, err := s.store.Keywords(ctx, site)
	if err != nil {
		return nil, err
	}
	payloads := []struct {
		kind    string
		payload any
	}{
		{models.SnapshotSummary, BuildSummary(site, records)},
		{models.SnapshotPerformance, BuildPerformance(site, records)},
		{models.SnapshotContentGaps, keywords.FindContentGaps(records)},
	}

	saved := make([]*models.Snapshot, 0, len(payloads))
	for _, p := range payloads {
		if err := s.cache.SetJSON(ctx, cache.ReportKey(site, p.kind), p.payload); err != nil {
			return nil, err
		}
		snap, err := snapshots.SaveSnapshot(ctx, site, p.kind, p.payload)
		if err != nil {
			return nil, fmt.Errorf("save %s snapshot: %w", p.kind, err)
		}
		saved = append(saved, snap)
	}
	return saved, nil
}
