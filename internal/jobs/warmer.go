package jobs

import (
	"context"
	"log/slog"
	"time"

	"seodash/internal/reports"
)

// Warmer precomputes the reports of every site into the report cache.
type Warmer struct {
	reports  *reports.Service
	interval time.Duration
}

// NewWarmer creates a new cache warmer.
func NewWarmer(svc *reports.Service, interval time.Duration) *Warmer {
	return &Warmer{reports: svc, interval: interval}
}

// Start runs the warm loop until ctx is cancelled. A non-positive interval
// warms once and returns.
func (w *Warmer) Start(ctx context.Context) {
	slog.Info("cache warmer started", "interval", w.interval)

	w.WarmAll(ctx)
	if w.interval <= 0 {
		slog.Info("cache warmer: periodic warming disabled")
		return
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("cache warmer stopped")
			return
		case <-ticker.C:
			w.WarmAll(ctx)
		}
	}
}

// WarmAll warms every known site and returns how many succeeded.
func (w *Warmer) WarmAll(ctx context.Context) int {
	sites, err := w.reports.Store().Sites(ctx)
	if err != nil {
		slog.Error("cache warmer: failed to list sites", "error", err)
		return 0
	}

	var warmed int
	for _, site := range sites {
		select {
		case <-ctx.Done():
			return warmed
		default:
		}

		if err := w.reports.Warm(ctx, site.Name); err != nil {
			slog.Warn("cache warmer: failed to warm site", "site", site.Name, "error", err)
			continue
		}
		warmed++
	}
	return warmed
}
