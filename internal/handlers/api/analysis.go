package api

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"seodash/internal/reports"
)

// AnalysisHandler serves the site analysis reports.
type AnalysisHandler struct {
	reports     *reports.Service
	snapshots   reports.SnapshotStore
	trackedSite string
}

// NewAnalysisHandler creates a new API analysis handler. Requests that name no
// site report on trackedSite.
func NewAnalysisHandler(svc *reports.Service, snapshots reports.SnapshotStore, trackedSite string) *AnalysisHandler {
	return &AnalysisHandler{reports: svc, snapshots: snapshots, trackedSite: trackedSite}
}

// serve resolves the requested site and responds with build's report.
func serve[T any](h *AnalysisHandler, c fiber.Ctx, action string, build func(context.Context, string) (T, error)) error {
	site, ok := siteParam(c, h.trackedSite)
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "invalid site")
	}
	if _, err := h.reports.Store().Site(c.Context(), site); err != nil {
		return failure(c, err, action)
	}
	report, err := build(c.Context(), site)
	if err != nil {
		return failure(c, err, action)
	}
	return jsonSuccess(c, report)
}

// Summary returns keyword totals, the ranked average position and the number
// of top three keywords.
func (h *AnalysisHandler) Summary(c fiber.Ctx) error {
	return serve(h, c, "build summary", h.reports.Summary)
}

// Performance returns the position distribution, intent breakdown, high
// performers and improvement opportunities.
func (h *AnalysisHandler) Performance(c fiber.Ctx) error {
	return serve(h, c, "build performance analysis", h.reports.Performance)
}

// ContentGaps returns high and medium volume keywords the site underserves.
func (h *AnalysisHandler) ContentGaps(c fiber.Ctx) error {
	return serve(h, c, "build content gaps", h.reports.ContentGaps)
}

// SERPFeatures returns per SERP feature statistics.
func (h *AnalysisHandler) SERPFeatures(c fiber.Ctx) error {
	return serve(h, c, "build serp feature analysis", h.reports.SERPFeatures)
}

// Recommendations returns new content, improvement and topic cluster proposals.
func (h *AnalysisHandler) Recommendations(c fiber.Ctx) error {
	return serve(h, c, "build recommendations", h.reports.Recommendations)
}

// Refresh recomputes the reports of a site and stores them as snapshots.
func (h *AnalysisHandler) Refresh(c fiber.Ctx) error {
	return serve(h, c, "refresh analysis", func(ctx context.Context, site string) (fiber.Map, error) {
		snaps, err := h.reports.Refresh(ctx, site, h.snapshots)
		if err != nil {
			return nil, err
		}
		return fiber.Map{"site": site, "snapshots": snaps}, nil
	})
}
