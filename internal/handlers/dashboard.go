package handlers

import (
	"github.com/gofiber/fiber/v3"

	"seodash/internal/middleware"
	"seodash/internal/reports"
	"seodash/internal/validation"
)

const dashboardTopKeywords = 10

// DashboardHandler renders the server-side dashboard page.
type DashboardHandler struct {
	reports     *reports.Service
	trackedSite string
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(svc *reports.Service, trackedSite string) *DashboardHandler {
	return &DashboardHandler{reports: svc, trackedSite: trackedSite}
}

// Index renders the summary, position buckets and top keywords of the tracked
// site, or of the site named by the site query parameter.
func (h *DashboardHandler) Index(c fiber.Ctx) error {
	site := h.trackedSite
	if q := c.Query("site"); q != "" {
		site = validation.NormalizeSiteName(q)
		if !validation.ValidateSiteName(site) {
			return fiber.NewError(fiber.StatusBadRequest, "invalid site")
		}
	}

	ctx := c.Context()
	sites, err := h.reports.Store().Sites(ctx)
	if err != nil {
		return err
	}
	if _, err := h.reports.Store().Site(ctx, site); err != nil {
		return fiber.NewError(fiber.StatusNotFound, "unknown site "+site)
	}

	summary, err := h.reports.Summary(ctx, site)
	if err != nil {
		return err
	}
	perf, err := h.reports.Performance(ctx, site)
	if err != nil {
		return err
	}

	top := perf.HighPerformers
	if len(top) > dashboardTopKeywords {
		top = top[:dashboardTopKeywords]
	}

	return c.Render("dashboard", fiber.Map{
		"Title":       site,
		"User":        middleware.CurrentUser(c),
		"Site":        site,
		"Sites":       sites,
		"Summary":     summary,
		"Buckets":     perf.Distribution.Buckets(),
		"TopKeywords": top,
		"Gaps":        perf.ImprovementOpportunities,
	})
}
