package api

import (
	"github.com/gofiber/fiber/v3"

	"seodash/internal/keywords"
	"seodash/internal/models"
	"seodash/internal/validation"
)

// CompetitorHandler compares competitor sites with the tracked site.
type CompetitorHandler struct {
	store       keywords.Store
	trackedSite string
	scorer      keywords.Scorer
}

// NewCompetitorHandler creates a new API competitor handler. A nil scorer
// uses the default weights.
func NewCompetitorHandler(store keywords.Store, trackedSite string, scorer keywords.Scorer) *CompetitorHandler {
	if scorer == nil {
		scorer = keywords.DefaultWeights
	}
	return &CompetitorHandler{store: store, trackedSite: trackedSite, scorer: scorer}
}

// competitors returns every catalogued site other than the tracked one.
func (h *CompetitorHandler) competitors(c fiber.Ctx) ([]models.Site, error) {
	sites, err := h.store.Sites(c.Context())
	if err != nil {
		return nil, err
	}
	out := make([]models.Site, 0, len(sites))
	for _, s := range sites {
		if s.Name != h.trackedSite {
			out = append(out, s)
		}
	}
	return out, nil
}

// Summary returns keyword totals for each competitor.
func (h *CompetitorHandler) Summary(c fiber.Ctx) error {
	sites, err := h.competitors(c)
	if err != nil {
		return failure(c, err, "fetch competitors")
	}

	out := make([]models.CompetitorRecord, 0, len(sites))
	for _, s := range sites {
		records, err := h.store.Keywords(c.Context(), s.Name)
		if err != nil {
			return failure(c, err, "fetch competitor keywords")
		}
		out = append(out, keywords.SummarizeCompetitor(s.Name, s.DisplayName, records))
	}
	return jsonSuccess(c, out)
}

// Opportunities returns keywords competitors hold on page one while the
// tracked site trails, highest opportunity score first.
func (h *CompetitorHandler) Opportunities(c fiber.Ctx) error {
	q, err := bindQuery[validation.OpportunityQuery](c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}
	minVolume := int64(validation.DefaultSearchMinVolume)
	if q.MinVolume != nil {
		minVolume = *q.MinVolume
	}
	limit := validation.DefaultLimit
	if q.Limit != nil {
		limit = *q.Limit
	}

	tracked, err := h.store.Keywords(c.Context(), h.trackedSite)
	if err != nil {
		return failure(c, err, "fetch tracked keywords")
	}
	sites, err := h.competitors(c)
	if err != nil {
		return failure(c, err, "fetch competitors")
	}
	bySite := make(map[string][]models.KeywordRecord, len(sites))
	for _, s := range sites {
		if bySite[s.Name], err = h.store.Keywords(c.Context(), s.Name); err != nil {
			return failure(c, err, "fetch competitor keywords")
		}
	}

	return jsonSuccess(c, keywords.CompetitorOpportunities(tracked, bySite, minVolume, limit, h.scorer))
}

// competitor resolves the :site route parameter to a competitor's keywords.
// On failure the error response has already been written and site is nil.
func (h *CompetitorHandler) competitor(c fiber.Ctx) (*models.Site, []models.KeywordRecord, error) {
	name, ok := siteParam(c, "")
	if !ok || name == "" {
		return nil, nil, jsonError(c, fiber.StatusBadRequest, "invalid site")
	}
	if name == h.trackedSite {
		return nil, nil, jsonError(c, fiber.StatusBadRequest, "site is the tracked site, not a competitor")
	}
	site, records, err := loadSite(c.Context(), h.store, name)
	if err != nil {
		return nil, nil, failure(c, err, "fetch competitor keywords")
	}
	return site, records, nil
}

// Keywords lists a competitor's keywords with the search defaults: volume >=
// 100, top 50 positions, 100 results.
func (h *CompetitorHandler) Keywords(c fiber.Ctx) error {
	q, err := bindQuery[validation.KeywordQuery](c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}
	site, records, err := h.competitor(c)
	if site == nil {
		return err
	}

	crit := criteria(q, validation.DefaultSearchMinVolume, validation.DefaultSearchMaxPosition)
	sorted, err := selectKeywords(records, q, crit, keywords.SearchOrder)
	if err != nil {
		return failure(c, err, "fetch competitor keywords")
	}
	return jsonSuccess(c, page(sorted, q.Offset, q.LimitOr(validation.DefaultSearchLimit)))
}

// Comparison compares a competitor's strongest keywords, in search order,
// with the tracked site's positions on the same keywords.
func (h *CompetitorHandler) Comparison(c fiber.Ctx) error {
	q, err := bindQuery[validation.KeywordQuery](c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}
	site, records, err := h.competitor(c)
	if site == nil {
		return err
	}
	tracked, err := h.store.Keywords(c.Context(), h.trackedSite)
	if err != nil {
		return failure(c, err, "fetch tracked keywords")
	}

	sorted, err := selectKeywords(records, q, criteria(q, 0, 0), keywords.SearchOrder)
	if err != nil {
		return failure(c, err, "compare keywords")
	}
	sorted = page(sorted, q.Offset, q.LimitOr(validation.DefaultLimit))

	return jsonSuccess(c, fiber.Map{
		"site":         site.Name,
		"display_name": site.DisplayName,
		"tracked_site": h.trackedSite,
		"comparison":   keywords.CompareToCompetitor(tracked, sorted, h.scorer),
	})
}
