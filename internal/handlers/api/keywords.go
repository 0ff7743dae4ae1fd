package api

import (
	"bytes"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3"

	"seodash/internal/export"
	"seodash/internal/keywords"
	"seodash/internal/metrics"
	"seodash/internal/models"
	"seodash/internal/validation"
)

// KeywordHandler serves keyword listings of a site.
type KeywordHandler struct {
	store       keywords.Store
	trackedSite string
}

// NewKeywordHandler creates a new API keyword handler.
func NewKeywordHandler(store keywords.Store, trackedSite string) *KeywordHandler {
	return &KeywordHandler{store: store, trackedSite: trackedSite}
}

// load binds the keyword query and loads the requested site's keywords. When
// the request cannot proceed load has already written the error response and
// returns a nil query.
func (h *KeywordHandler) load(c fiber.Ctx) (*validation.KeywordQuery, string, []models.KeywordRecord, error) {
	q, err := bindQuery[validation.KeywordQuery](c)
	if err != nil {
		return nil, "", nil, jsonError(c, fiber.StatusBadRequest, err.Error())
	}
	site, ok := siteParam(c, h.trackedSite)
	if !ok {
		return nil, "", nil, jsonError(c, fiber.StatusBadRequest, "invalid site")
	}
	_, records, err := loadSite(c.Context(), h.store, site)
	if err != nil {
		return nil, "", nil, failure(c, err, "fetch keywords")
	}
	return q, site, records, nil
}

// selectKeywords filters and orders records as q asks.
func selectKeywords(records []models.KeywordRecord, q *validation.KeywordQuery, crit keywords.Criteria, order []keywords.SortKey) ([]models.KeywordRecord, error) {
	filtered, err := keywords.Filter(records, crit)
	if err != nil {
		return nil, err
	}
	keys, err := sortKeys(q, order)
	if err != nil {
		return nil, err
	}
	return keywords.SortBy(filtered, keys...)
}

// List returns one page of filtered, sorted keywords with the match total.
func (h *KeywordHandler) List(c fiber.Ctx) error {
	q, _, records, err := h.load(c)
	if q == nil {
		return err
	}

	sorted, err := selectKeywords(records, q, criteria(q, 0, 0), keywords.SearchOrder)
	if err != nil {
		return failure(c, err, "list keywords")
	}

	limit := q.LimitOr(validation.DefaultLimit)
	return jsonSuccess(c, models.KeywordPage{
		Keywords: page(sorted, q.Offset, limit),
		Total:    len(sorted),
		Limit:    limit,
		Offset:   q.Offset,
	})
}

// Search returns keywords with volume >= 100 ranking in the top 50 unless the
// request says otherwise, in search order.
func (h *KeywordHandler) Search(c fiber.Ctx) error {
	q, _, records, err := h.load(c)
	if q == nil {
		return err
	}

	crit := criteria(q, validation.DefaultSearchMinVolume, validation.DefaultSearchMaxPosition)
	sorted, err := selectKeywords(records, q, crit, keywords.SearchOrder)
	if err != nil {
		metrics.RecordKeywordSearch("invalid", models.OutcomeRejected)
		return failure(c, err, "search keywords")
	}

	results := page(sorted, 0, q.LimitOr(validation.DefaultSearchLimit))
	outcome := models.OutcomeResults
	if len(results) == 0 {
		outcome = models.OutcomeEmpty
	}
	intent, _ := keywords.ParseIntent(q.Intent)
	metrics.RecordKeywordSearch(string(intent), outcome)

	return jsonSuccess(c, results)
}

// Locations returns keyword counts and traffic per location.
func (h *KeywordHandler) Locations(c fiber.Ctx) error {
	q, _, records, err := h.load(c)
	if q == nil {
		return err
	}
	return jsonSuccess(c, keywords.LocationBreakdown(records))
}

// TopPerforming returns page one keywords with volume >= 100, most traffic first.
func (h *KeywordHandler) TopPerforming(c fiber.Ctx) error {
	q, _, records, err := h.load(c)
	if q == nil {
		return err
	}
	return jsonSuccess(c, keywords.HighPerformers(records, q.LimitOr(validation.DefaultTopLimit)))
}

// ImprovementOpportunities returns second page keywords, highest volume first.
func (h *KeywordHandler) ImprovementOpportunities(c fiber.Ctx) error {
	q, _, records, err := h.load(c)
	if q == nil {
		return err
	}
	return jsonSuccess(c, keywords.ImprovementOpportunities(records, q.LimitOr(validation.DefaultTopLimit)))
}

// Export downloads the filtered, sorted keywords as CSV or XLSX.
func (h *KeywordHandler) Export(c fiber.Ctx) error {
	q, site, records, err := h.load(c)
	if q == nil {
		return err
	}

	sorted, err := selectKeywords(records, q, criteria(q, 0, 0), keywords.SearchOrder)
	if err != nil {
		return failure(c, err, "export keywords")
	}
	if q.Limit != nil {
		sorted = page(sorted, q.Offset, *q.Limit)
	}

	format := q.Format
	if format == "" {
		format = export.FormatCSV
	}
	var buf bytes.Buffer
	if err := export.Write(&buf, format, sorted); err != nil {
		return failure(c, err, "export keywords")
	}

	c.Attachment(fmt.Sprintf("%s-keywords-%s.%s", site, time.Now().UTC().Format(time.DateOnly), format))
	c.Set(fiber.HeaderContentType, export.ContentType(format))
	return c.Send(buf.Bytes())
}
