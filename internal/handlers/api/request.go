package api

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"seodash/internal/keywords"
	"seodash/internal/models"
	"seodash/internal/validation"
)

// bindQuery decodes and validates the query string into a new T.
func bindQuery[T any](c fiber.Ctx) (*T, error) {
	q := new(T)
	if err := c.Bind().Query(q); err != nil {
		return nil, err
	}
	if err := validation.Struct(q); err != nil {
		return nil, err
	}
	return q, nil
}

// siteParam returns the normalised site named by the route or query, or
// fallback when the request names none.
func siteParam(c fiber.Ctx, fallback string) (string, bool) {
	site := c.Params("site")
	if site == "" {
		site = c.Query("site")
	}
	if site == "" {
		return fallback, true
	}
	site = validation.NormalizeSiteName(site)
	return site, validation.ValidateSiteName(site)
}

// loadSite checks site exists and returns its keywords.
func loadSite(ctx context.Context, store keywords.Store, site string) (*models.Site, []models.KeywordRecord, error) {
	s, err := store.Site(ctx, site)
	if err != nil {
		return nil, nil, err
	}
	records, err := store.Keywords(ctx, site)
	if err != nil {
		return nil, nil, err
	}
	return s, records, nil
}

// criteria builds engine criteria from a keyword query with the given defaults.
func criteria(q *validation.KeywordQuery, minVolume int64, maxPosition int) keywords.Criteria {
	return keywords.Criteria{
		MinVolume:   q.MinVolumeOr(minVolume),
		MaxPosition: q.MaxPositionOr(maxPosition),
		Intent:      keywords.Intent(q.Intent),
		Location:    q.Location,
	}
}

// sortKeys returns the requested ordering, or def when no sort is named.
func sortKeys(q *validation.KeywordQuery, def []keywords.SortKey) ([]keywords.SortKey, error) {
	if q.Sort == "" {
		return def, nil
	}
	metric, err := keywords.ParseMetric(q.Sort)
	if err != nil {
		return nil, err
	}
	dir := keywords.DefaultDirection(metric)
	if q.Direction != "" {
		if dir, err = keywords.ParseDirection(q.Direction); err != nil {
			return nil, err
		}
	}
	return []keywords.SortKey{{Metric: metric, Direction: dir}}, nil
}

func page(records []models.KeywordRecord, offset, limit int) []models.KeywordRecord {
	if offset >= len(records) {
		return []models.KeywordRecord{}
	}
	end := min(offset+limit, len(records))
	return records[offset:end]
}
