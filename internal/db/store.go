package db

import (
	"context"

	"seodash/internal/keywords"
	"seodash/internal/models"
)

var _ keywords.Store = (*DB)(nil)

// Keywords implements keywords.Store.
func (d *DB) Keywords(ctx context.Context, site string) ([]models.KeywordRecord, error) {
	return d.ListKeywords(ctx, site)
}

// Sites implements keywords.Store.
func (d *DB) Sites(ctx context.Context) ([]models.Site, error) {
	return d.ListSites(ctx)
}

// Site implements keywords.Store.
func (d *DB) Site(ctx context.Context, name string) (*models.Site, error) {
	return d.GetSite(ctx, name)
}
