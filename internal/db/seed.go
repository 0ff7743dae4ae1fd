package db

import (
	"context"
	"fmt"

	"seodash/internal/fixtures"
)

// SeedDevKeywords fills empty sites with generated keywords for development.
// Sites that already hold keywords are left alone.
func (d *DB) SeedDevKeywords(ctx context.Context, provider fixtures.Provider, perSite int) error {
	counts, err := d.CountKeywordsBySite(ctx)
	if err != nil {
		return fmt.Errorf("count keywords: %w", err)
	}
	for site, n := range counts {
		if n > 0 {
			continue
		}
		if _, err := d.ReplaceSiteKeywords(ctx, site, provider.Keywords(site, perSite)); err != nil {
			return fmt.Errorf("failed to seed keywords for %s: %w", site, err)
		}
	}
	return nil
}
