package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"seodash/internal/models"
)

var keywordCopyColumns = []string{
	"site", "import_batch", "keyword", "country_code", "location", "entities", "serp_features",
	"volume", "keyword_difficulty", "cpc", "organic_traffic", "paid_traffic",
	"current_position", "current_url",
	"navigational", "informational", "commercial", "transactional", "branded", "local",
	"source_updated_at",
}

const keywordSelect = `
	SELECT site, keyword, country_code, location, entities, serp_features,
		volume, keyword_difficulty, cpc, organic_traffic, paid_traffic,
		current_position, current_url,
		navigational, informational, commercial, transactional, branded, local,
		COALESCE(source_updated_at, imported_at)
	FROM keywords
`

func scanKeywords(rows pgx.Rows) ([]models.KeywordRecord, error) {
	defer rows.Close()

	records := []models.KeywordRecord{}
	for rows.Next() {
		var k models.KeywordRecord
		if err := rows.Scan(
			&k.Site, &k.Keyword, &k.CountryCode, &k.Location, &k.Entities, &k.SERPFeatures,
			&k.Volume, &k.KeywordDifficulty, &k.CPC, &k.OrganicTraffic, &k.PaidTraffic,
			&k.CurrentPosition, &k.CurrentURL,
			&k.Navigational, &k.Informational, &k.Commercial, &k.Transactional, &k.Branded, &k.Local,
			&k.UpdatedAt,
		); err != nil {
			return nil, err
		}
		records = append(records, k)
	}
	return records, rows.Err()
}

// ListKeywords returns a site's keywords in import order.
func (d *DB) ListKeywords(ctx context.Context, site string) ([]models.KeywordRecord, error) {
	rows, err := d.Pool.Query(ctx, keywordSelect+` WHERE site = $1 ORDER BY id`, site)
	if err != nil {
		return nil, err
	}
	return scanKeywords(rows)
}

// ReplaceSiteKeywords swaps a site's keywords for records in one transaction,
// creating the site if needed. Returns the import batch ID.
func (d *DB) ReplaceSiteKeywords(ctx context.Context, site string, records []models.KeywordRecord) (uuid.UUID, error) {
	batch := uuid.New()

	tx, err := d.Pool.Begin(ctx)
	if err != nil {
		return uuid.Nil, err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
		INSERT INTO competitor_sites (site_name, display_name) VALUES ($1, $1)
		ON CONFLICT (site_name) DO NOTHING
	`, site); err != nil {
		return uuid.Nil, fmt.Errorf("ensure site: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM keywords WHERE site = $1`, site); err != nil {
		return uuid.Nil, fmt.Errorf("delete keywords: %w", err)
	}

	_, err = tx.CopyFrom(ctx, pgx.Identifier{"keywords"}, keywordCopyColumns,
		pgx.CopyFromSlice(len(records), func(i int) ([]any, error) {
			k := &records[i]
			var updated *time.Time
			if !k.UpdatedAt.IsZero() {
				updated = &k.UpdatedAt
			}
			return []any{
				site, batch, k.Keyword, k.CountryCode, k.Location, k.Entities, k.SERPFeatures,
				k.Volume, k.KeywordDifficulty, k.CPC, k.OrganicTraffic, k.PaidTraffic,
				k.CurrentPosition, k.CurrentURL,
				k.Navigational, k.Informational, k.Commercial, k.Transactional, k.Branded, k.Local,
				updated,
			}, nil
		}),
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("copy keywords: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return uuid.Nil, err
	}
	return batch, nil
}

// CountKeywordsBySite returns the number of stored keywords per site.
func (d *DB) CountKeywordsBySite(ctx context.Context) (map[string]int, error) {
	rows, err := d.Pool.Query(ctx, `
		SELECT s.site_name, COUNT(k.id)
		FROM competitor_sites s
		LEFT JOIN keywords k ON k.site = s.site_name
		GROUP BY s.site_name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var site string
		var n int
		if err := rows.Scan(&site, &n); err != nil {
			return nil, err
		}
		counts[site] = n
	}
	return counts, rows.Err()
}
