package db

import (
	"context"

	"seodash/internal/models"
)

// IncrementKeywordSearch upserts a keyword search count by intent and outcome.
func (d *DB) IncrementKeywordSearch(ctx context.Context, intent, outcome string) error {
	_, err := d.Pool.Exec(ctx, `
		INSERT INTO keyword_searches (intent, outcome, count, last_seen_at)
		VALUES ($1, $2, 1, NOW())
		ON CONFLICT (intent, outcome) DO UPDATE
		SET count = keyword_searches.count + 1, last_seen_at = NOW()
	`, intent, outcome)
	return err
}

// GetAllKeywordSearches returns all keyword search rows for metrics export.
func (d *DB) GetAllKeywordSearches(ctx context.Context) ([]models.KeywordSearch, error) {
	rows, err := d.Pool.Query(ctx, `SELECT intent, outcome, count, last_seen_at FROM keyword_searches`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var searches []models.KeywordSearch
	for rows.Next() {
		var s models.KeywordSearch
		if err := rows.Scan(&s.Intent, &s.Outcome, &s.Count, &s.LastSeenAt); err != nil {
			return nil, err
		}
		searches = append(searches, s)
	}
	return searches, rows.Err()
}
