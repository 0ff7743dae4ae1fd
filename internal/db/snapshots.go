package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"seodash/internal/models"
)

// SaveSnapshot stores an analysis result as JSON.
func (d *DB) SaveSnapshot(ctx context.Context, site, kind string, payload any) (*models.Snapshot, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}

	snap := &models.Snapshot{Site: site, Kind: kind, Payload: data}
	err = d.Pool.QueryRow(ctx, `
		INSERT INTO analysis_snapshots (site, kind, payload)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, site, kind, data).Scan(&snap.ID, &snap.CreatedAt)
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// LatestSnapshot returns the newest snapshot of kind for site.
func (d *DB) LatestSnapshot(ctx context.Context, site, kind string) (*models.Snapshot, error) {
	var snap models.Snapshot
	err := d.Pool.QueryRow(ctx, `
		SELECT id, site, kind, payload, created_at
		FROM analysis_snapshots
		WHERE site = $1 AND kind = $2
		ORDER BY created_at DESC
		LIMIT 1
	`, site, kind).Scan(&snap.ID, &snap.Site, &snap.Kind, &snap.Payload, &snap.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSnapshotNotFound
	}
	if err != nil {
		return nil, err
	}
	return &snap, nil
}
