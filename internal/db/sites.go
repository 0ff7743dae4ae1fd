package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"seodash/internal/models"
)

const siteColumns = `site_name, display_name, tracked, created_at, updated_at`

func scanSite(row pgx.Row) (*models.Site, error) {
	var s models.Site
	err := row.Scan(&s.Name, &s.DisplayName, &s.Tracked, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSiteNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// UpsertSite creates a site or updates its display name. A site's tracked
// flag is only changed through SetTrackedSite.
func (d *DB) UpsertSite(ctx context.Context, site *models.Site) error {
	return d.Pool.QueryRow(ctx, `
		INSERT INTO competitor_sites (site_name, display_name)
		VALUES ($1, $2)
		ON CONFLICT (site_name) DO UPDATE SET
			display_name = COALESCE(NULLIF(EXCLUDED.display_name, ''), competitor_sites.display_name),
			updated_at = NOW()
		RETURNING display_name, tracked, created_at, updated_at
	`, site.Name, site.DisplayName).Scan(&site.DisplayName, &site.Tracked, &site.CreatedAt, &site.UpdatedAt)
}

// GetSite retrieves a site by name.
func (d *DB) GetSite(ctx context.Context, name string) (*models.Site, error) {
	return scanSite(d.Pool.QueryRow(ctx, `SELECT `+siteColumns+` FROM competitor_sites WHERE site_name = $1`, name))
}

// GetTrackedSite returns the site the dashboard reports on.
func (d *DB) GetTrackedSite(ctx context.Context) (*models.Site, error) {
	return scanSite(d.Pool.QueryRow(ctx, `SELECT `+siteColumns+` FROM competitor_sites WHERE tracked`))
}

// ListSites returns every site, the tracked one first.
func (d *DB) ListSites(ctx context.Context) ([]models.Site, error) {
	rows, err := d.Pool.Query(ctx, `SELECT `+siteColumns+` FROM competitor_sites ORDER BY tracked DESC, site_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sites []models.Site
	for rows.Next() {
		var s models.Site
		if err := rows.Scan(&s.Name, &s.DisplayName, &s.Tracked, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		sites = append(sites, s)
	}
	return sites, rows.Err()
}

// SetTrackedSite marks name as the tracked site and clears the flag elsewhere.
func (d *DB) SetTrackedSite(ctx context.Context, name string) error {
	tx, err := d.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `UPDATE competitor_sites SET tracked = FALSE, updated_at = NOW() WHERE tracked AND site_name != $1`, name); err != nil {
		return fmt.Errorf("clear tracked site: %w", err)
	}
	tag, err := tx.Exec(ctx, `UPDATE competitor_sites SET tracked = TRUE, updated_at = NOW() WHERE site_name = $1`, name)
	if err != nil {
		return fmt.Errorf("set tracked site: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrSiteNotFound
	}
	return tx.Commit(ctx)
}

// SyncSites upserts a site catalogue and marks tracked as the tracked site.
func (d *DB) SyncSites(ctx context.Context, sites []models.Site, tracked string) error {
	for i := range sites {
		if err := d.UpsertSite(ctx, &sites[i]); err != nil {
			return fmt.Errorf("upsert site %s: %w", sites[i].Name, err)
		}
	}
	if tracked == "" {
		return nil
	}
	if err := d.UpsertSite(ctx, &models.Site{Name: tracked}); err != nil {
		return fmt.Errorf("upsert tracked site: %w", err)
	}
	return d.SetTrackedSite(ctx, tracked)
}

// EnsureTrackedSite returns the site already marked as tracked. When none is,
// fallback is created and marked.
func (d *DB) EnsureTrackedSite(ctx context.Context, fallback string) (string, error) {
	site, err := d.GetTrackedSite(ctx)
	if err == nil {
		return site.Name, nil
	}
	if !errors.Is(err, ErrSiteNotFound) {
		return "", err
	}
	if err := d.SyncSites(ctx, nil, fallback); err != nil {
		return "", err
	}
	return fallback, nil
}
