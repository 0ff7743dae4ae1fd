package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/google/uuid"

	"seodash/internal/cache"
	"seodash/internal/config"
	"seodash/internal/ingest"
	"seodash/internal/models"
	"seodash/internal/validation"
)

// KeywordWriter replaces the stored keywords of a site.
type KeywordWriter interface {
	ReplaceSiteKeywords(ctx context.Context, site string, records []models.KeywordRecord) (uuid.UUID, error)
}

// Importer loads keyword export files into the store.
type Importer struct {
	store     KeywordWriter
	cache     *cache.Client
	catalogue *config.YAMLConfig
	cfg       ingest.Config
}

// NewImporter creates an importer. The cache and catalogue may be nil.
func NewImporter(store KeywordWriter, c *cache.Client, catalogue *config.YAMLConfig) *Importer {
	return &Importer{store: store, cache: c, catalogue: catalogue, cfg: ingest.DefaultConfig()}
}

// ImportFile parses path and replaces the keywords of site with its rows. An
// empty site is resolved from the catalogue or the file name. A file with any
// bad row is rejected and nothing is written.
func (im *Importer) ImportFile(ctx context.Context, path, site string) (*ingest.Result, error) {
	if site == "" {
		site = ingest.ResolveSite(path, im.catalogue)
	}
	site = validation.NormalizeSiteName(site)
	if !validation.ValidateSiteName(site) {
		return nil, fmt.Errorf("%s: cannot determine site", filepath.Base(path))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	result, err := ingest.Parse(f, site, im.cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	if err := result.Err(); err != nil {
		return result, fmt.Errorf("%s: %d bad rows: %w", filepath.Base(path), len(result.Errors), err)
	}

	batch, err := im.store.ReplaceSiteKeywords(ctx, site, result.Records)
	if err != nil {
		return result, fmt.Errorf("store %s keywords: %w", site, err)
	}
	if err := im.cache.Invalidate(ctx, site); err != nil {
		slog.Warn("failed to invalidate report cache", "site", site, "error", err)
	}

	slog.Info("imported keywords", "site", site, "file", filepath.Base(path), "rows", result.Imported(), "batch", batch)
	return result, nil
}

// ImportDir imports every CSV file in dir, in name order. It keeps going past
// failed files and returns the number imported and the failures.
func (im *Importer) ImportDir(ctx context.Context, dir string) (int, []error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, []error{err}
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), ".csv") {
			names = append(names, e.Name())
		}
	}
	slices.Sort(names)

	var imported int
	var errs []error
	for _, name := range names {
		if ctx.Err() != nil {
			errs = append(errs, ctx.Err())
			break
		}
		if _, err := im.ImportFile(ctx, filepath.Join(dir, name), ""); err != nil {
			errs = append(errs, err)
			continue
		}
		imported++
	}
	return imported, errs
}
