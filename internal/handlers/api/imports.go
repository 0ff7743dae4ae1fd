package api

import (
	"context"
	"log/slog"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"seodash/internal/cache"
	"seodash/internal/config"
	"seodash/internal/ingest"
	"seodash/internal/models"
	"seodash/internal/validation"
)

// ImportStore replaces a site's keywords.
type ImportStore interface {
	ReplaceSiteKeywords(ctx context.Context, site string, records []models.KeywordRecord) (uuid.UUID, error)
}

// ImportHandler loads uploaded keyword exports into the database.
type ImportHandler struct {
	store     ImportStore
	cache     *cache.Client
	catalogue *config.YAMLConfig
	cfg       ingest.Config
}

// NewImportHandler creates a new API import handler. catalogue may be nil.
func NewImportHandler(store ImportStore, c *cache.Client, catalogue *config.YAMLConfig) *ImportHandler {
	return &ImportHandler{store: store, cache: c, catalogue: catalogue, cfg: ingest.DefaultConfig()}
}

// Upload imports a multipart CSV upload ("file") for a site. The site comes
// from the "site" form field, or failing that the catalogue or file name. A
// file with any bad row is rejected whole and nothing is written.
func (h *ImportHandler) Upload(c fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "file is required")
	}

	form := validation.ImportForm{Site: c.FormValue("site")}
	if form.Site == "" {
		form.Site = ingest.ResolveSite(fh.Filename, h.catalogue)
	}
	form.Site = validation.NormalizeSiteName(form.Site)
	if err := validation.Struct(&form); err != nil {
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}

	f, err := fh.Open()
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "failed to read upload")
	}
	defer f.Close()

	result, err := ingest.Parse(f, form.Site, h.cfg)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}

	resp := models.ImportResponse{Site: form.Site, TotalRows: result.TotalRows}
	if len(result.Errors) > 0 {
		for _, e := range result.Errors {
			resp.Errors = append(resp.Errors, e.Error())
		}
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"status": "error",
			"error":  "import rejected: malformed rows",
			"data":   resp,
		})
	}

	batch, err := h.store.ReplaceSiteKeywords(c.Context(), form.Site, result.Records)
	if err != nil {
		return failure(c, err, "store keywords")
	}
	if err := h.cache.Invalidate(c.Context(), form.Site); err != nil {
		slog.Warn("cache invalidation failed", "site", form.Site, "error", err)
	}

	slog.Info("keywords imported", "site", form.Site, "rows", result.TotalRows, "batch", batch)
	resp.Imported = result.Imported()
	return jsonSuccess(c, resp)
}
