package api

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"

	"seodash/internal/models"
)

// StatusStore reports database reachability and contents.
type StatusStore interface {
	Ping(ctx context.Context) error
	CountKeywordsBySite(ctx context.Context) (map[string]int, error)
}

// HealthHandler serves liveness and database status.
type HealthHandler struct {
	db StatusStore
}

// NewHealthHandler creates a new API health handler.
func NewHealthHandler(database StatusStore) *HealthHandler {
	return &HealthHandler{db: database}
}

// Health reports that the process is serving.
func (h *HealthHandler) Health(c fiber.Ctx) error {
	return jsonSuccess(c, fiber.Map{"status": "healthy"})
}

// DatabaseStatus reports whether the database answers and how many keywords
// each site holds. An unreachable database is reported, not failed.
func (h *HealthHandler) DatabaseStatus(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	status := models.DatabaseStatus{CheckedAt: time.Now().UTC()}
	if err := h.db.Ping(ctx); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "error",
			"error":  "database unavailable",
			"data":   status,
		})
	}
	status.Connected = true

	counts, err := h.db.CountKeywordsBySite(ctx)
	if err != nil {
		return failure(c, err, "count keywords")
	}
	status.Sites = len(counts)
	status.KeywordCounts = counts
	return jsonSuccess(c, status)
}
