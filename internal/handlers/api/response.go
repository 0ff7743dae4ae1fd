package api

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"seodash/internal/db"
	"seodash/internal/keywords"
)

// jsonSuccess returns a 200 response with data wrapped in the standard envelope.
func jsonSuccess(c fiber.Ctx, data any) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"data":   data,
	})
}

// jsonError returns an error response with the given HTTP status code.
func jsonError(c fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"status": "error",
		"error":  message,
	})
}

// failure maps err to a response. Unsupported parameters are the caller's
// fault and echo the engine message; unknown sites are 404; anything else is
// logged and reported as a generic 500 with the given action.
func failure(c fiber.Ctx, err error, action string) error {
	switch {
	case keywords.IsParamError(err):
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, db.ErrSiteNotFound):
		return jsonError(c, fiber.StatusNotFound, "site not found")
	}
	slog.Error("request failed", "path", c.Path(), "action", action, "error", err)
	return jsonError(c, fiber.StatusInternalServerError, "failed to "+action)
}
