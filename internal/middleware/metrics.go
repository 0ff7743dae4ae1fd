package middleware

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"

	"seodash/internal/metrics"
)

// Metrics records request count and latency per route.
func Metrics(h *metrics.HTTP) fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		// Route patterns keep label cardinality bounded.
		path := c.Route().Path
		if path == "" {
			path = "unmatched"
		}
		h.Observe(c.Method(), path, strconv.Itoa(status), time.Since(start))
		return err
	}
}
