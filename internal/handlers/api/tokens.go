package api

import (
	"github.com/gofiber/fiber/v3"

	"seodash/internal/auth"
	"seodash/internal/models"
)

// TokenHandler issues API bearer tokens to signed-in users.
type TokenHandler struct {
	tokens auth.Authenticator
}

// NewTokenHandler creates a new API token handler.
func NewTokenHandler(tokens auth.Authenticator) *TokenHandler {
	return &TokenHandler{tokens: tokens}
}

// Issue returns a bearer token for the current user carrying their role.
func (h *TokenHandler) Issue(c fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	if h.tokens == nil {
		return jsonError(c, fiber.StatusServiceUnavailable, "api tokens are not configured")
	}

	token, expiresAt, err := h.tokens.Issue(user.Sub, user.Role)
	if err != nil {
		return failure(c, err, "issue token")
	}
	return jsonSuccess(c, models.TokenResponse{Token: token, ExpiresAt: expiresAt})
}
