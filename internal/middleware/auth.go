package middleware

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/session"

	"seodash/internal/auth"
	"seodash/internal/models"
)

// UserStore loads session users.
type UserStore interface {
	GetUserBySub(ctx context.Context, sub string) (*models.User, error)
}

// devUser stands in for every request when authentication is disabled.
var devUser = &models.User{Sub: "dev", Name: "Developer", Role: models.RoleAdmin}

// AuthMiddleware authenticates requests via the session cookie or an API bearer token.
type AuthMiddleware struct {
	users    UserStore
	tokens   auth.Authenticator
	disabled bool
}

// NewAuthMiddleware creates a new auth middleware instance. tokens may be nil,
// in which case bearer tokens are rejected. When disabled is set every request
// runs as an admin user.
func NewAuthMiddleware(users UserStore, tokens auth.Authenticator, disabled bool) *AuthMiddleware {
	return &AuthMiddleware{users: users, tokens: tokens, disabled: disabled}
}

// CurrentUser returns the authenticated user, or nil.
func CurrentUser(c fiber.Ctx) *models.User {
	user, _ := c.Locals("user").(*models.User)
	return user
}

// RequireAuth ensures the request is authenticated. API requests get a 401,
// pages are redirected to the login flow.
func (m *AuthMiddleware) RequireAuth(c fiber.Ctx) error {
	user, err := m.authenticate(c)
	if err != nil || user == nil {
		return m.unauthenticated(c)
	}

	c.Locals("user", user)
	return c.Next()
}

// RequireSession accepts only a signed-in browser session; bearer tokens get
// a 401.
func (m *AuthMiddleware) RequireSession(c fiber.Ctx) error {
	if _, ok := bearerToken(c.Get(fiber.HeaderAuthorization)); ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status": "error",
			"error":  "session required",
		})
	}

	user, err := m.sessionUser(c)
	if err != nil || user == nil {
		return m.unauthenticated(c)
	}

	c.Locals("user", user)
	return c.Next()
}

func (m *AuthMiddleware) unauthenticated(c fiber.Ctx) error {
	if isAPIRequest(c) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status": "error",
			"error":  "authentication required",
		})
	}
	if sess := session.FromContext(c); sess != nil && c.Method() == fiber.MethodGet {
		sess.Set("redirect_after_login", c.OriginalURL())
	}
	return c.Redirect().To("/auth/login")
}

// RequireAdmin must run after RequireAuth.
func (m *AuthMiddleware) RequireAdmin(c fiber.Ctx) error {
	user := CurrentUser(c)
	if user == nil {
		return fiber.NewError(fiber.StatusUnauthorized, "authentication required")
	}
	if !user.IsAdmin() {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"status": "error",
			"error":  "admin access required",
		})
	}
	return c.Next()
}

func (m *AuthMiddleware) authenticate(c fiber.Ctx) (*models.User, error) {
	if m.disabled {
		return devUser, nil
	}

	if token, ok := bearerToken(c.Get(fiber.HeaderAuthorization)); ok {
		if m.tokens == nil {
			return nil, auth.ErrNoSecret
		}
		claims, err := m.tokens.Validate(token)
		if err != nil {
			return nil, err
		}
		role := claims.Role
		if role == "" {
			role = models.RoleViewer
		}
		return &models.User{Sub: claims.Subject, Role: role}, nil
	}

	return m.sessionUser(c)
}

func (m *AuthMiddleware) sessionUser(c fiber.Ctx) (*models.User, error) {
	if m.disabled {
		return devUser, nil
	}

	sess := session.FromContext(c)
	if sess == nil {
		return nil, nil
	}
	userSub, ok := sess.Get("user_sub").(string)
	if !ok || userSub == "" {
		return nil, nil
	}

	user, err := m.users.GetUserBySub(c.Context(), userSub)
	if err != nil {
		sess.Destroy()
		return nil, err
	}
	return user, nil
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func isAPIRequest(c fiber.Ctx) bool {
	return strings.HasPrefix(c.Path(), "/api/") || c.Get(fiber.HeaderAuthorization) != ""
}
