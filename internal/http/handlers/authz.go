package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	applog "shopstack/internal/log"
	"shopstack/internal/services"
)

func bearerToken(c *fiber.Ctx) string {
	h := c.Get(fiber.HeaderAuthorization)
	if h == "" {
		return ""
	}
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(h[len("Bearer "):])
	}
	return strings.TrimSpace(h)
}

// RequireUser verifies the bearer token and stores the caller's email and
// role in Locals. Engines receive the email as an explicit argument; nothing
// downstream reads ambient auth state.
func RequireUser(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tok := bearerToken(c)
		if tok == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing bearer token")
		}
		email, role, err := auth.ParseToken(tok)
		if err != nil {
			applog.Security(c, "auth.token.invalid", nil)
			return fiber.NewError(fiber.StatusUnauthorized, "invalid or expired token")
		}
		c.Locals("email", email)
		c.Locals("role", role)
		return c.Next()
	}
}

func RequireAdmin(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tok := bearerToken(c)
		if tok == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing bearer token")
		}
		email, role, err := auth.ParseToken(tok)
		if err != nil {
			applog.Security(c, "auth.token.invalid", nil)
			return fiber.NewError(fiber.StatusUnauthorized, "invalid or expired token")
		}
		if role != "ADMIN" {
			applog.Security(c, "access.denied.admin", map[string]any{"email": email})
			return fiber.NewError(fiber.StatusForbidden, "admin access required")
		}
		c.Locals("email", email)
		c.Locals("role", role)
		return c.Next()
	}
}

func callerEmail(c *fiber.Ctx) string {
	email, _ := c.Locals("email").(string)
	return email
}
