package handlers

import (
	"taskr/internal/services"

	"github.com/gofiber/fiber/v2"
)

// RequireUser redirects anonymous requests to the login page. The services
// re-check the session themselves; this guard only shapes the browser flow.
func RequireUser(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies("sid")
		if sid == "" {
			return c.Redirect("/login")
		}
		u, err := auth.CurrentUser(sid)
		if err != nil || u == nil {
			return c.Redirect("/login")
		}
		c.Locals("user", u)
		return c.Next()
	}
}
