package handlers

import (
	"errors"
	"time"

	"taskr/internal/domain"
	"taskr/internal/log"
	"taskr/internal/services"
	"taskr/internal/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AuthHandler struct {
	Auth *services.AuthService
}

func ensureSID(c *fiber.Ctx) string {
	sid := c.Cookies("sid")
	if sid == "" {
		sid = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     "sid",
			Value:    sid,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
			Secure:   false,
		})
	}
	return sid
}

func (h *AuthHandler) LoginForm(c *fiber.Ctx) error {
	tok, _ := c.Locals("CSRFToken").(string)
	if tok == "" {
		tok = c.Cookies("csrf_")
	}
	return render(c, "login", fiber.Map{"Err": "", "Flash": c.Query("msg"), "CSRFToken": tok})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	sid := ensureSID(c)
	name := c.FormValue("name")
	pass := c.FormValue("password")
	if _, ok := validate.Name(name); !ok || !validate.Password(pass) {
		tok := c.Cookies("csrf_")
		log.Security(c, "auth.login.fail", map[string]any{"name": name, "reason": "bad_format"})
		return c.Status(401).Render("login", fiber.Map{"Err": "Invalid Credentials. Please try again.", "CSRFToken": tok})
	}

	_, err := h.Auth.Login(sid, name, pass)
	if err != nil {
		tok := c.Cookies("csrf_")
		log.Security(c, "auth.login.fail", map[string]any{"name": name})
		return c.Status(401).Render("login", fiber.Map{"Err": "Invalid Credentials. Please try again.", "CSRFToken": tok})
	}

	log.Audit(c, "auth.login.success", map[string]any{"name": name})
	return c.Redirect("/tasks")
}

func (h *AuthHandler) RegisterForm(c *fiber.Ctx) error {
	tok, _ := c.Locals("CSRFToken").(string)
	if tok == "" {
		tok = c.Cookies("csrf_")
	}
	return render(c, "register", fiber.Map{"Err": "", "CSRFToken": tok})
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	tok := c.Cookies("csrf_")
	fail := func(status int, msg string) error {
		return c.Status(status).Render("register", fiber.Map{"Err": msg, "CSRFToken": tok})
	}

	name, okName := validate.Name(c.FormValue("name"))
	email, okEmail := validate.Email(c.FormValue("email"))
	pass := c.FormValue("password")
	confirm := c.FormValue("confirm")
	switch {
	case !okName || !okEmail:
		log.Security(c, "auth.register.fail", map[string]any{"name": name, "reason": "bad_format"})
		return fail(400, "This field is required.")
	case !validate.Password(pass):
		return fail(400, "Password must be at least 6 characters.")
	case pass != confirm:
		return fail(400, "Passwords must match.")
	}

	if _, err := h.Auth.Register(name, email, pass); err != nil {
		if errors.Is(err, domain.ErrDuplicateCredential) {
			log.Security(c, "auth.register.fail", map[string]any{"name": name, "reason": "duplicate"})
			return fail(409, "That username and/or email already exist.")
		}
		log.Error(c, "auth.register.fail", err, map[string]any{"name": name})
		return fail(500, "Could not register. Please try again.")
	}

	log.Audit(c, "auth.register.success", map[string]any{"name": name})
	return c.Redirect("/login?msg=Thanks+for+registering.+Please+login.")
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sid := ensureSID(c)
	_ = h.Auth.Logout(sid)
	// Expire cookie
	c.Cookie(&fiber.Cookie{
		Name:     "sid",
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   false,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
	log.Audit(c, "auth.logout", map[string]any{"sid": sid})
	return c.Redirect("/login?msg=Goodbye!")
}
