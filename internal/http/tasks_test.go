package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"
	"github.com/jmoiron/sqlx"

	"taskr/internal/domain"
	"taskr/internal/http/handlers"
	"taskr/internal/repos"
)

func newTasksApp(t *testing.T) (*fiber.App, *handlers.Deps, *sqlx.DB) {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	deps := handlers.NewDeps(db)

	engine := html.New("../../web/templates", ".html")
	app := fiber.New(fiber.Config{Views: engine})
	app.Use(requestid.New())
	app.Use(csrf.New(csrf.Config{KeyLookup: "form:csrf", CookieName: "csrf_", CookieSameSite: "Lax"}))
	app.Use(func(c *fiber.Ctx) error {
		if sid := c.Cookies("sid"); sid != "" {
			if u, err := deps.Auth.CurrentUser(sid); err == nil && u != nil {
				c.Locals("user", u)
			}
		}
		return c.Next()
	})

	app.Get("/login", deps.AuthHandler.LoginForm)
	tasks := app.Group("/tasks", handlers.RequireUser(deps.Auth))
	tasks.Get("/", deps.TaskHandler.List)
	tasks.Post("/", deps.TaskHandler.Create)
	tasks.Post("/:id/complete", deps.TaskHandler.Complete)
	tasks.Post("/:id/reopen", deps.TaskHandler.Reopen)
	tasks.Post("/:id/delete", deps.TaskHandler.Delete)

	return app, deps, db
}

// register a USER and bind a session directly, returning the sid cookie.
func loginUser(t *testing.T, deps *handlers.Deps, name, email string) *http.Cookie {
	t.Helper()
	u, err := deps.Auth.Register(name, email, "python101")
	if err != nil {
		t.Fatal(err)
	}
	sid := "sid-" + name
	if err := deps.Auth.Users.BindSession(sid, u.ID); err != nil {
		t.Fatal(err)
	}
	return &http.Cookie{Name: "sid", Value: sid}
}

func taskStatus(t *testing.T, db *sqlx.DB, id string) domain.Status {
	t.Helper()
	var s domain.Status
	if err := db.Get(&s, `SELECT status FROM tasks WHERE id=?`, id); err != nil {
		t.Fatalf("task %s: %v", id, err)
	}
	return s
}

func TestAnonymousTasksPageRedirectsToLogin(t *testing.T) {
	app, _, _ := newTasksApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/tasks/", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("expected redirect, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/login" {
		t.Fatalf("expected redirect to /login, got %s", loc)
	}
}

func TestLoggedInUserCanSeeTasksPage(t *testing.T) {
	app, deps, _ := newTasksApp(t)
	michael := loginUser(t, deps, "Michael", "michael@realpython.com")

	req := httptest.NewRequest("GET", "/tasks/", nil)
	req.AddCookie(michael)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

func TestOwnershipEnforcedOverHTTP(t *testing.T) {
	app, deps, db := newTasksApp(t)
	michael := loginUser(t, deps, "Michael", "michael@realpython.com")
	fletcher := loginUser(t, deps, "Fletcher", "fletcher@realpython.com")
	// seeded bootstrap admin
	if err := deps.Auth.Users.BindSession("sid-admin", "u-admin"); err != nil {
		t.Fatal(err)
	}
	admin := &http.Cookie{Name: "sid", Value: "sid-admin"}

	// fetch a csrf token once
	respLogin, _ := app.Test(httptest.NewRequest("GET", "/login", nil))
	csrfTok := extractCookie(respLogin, "csrf_")
	if csrfTok == "" {
		t.Fatal("csrf token missing")
	}

	// Michael posts a task
	resp := postForm(t, app, "/tasks/", "name=Go+to+the+bank&due_date=2016-08-10&priority=1", csrfTok, michael)
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("create: expected redirect, got %d", resp.StatusCode)
	}
	var taskID string
	if err := db.Get(&taskID, `SELECT id FROM tasks WHERE name='Go to the bank'`); err != nil {
		t.Fatalf("created task not found: %v", err)
	}

	// Fletcher cannot complete it
	resp = postForm(t, app, "/tasks/"+taskID+"/complete", "", csrfTok, fletcher)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("stranger complete: expected 403, got %d", resp.StatusCode)
	}
	if s := taskStatus(t, db, taskID); s != domain.StatusOpen {
		t.Fatalf("denied mutation changed state to %s", s)
	}

	// Michael can
	resp = postForm(t, app, "/tasks/"+taskID+"/complete", "", csrfTok, michael)
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("owner complete: expected redirect, got %d", resp.StatusCode)
	}
	if s := taskStatus(t, db, taskID); s != domain.StatusClosed {
		t.Fatalf("want CLOSED, got %s", s)
	}

	// Admin can reopen someone else's task
	resp = postForm(t, app, "/tasks/"+taskID+"/reopen", "", csrfTok, admin)
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("admin reopen: expected redirect, got %d", resp.StatusCode)
	}
	if s := taskStatus(t, db, taskID); s != domain.StatusOpen {
		t.Fatalf("want OPEN, got %s", s)
	}

	// Unknown id -> 404
	resp = postForm(t, app, "/tasks/no-such-task/complete", "", csrfTok, michael)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown id: expected 404, got %d", resp.StatusCode)
	}
}

func TestCreateTaskValidationOverHTTP(t *testing.T) {
	app, deps, db := newTasksApp(t)
	michael := loginUser(t, deps, "Michael", "michael@realpython.com")

	respLogin, _ := app.Test(httptest.NewRequest("GET", "/login", nil))
	csrfTok := extractCookie(respLogin, "csrf_")

	var before int
	if err := db.Get(&before, `SELECT COUNT(*) FROM tasks`); err != nil {
		t.Fatal(err)
	}

	// missing due date bounces back with a flash, no row written
	resp := postForm(t, app, "/tasks/", "name=Go+to+the+bank&due_date=&priority=1", csrfTok, michael)
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("expected flash redirect, got %d", resp.StatusCode)
	}

	var after int
	if err := db.Get(&after, `SELECT COUNT(*) FROM tasks`); err != nil {
		t.Fatal(err)
	}
	if after != before {
		t.Fatalf("invalid input created a task: %d -> %d", before, after)
	}
}
