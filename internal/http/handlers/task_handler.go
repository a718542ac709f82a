package handlers

import (
	"errors"
	"net/url"

	"taskr/internal/domain"
	"taskr/internal/log"
	"taskr/internal/services"
	"taskr/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type TaskHandler struct {
	Tasks *services.TaskService
}

func sid(c *fiber.Ctx) string { return c.Cookies("sid") }

func flashRedirect(c *fiber.Ctx, msg string) error {
	return c.Redirect("/tasks?msg=" + url.QueryEscape(msg))
}

// taskError maps the service error taxonomy to responses. Unauthenticated
// callers get the first-login redirect; everything else keeps the task state
// untouched and reports why.
func taskError(c *fiber.Ctx, action string, err error) error {
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		return c.Redirect("/login")
	case errors.Is(err, domain.ErrUnauthorized):
		log.Security(c, action+".denied", map[string]any{"task_id": c.Params("id")})
		return c.Status(fiber.StatusForbidden).Render("notfound", fiber.Map{
			"Message": "You can only update tasks that belong to you.",
		})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "No such task."})
	case errors.Is(err, domain.ErrValidation):
		return flashRedirect(c, "This field is required.")
	default:
		log.Error(c, action+".fail", err, map[string]any{"task_id": c.Params("id")})
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{
			"Message": "Something went wrong. Please try again.",
		})
	}
}

// GET /tasks
func (h *TaskHandler) List(c *fiber.Ctx) error {
	open, closed, err := h.Tasks.List(sid(c))
	if err != nil {
		return taskError(c, "tasks.list", err)
	}
	return render(c, "tasks", fiber.Map{
		"OpenTasks":   open,
		"ClosedTasks": closed,
		"Flash":       c.Query("msg"),
	})
}

// POST /tasks
func (h *TaskHandler) Create(c *fiber.Ctx) error {
	name, okName := validate.TaskName(c.FormValue("name"))
	due, okDue := validate.DueDate(c.FormValue("due_date"))
	if !okName || !okDue {
		return flashRedirect(c, "This field is required.")
	}
	prio := validate.Priority(c.FormValue("priority"))

	t, err := h.Tasks.Create(sid(c), name, due, prio)
	if err != nil {
		return taskError(c, "tasks.create", err)
	}
	log.Audit(c, "tasks.create", map[string]any{"task_id": t.ID})
	return flashRedirect(c, "New entry was successfully posted. Thanks.")
}

// POST /tasks/:id/complete
func (h *TaskHandler) Complete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.Tasks.Close(sid(c), id); err != nil {
		return taskError(c, "tasks.complete", err)
	}
	log.Audit(c, "tasks.complete", map[string]any{"task_id": id})
	return flashRedirect(c, "The task was marked as complete. Nice.")
}

// POST /tasks/:id/reopen
func (h *TaskHandler) Reopen(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.Tasks.Reopen(sid(c), id); err != nil {
		return taskError(c, "tasks.reopen", err)
	}
	log.Audit(c, "tasks.reopen", map[string]any{"task_id": id})
	return flashRedirect(c, "The task was marked as open.")
}

// POST /tasks/:id/delete
func (h *TaskHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.Tasks.Delete(sid(c), id); err != nil {
		return taskError(c, "tasks.delete", err)
	}
	log.Audit(c, "tasks.delete", map[string]any{"task_id": id})
	return flashRedirect(c, "The task was deleted. Why not add a new one?")
}
