package services

import (
	"time"

	"taskr/internal/domain"
	"taskr/internal/repos"

	"github.com/google/uuid"
)

type TaskService struct {
	Auth  *AuthService
	Tasks *repos.TaskRepo
}

func NewTaskService(auth *AuthService, tasks *repos.TaskRepo) *TaskService {
	return &TaskService{Auth: auth, Tasks: tasks}
}

// List returns open and closed tasks, each ordered by due date ascending.
// Listing is visible to any authenticated caller; only mutation is
// ownership-scoped.
func (s *TaskService) List(sid string) (open, closed []domain.Task, err error) {
	if _, err = s.Auth.Require(sid); err != nil {
		return nil, nil, err
	}
	if open, err = s.Tasks.ListByStatus(domain.StatusOpen); err != nil {
		return nil, nil, err
	}
	if closed, err = s.Tasks.ListByStatus(domain.StatusClosed); err != nil {
		return nil, nil, err
	}
	return open, closed, nil
}

// Create posts a new OPEN task owned by the caller. dueDate must be YYYY-MM-DD.
func (s *TaskService) Create(sid, name, dueDate string, priority int) (*domain.Task, error) {
	ac, err := s.Auth.Require(sid)
	if err != nil {
		return nil, err
	}
	if name == "" || dueDate == "" {
		return nil, domain.ErrValidation
	}
	if _, err := time.Parse("2006-01-02", dueDate); err != nil {
		return nil, domain.ErrValidation
	}
	t := &domain.Task{
		ID:         uuid.NewString(),
		Name:       name,
		DueDate:    dueDate,
		Priority:   priority,
		PostedDate: time.Now().Format("2006-01-02"),
		Status:     domain.StatusOpen,
		OwnerID:    ac.UserID,
	}
	if err := s.Tasks.Create(t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TaskService) Close(sid, id string) error {
	return s.setStatus(sid, id, domain.StatusClosed)
}

func (s *TaskService) Reopen(sid, id string) error {
	return s.setStatus(sid, id, domain.StatusOpen)
}

func (s *TaskService) setStatus(sid, id string, status domain.Status) error {
	ac, err := s.Auth.Require(sid)
	if err != nil {
		return err
	}
	return s.Tasks.SetStatus(ac, id, status)
}

func (s *TaskService) Delete(sid, id string) error {
	ac, err := s.Auth.Require(sid)
	if err != nil {
		return err
	}
	return s.Tasks.Delete(ac, id)
}
