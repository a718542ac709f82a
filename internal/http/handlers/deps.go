package handlers

import (
	"taskr/internal/repos"
	"taskr/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	AuthHandler *AuthHandler
	TaskHandler *TaskHandler
	Auth        *services.AuthService
}

func NewDeps(db *sqlx.DB) *Deps {
	userRepo := repos.NewUserRepo(db)
	taskRepo := repos.NewTaskRepo(db)

	authSvc := &services.AuthService{Users: userRepo}
	taskSvc := services.NewTaskService(authSvc, taskRepo)

	return &Deps{
		AuthHandler: &AuthHandler{Auth: authSvc},
		TaskHandler: &TaskHandler{Tasks: taskSvc},
		Auth:        authSvc,
	}
}
