package services

import (
	"context"
	"errors"

	"github.com/mkarpenko/go-tasklist/internal/models"
)

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrUserAlreadyExists    = errors.New("user already exists")
	ErrUserPasswordMismatch = errors.New("user password mismatch")
	ErrTaskNotFound         = errors.New("task not found")
	ErrEmptyTitle           = errors.New("title cannot be empty")
)

type AuthService interface {
	// SignUp hashes the password, persists a new user and issues a
	// signed token for it.
	//
	// It returns ErrUserAlreadyExists if the username is taken.
	SignUp(ctx context.Context, params CredentialsParams) (*AuthResult, error)

	// Login authenticates the user by username and password and issues
	// a signed token.
	//
	// It returns ErrUserNotFound if the user doesn't exist or
	// ErrUserPasswordMismatch if the password doesn't match. Callers
	// must not expose which of the two happened.
	Login(ctx context.Context, params CredentialsParams) (*AuthResult, error)
}

type TaskService interface {
	// ListTasks returns every task ordered by creation time ascending.
	ListTasks(ctx context.Context) ([]*models.Task, error)

	// CreateTask persists a new task, defaulting priority to "medium"
	// and status to "todo" when unset.
	CreateTask(ctx context.Context, params CreateTaskParams) (*models.Task, error)

	// UpdateTask applies only the non-nil fields and refreshes
	// updated_at. It returns ErrTaskNotFound for an unknown id and
	// ErrEmptyTitle when the title is set to a blank string.
	UpdateTask(ctx context.Context, id int64, params UpdateTaskParams) (*models.Task, error)

	// DeleteTask removes the task permanently. It returns
	// ErrTaskNotFound for an unknown id.
	DeleteTask(ctx context.Context, id int64) error
}

type CredentialsParams struct {
	Username string
	Password string
}

type AuthResult struct {
	UserID   int64
	Username string
	Token    string
}

type CreateTaskParams struct {
	Title       string
	Description string
	Priority    string
	Status      string
}

type UpdateTaskParams struct {
	Title       *string
	Description *string
	Priority    *string
	Status      *string
}
