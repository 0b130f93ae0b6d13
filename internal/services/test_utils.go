package services

import (
	"context"
	"sort"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mkarpenko/go-tasklist/internal/models"
)

// In-memory repositories used by the service tests. They mimic the
// postgres-backed implementations, including the errors they surface.

type memoryUserRepository struct {
	users     map[string]*models.User
	nextID    int64
	createErr error
	getErr    error
}

func newMemoryUserRepository() *memoryUserRepository {
	return &memoryUserRepository{users: make(map[string]*models.User)}
}

func (r *memoryUserRepository) Create(_ context.Context, user *models.User) error {
	if r.createErr != nil {
		return r.createErr
	}
	if _, exists := r.users[user.Username]; exists {
		return &pgconn.PgError{Code: pgerrcode.UniqueViolation}
	}

	r.nextID++
	user.ID = r.nextID
	stored := *user
	r.users[user.Username] = &stored
	return nil
}

func (r *memoryUserRepository) GetByUsername(_ context.Context, username string) (*models.User, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	user, exists := r.users[username]
	if !exists {
		return nil, pgx.ErrNoRows
	}

	found := *user
	return &found, nil
}

func (r *memoryUserRepository) Count(_ context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

type memoryTaskRepository struct {
	tasks     map[int64]*models.Task
	nextID    int64
	insertErr error
	listErr   error
}

func newMemoryTaskRepository() *memoryTaskRepository {
	return &memoryTaskRepository{tasks: make(map[int64]*models.Task)}
}

func (r *memoryTaskRepository) Insert(_ context.Context, task *models.Task) error {
	if r.insertErr != nil {
		return r.insertErr
	}

	r.nextID++
	task.ID = r.nextID
	stored := *task
	r.tasks[task.ID] = &stored
	return nil
}

func (r *memoryTaskRepository) List(_ context.Context) ([]*models.Task, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}

	tasks := make([]*models.Task, 0, len(r.tasks))
	for _, task := range r.tasks {
		found := *task
		tasks = append(tasks, &found)
	}
	sort.Slice(tasks, func(i, j int) bool {
		if tasks[i].CreatedAt.Equal(tasks[j].CreatedAt) {
			return tasks[i].ID < tasks[j].ID
		}
		return tasks[i].CreatedAt.Before(tasks[j].CreatedAt)
	})
	return tasks, nil
}

func (r *memoryTaskRepository) GetByID(_ context.Context, id int64) (*models.Task, error) {
	task, exists := r.tasks[id]
	if !exists {
		return nil, pgx.ErrNoRows
	}

	found := *task
	return &found, nil
}

func (r *memoryTaskRepository) Update(_ context.Context, task *models.Task) error {
	if _, exists := r.tasks[task.ID]; !exists {
		return pgx.ErrNoRows
	}

	stored := *task
	r.tasks[task.ID] = &stored
	return nil
}

func (r *memoryTaskRepository) Delete(_ context.Context, id int64) error {
	if _, exists := r.tasks[id]; !exists {
		return pgx.ErrNoRows
	}

	delete(r.tasks, id)
	return nil
}
