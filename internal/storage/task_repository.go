package storage

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mkarpenko/go-tasklist/internal/models"
)

// TaskRepositoryInterface defines the task store operations. Methods that
// target a single row by id report a missing row as pgx.ErrNoRows.
type TaskRepositoryInterface interface {
	Insert(ctx context.Context, task *models.Task) error
	List(ctx context.Context) ([]*models.Task, error)
	GetByID(ctx context.Context, id int64) (*models.Task, error)
	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, id int64) error
}

type TaskRepository struct {
	pgPool *pgxpool.Pool
}

func NewTaskRepository(pgPool *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{pgPool: pgPool}
}

func (r *TaskRepository) Insert(ctx context.Context, task *models.Task) error {
	const insertTaskQuery = `
INSERT INTO tasks (title, description, priority, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id
`
	return r.pgPool.QueryRow(
		ctx,
		insertTaskQuery,
		task.Title,
		task.Description,
		task.Priority,
		task.Status,
		task.CreatedAt,
		task.UpdatedAt,
	).Scan(&task.ID)
}

func (r *TaskRepository) List(ctx context.Context) ([]*models.Task, error) {
	// The id tiebreak keeps the order stable when two rows share a timestamp.
	const selectTasksQuery = `
SELECT id, title, description, priority, status, created_at, updated_at
FROM tasks
ORDER BY created_at ASC, id ASC
`
	rows, err := r.pgPool.Query(ctx, selectTasksQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []*models.Task
	for rows.Next() {
		task := &models.Task{}
		err = rows.Scan(
			&task.ID,
			&task.Title,
			&task.Description,
			&task.Priority,
			&task.Status,
			&task.CreatedAt,
			&task.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

func (r *TaskRepository) GetByID(ctx context.Context, id int64) (*models.Task, error) {
	const selectTaskQuery = `
SELECT id, title, description, priority, status, created_at, updated_at
FROM tasks
WHERE id = $1
`
	task := &models.Task{}
	err := r.pgPool.QueryRow(
		ctx,
		selectTaskQuery,
		id,
	).Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.Priority,
		&task.Status,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return task, nil
}

func (r *TaskRepository) Update(ctx context.Context, task *models.Task) error {
	const updateTaskQuery = `
UPDATE tasks
SET title = $1,
    description = $2,
    priority = $3,
    status = $4,
    updated_at = $5
WHERE id = $6
`
	tag, err := r.pgPool.Exec(
		ctx,
		updateTaskQuery,
		task.Title,
		task.Description,
		task.Priority,
		task.Status,
		task.UpdatedAt,
		task.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, id int64) error {
	const deleteTaskQuery = `DELETE FROM tasks WHERE id = $1`

	tag, err := r.pgPool.Exec(ctx, deleteTaskQuery, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
