package storage

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mkarpenko/go-tasklist/internal/models"
)

// UserRepositoryInterface defines the credential store operations.
type UserRepositoryInterface interface {
	Create(ctx context.Context, user *models.User) error
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Count(ctx context.Context) (int64, error)
}

type UserRepository struct {
	pgPool *pgxpool.Pool
}

func NewUserRepository(pgPool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pgPool: pgPool}
}

// Create inserts the user and fills in the generated id. The unique
// constraint on username surfaces as a pgconn.PgError with
// pgerrcode.UniqueViolation; callers classify it.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	const insertUserQuery = `
INSERT INTO users (username, password_hash, created_at)
VALUES ($1, $2, $3)
RETURNING id
`
	return r.pgPool.QueryRow(
		ctx,
		insertUserQuery,
		user.Username,
		user.PasswordHash,
		user.CreatedAt,
	).Scan(&user.ID)
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	const selectUserQuery = `
SELECT id, username, password_hash, created_at
FROM users
WHERE username = $1
`
	user := &models.User{}
	err := r.pgPool.QueryRow(
		ctx,
		selectUserQuery,
		username,
	).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	const countUsersQuery = `SELECT count(*) FROM users`

	var count int64
	err := r.pgPool.QueryRow(ctx, countUsersQuery).Scan(&count)
	return count, err
}
