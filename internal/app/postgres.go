package app

import (
	"context"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mkarpenko/go-tasklist/internal/config"
	"github.com/mkarpenko/go-tasklist/internal/models"
	"github.com/mkarpenko/go-tasklist/internal/storage"
)

var globalPostgresPool *pgxpool.Pool

func MustConnectPostgres() {
	cfg := config.Global().Postgres

	pool, err := storage.Connect(context.Background(), cfg)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to connect to postgres")
		panic(err)
	}
	globalPostgresPool = pool

	globalLogger.Info().
		Str("host", cfg.Host).
		Int("port", cfg.Port).
		Msg("connected to postgres")
}

func DisconnectPostgres() {
	globalPostgresPool.Close()
	globalLogger.Info().Msg("disconnected from postgres")
}

// MustPrepareStorage creates the schema when absent and seeds the two
// demo accounts on an empty users table.
func MustPrepareStorage() {
	ctx := context.Background()

	err := storage.EnsureSchema(ctx, globalPostgresPool)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to ensure schema")
		panic(err)
	}
	globalLogger.Info().Msg("ensured schema")

	mustSeedDemoUsers(ctx)
}

func mustSeedDemoUsers(ctx context.Context) {
	users := storage.NewUserRepository(globalPostgresPool)

	count, err := users.Count(ctx)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to count users")
		panic(err)
	}
	if count > 0 {
		globalLogger.Debug().
			Int64("count", count).
			Msg("users table not empty, skipping seed")
		return
	}

	// Development convenience only, mirrored from the original deployment.
	demoAccounts := []struct {
		username string
		password string
	}{
		{username: "admin", password: "admin123"},
		{username: "user", password: "user123"},
	}

	for _, account := range demoAccounts {
		passwordHash, err := argon2id.CreateHash(account.password, argon2id.DefaultParams)
		if err != nil {
			globalLogger.Error().
				Err(err).
				Msg("failed to hash demo password")
			panic(err)
		}

		user := &models.User{
			Username:     account.username,
			PasswordHash: passwordHash,
			CreatedAt:    time.Now(),
		}
		err = users.Create(ctx, user)
		if err != nil {
			globalLogger.Error().
				Err(err).
				Str("username", account.username).
				Msg("failed to seed demo user")
			panic(err)
		}
		globalLogger.Info().
			Str("username", account.username).
			Msg("seeded demo user")
	}
}
