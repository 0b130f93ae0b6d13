package services

import (
	"context"
	"errors"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"

	"github.com/mkarpenko/go-tasklist/internal/models"
	"github.com/mkarpenko/go-tasklist/internal/storage"
	"github.com/mkarpenko/go-tasklist/internal/token"
)

type authServiceImpl struct {
	logger zerolog.Logger
	users  storage.UserRepositoryInterface
	codec  *token.Codec
}

func NewAuthService(
	logger zerolog.Logger,
	users storage.UserRepositoryInterface,
	codec *token.Codec,
) AuthService {
	return &authServiceImpl{
		logger: logger,
		users:  users,
		codec:  codec,
	}
}

func (s *authServiceImpl) SignUp(ctx context.Context, params CredentialsParams) (*AuthResult, error) {
	passwordHash, err := argon2id.CreateHash(params.Password, argon2id.DefaultParams)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to hash password")
		return nil, err
	}

	user := &models.User{
		Username:     params.Username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}

	err = s.users.Create(ctx, user)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			s.logger.Warn().
				Str("username", user.Username).
				Msg("username already taken")
			return nil, ErrUserAlreadyExists
		}

		s.logger.Error().
			Err(err).
			Msg("failed to insert user")
		return nil, err
	}
	s.logger.Debug().
		Int64("user_id", user.ID).
		Str("username", user.Username).
		Msg("inserted user")

	tokenString, err := s.codec.Issue(user.ID, user.Username)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to issue token")
		return nil, err
	}

	s.logger.Info().
		Int64("user_id", user.ID).
		Str("username", user.Username).
		Msg("signed up")
	return &AuthResult{
		UserID:   user.ID,
		Username: user.Username,
		Token:    tokenString,
	}, nil
}

func (s *authServiceImpl) Login(ctx context.Context, params CredentialsParams) (*AuthResult, error) {
	user, err := s.users.GetByUsername(ctx, params.Username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Warn().
				Str("username", params.Username).
				Msg("user not found")
			return nil, ErrUserNotFound
		}

		s.logger.Error().
			Err(err).
			Str("username", params.Username).
			Msg("failed to select user by username")
		return nil, err
	}

	match, err := argon2id.ComparePasswordAndHash(params.Password, user.PasswordHash)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to compare password")
		return nil, err
	} else if !match {
		s.logger.Warn().
			Str("username", user.Username).
			Msg("passwords do not match")
		return nil, ErrUserPasswordMismatch
	}

	tokenString, err := s.codec.Issue(user.ID, user.Username)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to issue token")
		return nil, err
	}

	s.logger.Info().
		Int64("user_id", user.ID).
		Str("username", user.Username).
		Msg("logged in")
	return &AuthResult{
		UserID:   user.ID,
		Username: user.Username,
		Token:    tokenString,
	}, nil
}
