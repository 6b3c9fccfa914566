package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"upwatch/internal/auth"
	"upwatch/internal/domain"
)

const uniqueViolation = "23505"

// ---- UserStore ----

func (s *Store) SignUp(ctx context.Context, username, passwordHash string) (domain.UserID, error) {
	id := domain.UserID(uuid.NewString())
	_, err := s.pool.Exec(ctx,
		`INSERT INTO users (id, username, password_hash)
		 VALUES ($1, $2, $3)`,
		string(id), username, passwordHash,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return "", domain.ErrDuplicate
		}
		return "", fmt.Errorf("insert user: %w", err)
	}
	return id, nil
}

func (s *Store) SignIn(ctx context.Context, username, password string) (domain.UserID, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, password_hash FROM users WHERE username = $1`, username)

	var id, hash string
	if err := row.Scan(&id, &hash); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", domain.ErrInvalidCredentials
		}
		return "", fmt.Errorf("load user: %w", err)
	}

	ok, err := auth.VerifyPassword(password, hash)
	if err != nil || !ok {
		return "", domain.ErrInvalidCredentials
	}
	return domain.UserID(id), nil
}
