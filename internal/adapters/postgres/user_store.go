package postgres

// Package postgres provides the pgx-backed user store.

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	domainauth "github.com/example/member-portal/internal/domain/auth"
	apperrors "github.com/example/member-portal/internal/errors"
)

// UserStore persists principal records in PostgreSQL.
type UserStore struct {
	pool *pgxpool.Pool
}

// NewUserStore creates a UserStore over the given connection pool.
func NewUserStore(pool *pgxpool.Pool) *UserStore {
	return &UserStore{pool: pool}
}

// FindByUsername resolves a username to its principal record.
func (s *UserStore) FindByUsername(ctx context.Context, username string) (domainauth.Principal, error) {
	const q = `SELECT username, password_hash, role, created_at FROM users WHERE username = $1`

	var p domainauth.Principal
	err := s.pool.QueryRow(ctx, q, username).Scan(
		&p.Username,
		&p.PasswordHash,
		&p.Role,
		&p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domainauth.Principal{}, apperrors.NotFoundf("user %q not found", username)
		}
		return domainauth.Principal{}, fmt.Errorf("find user by username: %w", apperrors.MapDBError(err))
	}

	return p, nil
}

// Create saves a new principal record. A duplicate username surfaces as a
// conflict error via the store's unique constraint.
func (s *UserStore) Create(ctx context.Context, p domainauth.Principal) error {
	const q = `INSERT INTO users (username, password_hash, role, created_at) VALUES ($1, $2, $3, $4)`

	_, err := s.pool.Exec(ctx, q, p.Username, p.PasswordHash, p.Role, p.CreatedAt)
	if err != nil {
		return fmt.Errorf("create user: %w", apperrors.MapDBError(err))
	}

	return nil
}
