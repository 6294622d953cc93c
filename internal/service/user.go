package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	domainauth "github.com/example/member-portal/internal/domain/auth"
	apperrors "github.com/example/member-portal/internal/errors"
	"github.com/example/member-portal/internal/ports"
)

// UserServiceOptions groups dependencies for UserService.
type UserServiceOptions struct {
	Users  ports.UserStore
	Hasher ports.PasswordHasher
	// Now overrides the clock; nil means time.Now.
	Now func() time.Time
}

// UserService handles registration. Principals are immutable once created;
// there is no update path.
type UserService struct {
	users  ports.UserStore
	hasher ports.PasswordHasher
	now    func() time.Time
}

// NewUserService constructs a new UserService.
func NewUserService(opts UserServiceOptions) *UserService {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &UserService{users: opts.Users, hasher: opts.Hasher, now: now}
}

// Register hashes the password and saves a new principal with the user
// role. Duplicate usernames surface as conflict errors from the store.
func (s *UserService) Register(ctx context.Context, username, plaintext string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return apperrors.ValidationField("username", "Username is required.")
	}
	if plaintext == "" {
		return apperrors.ValidationField("password", "Password is required.")
	}

	hash, err := s.hasher.Hash(plaintext)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	principal := domainauth.Principal{
		Username:     username,
		PasswordHash: hash,
		Role:         domainauth.RoleUser,
		CreatedAt:    s.now(),
	}

	if err := s.users.Create(ctx, principal); err != nil {
		return fmt.Errorf("save principal: %w", err)
	}

	return nil
}
