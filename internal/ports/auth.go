package ports

// Package ports defines interfaces (hexagonal ports) for auth-related behavior.
// Implementations live in internal/adapters; orchestration in internal/service.

import (
	"context"

	domainauth "github.com/example/member-portal/internal/domain/auth"
)

// UserStore persists and resolves principal records. Username uniqueness
// is enforced by the store.
type UserStore interface {
	// FindByUsername resolves a username to its principal record.
	// Returns a not-found error when no record exists.
	FindByUsername(ctx context.Context, username string) (domainauth.Principal, error)

	// Create saves a new principal record.
	Create(ctx context.Context, p domainauth.Principal) error
}

// SessionStore persists and retrieves user sessions keyed by session ID.
type SessionStore interface {
	Save(ctx context.Context, sess domainauth.Session) error
	Get(ctx context.Context, id string) (domainauth.Session, error)
	Delete(ctx context.Context, id string) error
}

// RememberMeStore persists long-lived remember-me tokens keyed by the
// opaque token value presented in the cookie.
type RememberMeStore interface {
	Save(ctx context.Context, token string, rec domainauth.RememberMeToken) error
	Get(ctx context.Context, token string) (domainauth.RememberMeToken, error)
	Delete(ctx context.Context, token string) error
}

// PasswordHasher produces and verifies one-way adaptive password digests.
type PasswordHasher interface {
	// Hash returns a salted digest; the same plaintext yields different
	// outputs across calls.
	Hash(plaintext string) (string, error)

	// Verify reports whether plaintext matches the stored digest.
	// Non-matching input returns false, never an error.
	Verify(plaintext, hash string) bool
}
