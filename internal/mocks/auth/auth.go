package auth

// Package auth contains simple hand-written test doubles for auth ports.
// These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"sync"
	"time"

	domainauth "github.com/example/member-portal/internal/domain/auth"
	apperrors "github.com/example/member-portal/internal/errors"
	"github.com/example/member-portal/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.UserStore       = (*MemoryUserStore)(nil)
	_ ports.SessionStore    = (*MemorySessionStore)(nil)
	_ ports.RememberMeStore = (*MemoryRememberMeStore)(nil)
	_ ports.PasswordHasher  = (*PlainHasher)(nil)
)

// MemoryUserStore is an in-memory user store for tests and local development.
type MemoryUserStore struct {
	mu    sync.RWMutex
	users map[string]domainauth.Principal
}

// NewMemoryUserStore creates an empty MemoryUserStore.
func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{users: make(map[string]domainauth.Principal)}
}

func (s *MemoryUserStore) FindByUsername(_ context.Context, username string) (domainauth.Principal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.users[username]
	if !ok {
		return domainauth.Principal{}, apperrors.NotFoundf("user %q not found", username)
	}
	return p, nil
}

func (s *MemoryUserStore) Create(_ context.Context, p domainauth.Principal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[p.Username]; exists {
		return &apperrors.AppError{
			Code:    apperrors.ErrCodeConflict,
			Message: "This value already exists. Please choose a different one.",
			Field:   "username",
		}
	}
	s.users[p.Username] = p
	return nil
}

// MemorySessionStore is an in-memory session store keyed by session ID.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]domainauth.Session
}

// NewMemorySessionStore creates an empty MemorySessionStore.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]domainauth.Session)}
}

func (s *MemorySessionStore) Save(_ context.Context, sess domainauth.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = sess
	return nil
}

func (s *MemorySessionStore) Get(_ context.Context, id string) (domainauth.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok || time.Now().After(sess.ExpiresAt) {
		return domainauth.Session{}, apperrors.SessionExpired()
	}
	return sess, nil
}

func (s *MemorySessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

// Len reports the number of live sessions; handy for rotation assertions.
func (s *MemorySessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// MemoryRememberMeStore is an in-memory remember-me token store.
type MemoryRememberMeStore struct {
	mu     sync.RWMutex
	tokens map[string]domainauth.RememberMeToken
}

// NewMemoryRememberMeStore creates an empty MemoryRememberMeStore.
func NewMemoryRememberMeStore() *MemoryRememberMeStore {
	return &MemoryRememberMeStore{tokens: make(map[string]domainauth.RememberMeToken)}
}

func (s *MemoryRememberMeStore) Save(_ context.Context, token string, rec domainauth.RememberMeToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token] = rec
	return nil
}

func (s *MemoryRememberMeStore) Get(_ context.Context, token string) (domainauth.RememberMeToken, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.tokens[token]
	if !ok {
		return domainauth.RememberMeToken{}, apperrors.NotFound("remember-me token not found")
	}
	return rec, nil
}

func (s *MemoryRememberMeStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, token)
	return nil
}

// Len reports the number of stored tokens.
func (s *MemoryRememberMeStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tokens)
}

// PlainHasher is a deliberately weak hasher for tests: the "hash" is the
// plaintext with a fixed prefix. Never used outside tests.
type PlainHasher struct{}

func (PlainHasher) Hash(plaintext string) (string, error) {
	return "plain:" + plaintext, nil
}

func (PlainHasher) Verify(plaintext, hash string) bool {
	return hash == "plain:"+plaintext
}
