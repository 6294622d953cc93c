package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/example/member-portal/internal/adapters/password"
	domainauth "github.com/example/member-portal/internal/domain/auth"
	apperrors "github.com/example/member-portal/internal/errors"
	"github.com/example/member-portal/internal/ports"
)

// DefaultSessionTTL bounds a session's lifetime when none is configured.
const DefaultSessionTTL = 30 * time.Minute

// DefaultRememberMeWindow is the remember-me token validity window.
const DefaultRememberMeWindow = 14 * 24 * time.Hour

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Users      ports.UserStore
	Sessions   ports.SessionStore
	RememberMe ports.RememberMeStore
	Hasher     ports.PasswordHasher

	SessionTTL       time.Duration
	RememberMeWindow time.Duration

	Logger *slog.Logger
	// Now overrides the clock; nil means time.Now. Used by tests.
	Now func() time.Time
}

// AuthService orchestrates login, registration, session lifecycle, and
// remember-me token handling.
type AuthService struct {
	users      ports.UserStore
	sessions   ports.SessionStore
	rememberMe ports.RememberMeStore
	hasher     ports.PasswordHasher

	sessionTTL       time.Duration
	rememberMeWindow time.Duration

	logger *slog.Logger
	now    func() time.Time
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	ttl := opts.SessionTTL
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	window := opts.RememberMeWindow
	if window <= 0 {
		window = DefaultRememberMeWindow
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &AuthService{
		users:            opts.Users,
		sessions:         opts.Sessions,
		rememberMe:       opts.RememberMe,
		hasher:           opts.Hasher,
		sessionTTL:       ttl,
		rememberMeWindow: window,
		logger:           logger,
		now:              now,
	}
}

// LoginInput groups parameters for a credential login.
type LoginInput struct {
	Username string
	Password string
	// RememberMe requests issuance of a long-lived token.
	RememberMe bool
	// PriorSessionID is any session token the client presented before
	// authenticating. It is invalidated so a newly authenticated session
	// never reuses a pre-authentication token value.
	PriorSessionID string
}

// LoginResult contains the established session and, when requested, the
// opaque remember-me token to hand to the client.
type LoginResult struct {
	Session         domainauth.Session
	RememberMeToken string
}

// Login verifies credentials and establishes a fresh session.
// Unknown-username and wrong-password fail identically; the unknown-user
// path still performs one hash comparison to level the cost.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" || input.Password == "" {
		return nil, apperrors.Authentication()
	}

	principal, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if apperrors.IsNotFound(err) {
			s.hasher.Verify(input.Password, password.DummyHash)
			return nil, apperrors.Authentication()
		}
		return nil, fmt.Errorf("load principal: %w", err)
	}

	if !s.hasher.Verify(input.Password, principal.PasswordHash) {
		return nil, apperrors.Authentication()
	}

	session, err := s.establishSession(ctx, principal.Username, principal.Role, input.PriorSessionID)
	if err != nil {
		return nil, err
	}

	result := &LoginResult{Session: session}

	if input.RememberMe {
		token, tokenErr := s.issueRememberMeToken(ctx, principal)
		if tokenErr != nil {
			// The login itself succeeded; log and continue without the token.
			s.logger.WarnContext(ctx, "remember-me token issuance failed",
				"username", principal.Username, "error", tokenErr)
		} else {
			result.RememberMeToken = token
		}
	}

	return result, nil
}

// RedeemRememberMe silently re-establishes a session from a remember-me
// token. An expired or unknown token is reported as session expiry so the
// caller degrades to anonymous instead of erroring. The token itself is
// left in place (its window does not slide) but the session ID is fresh.
func (s *AuthService) RedeemRememberMe(ctx context.Context, token, priorSessionID string) (*domainauth.Session, error) {
	if token == "" {
		return nil, apperrors.SessionExpired()
	}

	rec, err := s.rememberMe.Get(ctx, token)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.SessionExpired()
		}
		return nil, fmt.Errorf("load remember-me token: %w", err)
	}

	if rec.Expired(s.now()) {
		if deleteErr := s.rememberMe.Delete(ctx, token); deleteErr != nil {
			s.logger.WarnContext(ctx, "expired remember-me cleanup failed", "error", deleteErr)
		}
		return nil, apperrors.SessionExpired()
	}

	// Re-resolve the principal: the token must never grant more than the
	// stored record currently does, and a deleted user yields anonymous.
	principal, err := s.users.FindByUsername(ctx, rec.Username)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.SessionExpired()
		}
		return nil, fmt.Errorf("load principal: %w", err)
	}

	session, err := s.establishSession(ctx, principal.Username, principal.Role, priorSessionID)
	if err != nil {
		return nil, err
	}

	return &session, nil
}

// GetSession retrieves a live session by ID. A token with no matching live
// session yields a session-expired error.
func (s *AuthService) GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error) {
	if sessionID == "" {
		return nil, apperrors.SessionExpired()
	}

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		if apperrors.IsSessionExpired(err) || apperrors.IsNotFound(err) {
			return nil, apperrors.SessionExpired()
		}
		return nil, fmt.Errorf("get session: %w", err)
	}

	if s.now().After(session.ExpiresAt) {
		if deleteErr := s.sessions.Delete(ctx, sessionID); deleteErr != nil {
			s.logger.WarnContext(ctx, "expired session cleanup failed", "error", deleteErr)
		}
		return nil, apperrors.SessionExpired()
	}

	return &session, nil
}

// Logout invalidates the session and the remember-me token together.
func (s *AuthService) Logout(ctx context.Context, sessionID, rememberMeToken string) error {
	if sessionID != "" {
		if err := s.sessions.Delete(ctx, sessionID); err != nil {
			return fmt.Errorf("delete session: %w", err)
		}
	}
	if rememberMeToken != "" {
		if err := s.rememberMe.Delete(ctx, rememberMeToken); err != nil {
			return fmt.Errorf("delete remember-me token: %w", err)
		}
	}
	return nil
}

// establishSession deletes any pre-authentication session and mints a
// session with a fresh ID (fixation protection).
func (s *AuthService) establishSession(
	ctx context.Context,
	username string,
	role domainauth.Role,
	priorSessionID string,
) (domainauth.Session, error) {
	if priorSessionID != "" {
		if err := s.sessions.Delete(ctx, priorSessionID); err != nil {
			return domainauth.Session{}, fmt.Errorf("rotate session: %w", err)
		}
	}

	session := domainauth.Session{
		ID:        uuid.NewString(),
		Username:  username,
		Role:      role,
		ExpiresAt: s.now().Add(s.sessionTTL),
	}

	if err := s.sessions.Save(ctx, session); err != nil {
		return domainauth.Session{}, fmt.Errorf("save session: %w", err)
	}

	return session, nil
}

// issueRememberMeToken mints and persists a token with a fixed validity
// window starting now. Each successful password login issues a new token.
func (s *AuthService) issueRememberMeToken(ctx context.Context, principal domainauth.Principal) (string, error) {
	token := uuid.NewString() + uuid.NewString()
	issued := s.now()

	rec := domainauth.RememberMeToken{
		Username:  principal.Username,
		Role:      principal.Role,
		IssuedAt:  issued,
		ExpiresAt: issued.Add(s.rememberMeWindow),
	}

	if err := s.rememberMe.Save(ctx, token, rec); err != nil {
		return "", fmt.Errorf("save remember-me token: %w", err)
	}

	return token, nil
}
