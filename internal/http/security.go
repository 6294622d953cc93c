package httpx

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/example/member-portal/internal/domain/auth"
	apperrors "github.com/example/member-portal/internal/errors"
	"github.com/example/member-portal/internal/service"
)

// Authenticator is the slice of the auth service the security chain needs.
type Authenticator interface {
	Login(ctx context.Context, input service.LoginInput) (*service.LoginResult, error)
	RedeemRememberMe(ctx context.Context, token, priorSessionID string) (*auth.Session, error)
	GetSession(ctx context.Context, sessionID string) (*auth.Session, error)
	Logout(ctx context.Context, sessionID, rememberMeToken string) error
}

// SecurityConfig configures the security chain middleware.
type SecurityConfig struct {
	Auth  Authenticator
	Rules *auth.Ruleset

	// RememberMeWindow sizes the remember-me cookie lifetime. It should
	// match the token validity window configured on the auth service.
	RememberMeWindow time.Duration

	// DenyRedirectPaths lists paths where a denied request is redirected
	// to the home page instead of receiving a 403. These are the pages
	// that only make sense for anonymous visitors.
	DenyRedirectPaths []string

	Logger *slog.Logger
}

// accessDeniedMessage is deliberately generic: it never reveals whether the
// resource exists or which role would have been required.
const accessDeniedMessage = "Access Denied: you do not have permission to access this resource"

// SecurityChain returns the middleware enforcing authentication and
// authorization for every request. It runs, in order: session resolution
// from the session cookie, silent remember-me redemption, the login and
// logout endpoints, and finally the access rule evaluation. Requests that
// pass are forwarded with the session (if any) in the request context.
func SecurityChain(cfg SecurityConfig) func(http.Handler) http.Handler {
	if cfg.RememberMeWindow <= 0 {
		cfg.RememberMeWindow = service.DefaultRememberMeWindow
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.DenyRedirectPaths == nil {
		cfg.DenyRedirectPaths = []string{"/login", "/join"}
	}
	redirectOnDeny := make(map[string]bool, len(cfg.DenyRedirectPaths))
	for _, p := range cfg.DenyRedirectPaths {
		redirectOnDeny[p] = true
	}

	chain := &securityChain{
		auth:             cfg.Auth,
		rules:            cfg.Rules,
		rememberMeWindow: cfg.RememberMeWindow,
		redirectOnDeny:   redirectOnDeny,
		logger:           cfg.Logger,
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			chain.serve(w, r, next)
		})
	}
}

type securityChain struct {
	auth             Authenticator
	rules            *auth.Ruleset
	rememberMeWindow time.Duration
	redirectOnDeny   map[string]bool
	logger           *slog.Logger
}

func (c *securityChain) serve(w http.ResponseWriter, r *http.Request, next http.Handler) {
	ctx := r.Context()

	session := c.resolveSession(ctx, w, r)
	if session == nil {
		session = c.redeemRememberMe(ctx, w, r)
	}

	if r.Method == http.MethodPost && r.URL.Path == "/login" {
		c.handleLogin(w, r)
		return
	}
	if r.Method == http.MethodPost && r.URL.Path == "/logout" {
		c.handleLogout(w, r, session)
		return
	}

	decision := c.rules.Decide(auth.Request{Path: r.URL.Path, Method: r.Method}, session)
	if decision != auth.Allow {
		c.deny(w, r, session)
		return
	}

	if session != nil {
		r = r.WithContext(SetSessionInContext(ctx, session))
	}
	next.ServeHTTP(w, r)
}

// resolveSession looks up the live session behind the session cookie.
// A stale cookie is cleared and the request proceeds anonymously.
func (c *securityChain) resolveSession(ctx context.Context, w http.ResponseWriter, r *http.Request) *auth.Session {
	sessionID := cookieValue(r, SessionCookieName)
	if sessionID == "" {
		return nil
	}

	session, err := c.auth.GetSession(ctx, sessionID)
	if err != nil {
		if !apperrors.IsSessionExpired(err) {
			c.logger.ErrorContext(ctx, "session lookup failed", "error", err)
		}
		clearCookie(w, r, SessionCookieName)
		return nil
	}
	return session
}

// redeemRememberMe silently re-authenticates an anonymous request carrying
// a valid remember-me token. A dead token is cleared; the request stays
// anonymous on any failure.
func (c *securityChain) redeemRememberMe(ctx context.Context, w http.ResponseWriter, r *http.Request) *auth.Session {
	token := cookieValue(r, RememberMeCookieName)
	if token == "" {
		return nil
	}

	session, err := c.auth.RedeemRememberMe(ctx, token, "")
	if err != nil {
		if !apperrors.IsSessionExpired(err) {
			c.logger.ErrorContext(ctx, "remember-me redemption failed", "error", err)
		}
		clearCookie(w, r, RememberMeCookieName)
		return nil
	}

	setAuthCookie(w, r, SessionCookieName, session.ID, session.ExpiresAt)
	return session
}

func (c *securityChain) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/login?error", http.StatusSeeOther)
		return
	}

	result, err := c.auth.Login(ctx, service.LoginInput{
		Username:       r.PostFormValue("username"),
		Password:       r.PostFormValue("password"),
		RememberMe:     r.PostFormValue("remember-me") != "",
		PriorSessionID: cookieValue(r, SessionCookieName),
	})
	if err != nil {
		if apperrors.IsAuthentication(err) {
			http.Redirect(w, r, "/login?error", http.StatusSeeOther)
			return
		}
		c.logger.ErrorContext(ctx, "login failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	setAuthCookie(w, r, SessionCookieName, result.Session.ID, result.Session.ExpiresAt)
	if result.RememberMeToken != "" {
		setAuthCookie(w, r, RememberMeCookieName, result.RememberMeToken, time.Now().Add(c.rememberMeWindow))
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (c *securityChain) handleLogout(w http.ResponseWriter, r *http.Request, session *auth.Session) {
	ctx := r.Context()

	sessionID := ""
	if session != nil {
		sessionID = session.ID
	}
	if err := c.auth.Logout(ctx, sessionID, cookieValue(r, RememberMeCookieName)); err != nil {
		c.logger.ErrorContext(ctx, "logout failed", "error", err)
	}

	clearCookie(w, r, SessionCookieName)
	clearCookie(w, r, RememberMeCookieName)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// deny applies the denial strategy: requests to anonymous-only pages are
// bounced to the home page, everything else gets a generic 403.
func (c *securityChain) deny(w http.ResponseWriter, r *http.Request, session *auth.Session) {
	if c.redirectOnDeny[r.URL.Path] {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	username := ""
	if session != nil {
		username = session.Username
	}
	c.logger.InfoContext(r.Context(), "access denied",
		"path", r.URL.Path, "method", r.Method, "username", username)
	http.Error(w, accessDeniedMessage, http.StatusForbidden)
}
