package config

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// SecurityConfig groups session, remember-me, CSRF, and password hashing
// configuration.
type SecurityConfig struct {
	// SessionTTL bounds how long an authenticated session stays live.
	SessionTTL time.Duration `env:"SECURITY_SESSION_TTL" envDefault:"30m"`

	// RememberMeWindow is the remember-me token validity window. The
	// window is fixed at issuance and does not slide on use.
	RememberMeWindow time.Duration `env:"SECURITY_REMEMBER_ME_WINDOW" envDefault:"336h"`

	// CSRFExemptPaths lists request paths excluded from CSRF token
	// validation. Logout stays exempt so a user with a stale token can
	// always sign out.
	CSRFExemptPaths []string `env:"SECURITY_CSRF_EXEMPT_PATHS" envDefault:"/logout" envSeparator:","`

	// BcryptCost is the bcrypt work factor for password hashing.
	BcryptCost int `env:"SECURITY_BCRYPT_COST" envDefault:"10"`
}

// Sanitize applies guardrails to security configuration values.
func (s *SecurityConfig) Sanitize() {
	if s.SessionTTL <= 0 {
		s.SessionTTL = 30 * time.Minute
	}
	if s.RememberMeWindow <= 0 {
		s.RememberMeWindow = 14 * 24 * time.Hour
	}
	if s.BcryptCost < bcrypt.MinCost || s.BcryptCost > bcrypt.MaxCost {
		s.BcryptCost = bcrypt.DefaultCost
	}
}
