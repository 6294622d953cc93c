package auth

// Package auth contains domain-level types for authentication, sessions,
// and access decisions. It is pure and free of framework/adapter concerns.

import "time"

// Role represents an application's authorization role.
// Keep string form for easy persistence and cookies.
// Valid values are defined as constants below.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Implies reports whether r satisfies a requirement for other.
// The hierarchy has a single non-trivial edge: admin implies user.
func (r Role) Implies(other Role) bool {
	if r == other {
		return true
	}
	return r == RoleAdmin && other == RoleUser
}

// Expand returns the closure of roles under Implies, so a rule requiring
// user is satisfied by a principal holding admin.
func Expand(roles ...Role) map[Role]bool {
	out := make(map[Role]bool, len(roles))
	for _, r := range roles {
		out[r] = true
		if r == RoleAdmin {
			out[RoleUser] = true
		}
	}
	return out
}

// Principal is the stored user record resolved by the identity loader.
// Created at registration and immutable thereafter.
type Principal struct {
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// Session is the server-side record we persist for an authenticated user.
// ID is an opaque session identifier minted fresh on every authentication
// event; it must never carry over a pre-authentication value.
type Session struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Role      Role      `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

// HasRole reports whether the session's role satisfies required,
// honoring the role hierarchy.
func (s Session) HasRole(required Role) bool {
	return s.Role.Implies(required)
}

// RememberMeToken is a long-lived credential bound to a principal,
// independent of any session. Validity window is fixed at issuance
// (not sliding); it must never grant roles beyond the bound principal's.
type RememberMeToken struct {
	Username  string    `json:"username"`
	Role      Role      `json:"role"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the token is past its validity window at now.
// A token exactly at its expiry instant is still valid.
func (t RememberMeToken) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
