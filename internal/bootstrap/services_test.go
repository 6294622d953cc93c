package bootstrap

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/example/member-portal/internal/domain/auth"
)

func TestAccessRules_Wiring(t *testing.T) {
	rules := AccessRules()

	session := func(role auth.Role) *auth.Session {
		return &auth.Session{
			ID:        "s1",
			Username:  "tester",
			Role:      role,
			ExpiresAt: time.Now().Add(time.Hour),
		}
	}
	get := func(path string) auth.Request {
		return auth.Request{Path: path, Method: http.MethodGet}
	}

	// Public surface is open to everyone.
	for _, path := range []string{"/", "/docs", "/openapi.json"} {
		assert.Equal(t, auth.Allow, rules.Decide(get(path), nil), path)
		assert.Equal(t, auth.Allow, rules.Decide(get(path), session(auth.RoleAdmin)), path)
	}

	// Sign-in pages are anonymous-only.
	for _, path := range []string{"/login", "/join"} {
		assert.Equal(t, auth.Allow, rules.Decide(get(path), nil), path)
		assert.Equal(t, auth.Deny, rules.Decide(get(path), session(auth.RoleUser)), path)
	}

	// Member pages accept user and admin; admin page only direct admins.
	assert.Equal(t, auth.Allow, rules.Decide(get("/user"), session(auth.RoleUser)))
	assert.Equal(t, auth.Allow, rules.Decide(get("/user"), session(auth.RoleAdmin)))
	assert.Equal(t, auth.Deny, rules.Decide(get("/admin"), session(auth.RoleUser)))
	assert.Equal(t, auth.Allow, rules.Decide(get("/admin"), session(auth.RoleAdmin)))

	// Chat surface follows the member rule.
	assert.Equal(t, auth.Deny, rules.Decide(get("/chat"), nil))
	assert.Equal(t, auth.Allow, rules.Decide(get("/api/chat"), session(auth.RoleUser)))

	// Everything unlisted is denied, even for admins.
	assert.Equal(t, auth.Deny, rules.Decide(get("/secret"), nil))
	assert.Equal(t, auth.Deny, rules.Decide(get("/secret"), session(auth.RoleAdmin)))
}
