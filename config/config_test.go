package config

import (
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestAppConfigDefaults(t *testing.T) {
	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))
	cfg.Sanitize()

	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, "localhost", cfg.Postgres.Host)
	assert.Equal(t, 5432, cfg.Postgres.Port)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 30*time.Minute, cfg.Security.SessionTTL)
	assert.Equal(t, 14*24*time.Hour, cfg.Security.RememberMeWindow)
	assert.Equal(t, []string{"/logout"}, cfg.Security.CSRFExemptPaths)
	assert.Equal(t, bcrypt.DefaultCost, cfg.Security.BcryptCost)
	assert.Equal(t, 10*time.Second, cfg.Chat.Timeout)
}

func TestAppConfigFromEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("SECURITY_SESSION_TTL", "1h")
	t.Setenv("SECURITY_CSRF_EXEMPT_PATHS", "/logout,/webhooks/github")
	t.Setenv("CHAT_BACKEND_URL", "http://chat.internal:5000/chat")

	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))
	cfg.Sanitize()

	assert.Equal(t, ":9090", cfg.HTTP.Addr)
	assert.Equal(t, time.Hour, cfg.Security.SessionTTL)
	assert.Equal(t, []string{"/logout", "/webhooks/github"}, cfg.Security.CSRFExemptPaths)
	assert.Equal(t, "http://chat.internal:5000/chat", cfg.Chat.BackendURL)
}

func TestSecurityConfigSanitize(t *testing.T) {
	s := SecurityConfig{SessionTTL: -1, RememberMeWindow: 0, BcryptCost: 99}
	s.Sanitize()

	assert.Equal(t, 30*time.Minute, s.SessionTTL)
	assert.Equal(t, 14*24*time.Hour, s.RememberMeWindow)
	assert.Equal(t, bcrypt.DefaultCost, s.BcryptCost)
}

func TestChatConfigSanitize(t *testing.T) {
	c := ChatConfig{Timeout: 0}
	c.Sanitize()
	assert.Equal(t, 10*time.Second, c.Timeout)
}

func TestDetectDevMode(t *testing.T) {
	t.Setenv("NODE_ENV", "development")

	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))
	cfg.Sanitize()

	assert.True(t, cfg.IsDev)
}
