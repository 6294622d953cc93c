package config

import "time"

// ChatConfig contains chat backend configuration.
type ChatConfig struct {
	// BackendURL is the chat backend endpoint messages are forwarded to.
	BackendURL string `env:"BACKEND_URL" envDefault:"http://localhost:5000/chat"`

	// Timeout bounds each forwarded chat request.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"10s"`
}

// Sanitize applies guardrails to chat configuration values.
func (c *ChatConfig) Sanitize() {
	if c.Timeout <= 0 {
		c.Timeout = 10 * time.Second
	}
}
