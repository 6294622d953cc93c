package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// FallbackReply is returned whenever the chat backend cannot be reached or
// answers with anything unusable.
const FallbackReply = "Sorry, the AI service is not available right now."

// ChatServiceOptions groups dependencies for ChatService.
type ChatServiceOptions struct {
	// BackendURL is the chat-completion endpoint to proxy to.
	BackendURL string
	// Timeout bounds the round trip to the backend. Zero means 10s.
	Timeout time.Duration
	// HTTPClient overrides the client; nil builds one from Timeout.
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// ChatService forwards chat messages to an external completion backend.
// Its whole contract is: call with a timeout, and on any failure return a
// fixed fallback string rather than an error.
type ChatService struct {
	backendURL string
	client     *http.Client
	logger     *slog.Logger
}

// NewChatService constructs a new ChatService.
func NewChatService(opts ChatServiceOptions) *ChatService {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &ChatService{backendURL: opts.BackendURL, client: client, logger: logger}
}

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

// Reply forwards the user message and returns the backend's reply, or the
// fallback string on any failure. It never returns an error to the caller.
func (s *ChatService) Reply(ctx context.Context, message string) string {
	reply, err := s.forward(ctx, message)
	if err != nil {
		s.logger.WarnContext(ctx, "chat backend unavailable", "error", err)
		return FallbackReply
	}
	return reply
}

func (s *ChatService) forward(ctx context.Context, message string) (string, error) {
	body, err := json.Marshal(chatRequest{Message: message})
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.backendURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("call chat backend: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("chat backend status %d", resp.StatusCode)
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode chat response: %w", err)
	}
	if out.Reply == "" {
		return "", fmt.Errorf("chat backend returned empty reply")
	}

	return out.Reply, nil
}
