package redis

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	domainauth "github.com/example/member-portal/internal/domain/auth"
)

// RememberMeStore persists remember-me tokens in Redis. Tokens are stored
// under a SHA-256 hash of the cookie value, so a leaked store does not
// yield usable cookies. TTL is fixed at issuance (not sliding).
type RememberMeStore struct {
	client redis.UniversalClient
	prefix string
}

// NewRememberMeStore creates a new Redis-based remember-me token store.
func NewRememberMeStore(client redis.UniversalClient) *RememberMeStore {
	return &RememberMeStore{client: client, prefix: "remember:"}
}

func (s *RememberMeStore) key(token string) string {
	sum := sha256.Sum256([]byte(token))
	return s.prefix + base64.RawURLEncoding.EncodeToString(sum[:])
}

func (s *RememberMeStore) Save(ctx context.Context, token string, rec domainauth.RememberMeToken) error {
	if token == "" {
		return errors.New("remember-me token cannot be empty")
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal remember-me token: %w", err)
	}

	ttl := time.Until(rec.ExpiresAt)
	if ttl <= 0 {
		return errors.New("remember-me token is expired")
	}

	return s.client.Set(ctx, s.key(token), data, ttl).Err()
}

func (s *RememberMeStore) Get(ctx context.Context, token string) (domainauth.RememberMeToken, error) {
	if token == "" {
		return domainauth.RememberMeToken{}, ErrNotFound
	}

	data, err := s.client.Get(ctx, s.key(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domainauth.RememberMeToken{}, ErrNotFound
		}
		return domainauth.RememberMeToken{}, fmt.Errorf("redis get: %w", err)
	}

	var rec domainauth.RememberMeToken
	if unmarshalErr := json.Unmarshal([]byte(data), &rec); unmarshalErr != nil {
		return domainauth.RememberMeToken{}, fmt.Errorf("unmarshal remember-me token: %w", unmarshalErr)
	}

	return rec, nil
}

func (s *RememberMeStore) Delete(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.client.Del(ctx, s.key(token)).Err()
}
