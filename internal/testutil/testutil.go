package testutil

// Package testutil provides shared helpers for integration-style tests.

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// testRedisDB is a DB index reserved for tests so FlushDB cannot touch
// application data on a shared local instance.
const testRedisDB = 15

// SetupTestRedis creates a Redis client for testing.
// Tests are skipped if Redis is not available. The address can be
// overridden with REDIS_TEST_ADDR.
func SetupTestRedis(t *testing.T) *redis.Client {
	t.Helper()

	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   testRedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		if cerr := client.Close(); cerr != nil {
			t.Logf("warning: failed to close redis client after ping error: %v", cerr)
		}
		t.Skipf("Redis not available for testing at %s: %v", addr, err)
	}

	t.Cleanup(func() {
		flushCtx, flushCancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer flushCancel()
		if err := client.FlushDB(flushCtx).Err(); err != nil {
			t.Logf("warning: failed to flush test redis db: %v", err)
		}
		if err := client.Close(); err != nil {
			t.Logf("warning: failed to close redis client: %v", err)
		}
	})

	return client
}
