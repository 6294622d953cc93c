package password

// Package password implements the credential verifier over bcrypt.

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// BcryptHasher hashes and verifies passwords with bcrypt.
// The cost is fixed at construction; the hash computation is intentionally
// slow and must not be short-circuited.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a BcryptHasher. Non-positive cost falls back to
// the bcrypt default.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash produces a salted adaptive digest of plaintext.
func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(digest), nil
}

// Verify reports whether plaintext matches hash.
func (h *BcryptHasher) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

// DummyHash is a valid bcrypt digest of an unguessable value. Login runs a
// comparison against it when the username is unknown so both failure modes
// cost roughly the same amount of work.
const DummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
