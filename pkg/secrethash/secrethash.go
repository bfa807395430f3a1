package secrethash

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt work factor applied when none is configured.
// Cost 10 keeps hashing slow enough to resist offline attacks while staying
// under typical request latency budgets.
const DefaultCost = 10

// Hasher provides one-way hashing and verification of plaintext secrets.
// The same hasher is used for login passwords and refresh tokens, so a
// storage compromise does not leak usable credentials of either kind.
type Hasher struct {
	cost int
}

// Option configures a Hasher.
type Option func(*Hasher)

// WithCost sets the bcrypt work factor. Values outside bcrypt's supported
// range fall back to DefaultCost rather than failing at hash time.
func WithCost(cost int) Option {
	return func(h *Hasher) {
		if cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
			h.cost = cost
		}
	}
}

// New creates a Hasher with the given options.
func New(opts ...Option) *Hasher {
	h := &Hasher{cost: DefaultCost}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Hash returns a salted bcrypt digest of plaintext. Each call produces a
// different digest for the same input because bcrypt embeds a random salt.
func (h *Hasher) Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword(normalize(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("secrethash: failed to hash secret: %w", err)
	}
	return string(digest), nil
}

// Verify reports whether plaintext matches digest. It returns false for
// malformed digests instead of propagating an error; the caller only ever
// needs a yes/no answer and must not leak parse failures outward.
func (h *Hasher) Verify(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), normalize(plaintext)) == nil
}

// normalize pre-hashes inputs longer than bcrypt's 72-byte limit with
// SHA-256 so that arbitrarily long secrets (signed refresh tokens) can be
// hashed without truncation. Short inputs pass through untouched, keeping
// stored password digests compatible with plain bcrypt.
func normalize(plaintext string) []byte {
	if len(plaintext) <= 72 {
		return []byte(plaintext)
	}
	sum := sha256.Sum256([]byte(plaintext))
	return []byte(base64.StdEncoding.EncodeToString(sum[:]))
}
