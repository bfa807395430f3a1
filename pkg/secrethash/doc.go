// Package secrethash provides slow, salted one-way hashing for plaintext
// secrets using bcrypt with a tunable work factor.
//
// It is used for both login passwords and refresh tokens: refresh tokens are
// hashed before storage exactly as passwords are. Inputs longer than bcrypt's
// 72-byte limit are pre-hashed with SHA-256 so token-sized secrets hash
// without truncation.
//
// # Usage
//
//	hasher := secrethash.New(secrethash.WithCost(12))
//
//	digest, err := hasher.Hash("s3cret")
//	if err != nil {
//	    // bcrypt failure, treat as fatal
//	}
//
//	if hasher.Verify("s3cret", digest) {
//	    // match
//	}
//
// Verify never returns an error: mismatches and malformed digests both
// report false, so callers cannot accidentally distinguish them.
package secrethash
