package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/inventorly/identity/pkg/secrethash"
)

// Verifier checks a primary email / password pair against the directory.
// Unknown email and wrong password produce the identical ErrInvalidCredentials
// so callers cannot probe which addresses are registered.
type Verifier struct {
	dir    Directory
	hasher *secrethash.Hasher
}

// NewVerifier creates a Verifier sharing the service's directory and hasher.
func NewVerifier(dir Directory, hasher *secrethash.Hasher) *Verifier {
	return &Verifier{dir: dir, hasher: hasher}
}

// Validate returns the sanitized principal when the credentials match.
// Storage failures are reported as-is; they are the only errors that are
// not ErrInvalidCredentials.
func (v *Verifier) Validate(ctx context.Context, email, password string) (*Principal, error) {
	p, err := v.dir.FindByPrimaryEmail(ctx, email, true)
	if err != nil {
		if errors.Is(err, ErrPrincipalNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up principal: %w", err)
	}

	if !v.hasher.Verify(password, p.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return p.Sanitized(), nil
}
