package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/inventorly/identity/pkg/secrethash"
)

// RefreshManager owns the server side of refresh tokens. Only a bcrypt hash
// of the most recent token is stored per principal, so a directory dump
// never yields a usable token and each rotation invalidates its predecessor.
type RefreshManager struct {
	dir    Directory
	hasher *secrethash.Hasher
	issuer *TokenIssuer
}

// NewRefreshManager creates a RefreshManager.
func NewRefreshManager(dir Directory, hasher *secrethash.Hasher, issuer *TokenIssuer) *RefreshManager {
	return &RefreshManager{dir: dir, hasher: hasher, issuer: issuer}
}

// Rotate issues a fresh refresh token for the principal and stores its hash,
// replacing whatever hash was there before.
func (m *RefreshManager) Rotate(ctx context.Context, p *Principal) (string, error) {
	token, err := m.issuer.IssueRefreshToken(p)
	if err != nil {
		return "", err
	}

	hash, err := m.hasher.Hash(token)
	if err != nil {
		return "", fmt.Errorf("failed to hash refresh token: %w", err)
	}

	if err := m.dir.SetRefreshTokenHash(ctx, p.ID, hash); err != nil {
		return "", fmt.Errorf("failed to store refresh token hash: %w", err)
	}

	return token, nil
}

// Validate checks a presented refresh token against the stored hash for the
// principal and returns the sanitized principal on match. An unknown
// principal, a revoked session and a superseded token all collapse into
// ErrInvalidRefreshToken.
func (m *RefreshManager) Validate(ctx context.Context, id int64, presented string) (*Principal, error) {
	p, err := m.dir.FindByID(ctx, id, true)
	if err != nil {
		if errors.Is(err, ErrPrincipalNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, fmt.Errorf("failed to look up principal: %w", err)
	}

	if p.RefreshTokenHash == "" || !m.hasher.Verify(presented, p.RefreshTokenHash) {
		return nil, ErrInvalidRefreshToken
	}

	return p.Sanitized(), nil
}

// Revoke clears the stored hash so every outstanding refresh token for the
// principal stops validating.
func (m *RefreshManager) Revoke(ctx context.Context, id int64) error {
	if err := m.dir.ClearRefreshTokenHash(ctx, id); err != nil {
		return fmt.Errorf("failed to clear refresh token hash: %w", err)
	}
	return nil
}
