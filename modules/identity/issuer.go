package identity

import (
	"errors"
	"time"

	"github.com/inventorly/identity/pkg/jwt"
)

// TokenIssuer mints and verifies the module's RS256 tokens. Access and
// refresh tokens carry identical claims; only the lifetime differs.
type TokenIssuer struct {
	signer     *jwt.Service
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

type IssuerOption func(*TokenIssuer)

// WithClock overrides the issuer's time source.
func WithClock(now func() time.Time) IssuerOption {
	return func(i *TokenIssuer) {
		i.now = now
	}
}

// NewTokenIssuer creates a TokenIssuer from a signing service and the
// module config.
func NewTokenIssuer(signer *jwt.Service, cfg Config, opts ...IssuerOption) *TokenIssuer {
	i := &TokenIssuer{
		signer:     signer,
		issuer:     cfg.Issuer,
		accessTTL:  cfg.AccessTokenTTL,
		refreshTTL: cfg.RefreshTokenTTL,
		now:        time.Now,
	}

	for _, opt := range opts {
		opt(i)
	}

	return i
}

// IssueAccessToken signs a short-lived access token for the principal.
func (i *TokenIssuer) IssueAccessToken(p *Principal) (string, error) {
	return i.issue(p, i.accessTTL)
}

// IssueRefreshToken signs a long-lived refresh token for the principal.
func (i *TokenIssuer) IssueRefreshToken(p *Principal) (string, error) {
	return i.issue(p, i.refreshTTL)
}

func (i *TokenIssuer) issue(p *Principal, ttl time.Duration) (string, error) {
	signed, err := i.signer.Sign(newClaims(p, i.issuer, i.now(), ttl))
	if err != nil {
		return "", errors.Join(ErrTokenSigning, err)
	}
	return signed, nil
}

// Parse verifies a token's signature and expiry and returns its claims.
// Expired and malformed tokens alike come back as ErrInvalidAccessToken;
// the jwt sentinels stay in the chain for callers that care.
func (i *TokenIssuer) Parse(token string) (*Claims, error) {
	var claims Claims
	if err := i.signer.Parse(token, &claims); err != nil {
		return nil, errors.Join(ErrInvalidAccessToken, err)
	}
	return &claims, nil
}

// DecodeSubjectID extracts the principal ID from a token without verifying
// it. Logout uses this so an already expired access token can still name
// whose sessions to revoke; the result must never grant access to anything.
func (i *TokenIssuer) DecodeSubjectID(token string) (int64, error) {
	var claims Claims
	if err := jwt.Decode(token, &claims); err != nil {
		return 0, errors.Join(ErrInvalidAccessToken, err)
	}
	if claims.Subject.ID == 0 {
		return 0, ErrInvalidAccessToken
	}
	return claims.Subject.ID, nil
}
