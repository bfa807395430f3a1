package identity

import (
	"context"
	"time"
)

// Directory is the persistence port for principals. Implementations return
// ErrPrincipalNotFound when a lookup matches nothing and ErrEmailTaken when
// Create collides on the primary email.
//
// The Consume* methods are conditional updates: they mutate the row only if
// the token still matches and report whether anything changed, so two
// concurrent consumers of the same token cannot both succeed.
type Directory interface {
	// FindByPrimaryEmail loads a principal by primary email. The password
	// hash is fetched only when withPasswordHash is set.
	FindByPrimaryEmail(ctx context.Context, email string, withPasswordHash bool) (*Principal, error)

	// FindByBackupEmail loads a principal by backup email, without secret
	// material.
	FindByBackupEmail(ctx context.Context, email string) (*Principal, error)

	// FindByID loads a principal by ID. The refresh token hash is fetched
	// only when withRefreshHash is set.
	FindByID(ctx context.Context, id int64, withRefreshHash bool) (*Principal, error)

	// FindByResetToken loads the principal holding the given reset token,
	// including the token expiry.
	FindByResetToken(ctx context.Context, token string) (*Principal, error)

	// FindByVerificationToken loads the principal holding the given
	// verification token for the primary or backup address.
	FindByVerificationToken(ctx context.Context, token string, primary bool) (*Principal, error)

	// Create inserts a new principal and fills in ID and timestamps.
	Create(ctx context.Context, p *Principal) error

	SetRefreshTokenHash(ctx context.Context, id int64, hash string) error
	ClearRefreshTokenHash(ctx context.Context, id int64) error

	SetResetToken(ctx context.Context, id int64, token string, expiresAt time.Time) error

	// ConsumeResetToken atomically replaces the password hash and clears
	// the reset token, but only if the token is still in place. Returns
	// false when another consumer got there first.
	ConsumeResetToken(ctx context.Context, token, newPasswordHash string) (bool, error)

	SetVerificationToken(ctx context.Context, id int64, token string, expiresAt time.Time, primary bool) error

	// ConsumeVerificationToken atomically marks the address verified and
	// clears the token, but only if the token is still in place.
	ConsumeVerificationToken(ctx context.Context, token string, primary bool) (bool, error)
}
