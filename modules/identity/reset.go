package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/inventorly/identity/pkg/randtoken"
	"github.com/inventorly/identity/pkg/secrethash"
)

// ResetManager drives the password reset flow. Requests acknowledge
// identically for known and unknown addresses; tokens are single-use and
// age out on their own, so a failed consumption never mutates the row.
type ResetManager struct {
	dir      Directory
	hasher   *secrethash.Hasher
	notifier *Notifier
	tokenLen int
	ttl      time.Duration
	now      func() time.Time
}

// NewResetManager creates a ResetManager. A nil notifier disables outgoing
// mail but leaves the flow itself intact.
func NewResetManager(dir Directory, hasher *secrethash.Hasher, notifier *Notifier, cfg Config) *ResetManager {
	return &ResetManager{
		dir:      dir,
		hasher:   hasher,
		notifier: notifier,
		tokenLen: cfg.OpaqueTokenLength,
		ttl:      cfg.ResetTokenTTL,
		now:      time.Now,
	}
}

// Request starts a reset for the given primary email. The returned
// acknowledgment is byte-identical whether or not the address is registered;
// only infrastructure failures surface as errors.
func (m *ResetManager) Request(ctx context.Context, email string) (*Acknowledgment, error) {
	ack := &Acknowledgment{
		Message: fmt.Sprintf("If your email %s is found, you will receive an email shortly to reset your password.", email),
	}

	p, err := m.dir.FindByPrimaryEmail(ctx, email, false)
	if err != nil {
		if errors.Is(err, ErrPrincipalNotFound) {
			return ack, nil
		}
		return nil, fmt.Errorf("failed to look up principal: %w", err)
	}

	token, err := randtoken.Generate(m.tokenLen)
	if err != nil {
		return nil, errors.Join(ErrTokenGeneration, err)
	}

	if err := m.dir.SetResetToken(ctx, p.ID, token, m.now().Add(m.ttl)); err != nil {
		return nil, fmt.Errorf("failed to store reset token: %w", err)
	}

	if m.notifier != nil {
		m.notifier.PasswordReset(p.PrimaryEmail, token)
	}

	return ack, nil
}

// Consume finishes a reset. Called without a new password it only reports
// whether the token is still good (StatusShowForm), so a GET on the reset
// link can render the form without burning the token. With a new password it
// conditionally swaps the hash and clears the token; losing that race reads
// as StatusNotFound. Expired and unknown tokens leave the row untouched.
func (m *ResetManager) Consume(ctx context.Context, token, newPassword string) (Status, error) {
	p, err := m.dir.FindByResetToken(ctx, token)
	if err != nil {
		if errors.Is(err, ErrPrincipalNotFound) {
			return StatusNotFound, nil
		}
		return "", fmt.Errorf("failed to look up reset token: %w", err)
	}

	if p.ResetExpiresAt == nil || m.now().After(*p.ResetExpiresAt) {
		return StatusExpired, nil
	}

	if newPassword == "" {
		return StatusShowForm, nil
	}

	hash, err := m.hasher.Hash(newPassword)
	if err != nil {
		return "", fmt.Errorf("failed to hash new password: %w", err)
	}

	changed, err := m.dir.ConsumeResetToken(ctx, token, hash)
	if err != nil {
		return "", fmt.Errorf("failed to consume reset token: %w", err)
	}
	if !changed {
		return StatusNotFound, nil
	}

	return StatusOK, nil
}
