package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/inventorly/identity/pkg/randtoken"
)

// VerificationManager drives email verification for the primary and backup
// addresses. Each address keeps its own token and expiry, so a pending
// backup verification never shortens or clobbers the primary one.
type VerificationManager struct {
	dir      Directory
	notifier *Notifier
	tokenLen int
	ttl      time.Duration
	now      func() time.Time
}

// NewVerificationManager creates a VerificationManager. A nil notifier
// disables outgoing mail but leaves the flow itself intact.
func NewVerificationManager(dir Directory, notifier *Notifier, cfg Config) *VerificationManager {
	return &VerificationManager{
		dir:      dir,
		notifier: notifier,
		tokenLen: cfg.OpaqueTokenLength,
		ttl:      cfg.VerificationTokenTTL,
		now:      time.Now,
	}
}

// Request issues a verification token for the address and mails the link.
// The lookup goes through the primary or backup column depending on which
// address is being verified. The acknowledgment is identical whether or not
// the address is registered.
func (m *VerificationManager) Request(ctx context.Context, email string, primary bool) (*Acknowledgment, error) {
	ack := &Acknowledgment{
		Message: fmt.Sprintf("If your email %s is found, you will receive an email shortly to verify it.", email),
	}

	var (
		p   *Principal
		err error
	)
	if primary {
		p, err = m.dir.FindByPrimaryEmail(ctx, email, false)
	} else {
		p, err = m.dir.FindByBackupEmail(ctx, email)
	}
	if err != nil {
		if errors.Is(err, ErrPrincipalNotFound) {
			return ack, nil
		}
		return nil, fmt.Errorf("failed to look up principal: %w", err)
	}

	if err := m.RequestForPrincipal(ctx, p, email, primary); err != nil {
		return nil, err
	}

	return ack, nil
}

// RequestForPrincipal issues and stores a verification token for an already
// loaded principal. Registration uses this directly to skip the re-lookup.
func (m *VerificationManager) RequestForPrincipal(ctx context.Context, p *Principal, email string, primary bool) error {
	token, err := randtoken.Generate(m.tokenLen)
	if err != nil {
		return errors.Join(ErrTokenGeneration, err)
	}

	if err := m.dir.SetVerificationToken(ctx, p.ID, token, m.now().Add(m.ttl), primary); err != nil {
		return fmt.Errorf("failed to store verification token: %w", err)
	}

	if m.notifier != nil {
		m.notifier.EmailVerification(email, token, primary)
	}

	return nil
}

// Consume marks the address verified and clears its token, conditionally so
// a token can be used exactly once. Expired and unknown tokens leave the row
// untouched.
func (m *VerificationManager) Consume(ctx context.Context, token string, primary bool) (Status, error) {
	p, err := m.dir.FindByVerificationToken(ctx, token, primary)
	if err != nil {
		if errors.Is(err, ErrPrincipalNotFound) {
			return StatusNotFound, nil
		}
		return "", fmt.Errorf("failed to look up verification token: %w", err)
	}

	expiresAt := p.PrimaryVerificationExpiresAt
	if !primary {
		expiresAt = p.BackupVerificationExpiresAt
	}
	if expiresAt == nil || m.now().After(*expiresAt) {
		return StatusExpired, nil
	}

	changed, err := m.dir.ConsumeVerificationToken(ctx, token, primary)
	if err != nil {
		return "", fmt.Errorf("failed to consume verification token: %w", err)
	}
	if !changed {
		return StatusNotFound, nil
	}

	return StatusOK, nil
}
