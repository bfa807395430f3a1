package identity

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/inventorly/identity/pkg/logger"
	"github.com/inventorly/identity/pkg/secrethash"
)

// Service orchestrates the credential and token flows. It owns the
// collaborators and is the only type the HTTP layer talks to.
type Service struct {
	dir          Directory
	cfg          Config
	log          *slog.Logger
	hasher       *secrethash.Hasher
	issuer       *TokenIssuer
	verifier     *Verifier
	refresh      *RefreshManager
	reset        *ResetManager
	verification *VerificationManager
	notifier     *Notifier
}

type ServiceOption func(*Service)

// WithNotifier enables outgoing reset and verification mail.
func WithNotifier(n *Notifier) ServiceOption {
	return func(s *Service) {
		s.notifier = n
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(log *slog.Logger) ServiceOption {
	return func(s *Service) {
		s.log = log
	}
}

// WithHasher overrides the secret hasher, mainly to lower the bcrypt cost
// in tests.
func WithHasher(h *secrethash.Hasher) ServiceOption {
	return func(s *Service) {
		s.hasher = h
	}
}

// NewService wires the collaborators around a directory and token issuer.
func NewService(dir Directory, issuer *TokenIssuer, cfg Config, opts ...ServiceOption) *Service {
	s := &Service{
		dir:    dir,
		cfg:    cfg,
		issuer: issuer,
		log:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.hasher == nil {
		s.hasher = secrethash.New(secrethash.WithCost(cfg.BcryptCost))
	}

	s.verifier = NewVerifier(dir, s.hasher)
	s.refresh = NewRefreshManager(dir, s.hasher, issuer)
	s.reset = NewResetManager(dir, s.hasher, s.notifier, cfg)
	s.verification = NewVerificationManager(dir, s.notifier, cfg)

	return s
}

// Login verifies the credentials, rotates the refresh token and returns a
// fresh token pair with the sanitized principal.
func (s *Service) Login(ctx context.Context, email, password string) (*TokenPair, *Principal, error) {
	p, err := s.verifier.Validate(ctx, email, password)
	if err != nil {
		return nil, nil, err
	}

	access, err := s.issuer.IssueAccessToken(p)
	if err != nil {
		return nil, nil, err
	}

	refresh, err := s.refresh.Rotate(ctx, p)
	if err != nil {
		return nil, nil, err
	}

	s.log.InfoContext(ctx, "principal logged in",
		logger.PrincipalID(p.ID),
		logger.Component("identity"),
	)

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, p, nil
}

// Refresh exchanges a valid refresh token for a new access token. The
// refresh token itself is not rotated, so it stays good until it expires or
// the session is revoked. The presented token must both carry a valid
// signature and match the hash stored for its subject.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.issuer.Parse(refreshToken)
	if err != nil {
		return "", errors.Join(ErrInvalidRefreshToken, err)
	}

	p, err := s.refresh.Validate(ctx, claims.Subject.ID, refreshToken)
	if err != nil {
		return "", err
	}

	return s.issuer.IssueAccessToken(p)
}

// Logout revokes the subject's refresh tokens and returns the redirect
// target. The access token is decoded without verification so an expired
// session can still be closed, and every failure is swallowed: logout
// always "succeeds" from the client's point of view.
func (s *Service) Logout(ctx context.Context, accessToken string) string {
	id, err := s.issuer.DecodeSubjectID(accessToken)
	if err != nil {
		s.log.DebugContext(ctx, "logout with undecodable token",
			logger.Error(err),
			logger.Component("identity"),
		)
		return s.cfg.LogoutRedirectURL
	}

	if err := s.refresh.Revoke(ctx, id); err != nil {
		s.log.ErrorContext(ctx, "failed to revoke refresh token",
			logger.PrincipalID(id),
			logger.Error(err),
			logger.Component("identity"),
		)
	}

	return s.cfg.LogoutRedirectURL
}

// Register creates a principal with a hashed password and, when configured,
// kicks off primary email verification in the background the same way the
// notifier dispatches mail: failures there are logged, never surfaced to
// the registering client.
func (s *Service) Register(ctx context.Context, in NewPrincipal) (*Principal, error) {
	if in.PrimaryEmail == "" {
		return nil, ErrMissingEmail
	}
	if in.Password == "" {
		return nil, ErrMissingPassword
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	p := &Principal{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		PrimaryEmail: in.PrimaryEmail,
		BackupEmail:  in.BackupEmail,
		PasswordHash: hash,
	}

	if err := s.dir.Create(ctx, p); err != nil {
		return nil, err
	}

	if s.cfg.AutoSendVerification {
		go func() {
			defer func() {
				if r := recover(); r != nil {
					s.log.Error("verification request panicked",
						logger.PrincipalID(p.ID),
						slog.Any("panic", r),
						logger.Component("identity"),
					)
				}
			}()

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := s.verification.RequestForPrincipal(ctx, p, p.PrimaryEmail, true); err != nil {
				s.log.Error("failed to request email verification",
					logger.PrincipalID(p.ID),
					logger.Error(err),
					logger.Component("identity"),
				)
			}
		}()
	}

	return p.Sanitized(), nil
}

// RequestPasswordReset starts a reset flow for the primary email.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) (*Acknowledgment, error) {
	return s.reset.Request(ctx, email)
}

// ConsumePasswordReset finishes a reset flow; see ResetManager.Consume.
func (s *Service) ConsumePasswordReset(ctx context.Context, token, newPassword string) (Status, error) {
	return s.reset.Consume(ctx, token, newPassword)
}

// RequestEmailVerification starts verification for a primary or backup
// address.
func (s *Service) RequestEmailVerification(ctx context.Context, email string, primary bool) (*Acknowledgment, error) {
	return s.verification.Request(ctx, email, primary)
}

// ConsumeEmailVerification finishes a verification flow; see
// VerificationManager.Consume.
func (s *Service) ConsumeEmailVerification(ctx context.Context, token string, primary bool) (Status, error) {
	return s.verification.Consume(ctx, token, primary)
}
