// Package identity implements credential and token lifecycle management for
// principals: password verification, RS256 JWT issuance, refresh token
// rotation, password reset and email verification flows.
//
// The package is organized around small collaborators that share a Directory
// (the persistence port) and are wired together by Service, the orchestrator
// the HTTP layer talks to:
//
//   - Verifier checks a primary email / password pair against stored hashes.
//   - TokenIssuer signs and parses RS256 access and refresh tokens.
//   - RefreshManager persists bcrypt hashes of refresh tokens and validates
//     presented tokens against them.
//   - ResetManager drives the password reset flow with enumeration-safe
//     acknowledgments and single-use tokens.
//   - VerificationManager drives primary and backup email verification.
//   - Notifier delivers reset and verification mail asynchronously.
//
// Example wiring:
//
//	signer, _ := jwt.New(privatePEM, publicPEM)
//	issuer := identity.NewTokenIssuer(signer, cfg)
//	svc := identity.NewService(dir, issuer, cfg,
//		identity.WithNotifier(notifier),
//		identity.WithLogger(log),
//	)
//
//	r := chi.NewRouter()
//	r.Mount("/v1/auth", identity.Router(svc))
//
// All lookups that fail, whether because the principal does not exist or the
// secret does not match, collapse into the same sentinel errors so callers
// cannot distinguish the two cases.
package identity
