package identity

import "time"

// Config holds token lifetimes and flow parameters for the identity module.
type Config struct {
	// Issuer is stamped into the iss claim of every signed token.
	Issuer string `env:"IDENTITY_TOKEN_ISSUER" envDefault:"identity"`

	AccessTokenTTL       time.Duration `env:"IDENTITY_ACCESS_TOKEN_TTL" envDefault:"15m"`
	RefreshTokenTTL      time.Duration `env:"IDENTITY_REFRESH_TOKEN_TTL" envDefault:"168h"`
	ResetTokenTTL        time.Duration `env:"IDENTITY_RESET_TOKEN_TTL" envDefault:"30m"`
	VerificationTokenTTL time.Duration `env:"IDENTITY_VERIFICATION_TOKEN_TTL" envDefault:"24h"`

	// BcryptCost applies to passwords and refresh token hashes alike.
	BcryptCost int `env:"IDENTITY_BCRYPT_COST" envDefault:"10"`

	// OpaqueTokenLength is the entropy in bytes behind reset and
	// verification tokens; the hex form on the wire is twice as long.
	OpaqueTokenLength int `env:"IDENTITY_OPAQUE_TOKEN_LENGTH" envDefault:"256"`

	// BaseURL is the externally reachable root used to build links in
	// outgoing mail, without a trailing slash.
	BaseURL string `env:"IDENTITY_BASE_URL" envDefault:"http://localhost:8080"`

	// LogoutRedirectURL is returned by every logout call regardless of
	// whether revocation succeeded.
	LogoutRedirectURL string `env:"IDENTITY_LOGOUT_REDIRECT_URL" envDefault:"/v1"`

	// AutoSendVerification triggers a primary email verification request
	// right after registration.
	AutoSendVerification bool `env:"IDENTITY_AUTO_SEND_VERIFICATION" envDefault:"true"`
}
