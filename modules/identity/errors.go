package identity

import "errors"

// Credential errors
var (
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrInvalidAccessToken  = errors.New("invalid access token")
)

// Registration errors
var (
	ErrEmailTaken      = errors.New("primary email already registered")
	ErrMissingPassword = errors.New("password is required")
	ErrMissingEmail    = errors.New("primary email is required")
)

// Infrastructure errors
var (
	ErrPrincipalNotFound = errors.New("principal not found")
	ErrTokenSigning      = errors.New("failed to sign token")
	ErrTokenGeneration   = errors.New("failed to generate token")
)
