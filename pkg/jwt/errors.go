package jwt

import "errors"

var (
	ErrInvalidToken       = errors.New("jwt: invalid token")
	ErrExpiredToken       = errors.New("jwt: token is expired")
	ErrMissingKeyMaterial = errors.New("jwt: missing key material")
	ErrInvalidKeyMaterial = errors.New("jwt: invalid key material")
	ErrVerifyOnly         = errors.New("jwt: service has no private key")
)
