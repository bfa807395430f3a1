package jwt

import (
	"crypto/rsa"
	"errors"
	"fmt"

	jwtv5 "github.com/golang-jwt/jwt/v5"
)

// SigningAlgorithm is the only algorithm accepted for signing and
// verification. Pinning it prevents algorithm confusion attacks.
const SigningAlgorithm = "RS256"

// Service signs and verifies bearer tokens with an RSA key pair. Signing
// requires the private key; verification needs only the public key, so
// consumers can validate tokens without any shared secret or storage
// round-trip.
type Service struct {
	privateKey *rsa.PrivateKey
	publicKey  *rsa.PublicKey
}

// New creates a Service able to both sign and verify, from PEM-encoded key
// material loaded at process start. The pair is not generated here.
func New(privatePEM, publicPEM []byte) (*Service, error) {
	if len(privatePEM) == 0 || len(publicPEM) == 0 {
		return nil, ErrMissingKeyMaterial
	}

	privateKey, err := jwtv5.ParseRSAPrivateKeyFromPEM(privatePEM)
	if err != nil {
		return nil, errors.Join(ErrInvalidKeyMaterial, err)
	}
	publicKey, err := jwtv5.ParseRSAPublicKeyFromPEM(publicPEM)
	if err != nil {
		return nil, errors.Join(ErrInvalidKeyMaterial, err)
	}

	return &Service{privateKey: privateKey, publicKey: publicKey}, nil
}

// NewVerifier creates a verify-only Service from a PEM-encoded public key.
// Sign returns ErrVerifyOnly on such a service.
func NewVerifier(publicPEM []byte) (*Service, error) {
	if len(publicPEM) == 0 {
		return nil, ErrMissingKeyMaterial
	}

	publicKey, err := jwtv5.ParseRSAPublicKeyFromPEM(publicPEM)
	if err != nil {
		return nil, errors.Join(ErrInvalidKeyMaterial, err)
	}

	return &Service{publicKey: publicKey}, nil
}

// Sign produces an RS256-signed token carrying the given claims. A signing
// failure is fatal to the request; callers must surface the error, never a
// degraded token.
func (s *Service) Sign(claims jwtv5.Claims) (string, error) {
	if s.privateKey == nil {
		return "", ErrVerifyOnly
	}

	signed, err := jwtv5.NewWithClaims(jwtv5.SigningMethodRS256, claims).SignedString(s.privateKey)
	if err != nil {
		return "", fmt.Errorf("jwt: failed to sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies the token's signature and temporal claims, unmarshalling
// its payload into claims. Expired tokens report ErrExpiredToken; every
// other verification failure collapses into ErrInvalidToken.
func (s *Service) Parse(token string, claims jwtv5.Claims) error {
	parser := jwtv5.NewParser(jwtv5.WithValidMethods([]string{SigningAlgorithm}))

	_, err := parser.ParseWithClaims(token, claims, func(*jwtv5.Token) (any, error) {
		return s.publicKey, nil
	})
	if err != nil {
		if errors.Is(err, jwtv5.ErrTokenExpired) {
			return errors.Join(ErrExpiredToken, err)
		}
		return errors.Join(ErrInvalidToken, err)
	}
	return nil
}

// Decode unmarshals the token's claims WITHOUT verifying the signature or
// any temporal claim. It exists for the narrow logout case where an expired
// token must still identify its subject; nothing decoded this way may be
// trusted for authorization.
func Decode(token string, claims jwtv5.Claims) error {
	parser := jwtv5.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return errors.Join(ErrInvalidToken, err)
	}
	return nil
}
