package identity

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/inventorly/identity/pkg/jwt"
	"github.com/inventorly/identity/pkg/secrethash"
)

var (
	signerOnce sync.Once
	signer     *jwt.Service
	signerErr  error
)

// testSigner returns a shared RS256 signer so the suite pays for key
// generation once.
func testSigner(t *testing.T) *jwt.Service {
	t.Helper()

	signerOnce.Do(func() {
		key, err := rsa.GenerateKey(rand.Reader, 2048)
		if err != nil {
			signerErr = err
			return
		}

		privPEM := pem.EncodeToMemory(&pem.Block{
			Type:  "RSA PRIVATE KEY",
			Bytes: x509.MarshalPKCS1PrivateKey(key),
		})
		pubDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
		if err != nil {
			signerErr = err
			return
		}
		pubPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubDER})

		signer, signerErr = jwt.New(privPEM, pubPEM)
	})
	require.NoError(t, signerErr)
	return signer
}

// testConfig keeps bcrypt cheap and opaque tokens short for fast tests.
func testConfig() Config {
	return Config{
		Issuer:               "identity-test",
		AccessTokenTTL:       15 * time.Minute,
		RefreshTokenTTL:      168 * time.Hour,
		ResetTokenTTL:        30 * time.Minute,
		VerificationTokenTTL: 24 * time.Hour,
		BcryptCost:           4,
		OpaqueTokenLength:    16,
		BaseURL:              "http://localhost:8080",
		LogoutRedirectURL:    "/v1",
	}
}

func testHasher() *secrethash.Hasher {
	return secrethash.New(secrethash.WithCost(4))
}

func testIssuer(t *testing.T, opts ...IssuerOption) *TokenIssuer {
	t.Helper()
	return NewTokenIssuer(testSigner(t), testConfig(), opts...)
}

func testPrincipal() *Principal {
	return &Principal{
		ID:           42,
		FirstName:    "Ada",
		LastName:     "Lovelace",
		PrimaryEmail: "ada@example.com",
	}
}
