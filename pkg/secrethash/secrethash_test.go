package secrethash_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inventorly/identity/pkg/secrethash"
)

func TestHashAndVerify(t *testing.T) {
	t.Parallel()

	hasher := secrethash.New(secrethash.WithCost(4)) // min cost keeps tests fast

	tests := []struct {
		name      string
		plaintext string
	}{
		{name: "simple password", plaintext: "s3cret-password"},
		{name: "empty string", plaintext: ""},
		{name: "unicode", plaintext: "pässwörd-ünïcode"},
		{name: "token sized input", plaintext: strings.Repeat("eyJhbGciOiJSUzI1NiJ9.", 20)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			digest, err := hasher.Hash(tt.plaintext)
			require.NoError(t, err)
			require.NotEmpty(t, digest)
			assert.NotEqual(t, tt.plaintext, digest)

			assert.True(t, hasher.Verify(tt.plaintext, digest))
			assert.False(t, hasher.Verify(tt.plaintext+"x", digest))
		})
	}
}

func TestHashIsSalted(t *testing.T) {
	t.Parallel()

	hasher := secrethash.New(secrethash.WithCost(4))

	first, err := hasher.Hash("same input")
	require.NoError(t, err)
	second, err := hasher.Hash("same input")
	require.NoError(t, err)

	// Per-call random salt must make digests differ while both still verify.
	assert.NotEqual(t, first, second)
	assert.True(t, hasher.Verify("same input", first))
	assert.True(t, hasher.Verify("same input", second))
}

func TestVerifyMalformedDigest(t *testing.T) {
	t.Parallel()

	hasher := secrethash.New()

	assert.False(t, hasher.Verify("anything", ""))
	assert.False(t, hasher.Verify("anything", "not-a-bcrypt-digest"))
	assert.False(t, hasher.Verify("anything", "$2a$garbage"))
}

func TestWithCostOutOfRange(t *testing.T) {
	t.Parallel()

	// Out-of-range costs fall back to the default instead of breaking Hash.
	hasher := secrethash.New(secrethash.WithCost(99))
	digest, err := hasher.Hash("pw")
	require.NoError(t, err)
	assert.True(t, hasher.Verify("pw", digest))
}
