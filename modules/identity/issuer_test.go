package identity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenIssuer_IssueAndParse(t *testing.T) {
	t.Parallel()

	issuer := testIssuer(t)
	p := testPrincipal()

	t.Run("access token carries structured subject", func(t *testing.T) {
		t.Parallel()

		token, err := issuer.IssueAccessToken(p)
		require.NoError(t, err)
		require.NotEmpty(t, token)

		claims, err := issuer.Parse(token)
		require.NoError(t, err)

		assert.Equal(t, p.PrimaryEmail, claims.Username)
		assert.Equal(t, p.ID, claims.Subject.ID)
		assert.Equal(t, p.FirstName, claims.Subject.FirstName)
		assert.Equal(t, p.LastName, claims.Subject.LastName)
		assert.Equal(t, "identity-test", claims.Issuer)
		assert.NotEmpty(t, claims.TokenID)

		sub, err := claims.GetSubject()
		require.NoError(t, err)
		assert.Equal(t, "42", sub)
	})

	t.Run("refresh token outlives access token", func(t *testing.T) {
		t.Parallel()

		access, err := issuer.IssueAccessToken(p)
		require.NoError(t, err)
		refresh, err := issuer.IssueRefreshToken(p)
		require.NoError(t, err)

		ac, err := issuer.Parse(access)
		require.NoError(t, err)
		rc, err := issuer.Parse(refresh)
		require.NoError(t, err)

		assert.True(t, rc.ExpiresAt.After(ac.ExpiresAt.Time))
	})

	t.Run("tokens get unique jti", func(t *testing.T) {
		t.Parallel()

		a, err := issuer.IssueAccessToken(p)
		require.NoError(t, err)
		b, err := issuer.IssueAccessToken(p)
		require.NoError(t, err)

		ca, err := issuer.Parse(a)
		require.NoError(t, err)
		cb, err := issuer.Parse(b)
		require.NoError(t, err)

		assert.NotEqual(t, ca.TokenID, cb.TokenID)
	})
}

func TestTokenIssuer_Parse_Expired(t *testing.T) {
	t.Parallel()

	past := time.Now().Add(-48 * time.Hour)
	issuer := testIssuer(t, WithClock(func() time.Time { return past }))

	token, err := issuer.IssueAccessToken(testPrincipal())
	require.NoError(t, err)

	_, err = issuer.Parse(token)
	require.ErrorIs(t, err, ErrInvalidAccessToken)
}

func TestTokenIssuer_Parse_Garbage(t *testing.T) {
	t.Parallel()

	_, err := testIssuer(t).Parse("not.a.token")
	require.ErrorIs(t, err, ErrInvalidAccessToken)
}

func TestTokenIssuer_DecodeSubjectID(t *testing.T) {
	t.Parallel()

	t.Run("extracts subject from expired token", func(t *testing.T) {
		t.Parallel()

		past := time.Now().Add(-48 * time.Hour)
		issuer := testIssuer(t, WithClock(func() time.Time { return past }))

		token, err := issuer.IssueAccessToken(testPrincipal())
		require.NoError(t, err)

		id, err := issuer.DecodeSubjectID(token)
		require.NoError(t, err)
		assert.Equal(t, int64(42), id)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		t.Parallel()

		_, err := testIssuer(t).DecodeSubjectID("garbage")
		require.ErrorIs(t, err, ErrInvalidAccessToken)
	})

	t.Run("rejects token without subject", func(t *testing.T) {
		t.Parallel()

		issuer := testIssuer(t)
		token, err := issuer.IssueAccessToken(&Principal{PrimaryEmail: "no-id@example.com"})
		require.NoError(t, err)

		_, err = issuer.DecodeSubjectID(token)
		require.ErrorIs(t, err, ErrInvalidAccessToken)
	})
}
