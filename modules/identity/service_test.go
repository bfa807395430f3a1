package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, dir Directory, cfg Config) *Service {
	t.Helper()
	return NewService(dir, NewTokenIssuer(testSigner(t), cfg), cfg, WithHasher(testHasher()))
}

func TestService_Login(t *testing.T) {
	t.Parallel()

	hasher := testHasher()
	hash, err := hasher.Hash("correct horse")
	require.NoError(t, err)

	t.Run("returns token pair and sanitized principal", func(t *testing.T) {
		t.Parallel()

		dir := &MockDirectory{}
		p := testPrincipal()
		p.PasswordHash = hash
		dir.On("FindByPrimaryEmail", mock.Anything, p.PrimaryEmail, true).Return(p, nil)
		dir.On("SetRefreshTokenHash", mock.Anything, p.ID, mock.AnythingOfType("string")).Return(nil)

		svc := newTestService(t, dir, testConfig())
		pair, got, err := svc.Login(context.Background(), p.PrimaryEmail, "correct horse")
		require.NoError(t, err)

		assert.Empty(t, got.PasswordHash)

		claims, err := svc.issuer.Parse(pair.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, p.ID, claims.Subject.ID)
		assert.Equal(t, p.PrimaryEmail, claims.Username)

		_, err = svc.issuer.Parse(pair.RefreshToken)
		require.NoError(t, err)
		dir.AssertExpectations(t)
	})

	t.Run("bad credentials issue nothing", func(t *testing.T) {
		t.Parallel()

		dir := &MockDirectory{}
		dir.On("FindByPrimaryEmail", mock.Anything, "ghost@example.com", true).
			Return(nil, ErrPrincipalNotFound)

		svc := newTestService(t, dir, testConfig())
		_, _, err := svc.Login(context.Background(), "ghost@example.com", "whatever")
		require.ErrorIs(t, err, ErrInvalidCredentials)
		dir.AssertNotCalled(t, "SetRefreshTokenHash", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestService_Refresh(t *testing.T) {
	t.Parallel()

	hasher := testHasher()

	t.Run("valid refresh token yields a new access token", func(t *testing.T) {
		t.Parallel()

		dir := &MockDirectory{}
		p := testPrincipal()
		svc := newTestService(t, dir, testConfig())

		refresh, err := svc.issuer.IssueRefreshToken(p)
		require.NoError(t, err)
		hash, err := hasher.Hash(refresh)
		require.NoError(t, err)

		stored := *p
		stored.RefreshTokenHash = hash
		dir.On("FindByID", mock.Anything, p.ID, true).Return(&stored, nil)

		access, err := svc.Refresh(context.Background(), refresh)
		require.NoError(t, err)

		claims, err := svc.issuer.Parse(access)
		require.NoError(t, err)
		assert.Equal(t, p.ID, claims.Subject.ID)
	})

	t.Run("garbage token never reaches the directory", func(t *testing.T) {
		t.Parallel()

		dir := &MockDirectory{}
		svc := newTestService(t, dir, testConfig())

		_, err := svc.Refresh(context.Background(), "not.a.token")
		require.ErrorIs(t, err, ErrInvalidRefreshToken)
		dir.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("well signed token of a revoked session is rejected", func(t *testing.T) {
		t.Parallel()

		dir := &MockDirectory{}
		p := testPrincipal()
		svc := newTestService(t, dir, testConfig())

		refresh, err := svc.issuer.IssueRefreshToken(p)
		require.NoError(t, err)

		dir.On("FindByID", mock.Anything, p.ID, true).Return(p, nil)

		_, err = svc.Refresh(context.Background(), refresh)
		require.ErrorIs(t, err, ErrInvalidRefreshToken)
	})
}

func TestService_Logout(t *testing.T) {
	t.Parallel()

	t.Run("revokes and returns redirect target", func(t *testing.T) {
		t.Parallel()

		dir := &MockDirectory{}
		dir.On("ClearRefreshTokenHash", mock.Anything, int64(42)).Return(nil)

		svc := newTestService(t, dir, testConfig())
		token, err := svc.issuer.IssueAccessToken(testPrincipal())
		require.NoError(t, err)

		assert.Equal(t, "/v1", svc.Logout(context.Background(), token))
		dir.AssertExpectations(t)
	})

	t.Run("expired token still identifies the session to revoke", func(t *testing.T) {
		t.Parallel()

		dir := &MockDirectory{}
		dir.On("ClearRefreshTokenHash", mock.Anything, int64(42)).Return(nil)

		cfg := testConfig()
		svc := newTestService(t, dir, cfg)
		past := time.Now().Add(-48 * time.Hour)
		expiredIssuer := NewTokenIssuer(testSigner(t), cfg, WithClock(func() time.Time { return past }))
		token, err := expiredIssuer.IssueAccessToken(testPrincipal())
		require.NoError(t, err)

		assert.Equal(t, "/v1", svc.Logout(context.Background(), token))
		dir.AssertExpectations(t)
	})

	t.Run("undecodable token is swallowed", func(t *testing.T) {
		t.Parallel()

		dir := &MockDirectory{}
		svc := newTestService(t, dir, testConfig())

		assert.Equal(t, "/v1", svc.Logout(context.Background(), "garbage"))
		dir.AssertNotCalled(t, "ClearRefreshTokenHash", mock.Anything, mock.Anything)
	})

	t.Run("revocation failure is swallowed too", func(t *testing.T) {
		t.Parallel()

		dir := &MockDirectory{}
		dir.On("ClearRefreshTokenHash", mock.Anything, int64(42)).Return(errors.New("connection reset"))

		svc := newTestService(t, dir, testConfig())
		token, err := svc.issuer.IssueAccessToken(testPrincipal())
		require.NoError(t, err)

		assert.Equal(t, "/v1", svc.Logout(context.Background(), token))
	})
}

func TestService_Register(t *testing.T) {
	t.Parallel()

	t.Run("creates principal with hashed password", func(t *testing.T) {
		t.Parallel()

		dir := &MockDirectory{}
		var created *Principal
		dir.On("Create", mock.Anything, mock.AnythingOfType("*identity.Principal")).
			Run(func(args mock.Arguments) {
				created = args.Get(1).(*Principal)
				created.ID = 7
			}).
			Return(nil)

		svc := newTestService(t, dir, testConfig())
		p, err := svc.Register(context.Background(), NewPrincipal{
			FirstName:    "Grace",
			LastName:     "Hopper",
			PrimaryEmail: "grace@example.com",
			Password:     "cobol forever",
		})
		require.NoError(t, err)

		assert.Equal(t, int64(7), p.ID)
		assert.Empty(t, p.PasswordHash)
		assert.NotEqual(t, "cobol forever", created.PasswordHash)
		assert.True(t, testHasher().Verify("cobol forever", created.PasswordHash))
	})

	t.Run("duplicate email surfaces as taken", func(t *testing.T) {
		t.Parallel()

		dir := &MockDirectory{}
		dir.On("Create", mock.Anything, mock.Anything).Return(ErrEmailTaken)

		svc := newTestService(t, dir, testConfig())
		_, err := svc.Register(context.Background(), NewPrincipal{
			PrimaryEmail: "grace@example.com",
			Password:     "cobol forever",
		})
		require.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("rejects empty required fields", func(t *testing.T) {
		t.Parallel()

		svc := newTestService(t, &MockDirectory{}, testConfig())

		_, err := svc.Register(context.Background(), NewPrincipal{Password: "pw"})
		require.ErrorIs(t, err, ErrMissingEmail)

		_, err = svc.Register(context.Background(), NewPrincipal{PrimaryEmail: "a@b.co"})
		require.ErrorIs(t, err, ErrMissingPassword)
	})

	t.Run("auto verification stores a token in the background", func(t *testing.T) {
		t.Parallel()

		dir := &MockDirectory{}
		dir.On("Create", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { args.Get(1).(*Principal).ID = 7 }).
			Return(nil)

		done := make(chan struct{})
		dir.On("SetVerificationToken", mock.Anything, int64(7), mock.AnythingOfType("string"), mock.AnythingOfType("time.Time"), true).
			Run(func(mock.Arguments) { close(done) }).
			Return(nil)

		cfg := testConfig()
		cfg.AutoSendVerification = true
		svc := newTestService(t, dir, cfg)

		_, err := svc.Register(context.Background(), NewPrincipal{
			PrimaryEmail: "grace@example.com",
			Password:     "cobol forever",
		})
		require.NoError(t, err)

		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("verification token was never stored")
		}
	})
}
