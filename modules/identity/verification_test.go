package identity

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestVerificationManager_Request(t *testing.T) {
	t.Parallel()

	t.Run("primary address goes through the primary column", func(t *testing.T) {
		t.Parallel()

		dir := &MockDirectory{}
		p := testPrincipal()
		dir.On("FindByPrimaryEmail", mock.Anything, p.PrimaryEmail, false).Return(p, nil)
		dir.On("SetVerificationToken", mock.Anything, p.ID, mock.AnythingOfType("string"), mock.AnythingOfType("time.Time"), true).
			Return(nil)

		m := NewVerificationManager(dir, nil, testConfig())
		ack, err := m.Request(context.Background(), p.PrimaryEmail, true)
		require.NoError(t, err)
		require.NotNil(t, ack)
		dir.AssertExpectations(t)
		dir.AssertNotCalled(t, "FindByBackupEmail", mock.Anything, mock.Anything)
	})

	t.Run("backup address goes through the backup column", func(t *testing.T) {
		t.Parallel()

		dir := &MockDirectory{}
		p := testPrincipal()
		p.BackupEmail = "ada.backup@example.com"
		dir.On("FindByBackupEmail", mock.Anything, p.BackupEmail).Return(p, nil)
		dir.On("SetVerificationToken", mock.Anything, p.ID, mock.AnythingOfType("string"), mock.AnythingOfType("time.Time"), false).
			Return(nil)

		m := NewVerificationManager(dir, nil, testConfig())
		_, err := m.Request(context.Background(), p.BackupEmail, false)
		require.NoError(t, err)
		dir.AssertExpectations(t)
	})

	t.Run("unknown address gets the same acknowledgment", func(t *testing.T) {
		t.Parallel()

		dir := &MockDirectory{}
		dir.On("FindByPrimaryEmail", mock.Anything, "ghost@example.com", false).
			Return(nil, ErrPrincipalNotFound)

		m := NewVerificationManager(dir, nil, testConfig())
		ack, err := m.Request(context.Background(), "ghost@example.com", true)
		require.NoError(t, err)
		assert.Contains(t, ack.Message, "ghost@example.com")
		dir.AssertNotCalled(t, "SetVerificationToken", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestVerificationManager_Consume(t *testing.T) {
	t.Parallel()

	future := time.Now().Add(time.Hour)
	past := time.Now().Add(-time.Hour)

	t.Run("valid primary token verifies the address once", func(t *testing.T) {
		t.Parallel()

		dir := &MockDirectory{}
		p := testPrincipal()
		p.PrimaryVerificationToken = "tok"
		p.PrimaryVerificationExpiresAt = &future
		dir.On("FindByVerificationToken", mock.Anything, "tok", true).Return(p, nil)
		dir.On("ConsumeVerificationToken", mock.Anything, "tok", true).Return(true, nil).Once()
		dir.On("ConsumeVerificationToken", mock.Anything, "tok", true).Return(false, nil)

		m := NewVerificationManager(dir, nil, testConfig())

		st, err := m.Consume(context.Background(), "tok", true)
		require.NoError(t, err)
		assert.Equal(t, StatusOK, st)

		st, err = m.Consume(context.Background(), "tok", true)
		require.NoError(t, err)
		assert.Equal(t, StatusNotFound, st)
	})

	t.Run("backup expiry does not gate the primary flow", func(t *testing.T) {
		t.Parallel()

		dir := &MockDirectory{}
		p := testPrincipal()
		p.PrimaryVerificationToken = "tok"
		p.PrimaryVerificationExpiresAt = &future
		p.BackupVerificationToken = "other"
		p.BackupVerificationExpiresAt = &past
		dir.On("FindByVerificationToken", mock.Anything, "tok", true).Return(p, nil)
		dir.On("ConsumeVerificationToken", mock.Anything, "tok", true).Return(true, nil)

		m := NewVerificationManager(dir, nil, testConfig())
		st, err := m.Consume(context.Background(), "tok", true)
		require.NoError(t, err)
		assert.Equal(t, StatusOK, st)
	})

	t.Run("expired token is reported and left in place", func(t *testing.T) {
		t.Parallel()

		dir := &MockDirectory{}
		p := testPrincipal()
		p.BackupVerificationToken = "tok"
		p.BackupVerificationExpiresAt = &past
		dir.On("FindByVerificationToken", mock.Anything, "tok", false).Return(p, nil)

		m := NewVerificationManager(dir, nil, testConfig())
		st, err := m.Consume(context.Background(), "tok", false)
		require.NoError(t, err)
		assert.Equal(t, StatusExpired, st)
		dir.AssertNotCalled(t, "ConsumeVerificationToken", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown token", func(t *testing.T) {
		t.Parallel()

		dir := &MockDirectory{}
		dir.On("FindByVerificationToken", mock.Anything, "nope", true).
			Return(nil, ErrPrincipalNotFound)

		m := NewVerificationManager(dir, nil, testConfig())
		st, err := m.Consume(context.Background(), "nope", true)
		require.NoError(t, err)
		assert.Equal(t, StatusNotFound, st)
	})
}
