package identity

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/inventorly/identity/pkg/email"
)

// MockDirectory is a mock implementation of Directory.
type MockDirectory struct {
	mock.Mock
}

func (m *MockDirectory) FindByPrimaryEmail(ctx context.Context, email string, withPasswordHash bool) (*Principal, error) {
	args := m.Called(ctx, email, withPasswordHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Principal), args.Error(1)
}

func (m *MockDirectory) FindByBackupEmail(ctx context.Context, email string) (*Principal, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Principal), args.Error(1)
}

func (m *MockDirectory) FindByID(ctx context.Context, id int64, withRefreshHash bool) (*Principal, error) {
	args := m.Called(ctx, id, withRefreshHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Principal), args.Error(1)
}

func (m *MockDirectory) FindByResetToken(ctx context.Context, token string) (*Principal, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Principal), args.Error(1)
}

func (m *MockDirectory) FindByVerificationToken(ctx context.Context, token string, primary bool) (*Principal, error) {
	args := m.Called(ctx, token, primary)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Principal), args.Error(1)
}

func (m *MockDirectory) Create(ctx context.Context, p *Principal) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockDirectory) SetRefreshTokenHash(ctx context.Context, id int64, hash string) error {
	args := m.Called(ctx, id, hash)
	return args.Error(0)
}

func (m *MockDirectory) ClearRefreshTokenHash(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDirectory) SetResetToken(ctx context.Context, id int64, token string, expiresAt time.Time) error {
	args := m.Called(ctx, id, token, expiresAt)
	return args.Error(0)
}

func (m *MockDirectory) ConsumeResetToken(ctx context.Context, token, newPasswordHash string) (bool, error) {
	args := m.Called(ctx, token, newPasswordHash)
	return args.Bool(0), args.Error(1)
}

func (m *MockDirectory) SetVerificationToken(ctx context.Context, id int64, token string, expiresAt time.Time, primary bool) error {
	args := m.Called(ctx, id, token, expiresAt, primary)
	return args.Error(0)
}

func (m *MockDirectory) ConsumeVerificationToken(ctx context.Context, token string, primary bool) (bool, error) {
	args := m.Called(ctx, token, primary)
	return args.Bool(0), args.Error(1)
}

// MockEmailSender is a mock implementation of email.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendEmail(ctx context.Context, params email.SendEmailParams) error {
	args := m.Called(ctx, params)
	return args.Error(0)
}
