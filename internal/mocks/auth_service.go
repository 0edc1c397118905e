package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/authgate/authgate-server/internal/model"
)

// AuthService is a mock of the handler-facing authentication service.
type AuthService struct {
	mock.Mock
}

func (m *AuthService) Signup(ctx context.Context, email, password string, requires2FA bool) error {
	args := m.Called(ctx, email, password, requires2FA)
	return args.Error(0)
}

func (m *AuthService) Login(ctx context.Context, email, password string) (model.LoginResult, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(model.LoginResult), args.Error(1)
}

func (m *AuthService) VerifySecondFactor(ctx context.Context, email, loginAttemptID, code string) (string, error) {
	args := m.Called(ctx, email, loginAttemptID, code)
	return args.String(0), args.Error(1)
}

func (m *AuthService) VerifyToken(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *AuthService) Logout(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}
