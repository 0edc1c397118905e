// Package mocks provides testify mocks for the domain contracts.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/authgate/authgate-server/internal/model"
)

// UserStore is a mock implementation of model.UserStore.
type UserStore struct {
	mock.Mock
}

func (m *UserStore) AddUser(ctx context.Context, user model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserStore) GetUser(ctx context.Context, email model.Email) (model.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *UserStore) ValidateUser(ctx context.Context, email model.Email, password model.Password) error {
	args := m.Called(ctx, email, password)
	return args.Error(0)
}

// BannedTokenStore is a mock implementation of model.BannedTokenStore.
type BannedTokenStore struct {
	mock.Mock
}

func (m *BannedTokenStore) AddToken(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *BannedTokenStore) ContainsToken(ctx context.Context, token string) (bool, error) {
	args := m.Called(ctx, token)
	return args.Bool(0), args.Error(1)
}

// TwoFACodeStore is a mock implementation of model.TwoFACodeStore.
type TwoFACodeStore struct {
	mock.Mock
}

func (m *TwoFACodeStore) AddCode(ctx context.Context, email model.Email, id model.LoginAttemptID, code model.TwoFACode) error {
	args := m.Called(ctx, email, id, code)
	return args.Error(0)
}

func (m *TwoFACodeStore) GetCode(ctx context.Context, email model.Email) (model.Challenge, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(model.Challenge), args.Error(1)
}

func (m *TwoFACodeStore) RemoveCode(ctx context.Context, email model.Email) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

// TokenManager is a mock implementation of model.TokenManager.
type TokenManager struct {
	mock.Mock
}

func (m *TokenManager) Generate(email model.Email) (string, error) {
	args := m.Called(email)
	return args.String(0), args.Error(1)
}

func (m *TokenManager) Parse(token string) (model.Claims, error) {
	args := m.Called(token)
	return args.Get(0).(model.Claims), args.Error(1)
}

// PasswordHasher is a mock implementation of model.PasswordHasher.
type PasswordHasher struct {
	mock.Mock
}

func (m *PasswordHasher) Hash(ctx context.Context, password model.Password) (string, error) {
	args := m.Called(ctx, password)
	return args.String(0), args.Error(1)
}

func (m *PasswordHasher) Verify(ctx context.Context, password model.Password, encodedHash string) (bool, error) {
	args := m.Called(ctx, password, encodedHash)
	return args.Bool(0), args.Error(1)
}

// EmailClient is a mock implementation of model.EmailClient.
type EmailClient struct {
	mock.Mock
}

func (m *EmailClient) SendCode(ctx context.Context, email model.Email, code model.TwoFACode) error {
	args := m.Called(ctx, email, code)
	return args.Error(0)
}
