package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/authgate/authgate-server/internal/mocks"
	"github.com/authgate/authgate-server/internal/model"
	"github.com/authgate/authgate-server/internal/testutil"
)

func TestSession_Issue(t *testing.T) {
	ctx := context.Background()
	tokMan := &mocks.TokenManager{}
	bannedStore := &mocks.BannedTokenStore{}

	tokMan.On("Generate", model.Email("a@b.com")).Return("signed.token", nil)

	s := NewSession(tokMan, bannedStore, testutil.MakeNoopLogger())

	token, err := s.Issue(ctx, model.Email("a@b.com"))
	require.NoError(t, err)
	assert.Equal(t, "signed.token", token)
}

func TestSession_Issue_SigningFails(t *testing.T) {
	ctx := context.Background()
	tokMan := &mocks.TokenManager{}
	bannedStore := &mocks.BannedTokenStore{}

	tokMan.On("Generate", model.Email("a@b.com")).Return("", errors.New("signing failed"))

	s := NewSession(tokMan, bannedStore, testutil.MakeNoopLogger())

	_, err := s.Issue(ctx, model.Email("a@b.com"))
	assert.Error(t, err)
}

func TestSession_Validate_Valid(t *testing.T) {
	ctx := context.Background()
	tokMan := &mocks.TokenManager{}
	bannedStore := &mocks.BannedTokenStore{}

	tokMan.On("Parse", "signed.token").Return(model.Claims{Email: model.Email("a@b.com")}, nil)
	bannedStore.On("ContainsToken", mock.Anything, "signed.token").Return(false, nil)

	s := NewSession(tokMan, bannedStore, testutil.MakeNoopLogger())

	claims, err := s.Validate(ctx, "signed.token")
	require.NoError(t, err)
	assert.Equal(t, model.Email("a@b.com"), claims.Email)
}

func TestSession_Validate_BadToken(t *testing.T) {
	ctx := context.Background()
	tokMan := &mocks.TokenManager{}
	bannedStore := &mocks.BannedTokenStore{}

	tokMan.On("Parse", "garbage").Return(model.Claims{}, model.ErrInvalidToken)

	s := NewSession(tokMan, bannedStore, testutil.MakeNoopLogger())

	_, err := s.Validate(ctx, "garbage")
	assert.ErrorIs(t, err, model.ErrInvalidToken)
	bannedStore.AssertNotCalled(t, "AddToken", mock.Anything, mock.Anything)
}

func TestSession_Validate_BannedToken(t *testing.T) {
	ctx := context.Background()
	tokMan := &mocks.TokenManager{}
	bannedStore := &mocks.BannedTokenStore{}

	tokMan.On("Parse", "signed.token").Return(model.Claims{Email: model.Email("a@b.com")}, nil)
	bannedStore.On("ContainsToken", mock.Anything, "signed.token").Return(true, nil)

	s := NewSession(tokMan, bannedStore, testutil.MakeNoopLogger())

	_, err := s.Validate(ctx, "signed.token")
	assert.ErrorIs(t, err, model.ErrInvalidToken)
}

func TestSession_Validate_StoreFailure(t *testing.T) {
	ctx := context.Background()
	tokMan := &mocks.TokenManager{}
	bannedStore := &mocks.BannedTokenStore{}

	tokMan.On("Parse", "signed.token").Return(model.Claims{Email: model.Email("a@b.com")}, nil)
	bannedStore.On("ContainsToken", mock.Anything, "signed.token").Return(false, errors.New("connection refused"))

	s := NewSession(tokMan, bannedStore, testutil.MakeNoopLogger())

	// A store failure must not default to a valid token.
	_, err := s.Validate(ctx, "signed.token")
	require.Error(t, err)
	assert.NotErrorIs(t, err, model.ErrInvalidToken)
}

func TestSession_Revoke(t *testing.T) {
	ctx := context.Background()
	tokMan := &mocks.TokenManager{}
	bannedStore := &mocks.BannedTokenStore{}

	tokMan.On("Parse", "signed.token").Return(model.Claims{Email: model.Email("a@b.com")}, nil)
	bannedStore.On("ContainsToken", mock.Anything, "signed.token").Return(false, nil)
	bannedStore.On("AddToken", mock.Anything, "signed.token").Return(nil)

	s := NewSession(tokMan, bannedStore, testutil.MakeNoopLogger())

	require.NoError(t, s.Revoke(ctx, "signed.token"))
	bannedStore.AssertCalled(t, "AddToken", mock.Anything, "signed.token")
}

func TestSession_Revoke_InvalidTokenMutatesNothing(t *testing.T) {
	ctx := context.Background()
	tokMan := &mocks.TokenManager{}
	bannedStore := &mocks.BannedTokenStore{}

	tokMan.On("Parse", "garbage").Return(model.Claims{}, model.ErrInvalidToken)

	s := NewSession(tokMan, bannedStore, testutil.MakeNoopLogger())

	assert.ErrorIs(t, s.Revoke(ctx, "garbage"), model.ErrInvalidToken)
	bannedStore.AssertNotCalled(t, "AddToken", mock.Anything, mock.Anything)
}
