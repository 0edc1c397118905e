package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/authgate/authgate-server/internal/model"
)

func TestTwoFARepository_Roundtrip(t *testing.T) {
	ctx := context.Background()
	client, _ := newTestClient(t)
	repo := NewTwoFARepository(client)
	email := model.Email("test@example.com")
	id := model.NewLoginAttemptID()

	require.NoError(t, repo.AddCode(ctx, email, id, model.TwoFACode("123456")))

	challenge, err := repo.GetCode(ctx, email)
	require.NoError(t, err)
	assert.Equal(t, id, challenge.LoginAttemptID)
	assert.Equal(t, model.TwoFACode("123456"), challenge.Code)

	require.NoError(t, repo.RemoveCode(ctx, email))

	_, err = repo.GetCode(ctx, email)
	assert.ErrorIs(t, err, model.ErrLoginAttemptIDNotFound)
}

func TestTwoFARepository_AddCodeOverwrites(t *testing.T) {
	ctx := context.Background()
	client, _ := newTestClient(t)
	repo := NewTwoFARepository(client)
	email := model.Email("test@example.com")

	first := model.NewLoginAttemptID()
	require.NoError(t, repo.AddCode(ctx, email, first, model.TwoFACode("111111")))

	second := model.NewLoginAttemptID()
	require.NoError(t, repo.AddCode(ctx, email, second, model.TwoFACode("222222")))

	challenge, err := repo.GetCode(ctx, email)
	require.NoError(t, err)
	assert.Equal(t, second, challenge.LoginAttemptID)
	assert.Equal(t, model.TwoFACode("222222"), challenge.Code)
}

func TestTwoFARepository_RemoveMissingCode(t *testing.T) {
	client, _ := newTestClient(t)
	repo := NewTwoFARepository(client)

	err := repo.RemoveCode(context.Background(), model.Email("test@example.com"))
	assert.ErrorIs(t, err, model.ErrLoginAttemptIDNotFound)
}

func TestTwoFARepository_ChallengeExpires(t *testing.T) {
	ctx := context.Background()
	client, mr := newTestClient(t)
	repo := NewTwoFARepository(client)
	email := model.Email("test@example.com")

	require.NoError(t, repo.AddCode(ctx, email, model.NewLoginAttemptID(), model.TwoFACode("123456")))

	mr.FastForward(11 * time.Minute)

	_, err := repo.GetCode(ctx, email)
	assert.ErrorIs(t, err, model.ErrLoginAttemptIDNotFound)
}
