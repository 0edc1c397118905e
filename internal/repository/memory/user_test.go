package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/authgate/authgate-server/internal/model"
)

// plainHasher is a fake hasher: the "hash" is the cleartext itself. The
// real argon2 pool is exercised in the password package tests.
type plainHasher struct{}

func (plainHasher) Hash(_ context.Context, password model.Password) (string, error) {
	return string(password), nil
}

func (plainHasher) Verify(_ context.Context, password model.Password, encodedHash string) (bool, error) {
	return string(password) == encodedHash, nil
}

func newTestUser(t *testing.T) model.User {
	t.Helper()
	email, err := model.ParseEmail("mreynolds@serenity.co")
	require.NoError(t, err)
	return model.User{
		Email:        email,
		PasswordHash: "N0thingInTheverse!",
		Requires2FA:  false,
	}
}

func TestUserRepository_AddGet(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(plainHasher{})
	user := newTestUser(t)

	require.NoError(t, repo.AddUser(ctx, user))

	got, err := repo.GetUser(ctx, user.Email)
	require.NoError(t, err)
	assert.Equal(t, user, got)
}

func TestUserRepository_AddDuplicate(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(plainHasher{})
	user := newTestUser(t)

	require.NoError(t, repo.AddUser(ctx, user))
	assert.ErrorIs(t, repo.AddUser(ctx, user), model.ErrUserAlreadyExists)
}

func TestUserRepository_GetUnknown(t *testing.T) {
	repo := NewUserRepository(plainHasher{})

	_, err := repo.GetUser(context.Background(), model.Email("nobody@example.com"))
	assert.ErrorIs(t, err, model.ErrUserNotFound)
}

func TestUserRepository_ValidateUser(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(plainHasher{})
	user := newTestUser(t)
	require.NoError(t, repo.AddUser(ctx, user))

	assert.NoError(t, repo.ValidateUser(ctx, user.Email, model.Password("N0thingInTheverse!")))
	assert.ErrorIs(t,
		repo.ValidateUser(ctx, user.Email, model.Password("WrongPassword1")),
		model.ErrInvalidCredentials)
	assert.ErrorIs(t,
		repo.ValidateUser(ctx, model.Email("nobody@example.com"), model.Password("N0thingInTheverse!")),
		model.ErrUserNotFound)
}

func TestUserRepository_ConcurrentAddUser_OneWinner(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(plainHasher{})
	user := newTestUser(t)

	const n = 32
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = repo.AddUser(ctx, user)
		}(i)
	}
	wg.Wait()

	var successes, duplicates int
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		case assert.ErrorIs(t, err, model.ErrUserAlreadyExists):
			duplicates++
		}
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, n-1, duplicates)
}
