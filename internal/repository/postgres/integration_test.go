//go:build integration

package postgres_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/authgate/authgate-server/internal/model"
	"github.com/authgate/authgate-server/internal/password"
	repo "github.com/authgate/authgate-server/internal/repository/postgres"
)

var dsn string

func TestMain(m *testing.M) {
	ctx := context.Background()
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:15-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "password",
				"POSTGRES_DB":       "authgate_test",
			},
			WaitingFor: wait.ForListeningPort("5432/tcp").WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		panic(err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		panic(err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		panic(err)
	}
	dsn = fmt.Sprintf("postgres://postgres:password@%s:%s/authgate_test?sslmode=disable", host, port.Port())

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func newHasher(t *testing.T) model.PasswordHasher {
	t.Helper()
	a, err := password.NewArgon2(password.Config{
		Memory:      8 * 1024,
		Time:        1,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   32,
	})
	require.NoError(t, err)
	return password.NewPool(a, 2)
}

func TestUserRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	hasher := newHasher(t)
	users := repo.NewUserRepository(conn, hasher)

	email, err := model.ParseEmail("mreynolds@serenity.co")
	require.NoError(t, err)

	hash, err := hasher.Hash(ctx, model.Password("N0thingInTheverse!"))
	require.NoError(t, err)

	user := model.User{Email: email, PasswordHash: hash, Requires2FA: true}
	require.NoError(t, users.AddUser(ctx, user))

	// Duplicate insert trips the primary-key constraint.
	assert.ErrorIs(t, users.AddUser(ctx, user), model.ErrUserAlreadyExists)

	got, err := users.GetUser(ctx, email)
	require.NoError(t, err)
	assert.Equal(t, email, got.Email)
	assert.Equal(t, hash, got.PasswordHash)
	assert.True(t, got.Requires2FA)

	_, err = users.GetUser(ctx, model.Email("nobody@example.com"))
	assert.ErrorIs(t, err, model.ErrUserNotFound)

	assert.NoError(t, users.ValidateUser(ctx, email, model.Password("N0thingInTheverse!")))
	assert.ErrorIs(t,
		users.ValidateUser(ctx, email, model.Password("WrongPassword1")),
		model.ErrInvalidCredentials)
	assert.ErrorIs(t,
		users.ValidateUser(ctx, model.Email("nobody@example.com"), model.Password("N0thingInTheverse!")),
		model.ErrUserNotFound)
}
