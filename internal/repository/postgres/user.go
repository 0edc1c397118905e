package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/authgate/authgate-server/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

type UserRepository struct {
	db     *Connection
	hasher model.PasswordHasher
}

func NewUserRepository(db *Connection, hasher model.PasswordHasher) *UserRepository {
	return &UserRepository{
		db:     db,
		hasher: hasher,
	}
}

// AddUser inserts the user relying on the primary-key constraint for
// uniqueness, so concurrent signups for the same email cannot both succeed.
func (r *UserRepository) AddUser(ctx context.Context, user model.User) error {
	query := `INSERT INTO users (email, password_hash, requires_2fa) VALUES ($1, $2, $3)`

	if _, err := r.db.Exec(ctx, query, user.Email.String(), user.PasswordHash, user.Requires2FA); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return model.ErrUserAlreadyExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (r *UserRepository) GetUser(ctx context.Context, email model.Email) (model.User, error) {
	var user model.User
	query := `SELECT email, password_hash, requires_2fa FROM users WHERE email = $1`

	var storedEmail string
	err := r.db.QueryRow(ctx, query, email.String()).Scan(
		&storedEmail, &user.PasswordHash, &user.Requires2FA,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrUserNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}
	user.Email = model.Email(storedEmail)

	return user, nil
}

// ValidateUser verifies the supplied password against the stored argon2
// hash. The comparison is constant-effort; a mismatch costs the same as a
// match.
func (r *UserRepository) ValidateUser(ctx context.Context, email model.Email, password model.Password) error {
	user, err := r.GetUser(ctx, email)
	if err != nil {
		return err
	}

	ok, err := r.hasher.Verify(ctx, password, user.PasswordHash)
	if err != nil {
		return fmt.Errorf("failed to verify password: %w", err)
	}
	if !ok {
		return model.ErrInvalidCredentials
	}

	return nil
}
