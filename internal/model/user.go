package model

import "context"

// User represents a registered account. Users are immutable once created;
// there are no update or delete operations.
type User struct {
	Email        Email
	PasswordHash string
	Requires2FA  bool
}

// UserStore defines persistence operations for users. Email uniqueness is
// enforced by the store itself: AddUser is an atomic check-and-insert.
type UserStore interface {
	// AddUser persists a new user, failing with ErrUserAlreadyExists when
	// the email is taken.
	AddUser(ctx context.Context, user User) error
	// GetUser returns the user registered under email, or ErrUserNotFound.
	GetUser(ctx context.Context, email Email) (User, error)
	// ValidateUser verifies password against the stored hash. It returns
	// ErrUserNotFound and ErrInvalidCredentials distinctly; callers that
	// face users must collapse both to one signal.
	ValidateUser(ctx context.Context, email Email, password Password) error
}
