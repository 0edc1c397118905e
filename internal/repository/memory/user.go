// Package memory provides in-process store backends. They satisfy the same
// contracts as the durable backends and live for the process lifetime only.
package memory

import (
	"context"
	"sync"

	"github.com/authgate/authgate-server/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

// UserRepository keeps users in a map guarded by a reader/writer lock.
type UserRepository struct {
	mu     sync.RWMutex
	users  map[model.Email]model.User
	hasher model.PasswordHasher
}

func NewUserRepository(hasher model.PasswordHasher) *UserRepository {
	return &UserRepository{
		users:  make(map[model.Email]model.User),
		hasher: hasher,
	}
}

// AddUser inserts user under a single write lock, so the uniqueness check
// and the insert cannot race.
func (r *UserRepository) AddUser(ctx context.Context, user model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.Email]; ok {
		return model.ErrUserAlreadyExists
	}
	r.users[user.Email] = user
	return nil
}

func (r *UserRepository) GetUser(ctx context.Context, email model.Email) (model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[email]
	if !ok {
		return model.User{}, model.ErrUserNotFound
	}
	return user, nil
}

// ValidateUser verifies password against the stored hash. Hash verification
// runs outside the lock; only the map read is guarded.
func (r *UserRepository) ValidateUser(ctx context.Context, email model.Email, password model.Password) error {
	user, err := r.GetUser(ctx, email)
	if err != nil {
		return err
	}

	ok, err := r.hasher.Verify(ctx, password, user.PasswordHash)
	if err != nil {
		return err
	}
	if !ok {
		return model.ErrInvalidCredentials
	}
	return nil
}
