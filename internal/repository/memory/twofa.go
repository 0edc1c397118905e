package memory

import (
	"context"
	"sync"

	"github.com/authgate/authgate-server/internal/model"
)

var _ model.TwoFACodeStore = (*TwoFARepository)(nil)

// TwoFARepository keeps at most one outstanding challenge per email.
type TwoFARepository struct {
	mu         sync.RWMutex
	challenges map[model.Email]model.Challenge
}

func NewTwoFARepository() *TwoFARepository {
	return &TwoFARepository{
		challenges: make(map[model.Email]model.Challenge),
	}
}

// AddCode stores a challenge, replacing any existing challenge for email.
func (r *TwoFARepository) AddCode(ctx context.Context, email model.Email, id model.LoginAttemptID, code model.TwoFACode) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.challenges[email] = model.Challenge{LoginAttemptID: id, Code: code}
	return nil
}

func (r *TwoFARepository) GetCode(ctx context.Context, email model.Email) (model.Challenge, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	challenge, ok := r.challenges[email]
	if !ok {
		return model.Challenge{}, model.ErrLoginAttemptIDNotFound
	}
	return challenge, nil
}

// RemoveCode consumes the challenge for email. A missing challenge is an
// error so double consumption is rejected.
func (r *TwoFARepository) RemoveCode(ctx context.Context, email model.Email) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.challenges[email]; !ok {
		return model.ErrLoginAttemptIDNotFound
	}
	delete(r.challenges, email)
	return nil
}
