package memory

import (
	"context"
	"sync"

	"github.com/authgate/authgate-server/internal/model"
)

var _ model.BannedTokenStore = (*BannedTokenRepository)(nil)

// BannedTokenRepository keeps revoked tokens in a process-lifetime set.
type BannedTokenRepository struct {
	mu     sync.RWMutex
	tokens map[string]struct{}
}

func NewBannedTokenRepository() *BannedTokenRepository {
	return &BannedTokenRepository{
		tokens: make(map[string]struct{}),
	}
}

// AddToken bans token. Re-adding a banned token is a no-op, not an error.
func (r *BannedTokenRepository) AddToken(ctx context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tokens[token] = struct{}{}
	return nil
}

func (r *BannedTokenRepository) ContainsToken(ctx context.Context, token string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.tokens[token]
	return ok, nil
}
