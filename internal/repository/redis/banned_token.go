// Package redis provides remote-cache store backends for revoked session
// tokens and short-lived second-factor challenges.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/authgate/authgate-server/internal/model"
)

const bannedTokenKeyPrefix = "banned_token:"

var _ model.BannedTokenStore = (*BannedTokenRepository)(nil)

// BannedTokenRepository keeps revoked tokens in redis. Each entry carries a
// TTL at least as long as the session-token lifetime, so a ban can never
// expire before the token it bans.
type BannedTokenRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewBannedTokenRepository(client *redis.Client, ttl time.Duration) *BannedTokenRepository {
	return &BannedTokenRepository{
		client: client,
		ttl:    ttl,
	}
}

// AddToken bans token. SET overwrites, so re-banning is not an error.
func (r *BannedTokenRepository) AddToken(ctx context.Context, token string) error {
	if err := r.client.Set(ctx, bannedTokenKeyPrefix+token, "1", r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to ban token: %w", err)
	}
	return nil
}

func (r *BannedTokenRepository) ContainsToken(ctx context.Context, token string) (bool, error) {
	n, err := r.client.Exists(ctx, bannedTokenKeyPrefix+token).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check banned token: %w", err)
	}
	return n > 0, nil
}
