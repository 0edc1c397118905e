package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/authgate/authgate-server/internal/model"
)

const (
	twoFACodeKeyPrefix = "two_fa_code:"
	challengeTTL       = 10 * time.Minute
)

var _ model.TwoFACodeStore = (*TwoFARepository)(nil)

// TwoFARepository keeps second-factor challenges in redis, one record per
// email with a ten-minute TTL.
type TwoFARepository struct {
	client *redis.Client
}

func NewTwoFARepository(client *redis.Client) *TwoFARepository {
	return &TwoFARepository{client: client}
}

type challengeRecord struct {
	LoginAttemptID string `json:"login_attempt_id"`
	Code           string `json:"code"`
}

// AddCode stores a challenge. SET replaces unconditionally, so a newer
// challenge supersedes any outstanding one for the same email.
func (r *TwoFARepository) AddCode(ctx context.Context, email model.Email, id model.LoginAttemptID, code model.TwoFACode) error {
	record, err := json.Marshal(challengeRecord{
		LoginAttemptID: id.String(),
		Code:           code.String(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal challenge record: %w", err)
	}

	if err := r.client.Set(ctx, twoFACodeKeyPrefix+email.String(), record, challengeTTL).Err(); err != nil {
		return fmt.Errorf("failed to store challenge record: %w", err)
	}
	return nil
}

func (r *TwoFARepository) GetCode(ctx context.Context, email model.Email) (model.Challenge, error) {
	data, err := r.client.Get(ctx, twoFACodeKeyPrefix+email.String()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return model.Challenge{}, model.ErrLoginAttemptIDNotFound
		}
		return model.Challenge{}, fmt.Errorf("failed to get challenge record: %w", err)
	}

	var record challengeRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return model.Challenge{}, fmt.Errorf("failed to unmarshal challenge record: %w", err)
	}

	return model.Challenge{
		LoginAttemptID: model.LoginAttemptID(record.LoginAttemptID),
		Code:           model.TwoFACode(record.Code),
	}, nil
}

// RemoveCode consumes the challenge for email. DEL reports how many keys it
// removed; zero means there was nothing to consume.
func (r *TwoFARepository) RemoveCode(ctx context.Context, email model.Email) error {
	n, err := r.client.Del(ctx, twoFACodeKeyPrefix+email.String()).Result()
	if err != nil {
		return fmt.Errorf("failed to remove challenge record: %w", err)
	}
	if n == 0 {
		return model.ErrLoginAttemptIDNotFound
	}
	return nil
}
