package model

import (
	"context"
	"time"
)

// Claims carries the verified contents of a session token.
type Claims struct {
	Email     Email
	ExpiresAt time.Time
}

// TokenManager signs and verifies session tokens.
type TokenManager interface {
	Generate(email Email) (string, error)
	Parse(token string) (Claims, error)
}

// BannedTokenStore is the set of revoked session tokens. A token added here
// is permanently rejected by validation for the store's retention period.
type BannedTokenStore interface {
	// AddToken bans a token. Adding an already-banned token is not an error.
	AddToken(ctx context.Context, token string) error
	// ContainsToken reports whether token has been banned.
	ContainsToken(ctx context.Context, token string) (bool, error)
}

// LoginResult reports the outcome of a successful password check. Either
// Token is set (session established) or LoginAttemptID is set (a
// second-factor challenge is outstanding).
type LoginResult struct {
	Token          string
	TwoFARequired  bool
	LoginAttemptID LoginAttemptID
}
