package model

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"

	"github.com/google/uuid"
)

// LoginAttemptID names one outstanding second-factor challenge. Generated
// fresh per challenge, never reused.
type LoginAttemptID string

// NewLoginAttemptID returns a fresh random attempt identifier.
func NewLoginAttemptID() LoginAttemptID {
	return LoginAttemptID(uuid.NewString())
}

// ParseLoginAttemptID validates raw as a UUID string.
func ParseLoginAttemptID(raw string) (LoginAttemptID, error) {
	if _, err := uuid.Parse(raw); err != nil {
		return "", ErrInvalidCredentials
	}
	return LoginAttemptID(raw), nil
}

func (id LoginAttemptID) String() string {
	return string(id)
}

// TwoFACode is a single-use 6-digit numeric second-factor code.
type TwoFACode string

// NewTwoFACode generates a code uniformly in [100000, 999999] from
// crypto/rand.
func NewTwoFACode() (TwoFACode, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("failed to generate 2FA code: %w", err)
	}
	return TwoFACode(strconv.FormatInt(n.Int64()+100000, 10)), nil
}

// ParseTwoFACode validates raw as exactly six ASCII digits.
func ParseTwoFACode(raw string) (TwoFACode, error) {
	if len(raw) != 6 {
		return "", ErrInvalidCredentials
	}
	for i := 0; i < len(raw); i++ {
		if raw[i] < '0' || raw[i] > '9' {
			return "", ErrInvalidCredentials
		}
	}
	return TwoFACode(raw), nil
}

func (c TwoFACode) String() string {
	return string(c)
}

// Challenge is one outstanding second-factor challenge. At most one live
// Challenge exists per email; issuing a new one overwrites the old.
type Challenge struct {
	LoginAttemptID LoginAttemptID
	Code           TwoFACode
}

// TwoFACodeStore maps an email to its outstanding second-factor challenge.
type TwoFACodeStore interface {
	// AddCode stores a challenge, unconditionally replacing any existing
	// challenge for the same email.
	AddCode(ctx context.Context, email Email, id LoginAttemptID, code TwoFACode) error
	// GetCode returns the outstanding challenge for email, or
	// ErrLoginAttemptIDNotFound when none exists.
	GetCode(ctx context.Context, email Email) (Challenge, error)
	// RemoveCode consumes the challenge for email. Removing a missing
	// challenge is ErrLoginAttemptIDNotFound, not a no-op.
	RemoveCode(ctx context.Context, email Email) error
}
