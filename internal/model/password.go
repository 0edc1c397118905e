package model

import (
	"unicode"
	"unicode/utf8"
)

const (
	passwordMinLength = 8
	passwordMaxLength = 256
)

// Password is a validated cleartext password. It only exists transiently
// between request parsing and hashing; nothing persists it.
type Password string

// ParsePassword enforces the password policy: 8-256 characters with at
// least one uppercase letter, one lowercase letter and one digit.
func ParsePassword(raw string) (Password, error) {
	length := utf8.RuneCountInString(raw)
	if length < passwordMinLength || length > passwordMaxLength {
		return "", ErrInvalidCredentials
	}

	var hasUpper, hasLower, hasDigit bool
	for _, r := range raw {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit {
		return "", ErrInvalidCredentials
	}

	return Password(raw), nil
}

// String masks the cleartext so a Password can never leak through logging
// or error formatting. Use string(p) to reach the raw value for hashing.
func (p Password) String() string {
	return "********"
}
