package model

import "net/mail"

// Email is a syntactically valid email address. It is the natural key for
// users and second-factor challenges.
type Email string

// ParseEmail validates raw as a bare RFC 5322 address. Display-name forms
// like "Name <a@b.com>" are rejected so the stored key is always the plain
// address.
func ParseEmail(raw string) (Email, error) {
	addr, err := mail.ParseAddress(raw)
	if err != nil || addr.Address != raw {
		return "", ErrInvalidEmail
	}
	return Email(raw), nil
}

func (e Email) String() string {
	return string(e)
}
