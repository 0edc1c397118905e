package model

import "errors"

// Sentinel errors for the authentication domain. Stores and services return
// these so the HTTP boundary can map outcomes without inspecting messages.
var (
	ErrInvalidEmail           = errors.New("invalid email")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrIncorrectCredentials   = errors.New("incorrect credentials")
	ErrUserAlreadyExists      = errors.New("user already exists")
	ErrUserNotFound           = errors.New("user not found")
	ErrMissingToken           = errors.New("missing token")
	ErrInvalidToken           = errors.New("invalid token")
	ErrLoginAttemptIDNotFound = errors.New("login attempt id not found")
)
