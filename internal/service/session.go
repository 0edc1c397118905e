package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/authgate/authgate-server/internal/logger"
	"github.com/authgate/authgate-server/internal/model"
)

// Session issues, validates and revokes session tokens, consulting the
// banned-token store so a revoked token is rejected before its natural
// expiry.
type Session struct {
	tokenManager model.TokenManager
	bannedStore  model.BannedTokenStore
	logger       *logger.Logger
}

// NewSession creates a new Session service.
func NewSession(tokenManager model.TokenManager, bannedStore model.BannedTokenStore, logger *logger.Logger) *Session {
	return &Session{
		tokenManager: tokenManager,
		bannedStore:  bannedStore,
		logger:       logger,
	}
}

// Issue produces a signed session token for email.
func (s *Session) Issue(ctx context.Context, email model.Email) (string, error) {
	token, err := s.tokenManager.Generate(email)
	if err != nil {
		s.logger.Error("Session service: failed to issue token",
			"email", email.String(),
			"error", err.Error())
		return "", fmt.Errorf("failed to issue session token: %w", err)
	}
	return token, nil
}

// Validate checks the token signature and expiry, then the banned-token
// store. Both checks run on every call; a token can be revoked long after
// it was issued.
func (s *Session) Validate(ctx context.Context, token string) (model.Claims, error) {
	claims, err := s.tokenManager.Parse(token)
	if err != nil {
		return model.Claims{}, model.ErrInvalidToken
	}

	banned, err := s.bannedStore.ContainsToken(ctx, token)
	if err != nil {
		s.logger.Error("Session service: failed to check banned tokens",
			"error", err.Error())
		return model.Claims{}, fmt.Errorf("failed to check banned tokens: %w", err)
	}
	if banned {
		return model.Claims{}, model.ErrInvalidToken
	}

	return claims, nil
}

// Revoke validates the token and adds it to the banned-token store. An
// invalid token fails before any store mutation.
func (s *Session) Revoke(ctx context.Context, token string) error {
	if _, err := s.Validate(ctx, token); err != nil {
		if errors.Is(err, model.ErrInvalidToken) {
			return model.ErrInvalidToken
		}
		return err
	}

	if err := s.bannedStore.AddToken(ctx, token); err != nil {
		s.logger.Error("Session service: failed to ban token",
			"error", err.Error())
		return fmt.Errorf("failed to ban token: %w", err)
	}

	return nil
}
