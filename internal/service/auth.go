package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/authgate/authgate-server/internal/logger"
	"github.com/authgate/authgate-server/internal/model"
)

// Auth orchestrates signup, login, second-factor verification, token
// verification and logout over the store contracts. It is the only layer
// that maps internal store outcomes to the external error taxonomy: user
// lookups and credential checks that fail for different internal reasons
// all surface as ErrIncorrectCredentials, so responses never reveal whether
// an account exists.
type Auth struct {
	userStore   model.UserStore
	twoFAStore  model.TwoFACodeStore
	sessions    *Session
	hasher      model.PasswordHasher
	emailClient model.EmailClient
	logger      *logger.Logger
}

// NewAuth creates a new Auth service.
func NewAuth(
	userStore model.UserStore,
	twoFAStore model.TwoFACodeStore,
	sessions *Session,
	hasher model.PasswordHasher,
	emailClient model.EmailClient,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		userStore:   userStore,
		twoFAStore:  twoFAStore,
		sessions:    sessions,
		hasher:      hasher,
		emailClient: emailClient,
		logger:      logger,
	}
}

// Signup registers a new user. Validation happens before any store access,
// so malformed input never reaches storage. Signup does not authenticate;
// no token is issued.
func (a *Auth) Signup(ctx context.Context, rawEmail, rawPassword string, requires2FA bool) error {
	a.logger.Debug("Auth service: processing signup",
		"email", rawEmail)

	email, err := model.ParseEmail(rawEmail)
	if err != nil {
		return err
	}
	password, err := model.ParsePassword(rawPassword)
	if err != nil {
		return err
	}

	hash, err := a.hasher.Hash(ctx, password)
	if err != nil {
		a.logger.Error("Auth service: failed to hash password",
			"email", email.String(),
			"error", err.Error())
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user := model.User{
		Email:        email,
		PasswordHash: hash,
		Requires2FA:  requires2FA,
	}

	if err := a.userStore.AddUser(ctx, user); err != nil {
		if errors.Is(err, model.ErrUserAlreadyExists) {
			a.logger.Info("Auth service: user already exists",
				"email", email.String())
			return model.ErrUserAlreadyExists
		}
		a.logger.Error("Auth service: failed to create user",
			"email", email.String(),
			"error", err.Error())
		return fmt.Errorf("failed to create user: %w", err)
	}

	a.logger.Info("Auth service: user registered",
		"email", email.String(),
		"requires_2fa", requires2FA)

	return nil
}

// Login validates credentials and either establishes a session directly or
// opens a second-factor challenge, depending on the account.
func (a *Auth) Login(ctx context.Context, rawEmail, rawPassword string) (model.LoginResult, error) {
	a.logger.Debug("Auth service: processing login",
		"email", rawEmail)

	email, err := model.ParseEmail(rawEmail)
	if err != nil {
		return model.LoginResult{}, model.ErrInvalidCredentials
	}
	password, err := model.ParsePassword(rawPassword)
	if err != nil {
		return model.LoginResult{}, model.ErrInvalidCredentials
	}

	if err := a.userStore.ValidateUser(ctx, email, password); err != nil {
		if errors.Is(err, model.ErrUserNotFound) || errors.Is(err, model.ErrInvalidCredentials) {
			return model.LoginResult{}, model.ErrIncorrectCredentials
		}
		a.logger.Error("Auth service: failed to validate user",
			"email", email.String(),
			"error", err.Error())
		return model.LoginResult{}, fmt.Errorf("failed to validate user: %w", err)
	}

	user, err := a.userStore.GetUser(ctx, email)
	if err != nil {
		a.logger.Error("Auth service: failed to get user after validation",
			"email", email.String(),
			"error", err.Error())
		return model.LoginResult{}, fmt.Errorf("failed to get user: %w", err)
	}

	if !user.Requires2FA {
		token, err := a.sessions.Issue(ctx, email)
		if err != nil {
			return model.LoginResult{}, err
		}

		a.logger.Info("Auth service: login completed",
			"email", email.String())

		return model.LoginResult{Token: token}, nil
	}

	return a.openChallenge(ctx, email)
}

// openChallenge issues a fresh second-factor challenge, superseding any
// outstanding one for the same email.
func (a *Auth) openChallenge(ctx context.Context, email model.Email) (model.LoginResult, error) {
	attemptID := model.NewLoginAttemptID()
	code, err := model.NewTwoFACode()
	if err != nil {
		a.logger.Error("Auth service: failed to generate 2FA code",
			"email", email.String(),
			"error", err.Error())
		return model.LoginResult{}, fmt.Errorf("failed to generate 2FA code: %w", err)
	}

	if err := a.twoFAStore.AddCode(ctx, email, attemptID, code); err != nil {
		a.logger.Error("Auth service: failed to store challenge",
			"email", email.String(),
			"error", err.Error())
		return model.LoginResult{}, fmt.Errorf("failed to store challenge: %w", err)
	}

	if err := a.emailClient.SendCode(ctx, email, code); err != nil {
		a.logger.Error("Auth service: failed to send 2FA code",
			"email", email.String(),
			"error", err.Error())
		return model.LoginResult{}, fmt.Errorf("failed to send 2FA code: %w", err)
	}

	a.logger.Info("Auth service: second-factor challenge opened",
		"email", email.String(),
		"login_attempt_id", attemptID.String())

	return model.LoginResult{
		TwoFARequired:  true,
		LoginAttemptID: attemptID,
	}, nil
}

// VerifySecondFactor checks a challenge response and, on an exact match,
// consumes the challenge and establishes a session. Wrong code, wrong
// attempt id, missing challenge and unknown user are indistinguishable to
// the caller.
func (a *Auth) VerifySecondFactor(ctx context.Context, rawEmail, rawAttemptID, rawCode string) (string, error) {
	a.logger.Debug("Auth service: processing second-factor verification",
		"email", rawEmail)

	email, err := model.ParseEmail(rawEmail)
	if err != nil {
		return "", model.ErrInvalidCredentials
	}
	attemptID, err := model.ParseLoginAttemptID(rawAttemptID)
	if err != nil {
		return "", model.ErrInvalidCredentials
	}
	code, err := model.ParseTwoFACode(rawCode)
	if err != nil {
		return "", model.ErrInvalidCredentials
	}

	if _, err := a.userStore.GetUser(ctx, email); err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return "", model.ErrIncorrectCredentials
		}
		a.logger.Error("Auth service: failed to get user",
			"email", email.String(),
			"error", err.Error())
		return "", fmt.Errorf("failed to get user: %w", err)
	}

	challenge, err := a.twoFAStore.GetCode(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrLoginAttemptIDNotFound) {
			return "", model.ErrIncorrectCredentials
		}
		a.logger.Error("Auth service: failed to get challenge",
			"email", email.String(),
			"error", err.Error())
		return "", fmt.Errorf("failed to get challenge: %w", err)
	}

	// A mismatch leaves the challenge in place so a later correct attempt
	// can still succeed.
	if challenge.LoginAttemptID != attemptID || challenge.Code != code {
		return "", model.ErrIncorrectCredentials
	}

	if err := a.twoFAStore.RemoveCode(ctx, email); err != nil {
		// A concurrent verification consumed the challenge first.
		if errors.Is(err, model.ErrLoginAttemptIDNotFound) {
			return "", model.ErrIncorrectCredentials
		}
		a.logger.Error("Auth service: failed to consume challenge",
			"email", email.String(),
			"error", err.Error())
		return "", fmt.Errorf("failed to consume challenge: %w", err)
	}

	token, err := a.sessions.Issue(ctx, email)
	if err != nil {
		return "", err
	}

	a.logger.Info("Auth service: second-factor verification completed",
		"email", email.String())

	return token, nil
}

// VerifyToken reports whether token names a live, unrevoked session.
func (a *Auth) VerifyToken(ctx context.Context, token string) error {
	if _, err := a.sessions.Validate(ctx, token); err != nil {
		return err
	}
	return nil
}

// Logout revokes the session token. An invalid token fails before any
// store mutation, so a logout never half-succeeds.
func (a *Auth) Logout(ctx context.Context, token string) error {
	if err := a.sessions.Revoke(ctx, token); err != nil {
		return err
	}

	a.logger.Info("Auth service: logout completed")
	return nil
}
