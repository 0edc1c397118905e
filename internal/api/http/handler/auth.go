package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/authgate/authgate-server/internal/logger"
	"github.com/authgate/authgate-server/internal/model"
)

const sessionCookieName = "jwt"

// AuthService defines signup, login and session operations.
type AuthService interface {
	Signup(ctx context.Context, email, password string, requires2FA bool) error
	Login(ctx context.Context, email, password string) (model.LoginResult, error)
	VerifySecondFactor(ctx context.Context, email, loginAttemptID, code string) (string, error)
	VerifyToken(ctx context.Context, token string) error
	Logout(ctx context.Context, token string) error
}

// Auth handles HTTP endpoints for authentication.
type Auth struct {
	authService AuthService
	logger      *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(authService AuthService, logger *logger.Logger) *Auth {
	return &Auth{
		authService: authService,
		logger:      logger,
	}
}

// Request fields are pointers so an absent field is distinguishable from
// an empty one. Absent fields make the request malformed (422), not
// merely invalid (400).
type signupRequest struct {
	Email       *string `json:"email"`
	Password    *string `json:"password"`
	Requires2FA *bool   `json:"requires2FA"`
}

type loginRequest struct {
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

type verify2FARequest struct {
	Email          *string `json:"email"`
	LoginAttemptID *string `json:"loginAttemptId"`
	TwoFACode      *string `json:"2FACode"`
}

type verifyTokenRequest struct {
	Token *string `json:"token"`
}

// Signup registers a new user. It never issues a token.
func (h *Auth) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	if req.Email == nil || req.Password == nil || req.Requires2FA == nil {
		writeMalformed(w)
		return
	}

	h.logger.Debug("Auth handler: processing signup request",
		"email", *req.Email)

	if err := h.authService.Signup(r.Context(), *req.Email, *req.Password, *req.Requires2FA); err != nil {
		h.logger.Error("Auth handler: signup failed",
			"email", *req.Email,
			"error", err.Error())
		h.handleError(w, err)
		return
	}

	h.logger.Info("Auth handler: signup completed",
		"email", *req.Email)

	writeJSON(w, http.StatusCreated, messageResponse{Message: "User created successfully!"})
}

// Login validates credentials. Depending on the account it either sets a
// session cookie or answers 206 with a second-factor challenge reference.
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	if req.Email == nil || req.Password == nil {
		writeMalformed(w)
		return
	}

	h.logger.Debug("Auth handler: processing login request",
		"email", *req.Email)

	result, err := h.authService.Login(r.Context(), *req.Email, *req.Password)
	if err != nil {
		h.logger.Error("Auth handler: login failed",
			"email", *req.Email,
			"error", err.Error())
		h.handleError(w, err)
		return
	}

	if result.TwoFARequired {
		h.logger.Info("Auth handler: login requires second factor",
			"email", *req.Email,
			"login_attempt_id", result.LoginAttemptID.String())

		writeJSON(w, http.StatusPartialContent, twoFARequiredResponse{
			Message:        "2FA required",
			LoginAttemptID: result.LoginAttemptID.String(),
		})
		return
	}

	h.logger.Info("Auth handler: login completed",
		"email", *req.Email)

	setSessionCookie(w, result.Token)
	w.WriteHeader(http.StatusOK)
}

// Verify2FA checks a second-factor challenge response and sets a session
// cookie on success.
func (h *Auth) Verify2FA(w http.ResponseWriter, r *http.Request) {
	var req verify2FARequest
	if !decodeRequest(w, r, &req) {
		return
	}
	if req.Email == nil || req.LoginAttemptID == nil || req.TwoFACode == nil {
		writeMalformed(w)
		return
	}

	h.logger.Debug("Auth handler: processing second-factor request",
		"email", *req.Email)

	token, err := h.authService.VerifySecondFactor(r.Context(), *req.Email, *req.LoginAttemptID, *req.TwoFACode)
	if err != nil {
		h.logger.Error("Auth handler: second-factor verification failed",
			"email", *req.Email,
			"error", err.Error())
		h.handleError(w, err)
		return
	}

	h.logger.Info("Auth handler: second-factor verification completed",
		"email", *req.Email)

	setSessionCookie(w, token)
	w.WriteHeader(http.StatusOK)
}

// VerifyToken reports whether the posted token names a live session.
func (h *Auth) VerifyToken(w http.ResponseWriter, r *http.Request) {
	var req verifyTokenRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	if req.Token == nil {
		writeMalformed(w)
		return
	}

	if err := h.authService.VerifyToken(r.Context(), *req.Token); err != nil {
		h.logger.Debug("Auth handler: token verification failed",
			"error", err.Error())
		h.handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// Logout revokes the session named by the cookie and clears the cookie.
func (h *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		h.handleError(w, model.ErrMissingToken)
		return
	}

	if err := h.authService.Logout(r.Context(), cookie.Value); err != nil {
		h.logger.Error("Auth handler: logout failed",
			"error", err.Error())
		h.handleError(w, err)
		return
	}

	h.logger.Info("Auth handler: logout completed")

	clearSessionCookie(w)
	w.WriteHeader(http.StatusOK)
}

func decodeRequest(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeMalformed(w)
		return false
	}
	return true
}

func setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
