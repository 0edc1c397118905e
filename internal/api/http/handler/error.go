package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/authgate/authgate-server/internal/model"
)

type messageResponse struct {
	Message string `json:"message"`
}

type twoFARequiredResponse struct {
	Message        string `json:"message"`
	LoginAttemptID string `json:"loginAttemptId"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// handleError maps service errors to HTTP responses. Anything outside the
// known set is an internal failure and stays opaque to the client.
func (h *Auth) handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrInvalidEmail), errors.Is(err, model.ErrInvalidCredentials):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid credentials"})
	case errors.Is(err, model.ErrIncorrectCredentials):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "Incorrect credentials"})
	case errors.Is(err, model.ErrUserAlreadyExists):
		writeJSON(w, http.StatusConflict, errorResponse{Error: "User already exists"})
	case errors.Is(err, model.ErrMissingToken):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Missing token"})
	case errors.Is(err, model.ErrInvalidToken):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "Invalid token"})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Unexpected error"})
	}
}

func writeMalformed(w http.ResponseWriter) {
	writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "Malformed input"})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
