package infrastructure

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
)

// Response is the envelope every endpoint returns. Error responses carry
// success=false and a human-readable message, never driver internals.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	User    interface{} `json:"user,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

// WriteError maps domain errors onto the HTTP status taxonomy and emits the
// JSON envelope. Unrecognized errors become a generic 500.
func WriteError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		writeFailure(w, http.StatusBadRequest, detail(err, ErrInvalidInput, "Invalid request"))
	case errors.Is(err, ErrInvalidCredentials):
		writeFailure(w, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, ErrNotAuthenticated):
		writeFailure(w, http.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, ErrAccountInactive):
		writeFailure(w, http.StatusUnauthorized, "Account is inactive. Please contact support.")
	case errors.Is(err, ErrDuplicateIdentity):
		writeFailure(w, http.StatusConflict, detail(err, ErrDuplicateIdentity, "Already exists"))
	case errors.Is(err, ErrTooManyAttempts):
		writeFailure(w, http.StatusTooManyRequests, "Too many failed login attempts. Please try again later.")
	case errors.Is(err, ErrNotFound):
		writeFailure(w, http.StatusNotFound, detail(err, ErrNotFound, "Not found"))
	case errors.Is(err, ErrInternalServer):
		writeFailure(w, http.StatusInternalServerError, "Server error")
	default:
		log.Error().Err(err).Msg("request failed")
		writeFailure(w, http.StatusInternalServerError, "Server error")
	}
}

func writeFailure(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, Response{Success: false, Message: message})
}

// detail strips the sentinel prefix left by %w wrapping, keeping only the
// human-readable part for the client.
func detail(err, sentinel error, fallback string) string {
	msg := err.Error()
	if msg == sentinel.Error() {
		return fallback
	}
	return strings.TrimPrefix(msg, sentinel.Error()+": ")
}
