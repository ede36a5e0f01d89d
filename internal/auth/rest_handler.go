package auth

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"festx/infrastructure"
)

const SessionCookieName = "session_token"

type JSONHandler struct {
	authUseCase  UseCase
	secureCookie bool
	sessionTTL   time.Duration
}

func NewJSONAuthHandler(authUseCase UseCase, secureCookie bool, sessionTTL time.Duration) *JSONHandler {
	return &JSONHandler{
		authUseCase:  authUseCase,
		secureCookie: secureCookie,
		sessionTTL:   sessionTTL,
	}
}

func (h *JSONHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		infrastructure.WriteError(w, fmt.Errorf("%w: malformed request body", infrastructure.ErrInvalidInput))
		return
	}

	u, session, err := h.authUseCase.Register(r.Context(), &req)
	if err != nil {
		infrastructure.WriteError(w, err)
		return
	}

	h.setSessionCookie(w, session.Token)
	infrastructure.WriteJSON(w, http.StatusCreated, infrastructure.Response{
		Success: true,
		Message: "Registration successful",
		User:    u,
	})
}

func (h *JSONHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		infrastructure.WriteError(w, fmt.Errorf("%w: malformed request body", infrastructure.ErrInvalidInput))
		return
	}

	u, session, err := h.authUseCase.Login(r.Context(), req.Identifier, req.Password, clientIP(r))
	if err != nil {
		infrastructure.WriteError(w, err)
		return
	}

	h.setSessionCookie(w, session.Token)
	infrastructure.WriteJSON(w, http.StatusOK, infrastructure.Response{
		Success: true,
		Message: "Login successful",
		User:    u,
	})
}

// Logout always reports success, even without an active session.
func (h *JSONHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		if err := h.authUseCase.Logout(r.Context(), cookie.Value); err != nil {
			infrastructure.WriteError(w, err)
			return
		}
	}

	h.clearSessionCookie(w)
	infrastructure.WriteJSON(w, http.StatusOK, infrastructure.Response{
		Success: true,
		Message: "Logout successful",
	})
}

func (h *JSONHandler) Me(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		infrastructure.WriteError(w, infrastructure.ErrNotAuthenticated)
		return
	}

	u, err := h.authUseCase.CurrentUser(r.Context(), cookie.Value)
	if err != nil {
		// Dead token: clear it so the client stops retrying.
		h.clearSessionCookie(w)
		infrastructure.WriteError(w, err)
		return
	}

	infrastructure.WriteJSON(w, http.StatusOK, infrastructure.Response{
		Success: true,
		User:    u,
	})
}

func (h *JSONHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	u, ok := UserFromContext(r.Context())
	if !ok {
		infrastructure.WriteError(w, infrastructure.ErrNotAuthenticated)
		return
	}

	var req ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		infrastructure.WriteError(w, fmt.Errorf("%w: malformed request body", infrastructure.ErrInvalidInput))
		return
	}

	if err := h.authUseCase.ChangePassword(r.Context(), u.ID, req.CurrentPassword, req.NewPassword); err != nil {
		infrastructure.WriteError(w, err)
		return
	}

	infrastructure.WriteJSON(w, http.StatusOK, infrastructure.Response{
		Success: true,
		Message: "Password updated successfully",
	})
}

// Sessions lists the caller's sessions. Tokens are never serialized, only
// ids and timestamps.
func (h *JSONHandler) Sessions(w http.ResponseWriter, r *http.Request) {
	u, ok := UserFromContext(r.Context())
	if !ok {
		infrastructure.WriteError(w, infrastructure.ErrNotAuthenticated)
		return
	}

	list, err := h.authUseCase.Sessions(r.Context(), u.ID)
	if err != nil {
		infrastructure.WriteError(w, err)
		return
	}

	infrastructure.WriteJSON(w, http.StatusOK, infrastructure.Response{
		Success: true,
		Data:    list,
	})
}

func (h *JSONHandler) RequestOTP(w http.ResponseWriter, r *http.Request) {
	var req RequestOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		infrastructure.WriteError(w, fmt.Errorf("%w: malformed request body", infrastructure.ErrInvalidInput))
		return
	}

	isNewUser, err := h.authUseCase.RequestOTP(r.Context(), req.Email)
	if err != nil {
		infrastructure.WriteError(w, err)
		return
	}

	infrastructure.WriteJSON(w, http.StatusOK, infrastructure.Response{
		Success: true,
		Message: "OTP sent successfully",
		Data:    map[string]bool{"isNewUser": isNewUser},
	})
}

func (h *JSONHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req VerifyOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		infrastructure.WriteError(w, fmt.Errorf("%w: malformed request body", infrastructure.ErrInvalidInput))
		return
	}

	u, session, err := h.authUseCase.VerifyOTP(r.Context(), req.Email, req.OTP)
	if err != nil {
		infrastructure.WriteError(w, err)
		return
	}

	h.setSessionCookie(w, session.Token)
	infrastructure.WriteJSON(w, http.StatusOK, infrastructure.Response{
		Success: true,
		Message: "OTP verified successfully",
		User:    u,
	})
}

func (h *JSONHandler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.sessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteStrictMode,
	})
}

func (h *JSONHandler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteStrictMode,
	})
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// SetupJSONAuthRoutes Helper function to set up routes
func SetupJSONAuthRoutes(r *mux.Router, h *JSONHandler) {
	r.HandleFunc("/auth/register", h.Register).Methods("POST")
	r.HandleFunc("/auth/login", h.Login).Methods("POST")
	r.HandleFunc("/auth/logout", h.Logout).Methods("POST")
	r.HandleFunc("/auth/me", h.Me).Methods("GET")
	r.HandleFunc("/auth/change-password", h.RequireAuth(h.ChangePassword)).Methods("POST")
	r.HandleFunc("/auth/sessions", h.RequireAuth(h.Sessions)).Methods("GET")
	r.HandleFunc("/auth/request-otp", h.RequestOTP).Methods("POST")
	r.HandleFunc("/auth/verify-otp", h.VerifyOTP).Methods("POST")
}
