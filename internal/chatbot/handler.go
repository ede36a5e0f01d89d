package chatbot

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"festx/infrastructure"
	"festx/internal/auth"
)

type QueryRequest struct {
	Query string `json:"query"`
}

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Query(w http.ResponseWriter, r *http.Request) {
	var req QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		infrastructure.WriteError(w, fmt.Errorf("%w: invalid request body", infrastructure.ErrInvalidInput))
		return
	}

	var userID *uuid.UUID
	if u, ok := auth.UserFromContext(r.Context()); ok {
		userID = &u.ID
	}

	result, err := h.svc.Query(r.Context(), userID, req.Query)
	if err != nil {
		infrastructure.WriteError(w, err)
		return
	}
	infrastructure.WriteJSON(w, http.StatusOK, infrastructure.Response{Success: true, Data: result})
}

func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.UserFromContext(r.Context())
	if !ok {
		infrastructure.WriteError(w, infrastructure.ErrNotAuthenticated)
		return
	}

	entries, err := h.svc.History(r.Context(), u.ID)
	if err != nil {
		infrastructure.WriteError(w, err)
		return
	}
	infrastructure.WriteJSON(w, http.StatusOK, infrastructure.Response{Success: true, Data: entries})
}

func SetupChatbotRoutes(r *mux.Router, h *Handler, requireAuth, optionalAuth func(http.HandlerFunc) http.HandlerFunc) {
	r.HandleFunc("/chatbot/query", optionalAuth(h.Query)).Methods("POST")
	r.HandleFunc("/chatbot/history", requireAuth(h.History)).Methods("GET")
}
