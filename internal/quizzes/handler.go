package quizzes

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"festx/infrastructure"
	"festx/internal/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.List(r.Context())
	if err != nil {
		infrastructure.WriteError(w, err)
		return
	}
	infrastructure.WriteJSON(w, http.StatusOK, infrastructure.Response{Success: true, Data: list})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		infrastructure.WriteError(w, err)
		return
	}

	detail, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		infrastructure.WriteError(w, err)
		return
	}
	infrastructure.WriteJSON(w, http.StatusOK, infrastructure.Response{Success: true, Data: detail})
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		infrastructure.WriteError(w, err)
		return
	}

	u, ok := auth.UserFromContext(r.Context())
	if !ok {
		infrastructure.WriteError(w, infrastructure.ErrNotAuthenticated)
		return
	}

	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		infrastructure.WriteError(w, fmt.Errorf("%w: invalid request body", infrastructure.ErrInvalidInput))
		return
	}

	summary, err := h.svc.Submit(r.Context(), id, u.ID, &req)
	if err != nil {
		infrastructure.WriteError(w, err)
		return
	}
	infrastructure.WriteJSON(w, http.StatusCreated, infrastructure.Response{
		Success: true,
		Message: "Quiz submitted successfully",
		Data:    summary,
	})
}

func (h *Handler) Results(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.UserFromContext(r.Context())
	if !ok {
		infrastructure.WriteError(w, infrastructure.ErrNotAuthenticated)
		return
	}

	entries, err := h.svc.UserResults(r.Context(), u.ID)
	if err != nil {
		infrastructure.WriteError(w, err)
		return
	}
	infrastructure.WriteJSON(w, http.StatusOK, infrastructure.Response{Success: true, Data: entries})
}

func pathID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid quiz id", infrastructure.ErrInvalidInput)
	}
	return id, nil
}

func SetupQuizRoutes(r *mux.Router, h *Handler, requireAuth func(http.HandlerFunc) http.HandlerFunc) {
	r.HandleFunc("/quizzes", h.List).Methods("GET")
	r.HandleFunc("/quizzes/results", requireAuth(h.Results)).Methods("GET")
	r.HandleFunc("/quizzes/{id}", h.Get).Methods("GET")
	r.HandleFunc("/quizzes/{id}/submit", requireAuth(h.Submit)).Methods("POST")
}
