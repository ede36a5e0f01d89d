package events

import (
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

	event, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		infrastructure.WriteError(w, err)
		return
	}
	infrastructure.WriteJSON(w, http.StatusOK, infrastructure.Response{Success: true, Data: event})
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
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

	registration, err := h.svc.Register(r.Context(), id, u.ID)
	if err != nil {
		infrastructure.WriteError(w, err)
		return
	}
	infrastructure.WriteJSON(w, http.StatusCreated, infrastructure.Response{
		Success: true,
		Message: "Successfully registered for event",
		Data:    registration,
	})
}

func (h *Handler) Registrations(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		infrastructure.WriteError(w, err)
		return
	}

	entries, err := h.svc.Registrations(r.Context(), id)
	if err != nil {
		infrastructure.WriteError(w, err)
		return
	}
	infrastructure.WriteJSON(w, http.StatusOK, infrastructure.Response{Success: true, Data: entries})
}

func pathID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid event id", infrastructure.ErrInvalidInput)
	}
	return id, nil
}

func SetupEventRoutes(r *mux.Router, h *Handler, requireAuth func(http.HandlerFunc) http.HandlerFunc) {
	r.HandleFunc("/events", h.List).Methods("GET")
	r.HandleFunc("/events/{id}", h.Get).Methods("GET")
	r.HandleFunc("/events/{id}/register", requireAuth(h.Register)).Methods("POST")
	r.HandleFunc("/events/{id}/registrations", h.Registrations).Methods("GET")
}
