package notifications

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
	u, ok := auth.UserFromContext(r.Context())
	if !ok {
		infrastructure.WriteError(w, infrastructure.ErrNotAuthenticated)
		return
	}

	list, err := h.svc.Feed(r.Context(), u.ID)
	if err != nil {
		infrastructure.WriteError(w, err)
		return
	}
	infrastructure.WriteJSON(w, http.StatusOK, infrastructure.Response{Success: true, Data: list})
}

func (h *Handler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		infrastructure.WriteError(w, fmt.Errorf("%w: invalid notification id", infrastructure.ErrInvalidInput))
		return
	}

	u, ok := auth.UserFromContext(r.Context())
	if !ok {
		infrastructure.WriteError(w, infrastructure.ErrNotAuthenticated)
		return
	}

	if err := h.svc.MarkRead(r.Context(), id, u.ID); err != nil {
		infrastructure.WriteError(w, err)
		return
	}
	infrastructure.WriteJSON(w, http.StatusOK, infrastructure.Response{Success: true, Message: "Notification marked as read"})
}

func (h *Handler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.UserFromContext(r.Context())
	if !ok {
		infrastructure.WriteError(w, infrastructure.ErrNotAuthenticated)
		return
	}

	if err := h.svc.MarkAllRead(r.Context(), u.ID); err != nil {
		infrastructure.WriteError(w, err)
		return
	}
	infrastructure.WriteJSON(w, http.StatusOK, infrastructure.Response{Success: true, Message: "All notifications marked as read"})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		infrastructure.WriteError(w, fmt.Errorf("%w: invalid request body", infrastructure.ErrInvalidInput))
		return
	}

	n, err := h.svc.Create(r.Context(), &req)
	if err != nil {
		infrastructure.WriteError(w, err)
		return
	}
	infrastructure.WriteJSON(w, http.StatusCreated, infrastructure.Response{
		Success: true,
		Message: "Notification created",
		Data:    n,
	})
}

func SetupNotificationRoutes(r *mux.Router, h *Handler, requireAuth func(http.HandlerFunc) http.HandlerFunc) {
	r.HandleFunc("/notifications", requireAuth(h.List)).Methods("GET")
	r.HandleFunc("/notifications", requireAuth(h.Create)).Methods("POST")
	r.HandleFunc("/notifications/read-all", requireAuth(h.MarkAllRead)).Methods("PATCH")
	r.HandleFunc("/notifications/{id}/read", requireAuth(h.MarkRead)).Methods("PATCH")
}
