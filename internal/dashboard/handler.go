package dashboard

import (
	"net/http"

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

func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.UserFromContext(r.Context())
	if !ok {
		infrastructure.WriteError(w, infrastructure.ErrNotAuthenticated)
		return
	}

	summary, err := h.svc.Summary(r.Context(), u.ID)
	if err != nil {
		infrastructure.WriteError(w, err)
		return
	}
	infrastructure.WriteJSON(w, http.StatusOK, infrastructure.Response{Success: true, Data: summary})
}

func SetupDashboardRoutes(r *mux.Router, h *Handler, requireAuth func(http.HandlerFunc) http.HandlerFunc) {
	r.HandleFunc("/dashboard", requireAuth(h.Summary)).Methods("GET")
}
