package tickets

import (
	"encoding/json"
	"errors"
	"fmt"
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

func (h *Handler) Purchase(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.UserFromContext(r.Context())
	if !ok {
		infrastructure.WriteError(w, infrastructure.ErrNotAuthenticated)
		return
	}

	var req PurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		infrastructure.WriteError(w, fmt.Errorf("%w: invalid request body", infrastructure.ErrInvalidInput))
		return
	}

	tickets, err := h.svc.Purchase(r.Context(), u.ID, &req)
	if err != nil {
		infrastructure.WriteError(w, err)
		return
	}
	infrastructure.WriteJSON(w, http.StatusCreated, infrastructure.Response{
		Success: true,
		Message: "Tickets purchased successfully",
		Data:    tickets,
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.UserFromContext(r.Context())
	if !ok {
		infrastructure.WriteError(w, infrastructure.ErrNotAuthenticated)
		return
	}

	entries, err := h.svc.UserTickets(r.Context(), u.ID)
	if err != nil {
		infrastructure.WriteError(w, err)
		return
	}
	infrastructure.WriteJSON(w, http.StatusOK, infrastructure.Response{Success: true, Data: entries})
}

func (h *Handler) Validate(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.Validate(r.Context(), mux.Vars(r)["code"])
	if err != nil {
		// An already-used ticket still reports who redeemed it and when.
		if errors.Is(err, ErrTicketUsed) {
			infrastructure.WriteJSON(w, http.StatusBadRequest, infrastructure.Response{
				Success: false,
				Message: "Ticket has already been used",
				Data:    result,
			})
			return
		}
		infrastructure.WriteError(w, err)
		return
	}
	infrastructure.WriteJSON(w, http.StatusOK, infrastructure.Response{
		Success: true,
		Message: "Ticket validated successfully",
		Data:    result,
	})
}

func SetupTicketRoutes(r *mux.Router, h *Handler, requireAuth func(http.HandlerFunc) http.HandlerFunc) {
	r.HandleFunc("/tickets/purchase", requireAuth(h.Purchase)).Methods("POST")
	r.HandleFunc("/tickets", requireAuth(h.List)).Methods("GET")
	r.HandleFunc("/tickets/validate/{code}", h.Validate).Methods("POST")
}
