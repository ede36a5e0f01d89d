package tickets

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"festx/infrastructure"
	"festx/internal/database"
)

// ErrTicketUsed maps to a 400 with the ticket details attached, so gate staff
// can see who already redeemed it.
var ErrTicketUsed = fmt.Errorf("%w: ticket has already been used", infrastructure.ErrInvalidInput)

const maxTicketsPerPurchase = 10

type PurchaseRequest struct {
	TicketType string     `json:"ticket_type"`
	EventID    *uuid.UUID `json:"event_id,omitempty"`
	Price      int64      `json:"price"`
	Quantity   int        `json:"quantity"`
}

type TicketEntry struct {
	ID           uuid.UUID  `json:"id"`
	TicketType   string     `json:"ticket_type"`
	Price        int64      `json:"price"`
	TicketCode   string     `json:"ticket_code"`
	IsUsed       bool       `json:"is_used"`
	PurchaseDate time.Time  `json:"purchase_date"`
	EventTitle   *string    `json:"event_title,omitempty"`
	StartDate    *time.Time `json:"start_date,omitempty"`
	Location     *string    `json:"location,omitempty"`
}

type ValidationResult struct {
	TicketID   uuid.UUID  `json:"ticket_id"`
	TicketType string     `json:"ticket_type"`
	UserName   string     `json:"user_name"`
	EventTitle *string    `json:"event_title,omitempty"`
	UsedAt     *time.Time `json:"used_at,omitempty"`
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Purchase creates the requested tickets and, for event tickets, registers
// the buyer for the event if they were not registered already. One
// transaction covers the whole purchase.
func (s *Service) Purchase(ctx context.Context, userID uuid.UUID, req *PurchaseRequest) ([]database.Ticket, error) {
	if req.TicketType == "" || req.Price <= 0 {
		return nil, fmt.Errorf("%w: missing required fields", infrastructure.ErrInvalidInput)
	}
	quantity := req.Quantity
	if quantity <= 0 {
		quantity = 1
	}
	if quantity > maxTicketsPerPurchase {
		return nil, fmt.Errorf("%w: at most %d tickets per purchase", infrastructure.ErrInvalidInput, maxTicketsPerPurchase)
	}

	tickets := make([]database.Ticket, 0, quantity)
	err := s.store.Transact(ctx, func(st Store) error {
		if req.EventID != nil {
			if err := st.EventExists(ctx, *req.EventID); err != nil {
				return err
			}
		}

		for i := 0; i < quantity; i++ {
			ticket := database.Ticket{
				ID:         uuid.New(),
				UserID:     userID,
				EventID:    req.EventID,
				TicketType: req.TicketType,
				Price:      req.Price,
				TicketCode: newTicketCode(),
				CreatedAt:  time.Now(),
			}
			if err := st.SaveTicket(ctx, &ticket); err != nil {
				return err
			}
			tickets = append(tickets, ticket)
		}

		if req.EventID != nil {
			registered, err := st.RegistrationExists(ctx, *req.EventID, userID)
			if err != nil {
				return err
			}
			if !registered {
				registration := database.EventRegistration{
					ID:        uuid.New(),
					EventID:   *req.EventID,
					UserID:    userID,
					CreatedAt: time.Now(),
				}
				if err := st.SaveRegistration(ctx, &registration); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tickets, nil
}

func (s *Service) UserTickets(ctx context.Context, userID uuid.UUID) ([]TicketEntry, error) {
	return s.store.UserTickets(ctx, userID)
}

// Validate redeems a ticket code at the gate. The row stays locked for the
// duration of the transaction so a code cannot be redeemed twice. A used
// ticket still yields the holder details alongside ErrTicketUsed.
func (s *Service) Validate(ctx context.Context, code string) (*ValidationResult, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, fmt.Errorf("%w: ticket code is required", infrastructure.ErrInvalidInput)
	}

	result := &ValidationResult{}
	err := s.store.Transact(ctx, func(st Store) error {
		ticket, err := st.TicketByCodeForUpdate(ctx, code)
		if err != nil {
			return err
		}

		result.TicketID = ticket.ID
		result.TicketType = ticket.TicketType
		result.UsedAt = ticket.UsedAt

		if name, err := st.UserName(ctx, ticket.UserID); err == nil {
			result.UserName = name
		}
		if ticket.EventID != nil {
			if title, err := st.EventTitle(ctx, *ticket.EventID); err == nil {
				result.EventTitle = &title
			}
		}

		if ticket.IsUsed {
			return ErrTicketUsed
		}

		now := time.Now()
		result.UsedAt = &now
		return st.MarkTicketUsed(ctx, ticket.ID, now)
	})
	if err != nil {
		if errors.Is(err, ErrTicketUsed) {
			return result, ErrTicketUsed
		}
		return nil, err
	}
	return result, nil
}

// newTicketCode keeps the original short-code shape: the first 8 hex digits
// of a v4 UUID, uppercased.
func newTicketCode() string {
	return strings.ToUpper(uuid.NewString()[:8])
}
