package tickets

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"festx/infrastructure"
	"festx/internal/database"
)

// Store is the persistence surface for tickets. Transact runs fn against a
// store bound to a single transaction.
type Store interface {
	Transact(ctx context.Context, fn func(Store) error) error
	EventExists(ctx context.Context, eventID uuid.UUID) error
	SaveTicket(ctx context.Context, ticket *database.Ticket) error
	RegistrationExists(ctx context.Context, eventID, userID uuid.UUID) (bool, error)
	SaveRegistration(ctx context.Context, registration *database.EventRegistration) error
	TicketByCodeForUpdate(ctx context.Context, code string) (*database.Ticket, error)
	UserName(ctx context.Context, userID uuid.UUID) (string, error)
	EventTitle(ctx context.Context, eventID uuid.UUID) (string, error)
	MarkTicketUsed(ctx context.Context, ticketID uuid.UUID, usedAt time.Time) error
	UserTickets(ctx context.Context, userID uuid.UUID) ([]TicketEntry, error)
}

type gormStore struct {
	db *gorm.DB
}

func NewStore(db *database.Database) Store {
	return &gormStore{db: db.DB}
}

func (s *gormStore) Transact(ctx context.Context, fn func(Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}

func (s *gormStore) EventExists(ctx context.Context, eventID uuid.UUID) error {
	var event database.Event
	err := s.db.WithContext(ctx).Select("id").First(&event, "id = ?", eventID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: event not found", infrastructure.ErrNotFound)
	}
	return err
}

func (s *gormStore) SaveTicket(ctx context.Context, ticket *database.Ticket) error {
	return s.db.WithContext(ctx).Create(ticket).Error
}

func (s *gormStore) RegistrationExists(ctx context.Context, eventID, userID uuid.UUID) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&database.EventRegistration{}).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check registration: %w", err)
	}
	return count > 0, nil
}

func (s *gormStore) SaveRegistration(ctx context.Context, registration *database.EventRegistration) error {
	return s.db.WithContext(ctx).Create(registration).Error
}

// TicketByCodeForUpdate locks the row so a code cannot be redeemed twice by
// concurrent gate scans.
func (s *gormStore) TicketByCodeForUpdate(ctx context.Context, code string) (*database.Ticket, error) {
	var ticket database.Ticket
	err := s.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&ticket, "ticket_code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: invalid ticket code", infrastructure.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (s *gormStore) UserName(ctx context.Context, userID uuid.UUID) (string, error) {
	var owner database.User
	if err := s.db.WithContext(ctx).Select("name").First(&owner, "id = ?", userID).Error; err != nil {
		return "", err
	}
	return owner.Name, nil
}

func (s *gormStore) EventTitle(ctx context.Context, eventID uuid.UUID) (string, error) {
	var event database.Event
	if err := s.db.WithContext(ctx).Select("title").First(&event, "id = ?", eventID).Error; err != nil {
		return "", err
	}
	return event.Title, nil
}

func (s *gormStore) MarkTicketUsed(ctx context.Context, ticketID uuid.UUID, usedAt time.Time) error {
	return s.db.WithContext(ctx).Model(&database.Ticket{ID: ticketID}).Updates(map[string]interface{}{
		"is_used": true,
		"used_at": usedAt,
	}).Error
}

func (s *gormStore) UserTickets(ctx context.Context, userID uuid.UUID) ([]TicketEntry, error) {
	var entries []TicketEntry
	err := s.db.WithContext(ctx).
		Table("tickets t").
		Select("t.id, t.ticket_type, t.price, t.ticket_code, t.is_used, t.created_at AS purchase_date, e.title AS event_title, e.start_date, e.location").
		Joins("LEFT JOIN events e ON t.event_id = e.id").
		Where("t.user_id = ?", userID).
		Order("t.created_at DESC").
		Scan(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tickets: %w", err)
	}
	return entries, nil
}
