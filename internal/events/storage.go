package events

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"festx/infrastructure"
	"festx/internal/database"
)

// Store is the persistence surface for events. Transact runs fn against a
// store bound to a single transaction.
type Store interface {
	Transact(ctx context.Context, fn func(Store) error) error
	Events(ctx context.Context) ([]database.Event, error)
	EventByID(ctx context.Context, id uuid.UUID) (*database.Event, error)
	RegistrationExists(ctx context.Context, eventID, userID uuid.UUID) (bool, error)
	SaveRegistration(ctx context.Context, registration *database.EventRegistration) error
	EventRegistrations(ctx context.Context, eventID uuid.UUID) ([]RegistrationEntry, error)
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

func (s *gormStore) Events(ctx context.Context) ([]database.Event, error) {
	var list []database.Event
	err := s.db.WithContext(ctx).Order("start_date ASC").Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return list, nil
}

func (s *gormStore) EventByID(ctx context.Context, id uuid.UUID) (*database.Event, error) {
	var event database.Event
	err := s.db.WithContext(ctx).First(&event, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: event not found", infrastructure.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch event: %w", err)
	}
	return &event, nil
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

// SaveRegistration maps the (event_id, user_id) unique violation so a
// concurrent double registration surfaces as a duplicate, not a 500.
func (s *gormStore) SaveRegistration(ctx context.Context, registration *database.EventRegistration) error {
	err := s.db.WithContext(ctx).Create(registration).Error
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return fmt.Errorf("%w: already registered for this event", infrastructure.ErrDuplicateIdentity)
	}
	return err
}

func (s *gormStore) EventRegistrations(ctx context.Context, eventID uuid.UUID) ([]RegistrationEntry, error) {
	var entries []RegistrationEntry
	err := s.db.WithContext(ctx).
		Table("event_registrations er").
		Select("u.id AS user_id, u.name, u.email, er.created_at AS registered_at").
		Joins("JOIN users u ON er.user_id = u.id").
		Where("er.event_id = ?", eventID).
		Order("er.created_at DESC").
		Scan(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch event registrations: %w", err)
	}
	return entries, nil
}
