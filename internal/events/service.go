package events

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"festx/infrastructure"
	"festx/internal/database"
)

type RegistrationEntry struct {
	UserID       uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        *string   `json:"email,omitempty"`
	RegisteredAt time.Time `json:"registration_date"`
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) List(ctx context.Context) ([]database.Event, error) {
	return s.store.Events(ctx)
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*database.Event, error) {
	return s.store.EventByID(ctx, id)
}

// Register checks for a duplicate inside the transaction, but the unique
// constraint on (event_id, user_id) is the true guard against a concurrent
// double registration.
func (s *Service) Register(ctx context.Context, eventID, userID uuid.UUID) (*database.EventRegistration, error) {
	registration := &database.EventRegistration{
		ID:        uuid.New(),
		EventID:   eventID,
		UserID:    userID,
		CreatedAt: time.Now(),
	}

	err := s.store.Transact(ctx, func(st Store) error {
		if _, err := st.EventByID(ctx, eventID); err != nil {
			return err
		}

		exists, err := st.RegistrationExists(ctx, eventID, userID)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("%w: already registered for this event", infrastructure.ErrDuplicateIdentity)
		}

		return st.SaveRegistration(ctx, registration)
	})
	if err != nil {
		return nil, err
	}
	return registration, nil
}

func (s *Service) Registrations(ctx context.Context, eventID uuid.UUID) ([]RegistrationEntry, error) {
	return s.store.EventRegistrations(ctx, eventID)
}
