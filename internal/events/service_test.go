package events

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"festx/infrastructure"
	"festx/internal/database"
)

type fakeStore struct {
	events        map[uuid.UUID]*database.Event
	registrations []*database.EventRegistration

	saveErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{events: make(map[uuid.UUID]*database.Event)}
}

func (f *fakeStore) addEvent(title string) uuid.UUID {
	id := uuid.New()
	f.events[id] = &database.Event{ID: id, Title: title, StartDate: time.Now().Add(24 * time.Hour)}
	return id
}

func (f *fakeStore) Transact(ctx context.Context, fn func(Store) error) error {
	return fn(f)
}

func (f *fakeStore) Events(ctx context.Context) ([]database.Event, error) {
	list := make([]database.Event, 0, len(f.events))
	for _, e := range f.events {
		list = append(list, *e)
	}
	return list, nil
}

func (f *fakeStore) EventByID(ctx context.Context, id uuid.UUID) (*database.Event, error) {
	event, ok := f.events[id]
	if !ok {
		return nil, fmt.Errorf("%w: event not found", infrastructure.ErrNotFound)
	}
	return event, nil
}

func (f *fakeStore) RegistrationExists(ctx context.Context, eventID, userID uuid.UUID) (bool, error) {
	for _, r := range f.registrations {
		if r.EventID == eventID && r.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) SaveRegistration(ctx context.Context, registration *database.EventRegistration) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.registrations = append(f.registrations, registration)
	return nil
}

func (f *fakeStore) EventRegistrations(ctx context.Context, eventID uuid.UUID) ([]RegistrationEntry, error) {
	var entries []RegistrationEntry
	for _, r := range f.registrations {
		if r.EventID == eventID {
			entries = append(entries, RegistrationEntry{UserID: r.UserID, RegisteredAt: r.CreatedAt})
		}
	}
	return entries, nil
}

func TestRegisterRecordsRegistration(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)
	eventID := store.addEvent("Hackathon")
	userID := uuid.New()

	registration, err := svc.Register(context.Background(), eventID, userID)
	require.NoError(t, err)
	assert.Equal(t, eventID, registration.EventID)
	assert.Equal(t, userID, registration.UserID)

	entries, err := svc.Registrations(context.Background(), eventID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, userID, entries[0].UserID)
}

func TestRegisterTwiceIsDuplicate(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)
	eventID := store.addEvent("Hackathon")
	userID := uuid.New()

	_, err := svc.Register(context.Background(), eventID, userID)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), eventID, userID)
	assert.ErrorIs(t, err, infrastructure.ErrDuplicateIdentity)

	entries, err := svc.Registrations(context.Background(), eventID)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestRegisterUnknownEvent(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)

	_, err := svc.Register(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, infrastructure.ErrNotFound)
	assert.Empty(t, store.registrations)
}

// A concurrent registration slipping past the existence check still comes
// back as a duplicate when the unique constraint fires on save.
func TestRegisterConstraintViolationIsDuplicate(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)
	eventID := store.addEvent("Hackathon")
	store.saveErr = fmt.Errorf("%w: already registered for this event", infrastructure.ErrDuplicateIdentity)

	_, err := svc.Register(context.Background(), eventID, uuid.New())
	assert.ErrorIs(t, err, infrastructure.ErrDuplicateIdentity)
}

func TestRegisterDoesNotTouchOtherUsers(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)
	eventID := store.addEvent("Hackathon")

	_, err := svc.Register(context.Background(), eventID, uuid.New())
	require.NoError(t, err)
	_, err = svc.Register(context.Background(), eventID, uuid.New())
	require.NoError(t, err)

	entries, err := svc.Registrations(context.Background(), eventID)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}
