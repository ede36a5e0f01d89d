package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"festx/internal/database"
	"festx/internal/notifications"
	"festx/internal/quizzes"
	"festx/internal/tickets"
)

type RegisteredEvent struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Category     string    `json:"category"`
	Location     string    `json:"location"`
	StartDate    time.Time `json:"start_date"`
	RegisteredAt time.Time `json:"registered_at"`
}

// Summary is everything the account page shows in one response.
type Summary struct {
	Events              []RegisteredEvent     `json:"events"`
	Tickets             []tickets.TicketEntry `json:"tickets"`
	QuizResults         []quizzes.ResultEntry `json:"quiz_results"`
	UnreadNotifications int64                 `json:"unread_notifications"`
}

type Service struct {
	db            *database.Database
	tickets       *tickets.Service
	quizzes       *quizzes.Service
	notifications *notifications.Service
}

func NewService(db *database.Database, t *tickets.Service, q *quizzes.Service, n *notifications.Service) *Service {
	return &Service{db: db, tickets: t, quizzes: q, notifications: n}
}

func (s *Service) Summary(ctx context.Context, userID uuid.UUID) (*Summary, error) {
	events, err := s.registeredEvents(ctx, userID)
	if err != nil {
		return nil, err
	}
	ticketList, err := s.tickets.UserTickets(ctx, userID)
	if err != nil {
		return nil, err
	}
	results, err := s.quizzes.UserResults(ctx, userID)
	if err != nil {
		return nil, err
	}
	unread, err := s.notifications.UnreadCount(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &Summary{
		Events:              events,
		Tickets:             ticketList,
		QuizResults:         results,
		UnreadNotifications: unread,
	}, nil
}

func (s *Service) registeredEvents(ctx context.Context, userID uuid.UUID) ([]RegisteredEvent, error) {
	var list []RegisteredEvent
	err := s.db.WithContext(ctx).
		Table("event_registrations er").
		Select("e.id, e.title, e.category, e.location, e.start_date, er.created_at AS registered_at").
		Joins("JOIN events e ON er.event_id = e.id").
		Where("er.user_id = ?", userID).
		Order("e.start_date ASC").
		Scan(&list).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch registered events: %w", err)
	}
	return list, nil
}
