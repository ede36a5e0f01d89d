package dashboard

import (
	"github.com/google/wire"

	"festx/internal/database"
	"festx/internal/notifications"
	"festx/internal/quizzes"
	"festx/internal/tickets"
)

// ProvideService is a Wire provider function that creates a Service
func ProvideService(db *database.Database, t *tickets.Service, q *quizzes.Service, n *notifications.Service) *Service {
	return NewService(db, t, q, n)
}

// ProvideHandler is a Wire provider function that creates a Handler
func ProvideHandler(svc *Service) *Handler {
	return NewHandler(svc)
}

var Set = wire.NewSet(ProvideService, ProvideHandler)
