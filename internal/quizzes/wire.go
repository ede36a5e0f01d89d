package quizzes

import (
	"github.com/google/wire"

	"festx/internal/database"
)

// ProvideService is a Wire provider function that creates a Service
func ProvideService(db *database.Database) *Service {
	return NewService(NewStore(db))
}

// ProvideHandler is a Wire provider function that creates a Handler
func ProvideHandler(svc *Service) *Handler {
	return NewHandler(svc)
}

var Set = wire.NewSet(ProvideService, ProvideHandler)
