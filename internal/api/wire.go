package api

import (
	"github.com/google/wire"
	"github.com/rs/zerolog"

	"festx/config"
	"festx/internal/auth"
	"festx/internal/chatbot"
	"festx/internal/dashboard"
	"festx/internal/events"
	"festx/internal/notifications"
	"festx/internal/quizzes"
	"festx/internal/tickets"
)

// ProvideHandlers is a Wire provider function that bundles all HTTP handlers
func ProvideHandlers(
	authHandler *auth.JSONHandler,
	eventsHandler *events.Handler,
	ticketsHandler *tickets.Handler,
	quizzesHandler *quizzes.Handler,
	notificationsHandler *notifications.Handler,
	dashboardHandler *dashboard.Handler,
	chatbotHandler *chatbot.Handler,
) Handlers {
	return Handlers{
		Auth:          authHandler,
		Events:        eventsHandler,
		Tickets:       ticketsHandler,
		Quizzes:       quizzesHandler,
		Notifications: notificationsHandler,
		Dashboard:     dashboardHandler,
		Chatbot:       chatbotHandler,
	}
}

// ProvideServer is a Wire provider function that creates the Server
func ProvideServer(cfg *config.Config, logger zerolog.Logger, h Handlers) *Server {
	return NewServer(cfg, logger, h)
}

var Set = wire.NewSet(ProvideHandlers, ProvideServer)
