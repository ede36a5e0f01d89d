package main

import (
	"database/sql"

	"github.com/google/wire"

	"festx/internal/api"
	"festx/internal/auth"
	"festx/internal/chatbot"
	"festx/internal/dashboard"
	"festx/internal/database"
	"festx/internal/email"
	"festx/internal/events"
	"festx/internal/notifications"
	"festx/internal/quizzes"
	"festx/internal/sessions"
	"festx/internal/tickets"
	"festx/internal/user"
)

// App holds the wired server together with the services main needs directly.
type App struct {
	Server *api.Server
	Auth   auth.UseCase
}

var AppSet = wire.NewSet(
	ProvideSQLDB,
	user.Set,
	sessions.Set,
	email.Set,
	auth.Set,
	events.Set,
	tickets.Set,
	quizzes.Set,
	notifications.Set,
	dashboard.Set,
	chatbot.Set,
	api.Set,
	ProvideApp,
)

func ProvideApp(server *api.Server, authUseCase auth.UseCase) *App {
	return &App{Server: server, Auth: authUseCase}
}

// ProvideSQLDB exposes the raw connection pool for the storages that speak
// plain SQL.
func ProvideSQLDB(db *database.Database) *sql.DB {
	return db.SQL()
}
