package auth

import (
	"database/sql"

	"github.com/google/wire"

	"festx/config"
	"festx/internal/auth/otp"
	"festx/internal/email"
	"festx/internal/sessions"
	"festx/internal/user"
)

// ProvideAttemptsStorage is a Wire provider function that creates an AttemptsPostgresStorage
func ProvideAttemptsStorage(db *sql.DB) *AttemptsPostgresStorage {
	return NewAttemptsPostgresStorage(db)
}

// ProvideOTPStorage is a Wire provider function that creates an otp.PostgresStorage
func ProvideOTPStorage(db *sql.DB) *otp.PostgresStorage {
	return otp.NewOTPPostgresStorage(db)
}

// ProvideRepository is a Wire provider function that creates a Repository
func ProvideRepository(
	cfg *config.Config,
	db *sql.DB,
	userStorage *user.PostgresStorage,
	sessionsStorage *sessions.PostgresStorage,
	attemptsStorage *AttemptsPostgresStorage,
	otpStorage *otp.PostgresStorage,
) Repository {
	return NewRepository(db,
		userStorage, userStorage, userStorage,
		sessionsStorage, sessionsStorage, sessionsStorage,
		attemptsStorage, attemptsStorage,
		otpStorage, otpStorage,
		cfg.SessionTTL)
}

// ProvideUseCase is a Wire provider function that creates a UseCase
func ProvideUseCase(cfg *config.Config, repo Repository, sender *email.Sender) UseCase {
	return NewService(repo, sender, cfg.OTPTTL)
}

// ProvideJSONHandler is a Wire provider function that creates a JSONHandler
func ProvideJSONHandler(cfg *config.Config, useCase UseCase) *JSONHandler {
	return NewJSONAuthHandler(useCase, cfg.IsProduction(), cfg.SessionTTL)
}

var Set = wire.NewSet(
	ProvideAttemptsStorage,
	ProvideOTPStorage,
	ProvideRepository,
	ProvideUseCase,
	ProvideJSONHandler,
)
