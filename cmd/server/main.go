package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"festx/config"
	"festx/internal/database"
	"festx/internal/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	log := logger.Setup(!cfg.IsProduction())

	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error().Err(err).Msg("error closing database connection")
		}
	}()

	if err := db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	app := InitializeApp(cfg, db, log)

	// Sessions expire lazily; sweep the leftovers once per boot.
	if purged, err := app.Auth.PurgeExpiredSessions(context.Background()); err != nil {
		log.Warn().Err(err).Msg("failed to purge expired sessions")
	} else if purged > 0 {
		log.Info().Int64("count", purged).Msg("purged expired sessions")
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Server.Run()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatal().Err(err).Msg("server error")
		}
	case sig := <-stop:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.Server.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("graceful shutdown failed")
		}
	}
}
