//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"
	"github.com/rs/zerolog"

	"festx/config"
	"festx/internal/database"
)

func InitializeApp(cfg *config.Config, db *database.Database, logger zerolog.Logger) *App {
	wire.Build(AppSet)

	return &App{}
}
