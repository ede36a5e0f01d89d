package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Database owns the single connection pool. The raw *sql.DB backs the
// identity storages; the GORM handle backs the festival CRUD tables.
// Both share the same pool.
type Database struct {
	*gorm.DB
	sqlDB *sql.DB
}

func New(databaseURL string) (*Database, error) {
	sqlDB, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SetMaxIdleConns sets the maximum number of connections in the idle connection pool.
	sqlDB.SetMaxIdleConns(10)

	// SetMaxOpenConns sets the maximum number of open connections to the database.
	sqlDB.SetMaxOpenConns(100)

	// SetConnMaxLifetime sets the maximum amount of time a connection may be reused.
	sqlDB.SetConnMaxLifetime(time.Hour)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to initialize ORM: %w", err)
	}

	log.Info().Msg("connected to database")

	return &Database{DB: gormDB, sqlDB: sqlDB}, nil
}

// SQL exposes the underlying pool for the raw-SQL storages.
func (d *Database) SQL() *sql.DB {
	return d.sqlDB
}

func (d *Database) Close() error {
	return d.sqlDB.Close()
}

func (d *Database) Migrate() error {
	err := d.AutoMigrate(
		&User{},
		&Session{},
		&LoginAttempt{},
		&UserOTP{},
		&Event{},
		&EventRegistration{},
		&Ticket{},
		&Quiz{},
		&QuizQuestion{},
		&QuizAnswer{},
		&QuizSubmission{},
		&Notification{},
		&ChatbotQuery{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Info().Msg("database migration completed")
	return nil
}
