package auth

import (
	"database/sql"
	"fmt"
	"time"
)

type AttemptSaver interface {
	AddLoginAttempt(tx *sql.Tx, attempt *LoginAttempt) error
}

type AttemptProvider interface {
	CountFailedAttempts(identifier string, since time.Time) (int, error)
}

type AttemptsPostgresStorage struct {
	db *sql.DB
}

func NewAttemptsPostgresStorage(db *sql.DB) *AttemptsPostgresStorage {
	return &AttemptsPostgresStorage{db: db}
}

func (r *AttemptsPostgresStorage) AddLoginAttempt(tx *sql.Tx, attempt *LoginAttempt) error {
	_, err := tx.Exec(`
		INSERT INTO login_attempts (identifier, ip_address, success, attempted_at)
		VALUES ($1, $2, $3, $4)`,
		attempt.Identifier, attempt.IPAddress, attempt.Success, attempt.AttemptedAt)
	if err != nil {
		return fmt.Errorf("failed to record login attempt: %w", err)
	}
	return nil
}

// CountFailedAttempts counts failures in the trailing window measured from
// "since", not a fixed bucket.
func (r *AttemptsPostgresStorage) CountFailedAttempts(identifier string, since time.Time) (int, error) {
	var count int
	err := r.db.QueryRow(`
		SELECT COUNT(*) FROM login_attempts
		WHERE identifier = $1 AND success = FALSE AND attempted_at > $2`,
		identifier, since).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count login attempts: %w", err)
	}
	return count, nil
}
