package otp

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"festx/infrastructure"
)

type Saver interface {
	StoreOTP(tx *sql.Tx, o *UserOTP) error
	MarkUsed(tx *sql.Tx, id int64) error
}

type Provider interface {
	LatestValidOTP(tx *sql.Tx, email, code string, now time.Time) (*UserOTP, error)
}

type PostgresStorage struct {
	db *sql.DB
}

func NewOTPPostgresStorage(db *sql.DB) *PostgresStorage {
	return &PostgresStorage{db: db}
}

func (r *PostgresStorage) StoreOTP(tx *sql.Tx, o *UserOTP) error {
	err := tx.QueryRow(`
		INSERT INTO user_otps (email, code, expires_at, is_used, created_at)
		VALUES ($1, $2, $3, FALSE, $4)
		RETURNING id`,
		o.Email, o.Code, o.ExpiresAt, o.CreatedAt).Scan(&o.ID)
	if err != nil {
		return fmt.Errorf("failed to store OTP: %w", err)
	}
	return nil
}

// LatestValidOTP runs inside the verification transaction so the matched row
// cannot be consumed twice by concurrent requests.
func (r *PostgresStorage) LatestValidOTP(tx *sql.Tx, email, code string, now time.Time) (*UserOTP, error) {
	o := &UserOTP{}
	err := tx.QueryRow(`
		SELECT id, email, code, expires_at, is_used, created_at
		FROM user_otps
		WHERE email = $1 AND code = $2 AND expires_at > $3 AND is_used = FALSE
		ORDER BY created_at DESC
		LIMIT 1
		FOR UPDATE`,
		email, code, now).Scan(&o.ID, &o.Email, &o.Code, &o.ExpiresAt, &o.Used, &o.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, infrastructure.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query OTP: %w", err)
	}
	return o, nil
}

func (r *PostgresStorage) MarkUsed(tx *sql.Tx, id int64) error {
	_, err := tx.Exec("UPDATE user_otps SET is_used = TRUE WHERE id = $1", id)
	return err
}
