package user

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"festx/infrastructure"
)

type Saver interface {
	SaveUser(tx *sql.Tx, user *User) error
}

type Updater interface {
	UpdateLastLogin(tx *sql.Tx, userID uuid.UUID) error
	UpdatePassword(tx *sql.Tx, userID uuid.UUID, passwordHash string) error
}

type Provider interface {
	UserByEmail(email string) (*User, error)
	UserByMobile(mobile string) (*User, error)
	UserByID(id uuid.UUID) (*User, error)
}

type PostgresStorage struct {
	db *sql.DB
}

func NewUserPostgresStorage(db *sql.DB) *PostgresStorage {
	return &PostgresStorage{db: db}
}

const uniqueViolation = "23505"

func (r *PostgresStorage) SaveUser(tx *sql.Tx, user *User) error {
	_, err := tx.Exec(`
		INSERT INTO users (id, name, email, mobile, password_hash, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		user.ID, user.Name, user.Email, user.Mobile, user.PasswordHash, user.IsActive, user.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return fmt.Errorf("%w: user with this email or mobile already exists", infrastructure.ErrDuplicateIdentity)
		}
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

func (r *PostgresStorage) UserByEmail(email string) (*User, error) {
	return r.userBy("email", email)
}

func (r *PostgresStorage) UserByMobile(mobile string) (*User, error) {
	return r.userBy("mobile", mobile)
}

func (r *PostgresStorage) userBy(column, value string) (*User, error) {
	u := &User{}
	err := r.db.QueryRow(`
		SELECT id, name, email, mobile, password_hash, is_active, last_login, created_at
		FROM users WHERE `+column+` = $1`, value).Scan(
		&u.ID, &u.Name, &u.Email, &u.Mobile, &u.PasswordHash, &u.IsActive, &u.LastLogin, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, infrastructure.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user by %s: %w", column, err)
	}
	return u, nil
}

func (r *PostgresStorage) UserByID(id uuid.UUID) (*User, error) {
	u := &User{}
	err := r.db.QueryRow(`
		SELECT id, name, email, mobile, password_hash, is_active, last_login, created_at
		FROM users WHERE id = $1`, id).Scan(
		&u.ID, &u.Name, &u.Email, &u.Mobile, &u.PasswordHash, &u.IsActive, &u.LastLogin, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, infrastructure.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user by id: %w", err)
	}
	return u, nil
}

func (r *PostgresStorage) UpdateLastLogin(tx *sql.Tx, userID uuid.UUID) error {
	_, err := tx.Exec("UPDATE users SET last_login = $1 WHERE id = $2", time.Now(), userID)
	return err
}

func (r *PostgresStorage) UpdatePassword(tx *sql.Tx, userID uuid.UUID, passwordHash string) error {
	_, err := tx.Exec("UPDATE users SET password_hash = $1 WHERE id = $2", passwordHash, userID)
	return err
}
