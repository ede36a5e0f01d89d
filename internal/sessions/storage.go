package sessions

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"festx/infrastructure"
	"festx/internal/user"
)

type Saver interface {
	CreateSession(tx *sql.Tx, session *Session) error
}

type Provider interface {
	SessionUserByToken(token string) (*Session, *user.User, error)
	UserSessions(userID uuid.UUID) ([]*Session, error)
}

type Deleter interface {
	DeleteSessionByToken(tx *sql.Tx, token string) error
	DeleteExpired(tx *sql.Tx, before time.Time) (int64, error)
}

type PostgresStorage struct {
	db *sql.DB
}

func NewSessionsPostgresStorage(db *sql.DB) *PostgresStorage {
	return &PostgresStorage{db: db}
}

func (r *PostgresStorage) CreateSession(tx *sql.Tx, session *Session) error {
	_, err := tx.Exec(`
		INSERT INTO sessions (id, user_id, token, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		session.ID, session.UserID, session.Token, session.ExpiresAt, session.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// SessionUserByToken resolves a presented token to its session and owning
// user in one join. A missing row and an expired row are indistinguishable to
// the caller; both come back as ErrNotAuthenticated.
func (r *PostgresStorage) SessionUserByToken(token string) (*Session, *user.User, error) {
	s := &Session{Token: token}
	u := &user.User{}
	err := r.db.QueryRow(`
		SELECT s.id, s.user_id, s.expires_at, s.created_at,
		       u.id, u.name, u.email, u.mobile, u.password_hash, u.is_active, u.last_login, u.created_at
		FROM sessions s
		JOIN users u ON s.user_id = u.id
		WHERE s.token = $1 AND s.expires_at > NOW()`, token).Scan(
		&s.ID, &s.UserID, &s.ExpiresAt, &s.CreatedAt,
		&u.ID, &u.Name, &u.Email, &u.Mobile, &u.PasswordHash, &u.IsActive, &u.LastLogin, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, infrastructure.ErrNotAuthenticated
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to resolve session: %w", err)
	}
	return s, u, nil
}

func (r *PostgresStorage) UserSessions(userID uuid.UUID) ([]*Session, error) {
	rows, err := r.db.Query(`
		SELECT id, user_id, expires_at, created_at
		FROM sessions
		WHERE user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	var list []*Session
	for rows.Next() {
		s := &Session{}
		if err := rows.Scan(&s.ID, &s.UserID, &s.ExpiresAt, &s.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func (r *PostgresStorage) DeleteSessionByToken(tx *sql.Tx, token string) error {
	_, err := tx.Exec("DELETE FROM sessions WHERE token = $1", token)
	return err
}

func (r *PostgresStorage) DeleteExpired(tx *sql.Tx, before time.Time) (int64, error) {
	res, err := tx.Exec("DELETE FROM sessions WHERE expires_at <= $1", before)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
