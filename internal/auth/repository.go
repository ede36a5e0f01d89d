package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"festx/infrastructure"
	"festx/internal/auth/otp"
	"festx/internal/sessions"
	"festx/internal/user"
)

// Repository orchestrates the identity storages. Every multi-statement
// operation runs under one transaction; the unique constraints on
// users.email, users.mobile and sessions.token are the true guards against
// concurrent duplicates.
type Repository interface {
	CreateUser(ctx context.Context, newUser *user.User) (*sessions.Session, error)
	UserByIdentifier(ctx context.Context, ident Identifier) (*user.User, error)
	UserByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error

	FailedAttempts(ctx context.Context, identifier string, window time.Duration) (int, error)
	RecordAttempt(ctx context.Context, identifier, ipAddress string, success bool) error
	CreateLoginSession(ctx context.Context, u *user.User, identifier, ipAddress string) (*sessions.Session, error)

	SessionUserByToken(ctx context.Context, token string) (*user.User, error)
	UserSessions(ctx context.Context, userID uuid.UUID) ([]*sessions.Session, error)
	DeleteSessionByToken(ctx context.Context, token string) error
	DeleteExpiredSessions(ctx context.Context) (int64, error)

	StoreOTP(ctx context.Context, email, code string, expiresAt time.Time) error
	ConsumeOTP(ctx context.Context, email, code, fallbackName, placeholderHash string) (*user.User, *sessions.Session, bool, error)
}

type repository struct {
	db *sql.DB

	userSaver    user.Saver
	userUpdater  user.Updater
	userProvider user.Provider

	sessionsSaver    sessions.Saver
	sessionsProvider sessions.Provider
	sessionsDeleter  sessions.Deleter

	attemptSaver    AttemptSaver
	attemptProvider AttemptProvider

	otpSaver    otp.Saver
	otpProvider otp.Provider

	sessionTTL time.Duration
}

func NewRepository(
	db *sql.DB,
	userSaver user.Saver,
	userUpdater user.Updater,
	userProvider user.Provider,
	sessionsSaver sessions.Saver,
	sessionsProvider sessions.Provider,
	sessionsDeleter sessions.Deleter,
	attemptSaver AttemptSaver,
	attemptProvider AttemptProvider,
	otpSaver otp.Saver,
	otpProvider otp.Provider,
	sessionTTL time.Duration,
) Repository {
	return &repository{
		db:               db,
		userSaver:        userSaver,
		userUpdater:      userUpdater,
		userProvider:     userProvider,
		sessionsSaver:    sessionsSaver,
		sessionsProvider: sessionsProvider,
		sessionsDeleter:  sessionsDeleter,
		attemptSaver:     attemptSaver,
		attemptProvider:  attemptProvider,
		otpSaver:         otpSaver,
		otpProvider:      otpProvider,
		sessionTTL:       sessionTTL,
	}
}

func (r *repository) CreateUser(ctx context.Context, newUser *user.User) (*sessions.Session, error) {
	var session *sessions.Session
	err := infrastructure.WithTransaction(r.db, ctx, func(tx *sql.Tx) error {
		if err := r.userSaver.SaveUser(tx, newUser); err != nil {
			return err
		}
		var err error
		session, err = r.newSession(tx, newUser.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return session, nil
}

func (r *repository) UserByIdentifier(ctx context.Context, ident Identifier) (*user.User, error) {
	switch ident.Kind {
	case IdentifierEmail:
		return r.userProvider.UserByEmail(ident.Value)
	case IdentifierMobile:
		return r.userProvider.UserByMobile(ident.Value)
	default:
		return nil, fmt.Errorf("%w: unknown identifier kind", infrastructure.ErrInvalidInput)
	}
}

func (r *repository) UserByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return r.userProvider.UserByID(id)
}

func (r *repository) UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	return infrastructure.WithTransaction(r.db, ctx, func(tx *sql.Tx) error {
		return r.userUpdater.UpdatePassword(tx, userID, passwordHash)
	})
}

func (r *repository) FailedAttempts(ctx context.Context, identifier string, window time.Duration) (int, error) {
	return r.attemptProvider.CountFailedAttempts(identifier, time.Now().Add(-window))
}

func (r *repository) RecordAttempt(ctx context.Context, identifier, ipAddress string, success bool) error {
	return infrastructure.WithTransaction(r.db, ctx, func(tx *sql.Tx) error {
		return r.attemptSaver.AddLoginAttempt(tx, &LoginAttempt{
			Identifier:  identifier,
			IPAddress:   ipAddress,
			Success:     success,
			AttemptedAt: time.Now(),
		})
	})
}

// CreateLoginSession issues the session, stamps last_login and records the
// successful attempt under one transaction.
func (r *repository) CreateLoginSession(ctx context.Context, u *user.User, identifier, ipAddress string) (*sessions.Session, error) {
	var session *sessions.Session
	err := infrastructure.WithTransaction(r.db, ctx, func(tx *sql.Tx) error {
		var err error
		session, err = r.newSession(tx, u.ID)
		if err != nil {
			return err
		}
		if err := r.userUpdater.UpdateLastLogin(tx, u.ID); err != nil {
			return fmt.Errorf("failed to update last login: %w", err)
		}
		return r.attemptSaver.AddLoginAttempt(tx, &LoginAttempt{
			Identifier:  identifier,
			IPAddress:   ipAddress,
			Success:     true,
			AttemptedAt: time.Now(),
		})
	})
	if err != nil {
		return nil, err
	}
	return session, nil
}

func (r *repository) SessionUserByToken(ctx context.Context, token string) (*user.User, error) {
	_, u, err := r.sessionsProvider.SessionUserByToken(token)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *repository) UserSessions(ctx context.Context, userID uuid.UUID) ([]*sessions.Session, error) {
	return r.sessionsProvider.UserSessions(userID)
}

func (r *repository) DeleteSessionByToken(ctx context.Context, token string) error {
	return infrastructure.WithTransaction(r.db, ctx, func(tx *sql.Tx) error {
		return r.sessionsDeleter.DeleteSessionByToken(tx, token)
	})
}

func (r *repository) DeleteExpiredSessions(ctx context.Context) (int64, error) {
	var purged int64
	err := infrastructure.WithTransaction(r.db, ctx, func(tx *sql.Tx) error {
		var err error
		purged, err = r.sessionsDeleter.DeleteExpired(tx, time.Now())
		return err
	})
	return purged, err
}

func (r *repository) StoreOTP(ctx context.Context, email, code string, expiresAt time.Time) error {
	return infrastructure.WithTransaction(r.db, ctx, func(tx *sql.Tx) error {
		return r.otpSaver.StoreOTP(tx, &otp.UserOTP{
			Email:     email,
			Code:      code,
			ExpiresAt: expiresAt,
			CreatedAt: time.Now(),
		})
	})
}

// ConsumeOTP marks the matched code used, finds or creates the account and
// issues a session, all under one transaction. The bool result reports
// whether the account was created by this call.
func (r *repository) ConsumeOTP(ctx context.Context, email, code, fallbackName, placeholderHash string) (*user.User, *sessions.Session, bool, error) {
	var (
		u       *user.User
		session *sessions.Session
		isNew   bool
	)
	err := infrastructure.WithTransaction(r.db, ctx, func(tx *sql.Tx) error {
		match, err := r.otpProvider.LatestValidOTP(tx, email, code, time.Now())
		if err != nil {
			if errors.Is(err, infrastructure.ErrNotFound) {
				return fmt.Errorf("%w: invalid or expired OTP", infrastructure.ErrInvalidInput)
			}
			return err
		}
		if err := r.otpSaver.MarkUsed(tx, match.ID); err != nil {
			return fmt.Errorf("failed to mark OTP used: %w", err)
		}

		u, err = r.userProvider.UserByEmail(email)
		if errors.Is(err, infrastructure.ErrNotFound) {
			isNew = true
			u = &user.User{
				ID:           uuid.New(),
				Name:         fallbackName,
				Email:        &email,
				PasswordHash: placeholderHash,
				IsActive:     true,
				CreatedAt:    time.Now(),
			}
			if err := r.userSaver.SaveUser(tx, u); err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		session, err = r.newSession(tx, u.ID)
		if err != nil {
			return err
		}
		return r.userUpdater.UpdateLastLogin(tx, u.ID)
	})
	if err != nil {
		return nil, nil, false, err
	}
	return u, session, isNew, nil
}

func (r *repository) newSession(tx *sql.Tx, userID uuid.UUID) (*sessions.Session, error) {
	token, err := infrastructure.GenerateSessionToken()
	if err != nil {
		return nil, err
	}
	now := time.Now()
	session := &sessions.Session{
		ID:        uuid.New(),
		UserID:    userID,
		Token:     token,
		CreatedAt: now,
		ExpiresAt: now.Add(r.sessionTTL),
	}
	if err := r.sessionsSaver.CreateSession(tx, session); err != nil {
		return nil, err
	}
	return session, nil
}
