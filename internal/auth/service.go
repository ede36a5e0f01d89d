package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"festx/infrastructure"
	"festx/internal/sessions"
	"festx/internal/user"
)

const (
	maxFailedAttempts = 5
	attemptWindow     = 30 * time.Minute
)

// Mailer delivers one-time codes. Implemented by email.Sender.
type Mailer interface {
	SendOTPEmail(to, code string) error
}

type UseCase interface {
	Register(ctx context.Context, req *RegisterRequest) (*user.User, *sessions.Session, error)
	Login(ctx context.Context, identifier, password, ipAddress string) (*user.User, *sessions.Session, error)
	Logout(ctx context.Context, token string) error
	CurrentUser(ctx context.Context, token string) (*user.User, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error
	Sessions(ctx context.Context, userID uuid.UUID) ([]*sessions.Session, error)

	RequestOTP(ctx context.Context, email string) (bool, error)
	VerifyOTP(ctx context.Context, email, code string) (*user.User, *sessions.Session, error)

	PurgeExpiredSessions(ctx context.Context) (int64, error)
}

type service struct {
	repo   Repository
	mailer Mailer
	otpTTL time.Duration
}

func NewService(repo Repository, mailer Mailer, otpTTL time.Duration) UseCase {
	return &service{repo: repo, mailer: mailer, otpTTL: otpTTL}
}

func (s *service) Register(ctx context.Context, req *RegisterRequest) (*user.User, *sessions.Session, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	mobile := strings.TrimSpace(req.Mobile)

	if name == "" || req.Password == "" {
		return nil, nil, fmt.Errorf("%w: please provide all required fields", infrastructure.ErrInvalidInput)
	}
	if email == "" && mobile == "" {
		return nil, nil, fmt.Errorf("%w: email or mobile number is required", infrastructure.ErrInvalidInput)
	}
	if email != "" && !ValidEmail(email) {
		return nil, nil, fmt.Errorf("%w: invalid email format", infrastructure.ErrInvalidInput)
	}
	if mobile != "" && !ValidMobile(mobile) {
		return nil, nil, fmt.Errorf("%w: invalid mobile number format", infrastructure.ErrInvalidInput)
	}
	if req.ConfirmPassword != "" && req.ConfirmPassword != req.Password {
		return nil, nil, fmt.Errorf("%w: passwords do not match", infrastructure.ErrInvalidInput)
	}
	if err := ValidatePasswordStrength(req.Password); err != nil {
		return nil, nil, err
	}

	digest, err := HashPassword(req.Password)
	if err != nil {
		return nil, nil, err
	}

	newUser := &user.User{
		ID:           uuid.New(),
		Name:         name,
		IsActive:     true,
		PasswordHash: digest,
		CreatedAt:    time.Now(),
	}
	if email != "" {
		newUser.Email = &email
	}
	if mobile != "" {
		newUser.Mobile = &mobile
	}

	session, err := s.repo.CreateUser(ctx, newUser)
	if err != nil {
		return nil, nil, err
	}
	return newUser, session, nil
}

// Login implements the canonical flow: throttle check first (before any
// bcrypt work), then lookup, then verify. A wrong password and an unknown
// identifier produce the same generic error and comparable timing.
func (s *service) Login(ctx context.Context, identifier, password, ipAddress string) (*user.User, *sessions.Session, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return nil, nil, fmt.Errorf("%w: please provide login credentials", infrastructure.ErrInvalidInput)
	}

	count, err := s.repo.FailedAttempts(ctx, identifier, attemptWindow)
	if err != nil {
		return nil, nil, err
	}
	if count >= maxFailedAttempts {
		return nil, nil, infrastructure.ErrTooManyAttempts
	}

	ident, err := ParseIdentifier(identifier)
	if err != nil {
		return nil, nil, s.failLogin(ctx, identifier, ipAddress)
	}

	u, err := s.repo.UserByIdentifier(ctx, ident)
	if errors.Is(err, infrastructure.ErrNotFound) {
		VerifyPassword(password, dummyDigest)
		return nil, nil, s.failLogin(ctx, identifier, ipAddress)
	}
	if err != nil {
		return nil, nil, err
	}

	if !VerifyPassword(password, u.PasswordHash) {
		return nil, nil, s.failLogin(ctx, identifier, ipAddress)
	}

	// Only a caller who already holds the right password learns the account
	// is deactivated.
	if !u.IsActive {
		return nil, nil, infrastructure.ErrAccountInactive
	}

	session, err := s.repo.CreateLoginSession(ctx, u, identifier, ipAddress)
	if err != nil {
		return nil, nil, err
	}
	return u, session, nil
}

func (s *service) failLogin(ctx context.Context, identifier, ipAddress string) error {
	if err := s.repo.RecordAttempt(ctx, identifier, ipAddress, false); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to record login attempt")
	}
	return infrastructure.ErrInvalidCredentials
}

// Logout is idempotent: deleting an absent session row is still a success.
func (s *service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.repo.DeleteSessionByToken(ctx, token)
}

func (s *service) CurrentUser(ctx context.Context, token string) (*user.User, error) {
	if token == "" {
		return nil, infrastructure.ErrNotAuthenticated
	}
	return s.repo.SessionUserByToken(ctx, token)
}

// ChangePassword re-verifies the current password even though the caller
// already holds a session; a hijacked session must not be enough to take
// over the account.
func (s *service) ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error {
	if currentPassword == "" || newPassword == "" {
		return fmt.Errorf("%w: current and new password are required", infrastructure.ErrInvalidInput)
	}

	u, err := s.repo.UserByID(ctx, userID)
	if err != nil {
		return err
	}
	if !VerifyPassword(currentPassword, u.PasswordHash) {
		return infrastructure.ErrInvalidCredentials
	}
	if err := ValidatePasswordStrength(newPassword); err != nil {
		return err
	}

	digest, err := HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.repo.UpdatePassword(ctx, userID, digest)
}

func (s *service) Sessions(ctx context.Context, userID uuid.UUID) ([]*sessions.Session, error) {
	return s.repo.UserSessions(ctx, userID)
}

func (s *service) RequestOTP(ctx context.Context, email string) (bool, error) {
	email = strings.TrimSpace(email)
	if !ValidEmail(email) {
		return false, fmt.Errorf("%w: invalid email format", infrastructure.ErrInvalidInput)
	}

	isNewUser := false
	_, err := s.repo.UserByIdentifier(ctx, Identifier{Kind: IdentifierEmail, Value: email})
	if errors.Is(err, infrastructure.ErrNotFound) {
		isNewUser = true
	} else if err != nil {
		return false, err
	}

	code, err := infrastructure.GenerateOTPCode()
	if err != nil {
		return false, err
	}
	if err := s.repo.StoreOTP(ctx, email, code, time.Now().Add(s.otpTTL)); err != nil {
		return false, err
	}

	go func() {
		if err := s.mailer.SendOTPEmail(email, code); err != nil {
			if err = s.mailer.SendOTPEmail(email, code); err != nil {
				log.Error().Err(err).Str("email", email).Msg("failed to send OTP email")
			}
		}
	}()

	return isNewUser, nil
}

func (s *service) VerifyOTP(ctx context.Context, email, code string) (*user.User, *sessions.Session, error) {
	email = strings.TrimSpace(email)
	code = strings.TrimSpace(code)
	if email == "" || code == "" {
		return nil, nil, fmt.Errorf("%w: email and OTP are required", infrastructure.ErrInvalidInput)
	}

	// Accounts created through OTP login get a random placeholder password;
	// the user can set a real one later.
	placeholder, err := infrastructure.GenerateSessionToken()
	if err != nil {
		return nil, nil, err
	}
	placeholderHash, err := HashPassword(placeholder[:32])
	if err != nil {
		return nil, nil, err
	}

	fallbackName := email
	if at := strings.Index(email, "@"); at > 0 {
		fallbackName = email[:at]
	}

	u, session, _, err := s.repo.ConsumeOTP(ctx, email, code, fallbackName, placeholderHash)
	if err != nil {
		return nil, nil, err
	}
	return u, session, nil
}

func (s *service) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	return s.repo.DeleteExpiredSessions(ctx)
}
