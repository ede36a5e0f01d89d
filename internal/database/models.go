package database

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// User holds one account. At least one of Email/Mobile is present; uniqueness
// is enforced per present column (Postgres allows repeated NULLs under a
// unique index).
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"size:100;not null"`
	Email        *string   `gorm:"size:100;uniqueIndex"`
	Mobile       *string   `gorm:"size:15;uniqueIndex"`
	PasswordHash string    `gorm:"size:255;not null"`
	IsActive     bool      `gorm:"not null;default:true"`
	LastLogin    *time.Time
	CreatedAt    time.Time
	Sessions     []Session `gorm:"constraint:OnDelete:CASCADE"`
}

// Session is proof of authentication. A session is valid while the row exists
// and expires_at lies in the future; logout deletes the row.
type Session struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Token     string    `gorm:"size:64;uniqueIndex;not null"`
	ExpiresAt time.Time `gorm:"not null"`
	CreatedAt time.Time
}

// LoginAttempt is append-only and keyed by the raw identifier string, not a
// user FK, so rows survive user deletion and count for unknown identifiers.
type LoginAttempt struct {
	ID          int64     `gorm:"primaryKey"`
	Identifier  string    `gorm:"size:100;not null;index:idx_login_attempts_window,priority:1"`
	IPAddress   string    `gorm:"size:45"`
	Success     bool      `gorm:"not null"`
	AttemptedAt time.Time `gorm:"not null;index:idx_login_attempts_window,priority:2"`
}

type UserOTP struct {
	ID        int64     `gorm:"primaryKey"`
	Email     string    `gorm:"size:100;not null;index"`
	Code      string    `gorm:"size:6;not null"`
	ExpiresAt time.Time `gorm:"not null"`
	IsUsed    bool      `gorm:"not null;default:false"`
	CreatedAt time.Time
}

type Event struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title         string    `gorm:"size:200;not null"`
	Description   string
	Category      string `gorm:"size:50"`
	Location      string `gorm:"size:200"`
	StartDate     time.Time
	EndDate       time.Time
	Registrations []EventRegistration `gorm:"constraint:OnDelete:CASCADE"`
}

type EventRegistration struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	EventID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_event_registrations_event_user"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_event_registrations_event_user"`
	CreatedAt time.Time
}

type Ticket struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	EventID    *uuid.UUID `gorm:"type:uuid;index"`
	TicketType string     `gorm:"size:50;not null"`
	Price      int64      `gorm:"not null"`
	TicketCode string     `gorm:"size:8;uniqueIndex;not null"`
	IsUsed     bool       `gorm:"not null;default:false"`
	UsedAt     *time.Time
	CreatedAt  time.Time
}

type Quiz struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title       string    `gorm:"size:200;not null"`
	Description string
	IsActive    bool           `gorm:"not null;default:true"`
	CreatedAt   time.Time
	Questions   []QuizQuestion `gorm:"constraint:OnDelete:CASCADE"`
}

type QuizQuestion struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey"`
	QuizID        uuid.UUID      `gorm:"type:uuid;not null;index"`
	QuestionText  string         `gorm:"not null"`
	Options       pq.StringArray `gorm:"type:text[]"`
	CorrectOption int            `gorm:"not null"`
}

type QuizAnswer struct {
	ID             int64     `gorm:"primaryKey"`
	QuizID         uuid.UUID `gorm:"type:uuid;not null;index"`
	QuestionID     uuid.UUID `gorm:"type:uuid;not null"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;index"`
	SelectedOption int       `gorm:"not null"`
	IsCorrect      bool      `gorm:"not null"`
	CreatedAt      time.Time
}

type QuizSubmission struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	QuizID         uuid.UUID `gorm:"type:uuid;not null;index"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;index"`
	Score          int       `gorm:"not null"`
	TotalQuestions int       `gorm:"not null"`
	Percentage     float64   `gorm:"not null"`
	CreatedAt      time.Time
}

// Notification rows with a nil UserID are broadcast to everyone.
type Notification struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID    *uuid.UUID `gorm:"type:uuid;index"`
	Title     string     `gorm:"size:200;not null"`
	Message   string     `gorm:"not null"`
	IsRead    bool       `gorm:"not null;default:false"`
	CreatedAt time.Time
}

type ChatbotQuery struct {
	ID           int64     `gorm:"primaryKey"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index"`
	QueryText    string    `gorm:"not null"`
	ResponseText *string
	CreatedAt    time.Time
	RespondedAt  *time.Time
}
