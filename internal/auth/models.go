package auth

import "time"

// LoginAttempt rows are append-only and reference the identifier by value,
// not by user FK, so throttling works for identifiers that resolve to no
// account.
type LoginAttempt struct {
	ID          int64
	Identifier  string
	IPAddress   string
	Success     bool
	AttemptedAt time.Time
}
