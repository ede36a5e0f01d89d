package otp

import "time"

type UserOTP struct {
	ID        int64
	Email     string
	Code      string
	ExpiresAt time.Time
	Used      bool
	CreatedAt time.Time
}
