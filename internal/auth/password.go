package auth

import (
	"fmt"

	passwordvalidator "github.com/wagslane/go-password-validator"
	"golang.org/x/crypto/bcrypt"

	"festx/infrastructure"
)

const (
	bcryptCost = 10

	PasswordMinEntropyBits = 30
)

// dummyDigest is compared against when the identifier resolves to no user, so
// a failed lookup costs the same bcrypt work as a wrong password.
const dummyDigest = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

func HashPassword(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(digest), nil
}

func VerifyPassword(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}

func ValidatePasswordStrength(plaintext string) error {
	if err := passwordvalidator.Validate(plaintext, PasswordMinEntropyBits); err != nil {
		return fmt.Errorf("%w: password is not strong enough", infrastructure.ErrInvalidInput)
	}
	return nil
}
