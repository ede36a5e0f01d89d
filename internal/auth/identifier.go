package auth

import (
	"fmt"
	"regexp"
	"strings"

	"festx/infrastructure"
)

// IdentifierKind tags what a user typed into the identifier field. The shape
// is decided once here at the input boundary and carried through the call
// chain; nothing downstream re-sniffs the string.
type IdentifierKind int

const (
	IdentifierEmail IdentifierKind = iota
	IdentifierMobile
)

type Identifier struct {
	Kind  IdentifierKind
	Value string
}

var (
	emailRe  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	mobileRe = regexp.MustCompile(`^\d{10}$`)
)

// ParseIdentifier classifies a raw identifier as an email address or a
// 10-digit mobile number.
func ParseIdentifier(raw string) (Identifier, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Identifier{}, fmt.Errorf("%w: identifier is required", infrastructure.ErrInvalidInput)
	}
	if strings.Contains(raw, "@") {
		if !emailRe.MatchString(raw) {
			return Identifier{}, fmt.Errorf("%w: invalid email format", infrastructure.ErrInvalidInput)
		}
		return Identifier{Kind: IdentifierEmail, Value: raw}, nil
	}
	if !mobileRe.MatchString(raw) {
		return Identifier{}, fmt.Errorf("%w: invalid mobile number format", infrastructure.ErrInvalidInput)
	}
	return Identifier{Kind: IdentifierMobile, Value: raw}, nil
}

func ValidEmail(email string) bool {
	return emailRe.MatchString(email)
}

func ValidMobile(mobile string) bool {
	return mobileRe.MatchString(mobile)
}
