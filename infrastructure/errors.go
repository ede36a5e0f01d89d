package infrastructure

import "errors"

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrDuplicateIdentity  = errors.New("identity already registered")
	ErrTooManyAttempts    = errors.New("too many failed login attempts")
	ErrNotFound           = errors.New("not found")
	ErrAccountInactive    = errors.New("account is inactive")
	ErrInternalServer     = errors.New("internal server error")
)
