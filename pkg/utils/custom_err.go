package utils

import "errors"

var (
	ErrValidation           = errors.New("validation failed")
	ErrInvalidRole          = errors.New("invalid role")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrForbidden            = errors.New("forbidden")
	ErrAccountNotFound      = errors.New("account not found")
	ErrEmailAlreadyExists   = errors.New("email already exists")
	ErrMenuItemNotFound     = errors.New("menu item not found")
	ErrRequestNotFound      = errors.New("request not found")
	ErrCounterpartyNotFound = errors.New("counterparty not found")
	ErrInvalidTransition    = errors.New("invalid status transition")
	ErrStatusConflict       = errors.New("request status changed concurrently")
	ErrInvalidOtp           = errors.New("invalid or expired otp")
	ErrInvalidPage          = errors.New("invalid page parameter")
	ErrInvalidPageSize      = errors.New("invalid page size parameter")
	ErrDatabaseError        = errors.New("database error")
)

// ValidationError wraps ErrValidation with a message safe to show the caller.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func (e *ValidationError) Unwrap() error { return ErrValidation }

func NewValidationError(msg string) error {
	return &ValidationError{Msg: msg}
}
