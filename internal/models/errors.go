package models

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by services. Handlers map them to HTTP statuses
// through pkg/response; wrap with fmt.Errorf("%w: ...") to add detail.
var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("already exists")
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("unauthorized")
	ErrLimitReached = errors.New("plan limit reached")
)

// Invalid returns a validation error carrying a client-facing reason.
func Invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// NotFound returns ErrNotFound naming the missing entity.
func NotFound(entity string) error {
	return fmt.Errorf("%s %w", entity, ErrNotFound)
}

// Conflict returns ErrConflict naming the clashing field.
func Conflict(what string) error {
	return fmt.Errorf("%s %w", what, ErrConflict)
}

// IsNotFound reports whether err wraps ErrNotFound.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }
