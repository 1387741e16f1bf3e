package errors

import "errors"

// Structural errors surfaced by repositories. Services translate these into
// the domain taxonomy; handlers never see raw storage errors.
var (
	// ErrNotFound is returned when a record or resource does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrConflict is returned on state conflicts, most notably a unique
	// constraint violation (the concurrent-registration race resolves here).
	ErrConflict = errors.New("resource state conflict")

	// ErrValidation is returned for invalid input data.
	ErrValidation = errors.New("validation failed")

	// ErrUnauthorized is returned for authorization failures (bad token,
	// missing permissions).
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInternal wraps unexpected failures so storage details never escape
	// a boundary method.
	ErrInternal = errors.New("internal error")
)
