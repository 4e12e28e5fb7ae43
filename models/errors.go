package models

import "errors"

// Domain errors shared across repositories and services. Handlers map these
// to HTTP status codes; anything else is treated as a dependency failure.
var (
	// ErrNotFound indicates the target record is absent or soft-deleted.
	ErrNotFound = errors.New("record not found")

	// ErrConflict indicates a unique-key violation (email, event name,
	// duplicate live registration).
	ErrConflict = errors.New("record conflicts with an existing one")

	// ErrForbidden indicates an authorization rule denied the operation.
	ErrForbidden = errors.New("operation not permitted")

	// ErrInvalidInput indicates a business-rule validation failure that is
	// caught before touching the store (e.g. registering for a past event).
	ErrInvalidInput = errors.New("invalid input")
)
