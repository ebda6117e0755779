package errors

import "errors"

var (
	ErrNotFound = errors.New("destination not found")

	ErrInvalidID = errors.New("invalid destination ID format")

	// ErrDuplicateSlug is surfaced by the unique index when a concurrent
	// writer slips past the existence check.
	ErrDuplicateSlug = errors.New("destination slug already exists")
)
