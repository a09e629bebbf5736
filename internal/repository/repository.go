package repository

import "errors"

// Sentinel errors shared by all store implementations so callers never depend
// on driver-specific errors.
var (
	// ErrNotFound signals that an id did not resolve to an entity.
	ErrNotFound = errors.New("entity not found")
	// ErrVersionConflict signals a lost optimistic update on a ticket.
	ErrVersionConflict = errors.New("entity version conflict")
	// ErrDuplicateEmail signals a unique-email violation on user creation.
	ErrDuplicateEmail = errors.New("email already registered")
)
