package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a booking or property does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a requested range collides with a
	// confirmed booking at write time. A "false" from the availability
	// pre-check is advisory; this error is the authoritative answer.
	ErrConflict = errors.New("dates conflict with an existing booking")
)

// ValidationError describes malformed input. It is never retried and is
// surfaced to the caller immediately.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// PersistenceError wraps a failure of the underlying store. The calendar
// generator treats it as skippable per property; a booking request treats it
// as fatal to that single request.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
