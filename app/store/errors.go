package store

import (
	"errors"
	"fmt"
)

// ErrAlreadySubscribed is informational, not a failure: the email is on
// the list and no duplicate entry was written.
var ErrAlreadySubscribed = errors.New("email already subscribed")

// PersistenceError wraps any substrate read/write failure. Callers must
// treat the triggering operation as not applied.
type PersistenceError struct {
	Op  string
	Key string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure: %s %s: %v", e.Op, e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// ValidationError reports bad user input with per-field reasons. The
// operation that returned it wrote nothing.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %d field(s) rejected", len(e.Fields))
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: reason}}
}
