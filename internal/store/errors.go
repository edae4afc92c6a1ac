package store

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when an operation names a configuration that does not exist.
	ErrNotFound = errors.New("webinar configuration not found")
	// ErrFieldNotFound is returned when a form field id is unknown within its configuration.
	ErrFieldNotFound = errors.New("form field not found")
)

// Operator-facing messages for protected-state violations.
const (
	MsgLastConfiguration = "System requires at least one active configuration."
	MsgLastFormField     = "At least one field is required for registration."
)

// ProtectedStateError reports a mutation refused because it would break a
// non-empty invariant. The mutation has not been applied.
type ProtectedStateError struct {
	Reason string
}

func (e *ProtectedStateError) Error() string { return e.Reason }

// ValidationError reports input that does not satisfy the configuration shape.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "invalid configuration: " + e.Reason
	}
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}

// PersistError reports that the collection could not be written to storage.
// The in-memory state is left as it was before the mutation.
type PersistError struct {
	Key string
	Err error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("persist %q: %v", e.Key, e.Err)
}

func (e *PersistError) Unwrap() error { return e.Err }
