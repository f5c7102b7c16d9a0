package repository

import (
	"errors"
	"fmt"
)

// Kind classifies a StoreError into the error taxonomy callers branch on.
type Kind int

const (
	// KindInternal - the store failed for reasons unrelated to the document.
	KindInternal Kind = iota
	// KindValidation - a declared schema constraint was violated.
	KindValidation
	// KindConflict - a unique field collided with an existing document.
	KindConflict
	// KindNotFound - the target of an update or lookup does not exist.
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not_found"
	default:
		return "internal"
	}
}

// StoreError is the only error type that crosses the repository boundary.
// Native driver errors are always translated into it, enriched with the
// offending field names and their declared constraints so callers can render
// field-specific messages instead of raw store errors.
type StoreError struct {
	Kind        Kind
	Fields      []string
	Constraints map[string]Field
	Reason      string
	Err         error
}

func (e *StoreError) Error() string {
	if len(e.Fields) > 0 {
		return fmt.Sprintf("store %s error on %v: %s", e.Kind, e.Fields, e.Reason)
	}
	return fmt.Sprintf("store %s error: %s", e.Kind, e.Reason)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is a StoreError of kind NotFound.
func IsNotFound(err error) bool {
	return hasKind(err, KindNotFound)
}

// IsConflict reports whether err is a StoreError of kind Conflict.
func IsConflict(err error) bool {
	return hasKind(err, KindConflict)
}

// IsValidation reports whether err is a StoreError of kind Validation.
func IsValidation(err error) bool {
	return hasKind(err, KindValidation)
}

func hasKind(err error, kind Kind) bool {
	var storeErr *StoreError
	return errors.As(err, &storeErr) && storeErr.Kind == kind
}
