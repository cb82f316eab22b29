package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrUnknownEntity signals a search against an entity type with no registry.
	ErrUnknownEntity = errors.New("unknown entity type")
	// ErrUnknownField signals a search or sort field missing from the entity's whitelist.
	ErrUnknownField = errors.New("unknown field")
	// ErrInvalidValue signals a term value that cannot be coerced for its field kind.
	ErrInvalidValue = errors.New("invalid value")
)

// ValidationError is a client-facing search failure naming the offending field and value.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	switch {
	case e.Reason != "" && e.Value != "":
		return fmt.Sprintf("%s: %s=%q: %s", e.Err.Error(), e.Field, e.Value, e.Reason)
	case e.Reason != "":
		return fmt.Sprintf("%s %q: %s", e.Err.Error(), e.Field, e.Reason)
	default:
		return fmt.Sprintf("%s %q", e.Err.Error(), e.Field)
	}
}

func (e *ValidationError) Unwrap() error { return e.Err }

// NewUnknownField creates a validation error for a field outside the whitelist.
func NewUnknownField(field string) error {
	return &ValidationError{Field: field, Err: ErrUnknownField}
}

// NewInvalidValue creates a validation error for a value rejected by its field kind.
func NewInvalidValue(field, value, reason string) error {
	return &ValidationError{Field: field, Value: value, Reason: reason, Err: ErrInvalidValue}
}

// AsValidationError extracts a *ValidationError from an error chain.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
