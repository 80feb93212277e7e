package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals that no record exists for the requested value.
	ErrNotFound = errors.New("string not found")
	// ErrValidation signals a malformed filter parameter or input value.
	ErrValidation = errors.New("validation failed")
	// ErrUnrecognizedQuery signals a natural-language phrase outside the grammar.
	ErrUnrecognizedQuery = errors.New("unrecognized query")
)

// ValidationError wraps ErrValidation with the offending parameter name.
type ValidationError struct {
	Param  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: parameter %q: %s", ErrValidation.Error(), e.Param, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a validation error for a named parameter.
func NewValidationError(param, reason string) error {
	return &ValidationError{Param: param, Reason: reason}
}

// UnrecognizedQueryError wraps ErrUnrecognizedQuery with the unparsed remainder
// of the phrase, so callers can adjust their phrasing.
type UnrecognizedQueryError struct {
	Remainder string
}

func (e *UnrecognizedQueryError) Error() string {
	return fmt.Sprintf("%s: could not parse %q", ErrUnrecognizedQuery.Error(), e.Remainder)
}

func (e *UnrecognizedQueryError) Unwrap() error { return ErrUnrecognizedQuery }

// NewUnrecognizedQuery creates an unrecognized-query error.
func NewUnrecognizedQuery(remainder string) error {
	return &UnrecognizedQueryError{Remainder: remainder}
}
