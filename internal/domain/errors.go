package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidQuery signals an empty or oversized search query.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrInvalidSortMode signals an unknown sort mode.
	ErrInvalidSortMode = errors.New("invalid sort mode")
	// ErrRetrieval signals that the content index could not be queried.
	// Distinct from an empty result, which is not an error.
	ErrRetrieval = errors.New("retrieval failed")
	// ErrClassifierUnavailable signals an intent classifier failure.
	// The orchestrator recovers from it; it is never returned to search callers.
	ErrClassifierUnavailable = errors.New("intent classifier unavailable")
	// ErrKeywordLookup signals a keyword dictionary failure.
	ErrKeywordLookup = errors.New("keyword lookup failed")
)

// ValidationError wraps ErrInvalidQuery with the offending field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrInvalidQuery.Error(), e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidQuery }

// NewValidationError creates a validation error for a request field.
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
