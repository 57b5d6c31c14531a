package model

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by stores when the requested entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned when a unique field collides.
	ErrAlreadyExists = errors.New("already exists")
	// ErrStoreUnavailable marks transient persistence failures that may be retried.
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrForbidden is returned when the caller lacks a required permission.
	ErrForbidden = errors.New("forbidden")
)

// ValidationError reports invalid input on a single field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError builds a ValidationError for field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
