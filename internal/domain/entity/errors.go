package entity

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain layer operations.
var (
	// ErrNotFound indicates that a requested entity was not found.
	// Read paths also return it for entities the caller is not allowed
	// to see, so existence is never leaked through the error kind.
	ErrNotFound = errors.New("entity not found")

	// ErrForbidden indicates that the caller's role does not permit the
	// operation.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidInput indicates that the provided input is invalid.
	// Input validation happens before any store or provider call.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidCredentials indicates that the identity provider
	// rejected the supplied email/password pair.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrAccountExists indicates that registration was attempted for an
	// email that already has an account.
	ErrAccountExists = errors.New("account already exists")

	// ErrStoreUnavailable indicates that the backing store could not be
	// reached. Timeouts from the store are reported as this error.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrStoreConflict indicates that a transactional read-modify-write
	// could not be reconciled after bounded retries.
	ErrStoreConflict = errors.New("store conflict")
)

// ValidationError represents a validation error with detailed field information.
// It implements the error interface and unwraps to ErrInvalidInput so callers
// can classify it with errors.Is.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns a formatted error message for the validation error.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// Unwrap makes every validation error match ErrInvalidInput.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}
