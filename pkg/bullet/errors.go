package bullet

import (
	"errors"
	"fmt"
)

// NotFoundError is returned when a lookup by identity fails. A malformed
// identity and a well-formed identity with no matching record are
// deliberately not distinguished: both surface as NotFoundError. It is also
// returned by Latest on an empty store.
type NotFoundError struct {
	// ID is the identity that failed to resolve. Empty for failures
	// that are not tied to a single identity, such as Latest on an
	// empty store.
	ID string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return "no bullets in store"
	}
	return fmt.Sprintf("bullet with id %q was not found", e.ID)
}

// NoFileError is returned when a bullet's payload cannot be opened: either
// its file reference is unset, or the reference no longer resolves in the
// blob store.
type NoFileError struct {
	// ID is the bullet's identity, if assigned.
	ID string
}

// Error implements the error interface.
func (e *NoFileError) Error() string {
	if e.ID == "" {
		return "bullet has no file"
	}
	return fmt.Sprintf("bullet %q has no file", e.ID)
}

// StorageError represents an error from a collection backend.
type StorageError struct {
	Backend   string // Backend type ("sqlite", "memory", etc.)
	Operation string // Operation that failed ("insert", "find", etc.)
	Cause     error  // Underlying error
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error [backend=%s, operation=%s]: %v", e.Backend, e.Operation, e.Cause)
}

// Unwrap returns the underlying cause error.
func (e *StorageError) Unwrap() error {
	return e.Cause
}

// NewStorageError creates a new StorageError.
func NewStorageError(backend, operation string, cause error) *StorageError {
	return &StorageError{
		Backend:   backend,
		Operation: operation,
		Cause:     cause,
	}
}

// IsNotFound reports whether err is, or wraps, a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsNoFile reports whether err is, or wraps, a NoFileError.
func IsNoFile(err error) bool {
	var nf *NoFileError
	return errors.As(err, &nf)
}
