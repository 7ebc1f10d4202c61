package domain

import "errors"

var (
	// ErrInvalidArguments matches any *ValidationError via errors.Is.
	ErrInvalidArguments = errors.New("invalid arguments")

	// ErrStorage matches any *StorageError via errors.Is.
	ErrStorage = errors.New("storage failure")
)

// ValidationError reports a field value that violates its format or range.
// The message is meant to be shown to the end user as is.
type ValidationError struct {
	Message string
}

// NewValidationError returns a ValidationError carrying msg.
func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidArguments }

// StorageError wraps a driver or connection failure with a fixed summary.
// Error returns only the summary; the cause stays reachable through Unwrap.
type StorageError struct {
	Message string
	Err     error
}

// NewStorageError wraps cause with msg.
func NewStorageError(msg string, cause error) *StorageError {
	return &StorageError{Message: msg, Err: cause}
}

func (e *StorageError) Error() string { return e.Message }

func (e *StorageError) Unwrap() error { return e.Err }

func (e *StorageError) Is(target error) bool { return target == ErrStorage }
