package common

import (
	"errors"
	"fmt"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Common application errors
var (
	ErrNotFound     = errors.New("resource not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrInternal     = errors.New("internal error")
	ErrDatabase     = errors.New("database error")
)

// Batch-processing input faults. These are reported immediately and never
// retried; the owning batch is marked failed.
var (
	ErrCorruptArchive = errors.New("uploaded file is not a valid ZIP archive or is corrupted")
	ErrNoPDFFiles     = errors.New("no PDF files found in the ZIP archive")

	// ErrJobDescriptionNotReady aborts a batch before any status transition:
	// the referenced job description has not reached processed_jd yet.
	ErrJobDescriptionNotReady = errors.New("job description not yet processed or missing text")
)

// Error constructors
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
