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

// Error taxonomy for document processing. Every member resolves to a
// terminal outcome inside the engine; none crosses the boundary as a panic.
var (
	// ErrExtractionUnavailable means the text producer itself failed
	// (corrupt file, unsupported encoding). Fatal for that document.
	ErrExtractionUnavailable = errors.New("text extraction unavailable")

	// ErrUnrecoverableFields means neither an invoice number nor a total was
	// found and the layout was unrecognized, so no useful record exists.
	ErrUnrecoverableFields = errors.New("no recoverable invoice fields")

	// ErrInvalidInput marks malformed caller input (empty document, bad path).
	ErrInvalidInput = errors.New("invalid input")

	// ErrInternal marks unexpected internal failures.
	ErrInternal = errors.New("internal error")
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
