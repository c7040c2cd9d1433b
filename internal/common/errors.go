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

// Recoverable failure kinds. None of them is fatal: the draft is left as it was.
var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrValidation          = errors.New("validation failed")
	ErrExtraction          = errors.New("extraction failed")
	ErrExtractionInFlight  = errors.New("extraction already in progress")
	ErrLocationUnavailable = errors.New("location unavailable")
	ErrLocationInFlight    = errors.New("location request already in progress")
)

const (
	CodeConfig     = "CONFIG_ERROR"
	CodeExtraction = "EXTRACTION_FAILURE"
	CodeLocation   = "LOCATION_UNAVAILABLE"
	CodeValidation = "VALIDATION_FAILURE"
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

// ExtractionError marks err as an ExtractionFailure; errors.Is(err, ErrExtraction) holds.
func ExtractionError(message string, err error) error {
	return NewAppError(CodeExtraction, message, errors.Join(ErrExtraction, err))
}

// LocationError marks err as LocationUnavailable.
func LocationError(message string, err error) error {
	return NewAppError(CodeLocation, message, errors.Join(ErrLocationUnavailable, err))
}
