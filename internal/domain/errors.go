package domain

import (
	"errors"
	"strings"
)

var (
	// ErrDataUnavailable signals that the training dataset could not be fetched or parsed.
	ErrDataUnavailable = errors.New("data unavailable")
	// ErrModelNotReady signals a prediction or report requested before training finished.
	ErrModelNotReady = errors.New("model not ready")
	// ErrAlreadyTrained signals a second training attempt on a published model.
	ErrAlreadyTrained = errors.New("model already trained")
	// ErrValidation signals a malformed prediction request.
	ErrValidation = errors.New("validation failed")
)

// FieldError describes a single invalid request field.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError wraps ErrValidation with per-field details.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + ": " + f.Reason
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a validation error from field details.
func NewValidationError(fields ...FieldError) error {
	return &ValidationError{Fields: fields}
}
