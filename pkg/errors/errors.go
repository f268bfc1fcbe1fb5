package errors

import (
	stderrors "errors"
	"fmt"
)

// Error codes
const (
	CodePickerError    = "PICKER_ERROR"
	CodeLoadError      = "LOAD_ERROR"
	CodeEmptySelection = "EMPTY_SELECTION"
	CodeAPIError       = "API_ERROR"
	CodeValidation     = "VALIDATION_ERROR"
	CodeSettings       = "SETTINGS_ERROR"
)

type PickerError struct {
	Message string
	Code    string
	Context map[string]any
	Cause   error
}

func (e *PickerError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *PickerError) Unwrap() error {
	return e.Cause
}

func NewPickerError(message, code string, context map[string]any) *PickerError {
	return &PickerError{
		Message: message,
		Code:    code,
		Context: context,
	}
}

func (e *PickerError) WithCause(cause error) *PickerError {
	e.Cause = cause
	return e
}

// LoadError reports a catalog load that could not be completed. The catalog
// that was loaded before the attempt stays in place.
type LoadError struct {
	*PickerError
	Path string
}

func NewLoadError(message, path string, cause error) *LoadError {
	return &LoadError{
		PickerError: &PickerError{
			Message: message,
			Code:    CodeLoadError,
			Context: map[string]any{
				"path": path,
			},
			Cause: cause,
		},
		Path: path,
	}
}

// EmptySelectionError is returned when a pick is attempted over zero candidates.
type EmptySelectionError struct {
	*PickerError
}

func NewEmptySelectionError() *EmptySelectionError {
	return &EmptySelectionError{
		PickerError: &PickerError{
			Message: "no candidates to pick from",
			Code:    CodeEmptySelection,
		},
	}
}

type APIError struct {
	*PickerError
	StatusCode int
}

func NewAPIError(message string, statusCode int, context map[string]any) *APIError {
	return &APIError{
		PickerError: &PickerError{
			Message: message,
			Code:    CodeAPIError,
			Context: context,
		},
		StatusCode: statusCode,
	}
}

type ValidationError struct {
	*PickerError
	Field string
	Value interface{}
}

func NewValidationError(message, field string, value interface{}) *ValidationError {
	return &ValidationError{
		PickerError: &PickerError{
			Message: message,
			Code:    CodeValidation,
			Context: map[string]any{
				"field": field,
				"value": value,
			},
		},
		Field: field,
		Value: value,
	}
}

type SettingsError struct {
	*PickerError
	Operation string
	Key       string
}

func NewSettingsError(message, operation, key string, cause error) *SettingsError {
	return &SettingsError{
		PickerError: &PickerError{
			Message: message,
			Code:    CodeSettings,
			Context: map[string]any{
				"operation": operation,
				"key":       key,
			},
			Cause: cause,
		},
		Operation: operation,
		Key:       key,
	}
}

// IsLoadError reports whether err wraps a *LoadError.
func IsLoadError(err error) bool {
	var target *LoadError
	return stderrors.As(err, &target)
}

// IsEmptySelection reports whether err wraps an *EmptySelectionError.
func IsEmptySelection(err error) bool {
	var target *EmptySelectionError
	return stderrors.As(err, &target)
}

// IsValidation reports whether err wraps a *ValidationError.
func IsValidation(err error) bool {
	var target *ValidationError
	return stderrors.As(err, &target)
}
