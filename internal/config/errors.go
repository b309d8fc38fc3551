package config

import (
	"errors"
	"fmt"
	"strings"
)

// Errors returned by configuration operations.
var (
	// ErrValidationFailed indicates one or more settings failed validation.
	ErrValidationFailed = errors.New("validation failed")

	// ErrUnsupportedFormat indicates an unknown configuration file format.
	ErrUnsupportedFormat = errors.New("unsupported config format")
)

// ValidationError describes a validation failure for a setting.
type ValidationError struct {
	// Path is the setting path that failed validation.
	Path string
	// Message describes the validation error.
	Message string
	// Value is the invalid value.
	Value any
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (value: %v)", e.Path, e.Message, e.Value)
}

// Is implements error matching for ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}

// ValidationErrors collects every failure found by Validate.
type ValidationErrors []*ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("%s: %s", ErrValidationFailed, strings.Join(msgs, "; "))
}

// Is implements error matching for ValidationErrors.
func (e ValidationErrors) Is(target error) bool {
	return target == ErrValidationFailed
}

// Paths returns the setting paths that failed.
func (e ValidationErrors) Paths() []string {
	paths := make([]string, len(e))
	for i, err := range e {
		paths[i] = err.Path
	}
	return paths
}
