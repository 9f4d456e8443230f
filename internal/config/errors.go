package config

import (
	"errors"
	"fmt"
)

// Errors returned by configuration operations.
var (
	// ErrUnknownKey indicates a style name that does not exist.
	ErrUnknownKey = errors.New("unknown style key")

	// ErrInvalidValue indicates a value that does not fit its style.
	ErrInvalidValue = errors.New("invalid style value")

	// ErrNotLoaded indicates an operation that needs Load to run first.
	ErrNotLoaded = errors.New("style configuration not loaded")
)

// ValueError describes a style value that could not be applied.
type ValueError struct {
	// Key is the style name.
	Key string
	// Value is the rejected value.
	Value any
	// Sheet names the style sheet that provided the value.
	Sheet string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *ValueError) Error() string {
	if e.Sheet != "" {
		return fmt.Sprintf("%s: style %s = %v: %v", e.Sheet, e.Key, e.Value, e.Err)
	}
	return fmt.Sprintf("style %s = %v: %v", e.Key, e.Value, e.Err)
}

// Unwrap returns the underlying error.
func (e *ValueError) Unwrap() error {
	return e.Err
}

// Is matches ErrInvalidValue.
func (e *ValueError) Is(target error) bool {
	return target == ErrInvalidValue
}
