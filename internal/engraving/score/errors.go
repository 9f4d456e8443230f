package score

import "errors"

// Errors returned by score operations.
var (
	// ErrPropertyRejected indicates an element refused a property value.
	ErrPropertyRejected = errors.New("property value rejected")
)
