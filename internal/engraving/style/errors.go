package style

import "errors"

// Errors returned by style operations.
var (
	// ErrUnknownStyle indicates a style id or name that does not exist.
	ErrUnknownStyle = errors.New("unknown style")

	// ErrTypeMismatch indicates a value that cannot be coerced to the style's kind.
	ErrTypeMismatch = errors.New("type mismatch")
)
