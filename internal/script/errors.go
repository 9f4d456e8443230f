package script

import "errors"

var (
	// ErrClosed is returned when running on a closed engine.
	ErrClosed = errors.New("script engine is closed")

	// ErrTimeout is returned when a script runs past its deadline.
	ErrTimeout = errors.New("script timeout")
)
