package link

import "errors"

// Errors returned by link operations.
var (
	// ErrSelfLink indicates an attempt to link an element to itself.
	ErrSelfLink = errors.New("cannot link element to itself")

	// ErrAlreadyLinked indicates the clone already belongs to a link set.
	ErrAlreadyLinked = errors.New("element already linked")
)
