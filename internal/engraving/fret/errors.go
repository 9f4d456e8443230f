package fret

import "errors"

var (
	// ErrNoDiagram reports an undo snapshot restored before it captured a
	// diagram. UpdateDiagram panics with it.
	ErrNoDiagram = errors.New("fret: undo data has no diagram")

	// ErrBadState reports an undecodable diagram state.
	ErrBadState = errors.New("fret: invalid diagram state")
)
