package xmlio

import "errors"

// ErrUnbalanced indicates mismatched StartElement/EndElement calls.
var ErrUnbalanced = errors.New("unbalanced elements")
