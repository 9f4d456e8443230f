// Package layer stacks style sheets. Each sheet holds flat style values
// keyed by style name; a higher ranked sheet overrides a lower one key by
// key.
package layer

import (
	"errors"
	"maps"
)

// ErrNoSheet reports a write to a sheet that is not on the stack.
var ErrNoSheet = errors.New("no such style sheet")

// Origin says where a sheet came from and gives its base rank.
type Origin uint8

const (
	Builtin Origin = iota
	File
	Env
	Args
)

// Base ranks. Style sheet files take consecutive ranks above FileRank in
// the order they were given.
const (
	BuiltinRank = 0
	FileRank    = 100
	EnvRank     = 500
	ArgsRank    = 600
)

func (o Origin) rank() int {
	switch o {
	case File:
		return FileRank
	case Env:
		return EnvRank
	case Args:
		return ArgsRank
	}
	return BuiltinRank
}

func (o Origin) String() string {
	switch o {
	case Builtin:
		return "builtin"
	case File:
		return "file"
	case Env:
		return "environment"
	case Args:
		return "arguments"
	}
	return "unknown"
}

// Sheet is one source of style values.
type Sheet struct {
	// Name identifies the sheet: "defaults", a file path or "environment".
	Name   string
	Origin Origin
	Rank   int
	Values map[string]any
}

// NewSheet returns a sheet at the base rank of origin. A nil values map is
// replaced by an empty one.
func NewSheet(name string, origin Origin, values map[string]any) *Sheet {
	if values == nil {
		values = make(map[string]any)
	}
	return &Sheet{Name: name, Origin: origin, Rank: origin.rank(), Values: values}
}

// Clone copies the sheet. Values are scalars, so cloning the map is deep
// enough.
func (s *Sheet) Clone() *Sheet {
	c := *s
	c.Values = maps.Clone(s.Values)
	return &c
}
