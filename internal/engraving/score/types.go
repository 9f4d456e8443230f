package score

import "fmt"

// ElementType identifies the concrete kind of an element.
type ElementType int

const (
	TypeInvalid ElementType = iota
	TypeSystem
	TypeMeasure
	TypeSegment
	TypeChord
	TypeNote
	TypeRest
	TypeHarmony
	TypeFretDiagram
	TypeText
)

var typeNames = map[ElementType]string{
	TypeInvalid:     "invalid",
	TypeSystem:      "System",
	TypeMeasure:     "Measure",
	TypeSegment:     "Segment",
	TypeChord:       "Chord",
	TypeNote:        "Note",
	TypeRest:        "Rest",
	TypeHarmony:     "Harmony",
	TypeFretDiagram: "FretDiagram",
	TypeText:        "Text",
}

// Name returns the file format tag name of the type.
func (t ElementType) Name() string {
	if n, ok := typeNames[t]; ok {
		return n
	}
	return fmt.Sprintf("type(%d)", int(t))
}

// String implements fmt.Stringer.
func (t ElementType) String() string { return t.Name() }

// Orientation of a fret diagram.
type Orientation int

const (
	Vertical Orientation = iota
	Horizontal
)

// String returns the file format name.
func (o Orientation) String() string {
	if o == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// ParseOrientation parses a file format name; unknown names yield Vertical.
func ParseOrientation(s string) Orientation {
	switch s {
	case "horizontal", "1":
		return Horizontal
	}
	return Vertical
}

// Placement above or below the staff.
type Placement int

const (
	Above Placement = iota
	Below
)

// String returns the file format name.
func (p Placement) String() string {
	if p == Below {
		return "below"
	}
	return "above"
}

// ParsePlacement parses a file format name; unknown names yield Above.
func ParsePlacement(s string) Placement {
	switch s {
	case "below", "1":
		return Below
	}
	return Above
}

// PropertyFlags records whether a property follows the style.
type PropertyFlags int

const (
	// NoStyle marks a property that has no style counterpart.
	NoStyle PropertyFlags = iota
	// Styled marks a property that currently follows the style.
	Styled
	// Unstyled marks a styleable property overridden on the element.
	Unstyled
)

// String implements fmt.Stringer.
func (f PropertyFlags) String() string {
	switch f {
	case Styled:
		return "styled"
	case Unstyled:
		return "unstyled"
	}
	return "nostyle"
}

// VOICES is the number of tracks per staff.
const VOICES = 4
