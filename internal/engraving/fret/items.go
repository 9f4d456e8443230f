package fret

// MarkerType is the open/muted indicator drawn above a string.
type MarkerType int

const (
	MarkerNone MarkerType = iota
	MarkerCircle
	MarkerCross
)

// DotType is the symbol used for a fingered position.
type DotType int

const (
	DotNormal DotType = iota
	DotCross
	DotSquare
	DotTriangle
)

// Dot is a fingered position on a string. Fret 0 means no dot.
type Dot struct {
	Fret int
	Type DotType
}

// Exists reports whether the dot is a real position.
func (d Dot) Exists() bool { return d.Fret > 0 }

// Marker is the indicator of one string.
type Marker struct {
	Type MarkerType
}

// Exists reports whether a marker is shown.
func (m Marker) Exists() bool { return m.Type != MarkerNone }

// Barre is one finger pressing a fret across a range of strings. End -1
// runs to the last string.
type Barre struct {
	Start int
	End   int
}

// Exists reports whether the barre is real.
func (b Barre) Exists() bool { return b.Start >= 0 }

// NumberPosition is the side the fret offset number is drawn on.
type NumberPosition int

const (
	NumberLeft NumberPosition = iota
	NumberRight
)

var markerNames = []struct {
	t    MarkerType
	name string
}{
	{MarkerCircle, "circle"},
	{MarkerCross, "cross"},
	{MarkerNone, "none"},
}

// String returns the file format name of the marker type.
func (t MarkerType) String() string {
	for _, n := range markerNames {
		if n.t == t {
			return n.name
		}
	}
	return "none"
}

// Char returns the legacy one letter code of the marker, or 0.
func (t MarkerType) Char() rune {
	switch t {
	case MarkerCircle:
		return 'O'
	case MarkerCross:
		return 'X'
	}
	return 0
}

// ParseMarkerType maps a file format name to a marker type. Unknown names
// are logged and yield MarkerNone.
func ParseMarkerType(name string) MarkerType {
	for _, n := range markerNames {
		if n.name == name {
			return n.t
		}
	}
	logger.Warn("fret: unrecognised marker name", "name", name)
	return MarkerNone
}

var dotNames = []struct {
	t    DotType
	name string
}{
	{DotNormal, "normal"},
	{DotCross, "cross"},
	{DotSquare, "square"},
	{DotTriangle, "triangle"},
}

// String returns the file format name of the dot type.
func (t DotType) String() string {
	for _, n := range dotNames {
		if n.t == t {
			return n.name
		}
	}
	return "normal"
}

// ParseDotType maps a file format name to a dot type. Unknown names are
// logged and yield DotNormal.
func ParseDotType(name string) DotType {
	for _, n := range dotNames {
		if n.name == name {
			return n.t
		}
	}
	logger.Warn("fret: unrecognised dot name", "name", name)
	return DotNormal
}
