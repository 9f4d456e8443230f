// Package draw defines the stateless painter interface engraving elements
// render through, together with pen, brush, font and text alignment values
// and a font metrics service.
//
// Concrete painters live in the render packages: raster (PNG), vector (SVG)
// and record (a call log used by tests and debug dumps).
package draw

import (
	"image/color"

	"github.com/dshills/engrave/internal/engraving/geom"
)

// Painter receives primitive draw calls. Coordinates are in the current
// transform, which Translate and Rotate modify and Save/Restore bracket.
type Painter interface {
	Save()
	Restore()
	Translate(offset geom.PointF)
	// Rotate rotates the coordinate system clockwise by degrees.
	Rotate(degrees float64)

	Pen() Pen
	SetPen(p Pen)
	SetNoPen()
	Brush() Brush
	SetBrush(b Brush)
	Font() Font
	SetFont(f Font)

	DrawLine(l geom.LineF)
	DrawRect(r geom.RectF)
	DrawEllipse(r geom.RectF)
	// DrawText draws text aligned inside r according to flags. A zero sized
	// rectangle together with TextDontClip anchors the text at an edge.
	DrawText(r geom.RectF, flags Align, text string)
}

// CapStyle is the end cap of stroked lines.
type CapStyle int

const (
	FlatCap CapStyle = iota
	SquareCap
	RoundCap
)

// Pen describes how outlines are stroked.
type Pen struct {
	Color color.RGBA
	Width float64
	Cap   CapStyle
	// None disables stroking.
	None bool
}

// NewPen returns a solid pen of the given colour and zero width.
func NewPen(c color.RGBA) Pen {
	return Pen{Color: c, Cap: SquareCap}
}

// BrushStyle selects how shapes are filled.
type BrushStyle int

const (
	SolidPattern BrushStyle = iota
	NoBrush
)

// Brush describes how shapes are filled.
type Brush struct {
	Color color.RGBA
	Style BrushStyle
}

// SolidBrush returns a solid brush.
func SolidBrush(c color.RGBA) Brush {
	return Brush{Color: c, Style: SolidPattern}
}

// EmptyBrush returns a brush that fills nothing.
func EmptyBrush() Brush {
	return Brush{Style: NoBrush}
}

// FontType distinguishes font roles.
type FontType int

const (
	FontUndefined FontType = iota
	FontText
	FontTablature
	FontMusicSymbol
)

// Font is a requested font.
type Font struct {
	Family    string
	Type      FontType
	PointSize float64
}

// Align is a set of text alignment flags.
type Align int

const (
	AlignLeft Align = 1 << iota
	AlignRight
	AlignHCenter
	AlignTop
	AlignBottom
	AlignVCenter
	TextDontClip
)

// Has reports whether all bits of f are set.
func (a Align) Has(f Align) bool {
	return a&f == f
}

// Black is the default element colour.
var Black = color.RGBA{A: 0xff}
