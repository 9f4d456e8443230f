// Package geom provides the floating point geometry value types used by
// layout and drawing.
package geom

import "math"

// PointF is a point in engraving coordinates.
type PointF struct {
	X, Y float64
}

// Pt is shorthand for PointF{x, y}.
func Pt(x, y float64) PointF {
	return PointF{X: x, Y: y}
}

// Add returns p+q.
func (p PointF) Add(q PointF) PointF {
	return PointF{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p-q.
func (p PointF) Sub(q PointF) PointF {
	return PointF{X: p.X - q.X, Y: p.Y - q.Y}
}

// Neg returns -p.
func (p PointF) Neg() PointF {
	return PointF{X: -p.X, Y: -p.Y}
}

// IsNull reports whether both coordinates are zero.
func (p PointF) IsNull() bool {
	return p.X == 0 && p.Y == 0
}

// LineF is a line segment.
type LineF struct {
	P1, P2 PointF
}

// Line is shorthand for a LineF from (x1,y1) to (x2,y2).
func Line(x1, y1, x2, y2 float64) LineF {
	return LineF{P1: PointF{X: x1, Y: y1}, P2: PointF{X: x2, Y: y2}}
}

// Length returns the euclidean length of the segment.
func (l LineF) Length() float64 {
	return math.Hypot(l.P2.X-l.P1.X, l.P2.Y-l.P1.Y)
}

// RectF is an axis aligned rectangle. Width and height may be negative only
// transiently; the constructors normalise nothing.
type RectF struct {
	X, Y, W, H float64
}

// Rect is shorthand for RectF{x, y, w, h}.
func Rect(x, y, w, h float64) RectF {
	return RectF{X: x, Y: y, W: w, H: h}
}

// Left returns the left edge.
func (r RectF) Left() float64 { return r.X }

// Top returns the top edge.
func (r RectF) Top() float64 { return r.Y }

// Right returns the right edge.
func (r RectF) Right() float64 { return r.X + r.W }

// Bottom returns the bottom edge.
func (r RectF) Bottom() float64 { return r.Y + r.H }

// TopLeft returns the top left corner.
func (r RectF) TopLeft() PointF { return PointF{X: r.X, Y: r.Y} }

// Center returns the centre point.
func (r RectF) Center() PointF {
	return PointF{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// IsEmpty reports whether the rectangle covers no area.
func (r RectF) IsEmpty() bool {
	return r.W <= 0 || r.H <= 0
}

// Translated returns r moved by p.
func (r RectF) Translated(p PointF) RectF {
	return RectF{X: r.X + p.X, Y: r.Y + p.Y, W: r.W, H: r.H}
}

// Contains reports whether p lies inside r (edges inclusive).
func (r RectF) Contains(p PointF) bool {
	return p.X >= r.Left() && p.X <= r.Right() && p.Y >= r.Top() && p.Y <= r.Bottom()
}

// United returns the smallest rectangle containing both r and o.
// An empty operand is ignored.
func (r RectF) United(o RectF) RectF {
	if r.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return r
	}
	x1 := math.Min(r.Left(), o.Left())
	y1 := math.Min(r.Top(), o.Top())
	x2 := math.Max(r.Right(), o.Right())
	y2 := math.Max(r.Bottom(), o.Bottom())
	return RectF{X: x1, Y: y1, W: x2 - x1, H: y2 - y1}
}
