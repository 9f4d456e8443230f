// Package skyline tracks the occupied vertical extent of a staff so that
// automatically placed elements can be kept clear of each other.
package skyline

import (
	"math"
	"sort"

	"github.com/dshills/engrave/internal/engraving/geom"
)

// NoOverlap is returned by MinDistance when the lines share no x range.
var NoOverlap = -math.MaxFloat64

// Segment is one horizontal run of a skyline.
type Segment struct {
	X, W, Y float64
}

// Line is one side of a skyline. A north line records top edges, a south
// line bottom edges.
type Line struct {
	north bool
	segs  []Segment
}

// NewLine creates an empty line.
func NewLine(north bool) *Line {
	return &Line{north: north}
}

// IsNorth reports whether the line records top edges.
func (l *Line) IsNorth() bool { return l.north }

// Add records an edge at height y spanning [x, x+w). Zero or negative
// widths are ignored.
func (l *Line) Add(x, y, w float64) {
	if w <= 0 {
		return
	}
	l.segs = append(l.segs, Segment{X: x, W: w, Y: y})
	sort.SliceStable(l.segs, func(i, j int) bool { return l.segs[i].X < l.segs[j].X })
}

// AddRect records the matching edge of r.
func (l *Line) AddRect(r geom.RectF) {
	if l.north {
		l.Add(r.X, r.Top(), r.W)
		return
	}
	l.Add(r.X, r.Bottom(), r.W)
}

// Segments returns the recorded runs ordered by x.
func (l *Line) Segments() []Segment {
	return l.segs
}

// Empty reports whether nothing was recorded.
func (l *Line) Empty() bool {
	return len(l.segs) == 0
}

// MinDistance returns the largest value of (this.y - other.y) over all x
// ranges where the two lines overlap. For a south line above a north line a
// positive result means the shapes intersect by that amount; a negative
// result is the clearance. NoOverlap is returned when no x range is shared.
func (l *Line) MinDistance(other *Line) float64 {
	dist := NoOverlap
	for _, a := range l.segs {
		for _, b := range other.segs {
			if a.X < b.X+b.W && b.X < a.X+a.W {
				dist = math.Max(dist, a.Y-b.Y)
			}
		}
	}
	return dist
}

// Max returns the largest recorded y, or 0 for an empty line.
func (l *Line) Max() float64 {
	if len(l.segs) == 0 {
		return 0
	}
	m := -math.MaxFloat64
	for _, s := range l.segs {
		m = math.Max(m, s.Y)
	}
	return m
}

// Min returns the smallest recorded y, or 0 for an empty line.
func (l *Line) Min() float64 {
	if len(l.segs) == 0 {
		return 0
	}
	m := math.MaxFloat64
	for _, s := range l.segs {
		m = math.Min(m, s.Y)
	}
	return m
}

// Clear removes all runs.
func (l *Line) Clear() {
	l.segs = nil
}

// Skyline is the pair of north and south lines for one staff of a system.
type Skyline struct {
	north *Line
	south *Line
}

// New creates an empty skyline.
func New() *Skyline {
	return &Skyline{north: NewLine(true), south: NewLine(false)}
}

// North returns the top profile.
func (s *Skyline) North() *Line { return s.north }

// South returns the bottom profile.
func (s *Skyline) South() *Line { return s.south }

// Add records r in both profiles.
func (s *Skyline) Add(r geom.RectF) {
	s.north.AddRect(r)
	s.south.AddRect(r)
}

// Clear empties both profiles.
func (s *Skyline) Clear() {
	s.north.Clear()
	s.south.Clear()
}
