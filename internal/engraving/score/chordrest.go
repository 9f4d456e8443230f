package score

import (
	"github.com/dshills/engrave/internal/engraving/draw"
	"github.com/dshills/engrave/internal/engraving/geom"
)

// Glyph widths in spatium for the default music font.
const (
	noteheadBlackWidth = 1.18
	restQuarterWidth   = 1.08
)

// Note is a notehead of a chord.
type Note struct {
	ElementBase
	pitch int
	line  int
}

// NewNote creates a note of the given MIDI pitch drawn on staff line line
// (half spaces from the top line).
func NewNote(s *Score, pitch, line int) *Note {
	n := &Note{pitch: pitch, line: line}
	n.Init(n, s)
	return n
}

// Type implements Element.
func (n *Note) Type() ElementType { return TypeNote }

// Pitch returns the MIDI pitch.
func (n *Note) Pitch() int { return n.pitch }

// HeadWidth returns the notehead width in pixels.
func (n *Note) HeadWidth() float64 { return noteheadBlackWidth * n.Spatium() }

// Layout places the head on its staff line.
func (n *Note) Layout() {
	sp := n.Spatium()
	n.SetPos(geom.Pt(0, float64(n.line)*sp*0.5))
	n.SetBBox(geom.Rect(0, -sp*0.5, n.HeadWidth(), sp))
}

// Draw paints the head.
func (n *Note) Draw(p draw.Painter) {
	p.SetNoPen()
	p.SetBrush(draw.SolidBrush(n.Color()))
	p.DrawEllipse(n.BBox())
}

// Chord is a stack of notes on one track.
type Chord struct {
	ElementBase
	notes []*Note
}

// NewChord creates a chord holding notes.
func NewChord(s *Score, notes ...*Note) *Chord {
	c := &Chord{}
	c.Init(c, s)
	for _, n := range notes {
		c.AddNote(n)
	}
	return c
}

// Type implements Element.
func (c *Chord) Type() ElementType { return TypeChord }

// AddNote appends a note.
func (c *Chord) AddNote(n *Note) {
	n.SetParent(c)
	n.SetTrack(c.Track())
	c.notes = append(c.notes, n)
}

// Notes returns the notes bottom to top as added.
func (c *Chord) Notes() []*Note { return c.notes }

// SetTrack moves the chord and its notes to track.
func (c *Chord) SetTrack(t int) {
	c.ElementBase.SetTrack(t)
	for _, n := range c.notes {
		n.ElementBase.SetTrack(t)
	}
}

// Layout lays out every note.
func (c *Chord) Layout() {
	for _, n := range c.notes {
		n.Layout()
	}
}

// Rest is a rest glyph.
type Rest struct {
	ElementBase
}

// NewRest creates a rest.
func NewRest(s *Score) *Rest {
	r := &Rest{}
	r.Init(r, s)
	return r
}

// Type implements Element.
func (r *Rest) Type() ElementType { return TypeRest }

// SymWidth returns the glyph width in pixels.
func (r *Rest) SymWidth() float64 { return restQuarterWidth * r.Spatium() }

// Layout centres the rest on the middle line.
func (r *Rest) Layout() {
	sp := r.Spatium()
	r.SetPos(geom.Pt(0, 2*sp))
	r.SetBBox(geom.Rect(0, -1.5*sp, r.SymWidth(), 3*sp))
}

// GlyphWidth returns the notehead width of a note or the symbol width of
// a rest, and 0 for anything else.
func GlyphWidth(e Element) float64 {
	switch g := e.(type) {
	case *Note:
		return g.HeadWidth()
	case *Rest:
		return g.SymWidth()
	}
	return 0
}

// StringData is the tuning of a fretted instrument. Strings are ordered
// from the lowest pitched string, which is drawn leftmost in a diagram.
type StringData struct {
	frets   int
	strings []int
}

// NewStringData creates a tuning with the given fret count and open string
// pitches.
func NewStringData(frets int, pitches ...int) *StringData {
	return &StringData{frets: frets, strings: append([]int(nil), pitches...)}
}

// GuitarStandard is the six string E A D G B E tuning with 19 frets.
func GuitarStandard() *StringData {
	return NewStringData(19, 40, 45, 50, 55, 59, 64)
}

// Strings returns the number of strings.
func (sd *StringData) Strings() int { return len(sd.strings) }

// Frets returns the number of frets.
func (sd *StringData) Frets() int { return sd.frets }

// Pitch returns the open pitch of string, or -1.
func (sd *StringData) Pitch(str int) int {
	if str < 0 || str >= len(sd.strings) {
		return -1
	}
	return sd.strings[str]
}

// ConvertPitch finds the highest string able to play pitch within the
// fret range, which is the position with the lowest fret.
func (sd *StringData) ConvertPitch(pitch int) (str, fret int, ok bool) {
	for s := len(sd.strings) - 1; s >= 0; s-- {
		f := pitch - sd.strings[s]
		if f >= 0 && f <= sd.frets {
			return s, f, true
		}
	}
	return -1, -1, false
}
