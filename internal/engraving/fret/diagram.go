// Package fret implements the fret diagram: a chord fingering chart with
// per string dots and markers and per fret barres. It covers the mutation
// rules between those, layout and drawing, the current and legacy file
// formats, MusicXML frame export and undoable edits across linked copies.
package fret

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/dshills/engrave/internal/engraving/draw"
	"github.com/dshills/engrave/internal/engraving/link"
	"github.com/dshills/engrave/internal/engraving/score"
	"github.com/dshills/engrave/internal/engraving/style"
)

var logger = slog.Default()

// SetLogger replaces the package logger.
func SetLogger(l *slog.Logger) {
	if l != nil {
		logger = l
	}
}

// fontPointSize is the unscaled size of the fret offset number.
const fontPointSize = 4.0

var fretStyle = []score.StyledProperty{
	{Sid: style.SidFretNumPos, Pid: score.PidFretNumPos},
	{Sid: style.SidFretMag, Pid: score.PidMag},
	{Sid: style.SidFretPlacement, Pid: score.PidPlacement},
	{Sid: style.SidFretStrings, Pid: score.PidFretStrings},
	{Sid: style.SidFretFrets, Pid: score.PidFretFrets},
	{Sid: style.SidFretNut, Pid: score.PidFretNut},
	{Sid: style.SidFretMinDistance, Pid: score.PidMinDistance},
	{Sid: style.SidFretOrientation, Pid: score.PidOrientation},
}

// Diagram is a fret diagram attached to a segment or standing alone.
type Diagram struct {
	score.ElementBase

	strings     int
	frets       int
	fretOffset  int
	maxFrets    int
	userMag     float64
	numPos      NumberPosition
	orientation score.Orientation
	showNut     bool

	dots    map[int][]Dot
	markers map[int]Marker
	barres  map[int]Barre

	harmony *score.Harmony
	font    draw.Font

	// layout results
	stringLw   float64
	nutLw      float64
	stringDist float64
	fretDist   float64
	markerSize float64
}

// New creates a diagram on parent with styled defaults.
func New(parent *score.Segment) *Diagram {
	d := &Diagram{
		frets:    4,
		maxFrets: 24,
		userMag:  1.0,
		showNut:  true,
		dots:     make(map[int][]Dot),
		markers:  make(map[int]Marker),
		barres:   make(map[int]Barre),
	}
	d.ElementBase.Init(d, parent.Score())
	d.SetParent(parent)
	d.font = draw.Font{
		Family:    d.Style().S(style.SidFretFont),
		Type:      draw.FontTablature,
		PointSize: fontPointSize,
	}
	d.InitElementStyle(fretStyle)
	return d
}

// Type implements score.Element.
func (d *Diagram) Type() score.ElementType { return score.TypeFretDiagram }

// Clone returns an unlinked copy with its own harmony copy.
func (d *Diagram) Clone() *Diagram {
	c := &Diagram{}
	c.ElementBase.Init(c, d.Score())
	c.CopyFrom(&d.ElementBase)
	c.strings = d.strings
	c.frets = d.frets
	c.fretOffset = d.fretOffset
	c.maxFrets = d.maxFrets
	c.userMag = d.userMag
	c.numPos = d.numPos
	c.orientation = d.orientation
	c.showNut = d.showNut
	c.font = d.font
	c.dots = cloneDots(d.dots)
	c.markers = maps.Clone(d.markers)
	c.barres = maps.Clone(d.barres)
	if d.harmony != nil {
		c.Add(d.harmony.Clone())
	}
	return c
}

// LinkedClone returns a copy linked to d through the undo stack so edits
// made with the Undo* mutators reach both.
func (d *Diagram) LinkedClone() (*Diagram, error) {
	c := d.Clone()
	c.SetAutoplace(true)
	s := d.Score()
	if d.harmony != nil {
		if err := s.Execute(link.NewCommand(s.Links(), c.harmony, d.harmony)); err != nil {
			return nil, fmt.Errorf("link harmony: %w", err)
		}
	}
	if err := s.Execute(link.NewCommand(s.Links(), c, d)); err != nil {
		return nil, fmt.Errorf("link diagram: %w", err)
	}
	return c, nil
}

func cloneDots(m map[int][]Dot) map[int][]Dot {
	out := make(map[int][]Dot, len(m))
	for k, v := range m {
		out[k] = slices.Clone(v)
	}
	return out
}

func sortedKeys[V any](m map[int]V) []int {
	return slices.Sorted(maps.Keys(m))
}

// Strings returns the number of strings.
func (d *Diagram) Strings() int { return d.strings }

// Frets returns the number of visible frets.
func (d *Diagram) Frets() int { return d.frets }

// SetFrets sets the number of visible frets; negative counts are ignored.
func (d *Diagram) SetFrets(n int) {
	if n < 0 {
		return
	}
	d.frets = n
}

// FretOffset returns the fret shown in the top row minus one.
func (d *Diagram) FretOffset() int { return d.fretOffset }

// SetFretOffset sets the fret offset; negative values are ignored.
func (d *Diagram) SetFretOffset(n int) {
	if n < 0 {
		return
	}
	d.fretOffset = n
}

// MaxFrets returns the highest fret the instrument offers.
func (d *Diagram) MaxFrets() int { return d.maxFrets }

// SetMaxFrets sets the highest fret.
func (d *Diagram) SetMaxFrets(n int) { d.maxFrets = n }

// UserMag returns the diagram magnification.
func (d *Diagram) UserMag() float64 { return d.userMag }

// SetUserMag sets the diagram magnification.
func (d *Diagram) SetUserMag(m float64) { d.userMag = m }

// NumPos returns the side of the fret offset number.
func (d *Diagram) NumPos() NumberPosition { return d.numPos }

// Orientation returns the drawing orientation.
func (d *Diagram) Orientation() score.Orientation { return d.orientation }

// ShowNut reports whether the nut is drawn bold at fret 1.
func (d *Diagram) ShowNut() bool { return d.showNut }

// SetShowNut toggles the bold nut.
func (d *Diagram) SetShowNut(v bool) { d.showNut = v }

// Harmony returns the chord symbol owned by the diagram, or nil.
func (d *Diagram) Harmony() *score.Harmony { return d.harmony }

// Dot returns the dot at fret f of string s, or every dot of s when f is
// 0. A single non-existing dot is returned when nothing matches.
func (d *Diagram) Dot(s, f int) []Dot {
	if ds, ok := d.dots[s]; ok {
		if f == 0 {
			return slices.Clone(ds)
		}
		for _, dot := range ds {
			if dot.Fret == f {
				return []Dot{dot}
			}
		}
	}
	return []Dot{{Fret: 0}}
}

// Marker returns the marker of string s.
func (d *Diagram) Marker(s int) Marker {
	if m, ok := d.markers[s]; ok {
		return m
	}
	return Marker{Type: MarkerNone}
}

// Barre returns the barre on fret f, or a non-existing barre.
func (d *Diagram) Barre(f int) Barre {
	if b, ok := d.barres[f]; ok {
		return b
	}
	return Barre{Start: -1, End: -1}
}

// Dots returns a copy of the dot map.
func (d *Diagram) Dots() map[int][]Dot { return cloneDots(d.dots) }

// Markers returns a copy of the marker map.
func (d *Diagram) Markers() map[int]Marker { return maps.Clone(d.markers) }

// Barres returns a copy of the barre map.
func (d *Diagram) Barres() map[int]Barre { return maps.Clone(d.barres) }

// hasDots reports whether string s holds an existing dot.
func (d *Diagram) hasDots(s int) bool {
	for _, dot := range d.dots[s] {
		if dot.Exists() {
			return true
		}
	}
	return false
}

// Init seeds the diagram from an instrument tuning and a chord: every
// string is muted, then each playable note becomes a dot, or an open
// circle when it sounds on the open string.
func (d *Diagram) Init(sd *score.StringData, chord *score.Chord) {
	if sd == nil {
		d.SetStrings(6)
		d.maxFrets = 6
		return
	}
	d.SetStrings(sd.Strings())
	for s := 0; s < d.strings; s++ {
		d.SetMarker(s, MarkerCross)
	}
	if chord != nil {
		for _, n := range chord.Notes() {
			s, f, ok := sd.ConvertPitch(n.Pitch())
			switch {
			case !ok:
			case f == 0:
				d.SetMarker(s, MarkerCircle)
			default:
				d.SetDot(s, f, false, DotNormal)
			}
		}
	}
	d.frets = sd.Frets()
}

// SetHarmony sets the chord symbol text, creating the symbol if needed.
func (d *Diagram) SetHarmony(text string) {
	if d.harmony == nil {
		d.Add(score.NewHarmony(d.Score(), text))
	} else {
		d.harmony.SetText(text)
	}
	d.TriggerLayout()
}

// Add takes ownership of a chord symbol. Other element kinds are refused.
func (d *Diagram) Add(e score.Element) {
	h, ok := e.(*score.Harmony)
	if !ok {
		logger.Warn("fret: cannot add element", "type", e.Type().Name())
		return
	}
	h.SetParent(d)
	h.SetTrack(d.Track())
	d.harmony = h
	d.TriggerLayout()
}

// Remove releases the owned chord symbol. Anything else is refused.
func (d *Diagram) Remove(e score.Element) {
	if h, ok := e.(*score.Harmony); ok && h == d.harmony {
		d.harmony = nil
		d.TriggerLayout()
		return
	}
	logger.Warn("fret: cannot remove element", "type", e.Type().Name())
}

// AcceptDrop reports whether e may be dropped on the diagram.
func (d *Diagram) AcceptDrop(e score.Element) bool {
	return e.Type() == score.TypeHarmony
}

// Drop attaches a dropped chord symbol to the diagram's segment through the
// undo stack and returns it. Other elements are discarded and nil is
// returned.
func (d *Diagram) Drop(e score.Element) score.Element {
	h, ok := e.(*score.Harmony)
	if !ok {
		logger.Warn("fret: cannot drop element", "type", e.Type().Name())
		return nil
	}
	parent, ok := d.Parent().(score.Container)
	if !ok {
		logger.Warn("fret: drop target has no container parent")
		return nil
	}
	h.SetParent(parent)
	h.SetTrack(d.Track())
	if err := d.Score().UndoAddElement(parent, h); err != nil {
		logger.Warn("fret: drop failed", "err", err)
		return nil
	}
	return h
}

// ScanElements visits the diagram and, outside palettes, its chord symbol.
func (d *Diagram) ScanElements(fn func(score.Element)) {
	fn(d)
	if d.harmony != nil && !d.Score().IsPalette() {
		fn(d.harmony)
	}
}

// ASCII renders the diagram as text, one row per fret, strings left to
// right.
func (d *Diagram) ASCII() string {
	if d.strings <= 0 {
		return ""
	}
	width := 2*d.strings - 1
	var b strings.Builder

	row := []rune(strings.Repeat(" ", width))
	for s := 0; s < d.strings; s++ {
		switch d.Marker(s).Type {
		case MarkerCircle:
			row[2*s] = 'o'
		case MarkerCross:
			row[2*s] = 'x'
		}
	}
	b.WriteString(strings.TrimRight(string(row), " "))
	b.WriteByte('\n')

	nut := "-"
	if d.fretOffset == 0 && d.showNut {
		nut = "="
	}
	b.WriteString(strings.Repeat(nut, width))
	b.WriteByte('\n')

	for f := 1; f <= d.frets; f++ {
		row = []rune(strings.Repeat(" ", width))
		for s := 0; s < d.strings; s++ {
			row[2*s] = '|'
		}
		if br := d.Barre(f); br.Exists() {
			end := br.End
			if end == -1 {
				end = d.strings - 1
			}
			for x := 2 * br.Start; x <= 2*end && x < width; x++ {
				row[x] = '='
			}
		}
		for _, s := range sortedKeys(d.dots) {
			if s < 0 || s >= d.strings {
				continue
			}
			for _, dot := range d.dots[s] {
				if dot.Fret == f {
					row[2*s] = dotRune(dot.Type)
				}
			}
		}
		b.WriteString(string(row))
		if f == 1 && d.fretOffset > 0 {
			fmt.Fprintf(&b, " %d", d.fretOffset+1)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func dotRune(t DotType) rune {
	switch t {
	case DotCross:
		return 'x'
	case DotSquare:
		return '#'
	case DotTriangle:
		return '^'
	}
	return '*'
}
