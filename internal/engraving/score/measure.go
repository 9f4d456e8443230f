package score

import (
	"github.com/dshills/engrave/internal/engraving/geom"
	"github.com/dshills/engrave/internal/engraving/skyline"
)

// staffHeight is the height of a five line staff in spatium.
const staffHeight = 4.0

// SysStaff is one staff of a system together with its skyline.
type SysStaff struct {
	y   float64
	sky *skyline.Skyline
}

// Y returns the staff offset inside the system.
func (ss *SysStaff) Y() float64 { return ss.y }

// Skyline returns the staff's collision profile.
func (ss *SysStaff) Skyline() *skyline.Skyline { return ss.sky }

// System is a line of music.
type System struct {
	ElementBase
	staves   []*SysStaff
	measures []*Measure
}

func newSystem(s *Score, pos geom.PointF, staffY []float64) *System {
	sys := &System{}
	sys.Init(sys, s)
	sys.SetPos(pos)
	if len(staffY) == 0 {
		staffY = []float64{0}
	}
	for _, y := range staffY {
		sys.staves = append(sys.staves, &SysStaff{y: y, sky: skyline.New()})
	}
	return sys
}

// Type implements Element.
func (sys *System) Type() ElementType { return TypeSystem }

// Staff returns the staff at idx or nil.
func (sys *System) Staff(idx int) *SysStaff {
	if idx < 0 || idx >= len(sys.staves) {
		return nil
	}
	return sys.staves[idx]
}

// Staves returns the number of staves.
func (sys *System) Staves() int { return len(sys.staves) }

// Measures returns the measures in order.
func (sys *System) Measures() []*Measure { return sys.measures }

// AddMeasure appends a measure at x with the given width.
func (sys *System) AddMeasure(x, width float64) *Measure {
	m := &Measure{system: sys, width: width}
	m.Init(m, sys.Score())
	m.SetParent(sys)
	m.SetPos(geom.Pt(x, 0))
	sys.measures = append(sys.measures, m)
	return m
}

// layoutStaves resets each skyline to the staff lines and the glyphs
// standing on them.
func (sys *System) layoutStaves() {
	sp := sys.Spatium()
	for idx, ss := range sys.staves {
		ss.sky.Clear()
		for _, m := range sys.measures {
			ss.sky.Add(geom.Rect(m.Pos().X, 0, m.width, staffHeight*sp))
			for _, seg := range m.segments {
				for _, e := range seg.staffGlyphs(idx) {
					e.Layout()
					ss.sky.Add(e.Base().BBox().Translated(e.Base().Pos().Add(seg.PosInSystem())))
				}
			}
		}
	}
}

// Measure is a bar of a system.
type Measure struct {
	ElementBase
	system   *System
	width    float64
	segments []*Segment
}

// Type implements Element.
func (m *Measure) Type() ElementType { return TypeMeasure }

// System returns the system containing the measure.
func (m *Measure) System() *System { return m.system }

// Width returns the measure width.
func (m *Measure) Width() float64 { return m.width }

// Segments returns the segments in time order.
func (m *Measure) Segments() []*Segment { return m.segments }

// AddSegment appends a segment at x inside the measure.
func (m *Measure) AddSegment(x float64, tick int) *Segment {
	seg := newSegment(m.Score(), m, tick)
	seg.SetPos(geom.Pt(x, 0))
	m.segments = append(m.segments, seg)
	return seg
}

// Segment is one musical moment of a measure. It holds the chords and rests
// of each track and the annotations attached to the moment.
type Segment struct {
	ElementBase
	measure     *Measure
	tick        int
	chordRests  map[int]Element
	annotations []Element
}

func newSegment(s *Score, m *Measure, tick int) *Segment {
	seg := &Segment{measure: m, tick: tick, chordRests: make(map[int]Element)}
	seg.Init(seg, s)
	if m != nil {
		seg.SetParent(m)
	}
	return seg
}

// Type implements Element.
func (seg *Segment) Type() ElementType { return TypeSegment }

// Measure returns the measure, or nil for an unattached segment.
func (seg *Segment) Measure() *Measure { return seg.measure }

// Tick returns the musical time of the segment.
func (seg *Segment) Tick() int { return seg.tick }

// PosInSystem returns the segment position relative to its system.
func (seg *Segment) PosInSystem() geom.PointF {
	if seg.measure == nil {
		return seg.Pos()
	}
	return seg.measure.Pos().Add(seg.Pos())
}

// SysStaff returns the system staff at idx, or nil when the segment is not
// laid out in a system.
func (seg *Segment) SysStaff(idx int) *SysStaff {
	if seg.measure == nil || seg.measure.system == nil {
		return nil
	}
	return seg.measure.system.Staff(idx)
}

// SetChordRest places a chord or rest on track.
func (seg *Segment) SetChordRest(track int, e Element) {
	e.Base().SetParent(seg)
	if t, ok := e.(interface{ SetTrack(int) }); ok {
		t.SetTrack(track)
	}
	seg.chordRests[track] = e
}

// ChordRest returns the chord or rest on track.
func (seg *Segment) ChordRest(track int) Element {
	return seg.chordRests[track]
}

// Annotations returns the elements attached to the segment.
func (seg *Segment) Annotations() []Element { return seg.annotations }

// Add attaches an annotation.
func (seg *Segment) Add(e Element) {
	e.Base().SetParent(seg)
	seg.annotations = append(seg.annotations, e)
	e.Base().TriggerLayout()
}

// Remove detaches an annotation.
func (seg *Segment) Remove(e Element) {
	for i, a := range seg.annotations {
		if a == e {
			seg.annotations = append(seg.annotations[:i], seg.annotations[i+1:]...)
			return
		}
	}
	logger.Warn("score: segment remove of missing element", "type", e.Type().Name())
}

// FirstNoteOrRest returns the first note or rest glyph on staffIdx, in
// track order, or nil.
func (seg *Segment) FirstNoteOrRest(staffIdx int) Element {
	if g := seg.staffGlyphs(staffIdx); len(g) > 0 {
		return g[0]
	}
	return nil
}

// staffGlyphs lists the notes and rests standing on staffIdx.
func (seg *Segment) staffGlyphs(staffIdx int) []Element {
	var out []Element
	start := staffIdx * VOICES
	for track := start; track < start+VOICES; track++ {
		switch cr := seg.chordRests[track].(type) {
		case *Chord:
			for _, n := range cr.notes {
				out = append(out, n)
			}
		case *Rest:
			out = append(out, cr)
		}
	}
	return out
}

// skylineFromRect builds a one segment skyline line from r.
func skylineFromRect(north bool, r geom.RectF) *skyline.Line {
	l := skyline.NewLine(north)
	l.AddRect(r)
	return l
}
