package score

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/dshills/engrave/internal/engine/history"
	"github.com/dshills/engrave/internal/engraving/geom"
	"github.com/dshills/engrave/internal/engraving/style"
	"github.com/dshills/engrave/internal/engraving/xmlio"
)

func TestLayoutTrackerOrder(t *testing.T) {
	s := New(nil)
	a := NewRest(s)
	b := NewRest(s)
	tr := NewLayoutTracker()
	tr.Mark(a)
	tr.Mark(b)
	tr.Mark(a)

	if !tr.IsPending(b) {
		t.Error("b should be pending")
	}
	got, full := tr.Take()
	if full {
		t.Error("Take() should not report a full layout")
	}
	if len(got) != 2 || got[0] != Element(a) || got[1] != Element(b) {
		t.Errorf("Take() = %v, want [a b]", got)
	}
	if tr.HasPending() {
		t.Error("Take() should reset the tracker")
	}
}

func TestLayoutTrackerOverflow(t *testing.T) {
	s := New(nil)
	tr := NewLayoutTracker()
	tr.maxPending = 2
	for i := 0; i < 3; i++ {
		tr.Mark(NewRest(s))
	}
	if _, full := tr.Take(); !full {
		t.Error("overflowing the tracker should force a full layout")
	}
}

func newStaffScore(t *testing.T) (*Score, *Segment) {
	t.Helper()
	s := New(nil)
	sys := s.AddSystem(geom.Pt(0, 0), 0)
	m := sys.AddMeasure(0, 20*s.Style().Spatium())
	return s, m.AddSegment(s.Style().Spatium(), 0)
}

func TestHarmonyClearsSkyline(t *testing.T) {
	s, seg := newStaffScore(t)
	sp := s.Style().Spatium()

	// a note three spaces above the staff
	seg.SetChordRest(0, NewChord(s, NewNote(s, 84, -6)))
	h := NewHarmony(s, "C")
	seg.Add(h)
	s.DoLayout()

	bottom := h.Pos().Y + h.BBox().Bottom()
	noteTop := -3.5 * sp
	if want := noteTop - 0.5*sp; bottom > want+1e-6 {
		t.Errorf("harmony bottom = %v, want <= %v", bottom, want)
	}
	north := seg.SysStaff(0).Skyline().North()
	if north.Min() > h.Pos().Y+h.BBox().Top()+1e-6 {
		t.Error("harmony should have been added to the skyline")
	}
}

func TestHarmonyWithoutAutoplaceStays(t *testing.T) {
	s, seg := newStaffScore(t)
	seg.SetChordRest(0, NewChord(s, NewNote(s, 84, -6)))
	h := NewHarmony(s, "C")
	h.SetAutoplace(false)
	seg.Add(h)
	s.DoLayout()

	want := -s.Style().P(style.SidHarmonyFretDist) - (h.BBox().Bottom())
	if math.Abs(h.Pos().Y-want) > 1e-6 {
		t.Errorf("Pos().Y = %v, want %v", h.Pos().Y, want)
	}
}

func TestFirstNoteOrRest(t *testing.T) {
	s, seg := newStaffScore(t)
	if seg.FirstNoteOrRest(0) != nil {
		t.Fatal("empty segment should have no glyph")
	}
	r := NewRest(s)
	seg.SetChordRest(1, r)
	n := NewNote(s, 60, 10)
	seg.SetChordRest(4, NewChord(s, n))

	if got := seg.FirstNoteOrRest(0); got != Element(r) {
		t.Errorf("FirstNoteOrRest(0) = %v, want rest", got)
	}
	if got := seg.FirstNoteOrRest(1); got != Element(n) {
		t.Errorf("FirstNoteOrRest(1) = %v, want note", got)
	}
	if n.Track() != 4 || n.StaffIdx() != 1 {
		t.Errorf("note track = %d, staff = %d", n.Track(), n.StaffIdx())
	}
	if GlyphWidth(n) != n.HeadWidth() || GlyphWidth(r) != r.SymWidth() {
		t.Error("GlyphWidth should dispatch on glyph kind")
	}
}

func TestUndoChangePropertyFollowsLinks(t *testing.T) {
	s := New(nil)
	ex := s.AddExcerpt()
	h := NewHarmony(s, "Am")
	h2 := NewHarmony(ex, "Am")
	if err := s.Links().Link(h2, h); err != nil {
		t.Fatal(err)
	}

	if err := s.UndoChangeProperty(h, PidMinDistance, style.Spatium(2)); err != nil {
		t.Fatal(err)
	}
	for _, e := range []*Harmony{h, h2} {
		if e.MinDistance() != 2 {
			t.Errorf("MinDistance() = %v, want 2", e.MinDistance())
		}
		if e.PropertyFlags(PidMinDistance) != Unstyled {
			t.Error("changed styled property should become unstyled")
		}
	}
	if s.History().UndoCount() != 1 {
		t.Errorf("UndoCount() = %d, want 1", s.History().UndoCount())
	}

	if err := ex.Undo(); err != nil {
		t.Fatal(err)
	}
	for _, e := range []*Harmony{h, h2} {
		if e.MinDistance() != 0.5 {
			t.Errorf("MinDistance() after undo = %v, want 0.5", e.MinDistance())
		}
		if !e.IsStyled(PidMinDistance) {
			t.Error("undo should restore the styled flag")
		}
	}
}

func TestChangePropertyRejected(t *testing.T) {
	s := New(nil)
	h := NewHarmony(s, "G")
	err := s.Execute(NewChangeProperty(h, PidAutoplace, "yes"))
	if !errors.Is(err, ErrPropertyRejected) {
		t.Errorf("error = %v, want ErrPropertyRejected", err)
	}
	if !errors.Is(s.Undo(), history.ErrNothingToUndo) {
		t.Error("rejected change should not be recorded")
	}
}

func TestUndoAddElement(t *testing.T) {
	s, seg := newStaffScore(t)
	h := NewHarmony(s, "D")
	if err := s.UndoAddElement(seg, h); err != nil {
		t.Fatal(err)
	}
	if len(seg.Annotations()) != 1 || h.Parent() != Element(seg) {
		t.Fatal("harmony should be attached")
	}
	if err := s.Undo(); err != nil {
		t.Fatal(err)
	}
	if len(seg.Annotations()) != 0 {
		t.Error("undo should detach the harmony")
	}
}

func TestStyleChangeRestylesElements(t *testing.T) {
	s, seg := newStaffScore(t)
	h := NewHarmony(s, "E")
	seg.Add(h)
	st := style.New()
	if err := st.Set(style.SidHarmonyMinDistance, 1.5); err != nil {
		t.Fatal(err)
	}
	s.SetStyle(st)
	if h.MinDistance() != 1.5 {
		t.Errorf("MinDistance() = %v, want 1.5", h.MinDistance())
	}
}

func TestHarmonyWriteRead(t *testing.T) {
	s := New(nil)
	h := NewHarmony(s, "F#m7b5")
	h.SetAutoplace(false)
	h.SetProperty(PidOffset, geom.Pt(0, -s.Style().Spatium()))

	var buf bytes.Buffer
	w := xmlio.NewWriter(&buf)
	h.Write(w)
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if strings.Contains(out, "minDistance") {
		t.Errorf("default minDistance should not be written:\n%s", out)
	}

	r := xmlio.NewReader(strings.NewReader(out), "test")
	if !r.ReadNextStartElement() || r.Name() != "Harmony" {
		t.Fatal("expected Harmony element")
	}
	got := NewHarmony(s, "")
	got.Read(r)
	if got.Text() != "F#m7b5" {
		t.Errorf("Text() = %q", got.Text())
	}
	if got.Autoplace() {
		t.Error("autoplace should read back false")
	}
	if math.Abs(got.Offset().Y+s.Style().Spatium()) > 1e-6 {
		t.Errorf("Offset() = %v", got.Offset())
	}
}

func TestConvertPitch(t *testing.T) {
	sd := GuitarStandard()
	tests := []struct {
		name   string
		pitch  int
		str    int
		fret   int
		wantOK bool
	}{
		{"open high e", 64, 5, 0, true},
		{"low g", 43, 0, 3, true},
		{"c on b string", 60, 4, 1, true},
		{"below range", 30, -1, -1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			str, fret, ok := sd.ConvertPitch(tt.pitch)
			if ok != tt.wantOK || str != tt.str || fret != tt.fret {
				t.Errorf("ConvertPitch(%d) = %d, %d, %v", tt.pitch, str, fret, ok)
			}
		})
	}
}

func TestPagePos(t *testing.T) {
	s := New(nil)
	sys := s.AddSystem(geom.Pt(10, 100), 0, 50)
	m := sys.AddMeasure(20, 200)
	seg := m.AddSegment(5, 0)
	h := NewHarmony(s, "C")
	h.SetTrack(VOICES)
	seg.Add(h)
	h.SetPos(geom.Pt(1, 2))

	want := geom.Pt(36, 152)
	if got := h.PagePos(); got != want {
		t.Errorf("PagePos() = %v, want %v", got, want)
	}
}
