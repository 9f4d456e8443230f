package fret

import (
	"errors"
	"maps"
	"reflect"
	"testing"

	"github.com/dshills/engrave/internal/engraving/geom"
	"github.com/dshills/engrave/internal/engraving/score"
)

func TestUndoDataRestores(t *testing.T) {
	d := newDiagram(t)
	d.SetDot(1, 2, true, DotNormal)
	d.SetDot(1, 4, true, DotCross)
	d.SetMarker(0, MarkerCross)
	d.SetBarre(2, -1, 3)

	u := NewUndoData(d)
	wantDots, wantMarkers, wantBarres := d.Dots(), d.Markers(), d.Barres()

	d.Clear()
	d.SetDot(5, 1, true, DotSquare)
	u.UpdateDiagram()

	if !reflect.DeepEqual(d.Dots(), wantDots) {
		t.Errorf("Dots() = %v, want %v", d.Dots(), wantDots)
	}
	if !maps.Equal(d.Markers(), wantMarkers) || !maps.Equal(d.Barres(), wantBarres) {
		t.Error("markers or barres not restored")
	}

	// the snapshot is not aliased by the restored diagram
	d.SetDot(1, 2, true, DotNormal)
	u.UpdateDiagram()
	if !reflect.DeepEqual(d.Dots(), wantDots) {
		t.Error("snapshot changed after restore")
	}
}

func TestUndoDataWithoutDiagramPanics(t *testing.T) {
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrNoDiagram) {
			t.Errorf("recover() = %v, want ErrNoDiagram", r)
		}
	}()
	var u UndoData
	u.UpdateDiagram()
}

func TestUndoCommands(t *testing.T) {
	tests := []struct {
		name  string
		setup func(d *Diagram)
		edit  func(d *Diagram) error
		check func(d *Diagram) bool
	}{
		{
			name:  "dot",
			edit:  func(d *Diagram) error { return d.UndoSetFretDot(2, 3, true, DotNormal) },
			check: func(d *Diagram) bool { return d.Dot(2, 3)[0].Exists() },
		},
		{
			name:  "marker",
			setup: func(d *Diagram) { d.SetDot(0, 1, true, DotNormal) },
			edit:  func(d *Diagram) error { return d.UndoSetFretMarker(0, MarkerCross) },
			check: func(d *Diagram) bool { return d.Marker(0).Type == MarkerCross && !d.hasDots(0) },
		},
		{
			name:  "barre",
			edit:  func(d *Diagram) error { return d.UndoSetFretBarre(1, 2) },
			check: func(d *Diagram) bool { return d.Barre(2).Start == 1 },
		},
		{
			name: "clear",
			setup: func(d *Diagram) {
				d.SetDot(3, 1, true, DotNormal)
				d.SetMarker(0, MarkerCircle)
			},
			edit:  func(d *Diagram) error { return d.UndoFretClear() },
			check: func(d *Diagram) bool { return len(d.Dots())+len(d.Markers()) == 0 },
		},
		{
			name: "paste state",
			edit: func(d *Diagram) error {
				return d.UndoApplyState(State{
					Schema:  stateSchema,
					Strings: 4,
					Frets:   3,
					Dots:    []StateDot{{String: 1, Fret: 2, Type: uint8(DotSquare)}},
				})
			},
			check: func(d *Diagram) bool {
				return d.Strings() == 4 && d.Frets() == 3 && d.Dot(1, 2)[0].Type == DotSquare
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := score.New(nil)
			d := New(s.Dummy())
			if tt.setup != nil {
				tt.setup(d)
			}
			c, err := d.LinkedClone()
			if err != nil {
				t.Fatal(err)
			}
			before := d.Dots()

			if err := tt.edit(d); err != nil {
				t.Fatal(err)
			}
			if !tt.check(d) || !tt.check(c) {
				t.Fatal("edit should reach the diagram and its linked copy")
			}

			if err := s.Undo(); err != nil {
				t.Fatal(err)
			}
			if tt.check(d) || tt.check(c) {
				t.Error("one undo should revert both copies")
			}
			if !reflect.DeepEqual(d.Dots(), before) {
				t.Errorf("Dots() after undo = %v, want %v", d.Dots(), before)
			}

			if err := s.Redo(); err != nil {
				t.Fatal(err)
			}
			if !tt.check(d) || !tt.check(c) {
				t.Error("redo should reapply to both copies")
			}
		})
	}
}

func TestLinkedClone(t *testing.T) {
	s := score.New(nil)
	d := New(s.Dummy())
	d.SetHarmony("A")
	c, err := d.LinkedClone()
	if err != nil {
		t.Fatal(err)
	}
	if !c.Autoplace() {
		t.Error("linked clone should autoplace")
	}
	if got := len(s.LinkList(d)); got != 2 {
		t.Errorf("LinkList() = %d elements, want 2", got)
	}
	if got := len(s.LinkList(d.Harmony())); got != 2 {
		t.Errorf("harmony LinkList() = %d elements, want 2", got)
	}
	if c.Harmony() == d.Harmony() {
		t.Error("clone should own its own chord symbol")
	}
}

func TestPropertyAccess(t *testing.T) {
	d := newDiagram(t)
	tests := []struct {
		pid  score.Pid
		v    any
		want any
	}{
		{score.PidMag, 1.5, 1.5},
		{score.PidFretStrings, 4, 4},
		{score.PidFretFrets, 3, 3},
		{score.PidFretNut, false, false},
		{score.PidFretOffset, 2, 2},
		{score.PidFretNumPos, 1, 1},
		{score.PidOrientation, score.Horizontal, score.Horizontal},
		{score.PidOffset, geom.Pt(1, 2), geom.Pt(1, 2)},
	}
	for _, tt := range tests {
		t.Run(tt.pid.Name(), func(t *testing.T) {
			if !d.SetProperty(tt.pid, tt.v) {
				t.Fatalf("SetProperty(%s) rejected", tt.pid)
			}
			if got := d.GetProperty(tt.pid); got != tt.want {
				t.Errorf("GetProperty(%s) = %v, want %v", tt.pid, got, tt.want)
			}
		})
	}

	if d.SetProperty(score.PidFretStrings, "six") {
		t.Error("wrong value type should be rejected")
	}
	if got := d.PropertyDefault(score.PidFretOffset); got != 0 {
		t.Errorf("fret offset default = %v, want 0", got)
	}
	if got := d.PropertyDefault(score.PidFretStrings); got != 6 {
		t.Errorf("strings default = %v, want 6", got)
	}
}

func TestUndoChangePropertyUnstyles(t *testing.T) {
	s := score.New(nil)
	d := New(s.Dummy())
	if err := s.UndoChangeProperty(d, score.PidFretFrets, 3); err != nil {
		t.Fatal(err)
	}
	if d.Frets() != 3 || d.IsStyled(score.PidFretFrets) {
		t.Errorf("frets = %d styled = %v, want 3 unstyled", d.Frets(), d.IsStyled(score.PidFretFrets))
	}
	if err := s.Undo(); err != nil {
		t.Fatal(err)
	}
	if d.Frets() != 5 || !d.IsStyled(score.PidFretFrets) {
		t.Error("undo should restore the styled value")
	}
}

func TestDropHarmony(t *testing.T) {
	s, d := attachedDiagram(t, 4)
	h := score.NewHarmony(s, "G7")
	if !d.AcceptDrop(h) {
		t.Fatal("diagrams accept chord symbols")
	}
	if got := d.Drop(h); got != score.Element(h) {
		t.Fatalf("Drop() = %v, want the harmony", got)
	}
	seg := d.Parent().(*score.Segment)
	if !containsElement(seg.Annotations(), h) {
		t.Error("dropped harmony should be attached to the segment")
	}
	if err := s.Undo(); err != nil {
		t.Fatal(err)
	}
	if containsElement(seg.Annotations(), h) {
		t.Error("undo should detach the harmony")
	}

	if d.AcceptDrop(score.NewRest(s)) {
		t.Error("rests are not accepted")
	}
	if d.Drop(score.NewRest(s)) != nil {
		t.Error("dropping a rest should return nil")
	}
}

func containsElement(es []score.Element, e score.Element) bool {
	for _, x := range es {
		if x == e {
			return true
		}
	}
	return false
}

func TestStateRoundTrip(t *testing.T) {
	s := score.New(nil)
	d := CreateFromString(s, "-5775O")
	d.SetDot(2, 4, true, DotTriangle)

	st, err := d.State()
	if err != nil {
		t.Fatal(err)
	}
	data, err := EncodeState(st)
	if err != nil {
		t.Fatal(err)
	}
	decoded, err := DecodeState(data)
	if err != nil {
		t.Fatal(err)
	}

	got := New(s.Dummy())
	if err := got.ApplyState(decoded); err != nil {
		t.Fatal(err)
	}
	if got.FretOffset() != d.FretOffset() || got.Frets() != d.Frets() || got.Strings() != d.Strings() {
		t.Error("grid size or offset not restored")
	}
	if !reflect.DeepEqual(got.Dots(), d.Dots()) {
		t.Errorf("Dots() = %v, want %v", got.Dots(), d.Dots())
	}
	if !maps.Equal(got.Markers(), d.Markers()) || !maps.Equal(got.Barres(), d.Barres()) {
		t.Error("markers or barres not restored")
	}
}

func TestStateErrors(t *testing.T) {
	d := newDiagram(t)
	d.SetFretOffset(400)
	if _, err := d.State(); err == nil {
		t.Error("offset beyond the compact range should fail")
	}

	if err := d.ApplyState(State{Schema: 99, Strings: 6}); !errors.Is(err, ErrBadState) {
		t.Errorf("ApplyState(schema 99) = %v, want ErrBadState", err)
	}
	if err := d.ApplyState(State{Schema: stateSchema, Strings: 6, Markers: []StateMarker{{Type: 9}}}); !errors.Is(err, ErrBadState) {
		t.Errorf("ApplyState(bad marker) = %v, want ErrBadState", err)
	}
	if _, err := DecodeState([]byte{0xc1}); !errors.Is(err, ErrBadState) {
		t.Errorf("DecodeState(garbage) = %v, want ErrBadState", err)
	}
}
