package fret

import (
	"math"
	"testing"

	"github.com/dshills/engrave/internal/engraving/draw"
	"github.com/dshills/engrave/internal/engraving/geom"
	"github.com/dshills/engrave/internal/engraving/score"
	"github.com/dshills/engrave/internal/engraving/style"
	"github.com/dshills/engrave/internal/render/record"
)

const eps = 1e-6

func near(a, b float64) bool { return math.Abs(a-b) < eps }

func TestLayoutMetrics(t *testing.T) {
	d := newDiagram(t)
	d.Layout()
	sp := d.Spatium()

	if !near(d.StringLineWidth(), 0.08*sp) {
		t.Errorf("StringLineWidth() = %v, want %v", d.StringLineWidth(), 0.08*sp)
	}
	if !near(d.NutLineWidth(), 0.2*sp) {
		t.Errorf("NutLineWidth() = %v, want %v", d.NutLineWidth(), 0.2*sp)
	}
	if !near(d.StringDist(), 0.7*sp) || !near(d.FretDist(), 0.8*sp) {
		t.Errorf("dist = %v/%v, want %v/%v", d.StringDist(), d.FretDist(), 0.7*sp, 0.8*sp)
	}
	if !near(d.MarkerSize(), 0.56*sp) {
		t.Errorf("MarkerSize() = %v", d.MarkerSize())
	}

	ms := 0.56 * sp
	want := geom.Rect(-ms/2, -(ms/2 + 0.8*sp), 5*0.7*sp+ms, 6*0.8*sp+ms)
	if got := d.BBox(); !near(got.X, want.X) || !near(got.Y, want.Y) || !near(got.W, want.W) || !near(got.H, want.H) {
		t.Errorf("BBox() = %+v, want %+v", got, want)
	}
	if !d.Pos().IsNull() {
		t.Errorf("unattached Pos() = %v, want origin", d.Pos())
	}
}

func TestLayoutNutWidth(t *testing.T) {
	tests := []struct {
		name    string
		offset  int
		showNut bool
		bold    bool
	}{
		{"nut shown", 0, true, true},
		{"nut hidden", 0, false, false},
		{"offset", 3, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newDiagram(t)
			d.SetFretOffset(tt.offset)
			d.SetShowNut(tt.showNut)
			d.Layout()
			if bold := d.NutLineWidth() > d.StringLineWidth(); bold != tt.bold {
				t.Errorf("bold nut = %v, want %v", bold, tt.bold)
			}
		})
	}
}

func TestLayoutFretNumberWidens(t *testing.T) {
	tests := []struct {
		name        string
		numPos      NumberPosition
		orientation score.Orientation
		shiftsLeft  bool
	}{
		{"left vertical", NumberLeft, score.Vertical, true},
		{"right vertical", NumberRight, score.Vertical, false},
		{"left horizontal", NumberLeft, score.Horizontal, false},
		{"right horizontal", NumberRight, score.Horizontal, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := newDiagram(t)
			base.SetProperty(score.PidOrientation, tt.orientation)
			base.Layout()

			d := newDiagram(t)
			d.SetProperty(score.PidOrientation, tt.orientation)
			d.SetProperty(score.PidFretNumPos, int(tt.numPos))
			d.SetFretOffset(4)
			d.Layout()

			grow := d.BBox().W - base.BBox().W
			shift := base.BBox().X - d.BBox().X
			if tt.orientation == score.Horizontal {
				grow = d.BBox().H - base.BBox().H
				shift = base.BBox().Y - d.BBox().Y
			}
			if grow <= 0 {
				t.Fatalf("fret number should widen the box, grew %v", grow)
			}
			if tt.shiftsLeft != (shift > eps) {
				t.Errorf("shift = %v, want shifted %v", shift, tt.shiftsLeft)
			}
		})
	}
}

func TestLayoutHorizontalSwaps(t *testing.T) {
	v := newDiagram(t)
	v.Layout()
	h := newDiagram(t)
	h.SetProperty(score.PidOrientation, score.Horizontal)
	h.Layout()

	vb, hb := v.BBox(), h.BBox()
	if !near(vb.W, hb.H) || !near(vb.H, hb.W) || !near(vb.X, hb.Y) || !near(vb.Y, hb.X) {
		t.Errorf("horizontal box %+v is not the transpose of %+v", hb, vb)
	}
}

func TestLayoutDegenerate(t *testing.T) {
	d := newDiagram(t)
	d.SetStrings(1)
	d.SetFrets(0)
	d.Layout()
	d.Draw(record.New())
}

func attachedDiagram(t *testing.T, line int) (*score.Score, *Diagram) {
	t.Helper()
	s := score.New(nil)
	sp := s.Style().Spatium()
	sys := s.AddSystem(geom.Pt(0, 0), 0)
	m := sys.AddMeasure(0, 20*sp)
	seg := m.AddSegment(2*sp, 0)
	seg.SetChordRest(0, score.NewChord(s, score.NewNote(s, 64, line)))
	d := New(seg)
	seg.Add(d)
	s.DoLayout()
	return s, d
}

func TestLayoutAttached(t *testing.T) {
	s, d := attachedDiagram(t, 4)
	sp := s.Style().Spatium()

	wantX := (1.18*sp - 5*0.7*sp) / 2
	wantY := -(d.BBox().H + s.Style().P(style.SidFretY))
	if !near(d.Pos().X, wantX) || !near(d.Pos().Y, wantY) {
		t.Errorf("Pos() = %v, want (%v, %v)", d.Pos(), wantX, wantY)
	}
}

func TestLayoutAvoidsSkyline(t *testing.T) {
	s, d := attachedDiagram(t, -8)
	sp := s.Style().Spatium()

	noteTop := -4.5 * sp
	bottom := d.Pos().Y + d.BBox().Bottom()
	if want := noteTop - d.MinDistance().Val()*sp; bottom > want+eps {
		t.Errorf("diagram bottom = %v, want <= %v", bottom, want)
	}
}

func TestLayoutHarmonyAboveDiagram(t *testing.T) {
	s, d := attachedDiagram(t, 4)
	d.SetHarmony("Em")
	s.DoLayout()

	h := d.Harmony()
	if !near(h.Pos().X, d.CenterX()) {
		t.Errorf("harmony x = %v, want centre %v", h.Pos().X, d.CenterX())
	}
	if h.Pos().Y+h.BBox().Bottom() > d.BBox().Top()+eps {
		t.Error("harmony should sit above the diagram")
	}
}

func TestDrawPrimitives(t *testing.T) {
	d := newDiagram(t)
	d.Layout()
	p := record.New()
	d.Draw(p)

	// nut, six strings, five frets
	if got := p.Count(record.OpLine); got != 12 {
		t.Errorf("lines = %d, want 12", got)
	}
	lines := p.Filter(record.OpLine)
	if !near(lines[0].Pen.Width, d.NutLineWidth()) {
		t.Errorf("nut pen = %v, want %v", lines[0].Pen.Width, d.NutLineWidth())
	}
	if lines[0].Pen.Cap != draw.FlatCap {
		t.Error("grid lines use a flat cap")
	}
	if !near(lines[1].Pen.Width, d.StringLineWidth()) {
		t.Errorf("string pen = %v, want %v", lines[1].Pen.Width, d.StringLineWidth())
	}
	if p.Count(record.OpText) != 0 {
		t.Error("no fret number without an offset")
	}
}

func TestDrawSymbols(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(d *Diagram)
		lines    int
		ellipses int
		rects    int
	}{
		{"normal dot", func(d *Diagram) { d.SetDot(1, 1, true, DotNormal) }, 0, 1, 0},
		{"cross dot", func(d *Diagram) { d.SetDot(1, 1, true, DotCross) }, 2, 0, 0},
		{"square dot", func(d *Diagram) { d.SetDot(1, 1, true, DotSquare) }, 0, 0, 1},
		{"triangle dot", func(d *Diagram) { d.SetDot(1, 1, true, DotTriangle) }, 3, 0, 0},
		{"circle marker", func(d *Diagram) { d.SetMarker(0, MarkerCircle) }, 0, 1, 0},
		{"cross marker", func(d *Diagram) { d.SetMarker(0, MarkerCross) }, 2, 0, 0},
		{"barre", func(d *Diagram) { d.SetBarre(0, -1, 2) }, 1, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newDiagram(t)
			tt.setup(d)
			d.Layout()
			p := record.New()
			d.Draw(p)
			if got := p.Count(record.OpLine) - 12; got != tt.lines {
				t.Errorf("extra lines = %d, want %d", got, tt.lines)
			}
			if got := p.Count(record.OpEllipse); got != tt.ellipses {
				t.Errorf("ellipses = %d, want %d", got, tt.ellipses)
			}
			if got := p.Count(record.OpRect); got != tt.rects {
				t.Errorf("rects = %d, want %d", got, tt.rects)
			}
		})
	}
}

func TestDrawDotPosition(t *testing.T) {
	d := newDiagram(t)
	d.SetDot(2, 3, true, DotNormal)
	d.Layout()
	p := record.New()
	d.Draw(p)

	e := p.Filter(record.OpEllipse)[0]
	dotd := d.Spatium() * 0.49 * d.Style().D(style.SidFretDotSize)
	c := e.Rect.Center()
	if !near(c.X, d.StringDist()*2) || !near(c.Y, d.FretDist()*2.5) {
		t.Errorf("dot centre = %v, want (%v, %v)", c, d.StringDist()*2, d.FretDist()*2.5)
	}
	if !near(e.Rect.W, dotd) {
		t.Errorf("dot size = %v, want %v", e.Rect.W, dotd)
	}
	if !e.Pen.None || e.Brush.Style != draw.SolidPattern {
		t.Error("normal dots are filled without outline")
	}
}

func TestDrawFretNumber(t *testing.T) {
	tests := []struct {
		name   string
		numPos NumberPosition
		align  draw.Align
	}{
		{"left", NumberLeft, draw.AlignVCenter | draw.AlignRight | draw.TextDontClip},
		{"right", NumberRight, draw.AlignVCenter | draw.AlignLeft | draw.TextDontClip},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newDiagram(t)
			d.SetProperty(score.PidFretNumPos, int(tt.numPos))
			d.SetFretOffset(2)
			d.Layout()
			p := record.New()
			d.Draw(p)

			texts := p.Filter(record.OpText)
			if len(texts) != 1 {
				t.Fatalf("texts = %d, want 1", len(texts))
			}
			if texts[0].Text != "3" {
				t.Errorf("fret number = %q, want 3", texts[0].Text)
			}
			if texts[0].Flags != tt.align {
				t.Errorf("flags = %b, want %b", texts[0].Flags, tt.align)
			}
			if texts[0].Font.PointSize <= fontPointSize {
				t.Error("fret number font should be scaled up")
			}
		})
	}
}

func TestDrawHorizontalFrame(t *testing.T) {
	d := newDiagram(t)
	d.SetProperty(score.PidOrientation, score.Horizontal)
	d.SetFretOffset(1)
	d.Layout()
	p := record.New()
	d.Draw(p)

	calls := p.Calls()
	if calls[0].Op != record.OpSave || calls[1].Op != record.OpRotate || calls[1].Degrees != -90 {
		t.Errorf("horizontal drawing should start with save and rotate(-90), got %v %v", calls[0], calls[1])
	}
	if calls[len(calls)-1].Op != record.OpRestore {
		t.Error("horizontal drawing should end with restore")
	}
	if p.Count(record.OpSave) != p.Count(record.OpRestore) {
		t.Error("unbalanced save/restore")
	}
	if p.Count(record.OpRotate) != 2 {
		t.Error("fret number is drawn upright in its own frame")
	}
}
