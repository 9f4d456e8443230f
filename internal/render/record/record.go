// Package record provides a painter that logs every call instead of
// drawing. Tests assert on the log and the CLI dumps it for debugging.
package record

import (
	"fmt"
	"io"
	"strings"

	"github.com/dshills/engrave/internal/engraving/draw"
	"github.com/dshills/engrave/internal/engraving/geom"
)

// Op names a painter call.
type Op string

const (
	OpSave      Op = "save"
	OpRestore   Op = "restore"
	OpTranslate Op = "translate"
	OpRotate    Op = "rotate"
	OpSetPen    Op = "pen"
	OpSetNoPen  Op = "nopen"
	OpSetBrush  Op = "brush"
	OpSetFont   Op = "font"
	OpLine      Op = "line"
	OpRect      Op = "rect"
	OpEllipse   Op = "ellipse"
	OpText      Op = "text"
)

// Call is one recorded painter call with the state it ran under.
type Call struct {
	Op    Op
	Pen   draw.Pen
	Brush draw.Brush
	Font  draw.Font

	Line    geom.LineF
	Rect    geom.RectF
	Point   geom.PointF
	Degrees float64
	Flags   draw.Align
	Text    string
}

// String formats the call on one line.
func (c Call) String() string {
	switch c.Op {
	case OpTranslate:
		return fmt.Sprintf("translate %.3f,%.3f", c.Point.X, c.Point.Y)
	case OpRotate:
		return fmt.Sprintf("rotate %.1f", c.Degrees)
	case OpSetPen:
		return fmt.Sprintf("pen w=%.3f cap=%d", c.Pen.Width, c.Pen.Cap)
	case OpSetBrush:
		return fmt.Sprintf("brush style=%d", c.Brush.Style)
	case OpSetFont:
		return fmt.Sprintf("font %s %.2fpt", c.Font.Family, c.Font.PointSize)
	case OpLine:
		return fmt.Sprintf("line %.3f,%.3f %.3f,%.3f", c.Line.P1.X, c.Line.P1.Y, c.Line.P2.X, c.Line.P2.Y)
	case OpRect, OpEllipse:
		return fmt.Sprintf("%s %.3f,%.3f %.3fx%.3f", c.Op, c.Rect.X, c.Rect.Y, c.Rect.W, c.Rect.H)
	case OpText:
		return fmt.Sprintf("text %q at %.3f,%.3f flags=%d", c.Text, c.Rect.X, c.Rect.Y, c.Flags)
	}
	return string(c.Op)
}

type state struct {
	pen   draw.Pen
	brush draw.Brush
	font  draw.Font
}

// Painter records calls. The zero value is ready to use.
type Painter struct {
	cur   state
	stack []state
	calls []Call
}

// New returns an empty recording painter.
func New() *Painter {
	return &Painter{cur: state{pen: draw.NewPen(draw.Black), brush: draw.SolidBrush(draw.Black)}}
}

func (p *Painter) record(c Call) {
	c.Pen = p.cur.pen
	c.Brush = p.cur.brush
	c.Font = p.cur.font
	p.calls = append(p.calls, c)
}

// Calls returns the recorded calls.
func (p *Painter) Calls() []Call { return p.calls }

// Filter returns the recorded calls of the given ops.
func (p *Painter) Filter(ops ...Op) []Call {
	var out []Call
	for _, c := range p.calls {
		for _, op := range ops {
			if c.Op == op {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

// Count returns how many calls of op were recorded.
func (p *Painter) Count(op Op) int { return len(p.Filter(op)) }

// Reset forgets the recorded calls and the state stack.
func (p *Painter) Reset() {
	p.calls = nil
	p.stack = nil
}

// Dump writes one line per call.
func (p *Painter) Dump(w io.Writer) error {
	var b strings.Builder
	for _, c := range p.calls {
		b.WriteString(c.String())
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func (p *Painter) Save() {
	p.stack = append(p.stack, p.cur)
	p.record(Call{Op: OpSave})
}

func (p *Painter) Restore() {
	if n := len(p.stack); n > 0 {
		p.cur = p.stack[n-1]
		p.stack = p.stack[:n-1]
	}
	p.record(Call{Op: OpRestore})
}

func (p *Painter) Translate(offset geom.PointF) { p.record(Call{Op: OpTranslate, Point: offset}) }
func (p *Painter) Rotate(degrees float64)       { p.record(Call{Op: OpRotate, Degrees: degrees}) }

func (p *Painter) Pen() draw.Pen { return p.cur.pen }

func (p *Painter) SetPen(pen draw.Pen) {
	p.cur.pen = pen
	p.record(Call{Op: OpSetPen})
}

func (p *Painter) SetNoPen() {
	p.cur.pen.None = true
	p.record(Call{Op: OpSetNoPen})
}

func (p *Painter) Brush() draw.Brush { return p.cur.brush }

func (p *Painter) SetBrush(b draw.Brush) {
	p.cur.brush = b
	p.record(Call{Op: OpSetBrush})
}

func (p *Painter) Font() draw.Font { return p.cur.font }

func (p *Painter) SetFont(f draw.Font) {
	p.cur.font = f
	p.record(Call{Op: OpSetFont})
}

func (p *Painter) DrawLine(l geom.LineF)    { p.record(Call{Op: OpLine, Line: l}) }
func (p *Painter) DrawRect(r geom.RectF)    { p.record(Call{Op: OpRect, Rect: r}) }
func (p *Painter) DrawEllipse(r geom.RectF) { p.record(Call{Op: OpEllipse, Rect: r}) }

func (p *Painter) DrawText(r geom.RectF, flags draw.Align, text string) {
	p.record(Call{Op: OpText, Rect: r, Flags: flags, Text: text})
}

var _ draw.Painter = (*Painter)(nil)
