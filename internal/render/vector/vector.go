// Package vector paints engraving elements as SVG with svgo.
//
// svgo takes integer coordinates, so engraving pixels are written in
// sub-units of 1/Unit and the viewBox maps them back to the output size.
package vector

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"strings"

	svg "github.com/ajstarks/svgo"

	"github.com/dshills/engrave/internal/engraving/draw"
	"github.com/dshills/engrave/internal/engraving/geom"
	"github.com/dshills/engrave/internal/engraving/style"
)

// Unit is the number of SVG user units per engraving pixel.
const Unit = 16

// Options controls the output document.
type Options struct {
	// DPI sets the width and height attributes; the drawing is unchanged.
	DPI float64
	// Margin is the blank border in engraving pixels.
	Margin float64
}

// DefaultOptions returns 96 DPI, the CSS pixel density, with a small margin.
func DefaultOptions() Options {
	return Options{DPI: 96, Margin: 4}
}

type state struct {
	pen    draw.Pen
	brush  draw.Brush
	font   draw.Font
	groups int // groups opened since the matching Save
}

// Painter implements draw.Painter by writing SVG elements.
type Painter struct {
	canvas *svg.SVG
	out    *errWriter
	state
	stack []state
}

// New starts an SVG document sized to bbox, an element bounding box in
// engraving coordinates. Finish must be called to close it.
func New(w io.Writer, bbox geom.RectF, opts Options) *Painter {
	if opts.DPI <= 0 {
		opts.DPI = DefaultOptions().DPI
	}
	out := &errWriter{w: w}
	p := &Painter{
		canvas: svg.New(out),
		out:    out,
		state:  state{pen: draw.NewPen(draw.Black), brush: draw.EmptyBrush()},
	}

	vw := bbox.W + 2*opts.Margin
	vh := bbox.H + 2*opts.Margin
	scale := opts.DPI / style.DPI
	p.canvas.Startview(
		max(int(math.Ceil(vw*scale)), 1), max(int(math.Ceil(vh*scale)), 1),
		0, 0, units(vw), units(vh),
	)
	p.canvas.Gtransform(fmt.Sprintf("translate(%d,%d)", units(opts.Margin-bbox.X), units(opts.Margin-bbox.Y)))
	return p
}

// Render paints a complete document.
func Render(w io.Writer, bbox geom.RectF, opts Options, paint func(draw.Painter)) error {
	p := New(w, bbox, opts)
	paint(p)
	return p.Finish()
}

// Finish closes open groups and the document and returns the first write
// error.
func (p *Painter) Finish() error {
	for len(p.stack) > 0 {
		p.Restore()
	}
	p.closeGroups()
	p.canvas.Gend()
	p.canvas.End()
	if p.out.err != nil {
		return fmt.Errorf("write svg: %w", p.out.err)
	}
	return nil
}

func (p *Painter) Save() {
	p.stack = append(p.stack, p.state)
	p.groups = 0
}

func (p *Painter) Restore() {
	if len(p.stack) == 0 {
		return
	}
	p.closeGroups()
	p.state = p.stack[len(p.stack)-1]
	p.stack = p.stack[:len(p.stack)-1]
}

func (p *Painter) closeGroups() {
	for ; p.groups > 0; p.groups-- {
		p.canvas.Gend()
	}
}

func (p *Painter) Translate(offset geom.PointF) {
	p.canvas.Gtransform(fmt.Sprintf("translate(%d,%d)", units(offset.X), units(offset.Y)))
	p.groups++
}

// Rotate turns clockwise, which SVG's rotate does in a y-down space.
func (p *Painter) Rotate(degrees float64) {
	p.canvas.Gtransform(fmt.Sprintf("rotate(%s)", num(degrees)))
	p.groups++
}

func (p *Painter) Pen() draw.Pen         { return p.pen }
func (p *Painter) SetPen(pen draw.Pen)   { p.pen = pen }
func (p *Painter) SetNoPen()             { p.pen.None = true }
func (p *Painter) Brush() draw.Brush     { return p.brush }
func (p *Painter) SetBrush(b draw.Brush) { p.brush = b }
func (p *Painter) Font() draw.Font       { return p.font }
func (p *Painter) SetFont(f draw.Font)   { p.font = f }

func (p *Painter) DrawLine(l geom.LineF) {
	if p.pen.None {
		return
	}
	p.canvas.Line(units(l.P1.X), units(l.P1.Y), units(l.P2.X), units(l.P2.Y), p.strokeStyle())
}

func (p *Painter) DrawRect(r geom.RectF) {
	p.canvas.Rect(units(r.X), units(r.Y), units(r.W), units(r.H), p.shapeStyle())
}

func (p *Painter) DrawEllipse(r geom.RectF) {
	c := r.Center()
	p.canvas.Ellipse(units(c.X), units(c.Y), units(r.W/2), units(r.H/2), p.shapeStyle())
}

// DrawText anchors text in r. Without a vertical flag the text hangs from
// the top edge.
func (p *Painter) DrawText(r geom.RectF, flags draw.Align, text string) {
	x, anchor := r.X, "start"
	switch {
	case flags.Has(draw.AlignRight):
		x, anchor = r.Right(), "end"
	case flags.Has(draw.AlignHCenter):
		x, anchor = r.Center().X, "middle"
	}
	y, baseline := r.Y, "hanging"
	switch {
	case flags.Has(draw.AlignBottom):
		y, baseline = r.Bottom(), "alphabetic"
	case flags.Has(draw.AlignVCenter):
		y, baseline = r.Center().Y, "central"
	}

	size := p.font.PointSize * style.DPI / 72 * Unit
	family := p.font.Family
	if family == "" {
		family = "sans-serif"
	}
	st := fmt.Sprintf("font-family:%s;font-size:%s;text-anchor:%s;dominant-baseline:%s;fill:%s",
		family, num(size), anchor, baseline, rgb(p.pen.Color))
	p.canvas.Text(units(x), units(y), text, st)
}

func (p *Painter) strokeStyle() string {
	lineCap := "square"
	switch p.pen.Cap {
	case draw.FlatCap:
		lineCap = "butt"
	case draw.RoundCap:
		lineCap = "round"
	}
	return fmt.Sprintf("stroke:%s;stroke-width:%s;stroke-linecap:%s%s",
		rgb(p.pen.Color), num(max(p.pen.Width*Unit, 1)), lineCap, opacity("stroke-opacity", p.pen.Color))
}

func (p *Painter) shapeStyle() string {
	var b strings.Builder
	if p.brush.Style == draw.SolidPattern {
		b.WriteString("fill:" + rgb(p.brush.Color) + opacity("fill-opacity", p.brush.Color))
	} else {
		b.WriteString("fill:none")
	}
	if p.pen.None {
		b.WriteString(";stroke:none")
	} else {
		b.WriteString(";" + p.strokeStyle())
	}
	return b.String()
}

func units(v float64) int {
	return int(math.Round(v * Unit))
}

func num(v float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.3f", v), "0"), ".")
}

func rgb(c color.RGBA) string {
	return fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B)
}

func opacity(prop string, c color.RGBA) string {
	if c.A == 0xff {
		return ""
	}
	return fmt.Sprintf(";%s:%s", prop, num(float64(c.A)/255))
}

// errWriter keeps the first write error; svgo does not report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(b []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(b)
	if err != nil {
		e.err = err
	}
	return n, err
}
