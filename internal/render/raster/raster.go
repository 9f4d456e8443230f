// Package raster paints engraving elements into an RGBA image with gg and
// encodes it as PNG.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/dshills/engrave/internal/engraving/draw"
	"github.com/dshills/engrave/internal/engraving/geom"
	"github.com/dshills/engrave/internal/engraving/style"
)

// Options controls the output image.
type Options struct {
	// DPI is the output resolution. Engraving coordinates are at style.DPI.
	DPI float64
	// Margin is the blank border in output pixels.
	Margin int
	// Background fills the image before painting; nil leaves it transparent.
	Background color.Color
}

// DefaultOptions returns 300 DPI on white with a small margin.
func DefaultOptions() Options {
	return Options{DPI: 300, Margin: 8, Background: color.White}
}

type state struct {
	pen   draw.Pen
	brush draw.Brush
	font  draw.Font
}

// Painter implements draw.Painter on a gg context.
type Painter struct {
	dc    *gg.Context
	scale float64
	state
	stack []state
}

// New returns a painter on a width x height image. Engraving coordinates
// are multiplied by scale; origin is the device position of (0, 0).
func New(width, height int, scale float64, origin geom.PointF) *Painter {
	dc := gg.NewContext(width, height)
	dc.Translate(origin.X, origin.Y)
	dc.Scale(scale, scale)
	return &Painter{
		dc:    dc,
		scale: scale,
		state: state{pen: draw.NewPen(draw.Black), brush: draw.EmptyBrush()},
	}
}

// Render paints into an image sized to bbox, an element bounding box in
// engraving coordinates.
func Render(bbox geom.RectF, opts Options, paint func(draw.Painter)) *Painter {
	if opts.DPI <= 0 {
		opts.DPI = DefaultOptions().DPI
	}
	scale := opts.DPI / style.DPI
	w := int(math.Ceil(bbox.W*scale)) + 2*opts.Margin
	h := int(math.Ceil(bbox.H*scale)) + 2*opts.Margin
	origin := geom.Pt(float64(opts.Margin)-bbox.X*scale, float64(opts.Margin)-bbox.Y*scale)

	p := New(max(w, 1), max(h, 1), scale, origin)
	if opts.Background != nil {
		p.dc.Push()
		p.dc.Identity()
		p.dc.SetColor(opts.Background)
		p.dc.Clear()
		p.dc.Pop()
	}
	paint(p)
	return p
}

// RenderPNG paints and writes a PNG.
func RenderPNG(w io.Writer, bbox geom.RectF, opts Options, paint func(draw.Painter)) error {
	return Render(bbox, opts, paint).EncodePNG(w)
}

// Image returns the painted image.
func (p *Painter) Image() image.Image { return p.dc.Image() }

// EncodePNG writes the image as PNG.
func (p *Painter) EncodePNG(w io.Writer) error {
	if err := p.dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

func (p *Painter) Save() {
	p.stack = append(p.stack, p.state)
	p.dc.Push()
}

func (p *Painter) Restore() {
	if len(p.stack) == 0 {
		return
	}
	p.state = p.stack[len(p.stack)-1]
	p.stack = p.stack[:len(p.stack)-1]
	p.dc.Pop()
}

func (p *Painter) Translate(offset geom.PointF) { p.dc.Translate(offset.X, offset.Y) }

// Rotate turns clockwise; y grows downwards so a positive gg angle does.
func (p *Painter) Rotate(degrees float64) { p.dc.Rotate(gg.Radians(degrees)) }

func (p *Painter) Pen() draw.Pen         { return p.pen }
func (p *Painter) SetPen(pen draw.Pen)   { p.pen = pen }
func (p *Painter) SetNoPen()             { p.pen.None = true }
func (p *Painter) Brush() draw.Brush     { return p.brush }
func (p *Painter) SetBrush(b draw.Brush) { p.brush = b }
func (p *Painter) Font() draw.Font       { return p.font }
func (p *Painter) SetFont(f draw.Font)   { p.font = f }

func (p *Painter) DrawLine(l geom.LineF) {
	if !p.applyPen() {
		return
	}
	p.dc.DrawLine(l.P1.X, l.P1.Y, l.P2.X, l.P2.Y)
	p.dc.Stroke()
}

func (p *Painter) DrawRect(r geom.RectF) {
	p.dc.DrawRectangle(r.X, r.Y, r.W, r.H)
	p.fillStroke()
}

func (p *Painter) DrawEllipse(r geom.RectF) {
	c := r.Center()
	p.dc.DrawEllipse(c.X, c.Y, r.W/2, r.H/2)
	p.fillStroke()
}

// DrawText anchors text in r. Without a vertical flag the text hangs from
// the top edge.
func (p *Painter) DrawText(r geom.RectF, flags draw.Align, text string) {
	face, err := Face(p.font.PointSize)
	if err != nil {
		return
	}
	p.dc.SetColor(p.pen.Color)

	x, ax := r.X, 0.0
	switch {
	case flags.Has(draw.AlignRight):
		x, ax = r.Right(), 1
	case flags.Has(draw.AlignHCenter):
		x, ax = r.Center().X, 0.5
	}
	y, ay := r.Y, 1.0
	switch {
	case flags.Has(draw.AlignBottom):
		y, ay = r.Bottom(), 0
	case flags.Has(draw.AlignVCenter):
		y, ay = r.Center().Y, 0.5
	}
	faceMu.Lock()
	defer faceMu.Unlock()
	p.dc.SetFontFace(face)
	p.dc.DrawStringAnchored(text, x, y, ax, ay)
}

// applyPen configures stroking; it reports false for an invisible pen.
// gg strokes in device pixels, so the width is scaled here.
func (p *Painter) applyPen() bool {
	if p.pen.None {
		return false
	}
	p.dc.SetColor(p.pen.Color)
	p.dc.SetLineWidth(max(p.pen.Width*p.scale, 1))
	switch p.pen.Cap {
	case draw.FlatCap:
		p.dc.SetLineCapButt()
	case draw.RoundCap:
		p.dc.SetLineCapRound()
	default:
		p.dc.SetLineCapSquare()
	}
	return true
}

func (p *Painter) fillStroke() {
	fill := p.brush.Style == draw.SolidPattern
	if fill {
		p.dc.SetColor(p.brush.Color)
		p.dc.FillPreserve()
	}
	if p.applyPen() {
		p.dc.Stroke()
		return
	}
	p.dc.ClearPath()
}

var (
	parseOnce  sync.Once
	parsedFont *truetype.Font
	parseErr   error

	// faceMu also serializes drawing with a cached face.
	faceMu    sync.Mutex
	faceCache = map[float64]font.Face{}
)

// Face returns a Go Regular face of the given point size at engraving DPI.
// The painter's transform scales it to the output resolution.
func Face(pointSize float64) (font.Face, error) {
	parseOnce.Do(func() {
		parsedFont, parseErr = truetype.Parse(goregular.TTF)
	})
	if parseErr != nil {
		return nil, fmt.Errorf("failed to parse font: %w", parseErr)
	}
	if pointSize <= 0 {
		pointSize = 1
	}

	faceMu.Lock()
	defer faceMu.Unlock()
	if f, ok := faceCache[pointSize]; ok {
		return f, nil
	}
	f := truetype.NewFace(parsedFont, &truetype.Options{
		Size:    pointSize,
		DPI:     style.DPI,
		Hinting: font.HintingNone,
	})
	faceCache[pointSize] = f
	return f, nil
}
