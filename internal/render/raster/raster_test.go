package raster

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"github.com/dshills/engrave/internal/engraving/draw"
	"github.com/dshills/engrave/internal/engraving/fret"
	"github.com/dshills/engrave/internal/engraving/geom"
	"github.com/dshills/engrave/internal/engraving/score"
	"github.com/dshills/engrave/internal/engraving/style"
)

func isInk(c color.Color) bool {
	r, g, b, a := c.RGBA()
	return a > 0 && r < 0x8000 && g < 0x8000 && b < 0x8000
}

func TestRenderSize(t *testing.T) {
	tests := []struct {
		name  string
		bbox  geom.RectF
		opts  Options
		wantW int
		wantH int
	}{
		{"engraving dpi", geom.Rect(0, 0, 100, 50), Options{DPI: style.DPI}, 100, 50},
		{"half dpi with margin", geom.Rect(-10, -10, 100, 50), Options{DPI: style.DPI / 2, Margin: 4}, 58, 33},
		{"empty box", geom.Rect(0, 0, 0, 0), Options{DPI: 300}, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Render(tt.bbox, tt.opts, func(draw.Painter) {}).Image().Bounds()
			if b.Dx() != tt.wantW || b.Dy() != tt.wantH {
				t.Errorf("size = %dx%d, want %dx%d", b.Dx(), b.Dy(), tt.wantW, tt.wantH)
			}
		})
	}
}

func TestDrawLineAndFill(t *testing.T) {
	opts := Options{DPI: style.DPI, Background: color.White}
	p := Render(geom.Rect(0, 0, 40, 40), opts, func(p draw.Painter) {
		pen := draw.NewPen(draw.Black)
		pen.Width = 2
		p.SetPen(pen)
		p.DrawLine(geom.Line(0, 10, 40, 10))

		p.SetNoPen()
		p.SetBrush(draw.SolidBrush(draw.Black))
		p.DrawRect(geom.Rect(20, 20, 10, 10))
	})
	img := p.Image()

	if !isInk(img.At(20, 10)) {
		t.Error("no ink on the line")
	}
	if !isInk(img.At(25, 25)) {
		t.Error("no ink inside the filled rect")
	}
	if isInk(img.At(5, 30)) {
		t.Error("ink outside any shape")
	}
}

func TestSaveRestore(t *testing.T) {
	p := New(10, 10, 1, geom.PointF{})
	pen := draw.NewPen(draw.Black)
	pen.Width = 3
	p.SetPen(pen)

	p.Save()
	p.SetNoPen()
	p.SetFont(draw.Font{PointSize: 12})
	p.Restore()
	p.Restore()

	if p.Pen().None || p.Pen().Width != 3 {
		t.Errorf("pen not restored: %+v", p.Pen())
	}
	if p.Font().PointSize != 0 {
		t.Errorf("font not restored: %+v", p.Font())
	}
}

func TestRenderDiagramPNG(t *testing.T) {
	s := score.New(nil)
	d := fret.CreateFromString(s, "X32010")
	d.Layout()

	var buf bytes.Buffer
	if err := RenderPNG(&buf, d.BBox(), DefaultOptions(), d.Draw); err != nil {
		t.Fatalf("RenderPNG() error = %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}

	ink := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if isInk(img.At(x, y)) {
				ink++
			}
		}
	}
	if ink == 0 {
		t.Error("rendered diagram has no ink")
	}
}

func TestFaceCached(t *testing.T) {
	a, err := Face(9)
	if err != nil {
		t.Fatal(err)
	}
	b, _ := Face(9)
	if a != b {
		t.Error("Face(9) not cached")
	}
}
