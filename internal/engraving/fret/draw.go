package fret

import (
	"strconv"

	"github.com/dshills/engrave/internal/engraving/draw"
	"github.com/dshills/engrave/internal/engraving/geom"
	"github.com/dshills/engrave/internal/engraving/score"
	"github.com/dshills/engrave/internal/engraving/style"
)

// Draw paints the nut, strings, frets, dots, markers, barres and the fret
// offset number. Horizontal diagrams are drawn vertically inside a rotated
// frame.
func (d *Diagram) Draw(p draw.Painter) {
	translation := geom.Pt(-d.stringDist*float64(d.strings-1), 0)
	if d.orientation == score.Horizontal {
		p.Save()
		p.Rotate(-90)
		p.Translate(translation)
	}

	st := d.Style()
	sp := d.Spatium() * d.userMag
	pen := draw.NewPen(d.Color())
	pen.Cap = draw.FlatCap
	p.SetBrush(draw.SolidBrush(p.Pen().Color))

	x2 := float64(d.strings-1) * d.stringDist

	pen.Width = d.nutLw
	p.SetPen(pen)
	p.DrawLine(geom.Line(-d.stringLw*0.5, 0, x2+d.stringLw*0.5, 0))

	pen.Width = d.stringLw
	p.SetPen(pen)
	y2 := d.fretDist * (float64(d.frets) + 0.5)
	top := 0.0
	if d.fretOffset > 0 {
		top = -sp * 0.2
	}
	for i := 0; i < d.strings; i++ {
		x := d.stringDist * float64(i)
		p.DrawLine(geom.Line(x, top, x, y2))
	}
	for i := 1; i <= d.frets; i++ {
		y := d.fretDist * float64(i)
		p.DrawLine(geom.Line(0, y, x2, y))
	}

	dotd := sp * 0.49 * st.D(style.SidFretDotSize)

	symPen := pen
	symPen.Cap = draw.RoundCap
	symPenWidth := d.stringLw * 1.2
	symPen.Width = symPenWidth

	for _, s := range sortedKeys(d.dots) {
		for _, dot := range d.dots[s] {
			if !dot.Exists() {
				continue
			}
			x := d.stringDist*float64(s) - dotd*0.5
			y := d.fretDist*float64(dot.Fret-1) + d.fretDist*0.5 - dotd*0.5

			p.SetPen(symPen)
			switch dot.Type {
			case DotCross:
				symPen.Width = symPenWidth * 1.5
				p.SetPen(symPen)
				p.DrawLine(geom.Line(x, y, x+dotd, y+dotd))
				p.DrawLine(geom.Line(x+dotd, y, x, y+dotd))
				symPen.Width = symPenWidth
			case DotSquare:
				p.SetBrush(draw.EmptyBrush())
				p.DrawRect(geom.Rect(x, y, dotd, dotd))
			case DotTriangle:
				p.DrawLine(geom.Line(x, y+dotd, x+0.5*dotd, y))
				p.DrawLine(geom.Line(x+0.5*dotd, y, x+dotd, y+dotd))
				p.DrawLine(geom.Line(x+dotd, y+dotd, x, y+dotd))
			default:
				p.SetBrush(draw.SolidBrush(symPen.Color))
				p.SetNoPen()
				p.DrawEllipse(geom.Rect(x, y, dotd, dotd))
			}
		}
	}

	symPen.Width = symPenWidth * 1.2
	p.SetBrush(draw.EmptyBrush())
	p.SetPen(symPen)
	for _, s := range sortedKeys(d.markers) {
		m := d.markers[s]
		x := d.stringDist*float64(s) - d.markerSize*0.5
		y := -d.fretDist - d.markerSize*0.5
		switch m.Type {
		case MarkerCircle:
			p.DrawEllipse(geom.Rect(x, y, d.markerSize, d.markerSize))
		case MarkerCross:
			p.DrawLine(geom.Line(x, y, x+d.markerSize, y+d.markerSize))
			p.DrawLine(geom.Line(x, y+d.markerSize, x+d.markerSize, y))
		}
	}

	for _, f := range sortedKeys(d.barres) {
		b := d.barres[f]
		x1 := d.stringDist * float64(b.Start)
		end := x2
		if b.End != -1 {
			end = d.stringDist * float64(b.End)
		}
		y := d.fretDist*float64(f-1) + d.fretDist*0.5
		pen.Width = dotd * st.D(style.SidBarreLineWidth)
		pen.Cap = draw.RoundCap
		p.SetPen(pen)
		p.DrawLine(geom.Line(x1, y, end, y))
	}

	if d.fretOffset > 0 {
		d.drawFretNumber(p, translation, x2)
	}

	if d.orientation == score.Horizontal {
		p.Restore()
	}
}

func (d *Diagram) drawFretNumber(p draw.Painter, translation geom.PointF, x2 float64) {
	scaled := d.font
	scaled.PointSize = d.font.PointSize * d.userMag * (d.Spatium() / style.Spatium20) * d.Style().D(style.SidFretNumMag)
	p.SetFont(scaled)
	text := strconv.Itoa(d.fretOffset + 1)

	if d.orientation == score.Vertical {
		if d.numPos == NumberLeft {
			p.DrawText(geom.Rect(-d.stringDist*0.4, 0, 0, d.fretDist),
				draw.AlignVCenter|draw.AlignRight|draw.TextDontClip, text)
		} else {
			p.DrawText(geom.Rect(x2+d.stringDist*0.4, 0, 0, d.fretDist),
				draw.AlignVCenter|draw.AlignLeft|draw.TextDontClip, text)
		}
	} else {
		p.Save()
		p.Translate(translation.Neg())
		p.Rotate(90)
		if d.numPos == NumberLeft {
			p.DrawText(geom.Rect(0, d.stringDist*float64(d.strings-1), 0, 0),
				draw.AlignLeft|draw.TextDontClip, text)
		} else {
			p.DrawText(geom.Rect(0, 0, 0, 0), draw.AlignBottom|draw.AlignLeft|draw.TextDontClip, text)
		}
		p.Restore()
	}
	p.SetFont(d.font)
}
