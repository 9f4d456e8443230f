package fret

import (
	"strconv"

	"github.com/dshills/engrave/internal/engraving/draw"
	"github.com/dshills/engrave/internal/engraving/geom"
	"github.com/dshills/engrave/internal/engraving/score"
	"github.com/dshills/engrave/internal/engraving/skyline"
	"github.com/dshills/engrave/internal/engraving/style"
)

// Layout computes line widths, spacing and the bounding box, positions the
// diagram over the first notehead or rest of its segment and keeps its
// chord symbol clear of the staff skyline.
func (d *Diagram) Layout() {
	st := d.Style()
	sp := d.Spatium() * d.userMag
	d.stringLw = sp * 0.08
	if d.fretOffset > 0 || !d.showNut {
		d.nutLw = d.stringLw
	} else {
		d.nutLw = sp * 0.2
	}
	d.stringDist = st.MM(style.SidFretStringSpacing) * d.userMag
	d.fretDist = st.MM(style.SidFretFretSpacing) * d.userMag
	d.markerSize = d.stringDist * 0.8

	w := d.stringDist*float64(d.strings-1) + d.markerSize
	h := float64(d.frets+1)*d.fretDist + d.markerSize
	y := -(d.markerSize*0.5 + d.fretDist)
	x := -(d.markerSize * 0.5)

	if d.fretOffset > 0 {
		f := d.font
		f.PointSize = d.font.PointSize * d.userMag * st.D(style.SidFretNumMag)
		numw := draw.NewFontMetrics(f).Width(strconv.Itoa(d.fretOffset + 1))
		xdiff := numw + d.stringDist*0.4
		w += xdiff
		if (d.numPos == NumberLeft) == (d.orientation == score.Vertical) {
			x -= xdiff
		}
	}

	if d.orientation == score.Horizontal {
		w, h = h, w
		x, y = y, x
	}

	d.SetBBox(geom.Rect(x, y, w, h))

	seg, ok := d.Parent().(*score.Segment)
	if !ok || seg.Measure() == nil {
		d.SetPos(geom.PointF{})
		if d.harmony != nil {
			d.harmony.Layout()
		}
		return
	}

	var noteheadWidth float64
	if g := seg.FirstNoteOrRest(d.StaffIdx()); g != nil {
		noteheadWidth = score.GlyphWidth(g)
	}

	var mainWidth float64
	if d.orientation == score.Vertical {
		mainWidth = d.stringDist * float64(d.strings-1)
	} else {
		mainWidth = d.fretDist * (float64(d.frets) + 0.5)
	}
	d.SetPos(geom.Pt((noteheadWidth-mainWidth)/2, -(h + st.P(style.SidFretY))))

	d.AutoplaceSegmentElement()

	if d.harmony == nil {
		return
	}
	d.harmony.Layout()
	d.autoplaceHarmony(seg)
}

// autoplaceHarmony lifts the chord symbol clear of the staff skyline by its
// minimum distance and records it in the skyline.
func (d *Diagram) autoplaceHarmony(seg *score.Segment) {
	h := d.harmony
	if !h.Autoplace() || h.Parent() == nil {
		return
	}
	ss := seg.SysStaff(d.StaffIdx())
	if ss == nil {
		return
	}
	r := h.BBox().Translated(seg.PosInSystem().Add(d.Pos()).Add(h.Pos()))
	minDistance := h.MinDistance().Val() * d.Spatium()

	sk := skyline.NewLine(false)
	sk.Add(r.X, r.Bottom(), r.W)
	if dist := sk.MinDistance(ss.Skyline().North()); dist > -minDistance {
		yd := -(dist + minDistance)
		h.MovePosY(yd)
		r = r.Translated(geom.Pt(0, yd))
	}
	if h.AddToSkyline() {
		ss.Skyline().Add(r)
	}
}

// CenterX returns the horizontal centre of the string grid.
func (d *Diagram) CenterX() float64 {
	return (d.BBox().Right() - d.markerSize*0.5) * 0.5
}

// RightX returns the x of the rightmost string.
func (d *Diagram) RightX() float64 {
	return d.BBox().Right() - d.markerSize*0.5
}

// StringDist returns the distance between strings from the last layout.
func (d *Diagram) StringDist() float64 { return d.stringDist }

// FretDist returns the distance between frets from the last layout.
func (d *Diagram) FretDist() float64 { return d.fretDist }

// MarkerSize returns the marker diameter from the last layout.
func (d *Diagram) MarkerSize() float64 { return d.markerSize }

// StringLineWidth returns the string pen width from the last layout.
func (d *Diagram) StringLineWidth() float64 { return d.stringLw }

// NutLineWidth returns the nut pen width from the last layout.
func (d *Diagram) NutLineWidth() float64 { return d.nutLw }
