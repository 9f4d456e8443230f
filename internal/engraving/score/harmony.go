package score

import (
	"github.com/dshills/engrave/internal/engraving/draw"
	"github.com/dshills/engrave/internal/engraving/geom"
	"github.com/dshills/engrave/internal/engraving/style"
	"github.com/dshills/engrave/internal/engraving/xmlio"
)

// harmonyPointSize is the chord symbol size at the reference spatium.
const harmonyPointSize = 10.0

var harmonyStyle = []StyledProperty{
	{Sid: style.SidHarmonyMinDistance, Pid: PidMinDistance},
}

// Harmony is a chord symbol such as "Am7".
type Harmony struct {
	ElementBase
	text string
}

// NewHarmony creates a chord symbol with text.
func NewHarmony(s *Score, text string) *Harmony {
	h := &Harmony{text: text}
	h.Init(h, s)
	h.InitElementStyle(harmonyStyle)
	return h
}

// Type implements Element.
func (h *Harmony) Type() ElementType { return TypeHarmony }

// Text returns the chord symbol text.
func (h *Harmony) Text() string { return h.text }

// SetText replaces the chord symbol text.
func (h *Harmony) SetText(t string) {
	h.text = t
	h.TriggerLayout()
}

// Clone returns an unlinked copy with a fresh identity.
func (h *Harmony) Clone() *Harmony {
	c := &Harmony{text: h.text}
	c.Init(c, h.Score())
	c.CopyFrom(&h.ElementBase)
	return c
}

// Font returns the chord symbol font scaled to the spatium.
func (h *Harmony) Font() draw.Font {
	return draw.Font{
		Family:    h.Style().S(style.SidMusicalTextFont),
		Type:      draw.FontText,
		PointSize: harmonyPointSize * h.Spatium() / style.Spatium20,
	}
}

// centerer is implemented by parents that centre their children.
type centerer interface {
	CenterX() float64
}

// Layout measures the text and places it. Above a diagram the text is
// centred on it; on a segment it is placed above the staff and kept clear
// of the skyline.
func (h *Harmony) Layout() {
	fm := draw.NewFontMetrics(h.Font())
	w := fm.Width(h.text)
	asc := fm.Ascent()
	hgt := fm.Height()
	h.SetBBox(geom.Rect(-w/2, -asc, w, hgt))

	switch p := h.Parent().(type) {
	case *Segment:
		h.SetPos(geom.Pt(0, -h.Style().P(style.SidHarmonyFretDist)-(hgt-asc)))
		h.AutoplaceSegmentElement()
	case centerer:
		top := p.(Element).Base().BBox().Top()
		dist := h.Style().P(style.SidHarmonyFretDist)
		h.SetPos(geom.Pt(p.CenterX(), top-dist-(hgt-asc)))
	default:
		h.SetPos(geom.PointF{})
	}
}

// Draw paints the text.
func (h *Harmony) Draw(p draw.Painter) {
	if h.text == "" {
		return
	}
	p.SetPen(draw.NewPen(h.Color()))
	p.SetFont(h.Font())
	p.DrawText(h.BBox(), draw.AlignHCenter|draw.AlignVCenter, h.text)
}

// Write serializes the chord symbol.
func (h *Harmony) Write(w *xmlio.Writer) {
	w.StartElement(TypeHarmony.Name())
	for _, pid := range []Pid{PidMinDistance, PidPlacement, PidAutoplace, PidOffset, PidColor, PidVisible} {
		WriteProperty(w, h, pid)
	}
	w.Tag("name", h.text)
	w.EndElement()
}

// Read deserializes the chord symbol from the current element.
func (h *Harmony) Read(r *xmlio.Reader) {
	for r.ReadNextStartElement() {
		if r.Name() == "name" {
			h.text = r.ReadText()
			continue
		}
		if ReadStyledProperty(r, h, PidMinDistance, PidPlacement, PidAutoplace, PidOffset, PidColor, PidVisible) {
			continue
		}
		r.Unknown()
	}
}
