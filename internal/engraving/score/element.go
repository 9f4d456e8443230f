package score

import (
	"image/color"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dshills/engrave/internal/engraving/draw"
	"github.com/dshills/engrave/internal/engraving/geom"
	"github.com/dshills/engrave/internal/engraving/link"
	"github.com/dshills/engrave/internal/engraving/style"
)

var logger = slog.Default()

// SetLogger replaces the package logger.
func SetLogger(l *slog.Logger) {
	if l != nil {
		logger = l
	}
}

// Element is anything placed in a score.
type Element interface {
	link.Linkable
	Type() ElementType
	Base() *ElementBase
	Layout()
	Draw(p draw.Painter)
	GetProperty(pid Pid) any
	SetProperty(pid Pid, v any) bool
	PropertyDefault(pid Pid) any
}

// Container is an element that owns children added through Add/Remove.
type Container interface {
	Element
	Add(e Element)
	Remove(e Element)
}

// StyledProperty binds a property to the style setting it defaults to.
type StyledProperty struct {
	Sid style.Sid
	Pid Pid
}

// ElementBase carries the state common to all elements. Concrete types
// embed it and call Init with themselves so that generic helpers dispatch
// to their property overrides.
type ElementBase struct {
	self   Element
	id     uuid.UUID
	score  *Score
	parent Element

	track       int
	pos         geom.PointF
	offset      geom.PointF
	bbox        geom.RectF
	autoplace   bool
	visible     bool
	minDistance style.Spatium
	placement   Placement
	color       color.RGBA

	styled []StyledProperty
	flags  map[Pid]PropertyFlags
}

// Init wires the base to its concrete element and score.
func (b *ElementBase) Init(self Element, s *Score) {
	b.self = self
	b.id = link.NewID()
	b.score = s
	b.autoplace = true
	b.visible = true
	b.color = draw.Black
	b.flags = make(map[Pid]PropertyFlags)
	if s != nil {
		s.links.Register(self)
	}
}

// CopyFrom copies the generic state of o into b, keeping b's identity.
func (b *ElementBase) CopyFrom(o *ElementBase) {
	b.score = o.score
	b.parent = o.parent
	b.track = o.track
	b.pos = o.pos
	b.offset = o.offset
	b.bbox = o.bbox
	b.autoplace = o.autoplace
	b.visible = o.visible
	b.minDistance = o.minDistance
	b.placement = o.placement
	b.color = o.color
	b.styled = append([]StyledProperty(nil), o.styled...)
	b.flags = make(map[Pid]PropertyFlags, len(o.flags))
	for k, v := range o.flags {
		b.flags[k] = v
	}
}

// Base returns b.
func (b *ElementBase) Base() *ElementBase { return b }

// LinkID returns the element's stable identity.
func (b *ElementBase) LinkID() uuid.UUID { return b.id }

// Score returns the owning score.
func (b *ElementBase) Score() *Score { return b.score }

// Parent returns the explicit parent, or nil.
func (b *ElementBase) Parent() Element { return b.parent }

// SetParent sets the explicit parent.
func (b *ElementBase) SetParent(p Element) { b.parent = p }

// Track returns the track index.
func (b *ElementBase) Track() int { return b.track }

// SetTrack sets the track index.
func (b *ElementBase) SetTrack(t int) { b.track = t }

// StaffIdx returns the staff the track belongs to.
func (b *ElementBase) StaffIdx() int { return b.track / VOICES }

// Pos returns the position relative to the parent.
func (b *ElementBase) Pos() geom.PointF { return b.pos.Add(b.offset) }

// SetPos sets the layout position.
func (b *ElementBase) SetPos(p geom.PointF) { b.pos = p }

// MovePosY shifts the layout position vertically.
func (b *ElementBase) MovePosY(dy float64) { b.pos.Y += dy }

// Offset returns the user offset added to the layout position.
func (b *ElementBase) Offset() geom.PointF { return b.offset }

// BBox returns the bounding box relative to Pos.
func (b *ElementBase) BBox() geom.RectF { return b.bbox }

// SetBBox sets the bounding box.
func (b *ElementBase) SetBBox(r geom.RectF) { b.bbox = r }

// Autoplace reports whether automatic collision placement is on.
func (b *ElementBase) Autoplace() bool { return b.autoplace }

// SetAutoplace toggles automatic placement.
func (b *ElementBase) SetAutoplace(v bool) { b.autoplace = v }

// Visible reports visibility.
func (b *ElementBase) Visible() bool { return b.visible }

// AddToSkyline reports whether the element contributes to staff skylines.
func (b *ElementBase) AddToSkyline() bool { return b.visible && b.autoplace }

// MinDistance returns the minimum clearance to the skyline.
func (b *ElementBase) MinDistance() style.Spatium { return b.minDistance }

// Placement returns the above/below placement.
func (b *ElementBase) Placement() Placement { return b.placement }

// Color returns the draw colour.
func (b *ElementBase) Color() color.RGBA { return b.color }

// Spatium returns the score spatium, or the default when detached.
func (b *ElementBase) Spatium() float64 {
	if b.score == nil {
		return style.DefaultSpatium
	}
	return b.score.Style().Spatium()
}

// Style returns the score's style, or a default style when detached.
func (b *ElementBase) Style() *style.Style {
	if b.score == nil {
		return defaultStyle
	}
	return b.score.Style()
}

var defaultStyle = style.New()

// PagePos returns the position in page coordinates by walking the parents.
func (b *ElementBase) PagePos() geom.PointF {
	p := b.Pos()
	switch par := b.parent.(type) {
	case nil:
		return p
	case *Segment:
		p = p.Add(par.PagePos())
		if m := par.Measure(); m != nil && m.System() != nil {
			if ss := m.System().Staff(b.StaffIdx()); ss != nil {
				p.Y += ss.Y()
			}
		}
		return p
	default:
		return p.Add(par.Base().PagePos())
	}
}

// PageBoundingRect returns the bounding box in page coordinates.
func (b *ElementBase) PageBoundingRect() geom.RectF {
	return b.bbox.Translated(b.PagePos())
}

// TriggerLayout schedules the element for the next Score.DoLayout.
func (b *ElementBase) TriggerLayout() {
	if b.score != nil && b.self != nil {
		b.score.TriggerLayout(b.self)
	}
}

// InitElementStyle records the styled properties of the element and resets
// each to its style value.
func (b *ElementBase) InitElementStyle(props []StyledProperty) {
	b.styled = props
	for _, sp := range props {
		b.self.SetProperty(sp.Pid, b.self.PropertyDefault(sp.Pid))
		b.flags[sp.Pid] = Styled
	}
}

// StyledSid returns the style setting backing pid, if any.
func (b *ElementBase) StyledSid(pid Pid) (style.Sid, bool) {
	for _, sp := range b.styled {
		if sp.Pid == pid {
			return sp.Sid, true
		}
	}
	return style.SidInvalid, false
}

// StyleValue resolves pid through the style sheet.
func (b *ElementBase) StyleValue(pid Pid) (any, bool) {
	sid, ok := b.StyledSid(pid)
	if !ok {
		return nil, false
	}
	return styleToProperty(pid, b.Style().Value(sid)), true
}

// PropertyFlags returns the style flags of pid.
func (b *ElementBase) PropertyFlags(pid Pid) PropertyFlags {
	if f, ok := b.flags[pid]; ok {
		return f
	}
	return NoStyle
}

// SetPropertyFlags overrides the style flags of pid.
func (b *ElementBase) SetPropertyFlags(pid Pid, f PropertyFlags) {
	b.flags[pid] = f
}

// IsStyled reports whether pid currently follows the style.
func (b *ElementBase) IsStyled(pid Pid) bool { return b.PropertyFlags(pid) == Styled }

// ResetProperty restores pid to its default and re-styles it.
func (b *ElementBase) ResetProperty(pid Pid) {
	b.self.SetProperty(pid, b.self.PropertyDefault(pid))
	if _, ok := b.StyledSid(pid); ok {
		b.flags[pid] = Styled
	}
}

// StyleChanged re-reads every styled property from the style sheet.
func (b *ElementBase) StyleChanged() {
	changed := false
	for _, sp := range b.styled {
		if b.flags[sp.Pid] != Styled {
			continue
		}
		b.self.SetProperty(sp.Pid, b.self.PropertyDefault(sp.Pid))
		changed = true
	}
	if changed {
		b.TriggerLayout()
	}
}

// GetProperty handles the properties shared by all elements.
func (b *ElementBase) GetProperty(pid Pid) any {
	switch pid {
	case PidMinDistance:
		return b.minDistance
	case PidPlacement:
		return b.placement
	case PidAutoplace:
		return b.autoplace
	case PidOffset:
		return b.offset
	case PidColor:
		return b.color
	case PidVisible:
		return b.visible
	}
	return nil
}

// SetProperty handles the properties shared by all elements.
func (b *ElementBase) SetProperty(pid Pid, v any) bool {
	switch pid {
	case PidMinDistance:
		x, ok := v.(style.Spatium)
		if !ok {
			return false
		}
		b.minDistance = x
	case PidPlacement:
		x, ok := v.(Placement)
		if !ok {
			return false
		}
		b.placement = x
	case PidAutoplace:
		x, ok := v.(bool)
		if !ok {
			return false
		}
		b.autoplace = x
	case PidOffset:
		x, ok := v.(geom.PointF)
		if !ok {
			return false
		}
		b.offset = x
	case PidColor:
		x, ok := v.(color.RGBA)
		if !ok {
			return false
		}
		b.color = x
	case PidVisible:
		x, ok := v.(bool)
		if !ok {
			return false
		}
		b.visible = x
	default:
		return false
	}
	b.TriggerLayout()
	return true
}

// PropertyDefault handles the properties shared by all elements.
func (b *ElementBase) PropertyDefault(pid Pid) any {
	if v, ok := b.StyleValue(pid); ok {
		return v
	}
	switch pid {
	case PidMinDistance:
		return style.Spatium(0)
	case PidPlacement:
		return Above
	case PidAutoplace, PidVisible:
		return true
	case PidOffset:
		return geom.PointF{}
	case PidColor:
		return draw.Black
	}
	return nil
}

// Layout is a no-op for elements without geometry.
func (b *ElementBase) Layout() {}

// Draw is a no-op for elements that do not paint.
func (b *ElementBase) Draw(draw.Painter) {}

// AutoplaceSegmentElement moves an element attached to a segment clear of
// the staff skyline and then adds it to the skyline.
func (b *ElementBase) AutoplaceSegmentElement() {
	seg, ok := b.parent.(*Segment)
	if !ok || !b.autoplace || !b.visible {
		return
	}
	ss := seg.SysStaff(b.StaffIdx())
	if ss == nil {
		return
	}
	sp := b.Spatium()
	minDist := b.minDistance.Val() * sp
	r := b.bbox.Translated(b.Pos().Add(seg.PosInSystem()))
	above := b.placement == Above
	var d float64
	if above {
		sk := skylineFromRect(false, r)
		d = sk.MinDistance(ss.Skyline().North())
		if d > -minDist {
			yd := -(d + minDist)
			b.MovePosY(yd)
			r = r.Translated(geom.Pt(0, yd))
		}
	} else {
		sk := skylineFromRect(true, r)
		d = ss.Skyline().South().MinDistance(sk)
		if d > -minDist {
			yd := d + minDist
			b.MovePosY(yd)
			r = r.Translated(geom.Pt(0, yd))
		}
	}
	if b.AddToSkyline() {
		ss.Skyline().Add(r)
	}
}
