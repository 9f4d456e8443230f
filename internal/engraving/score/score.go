// Package score provides the score model the fret diagram engine lives in:
// the element base with generic properties, the system/measure/segment
// tree with per-staff skylines, note and rest glyphs, chord symbols, the
// undo stack shared between linked scores and deferred layout.
package score

import (
	"github.com/dshills/engrave/internal/engine/history"
	"github.com/dshills/engrave/internal/engraving/geom"
	"github.com/dshills/engrave/internal/engraving/link"
	"github.com/dshills/engrave/internal/engraving/style"
)

// Score is a document. Excerpts share the undo stack and link registry of
// their master score but keep their own style and layout state.
type Score struct {
	style   *style.Style
	history *history.History
	links   *link.Registry
	layout  *LayoutTracker

	master   *Score
	excerpts []*Score

	systems  []*System
	floating []Element
	palette  bool
	dummy    *Segment
}

// New creates a master score with the given style; nil means defaults.
func New(st *style.Style) *Score {
	if st == nil {
		st = style.New()
	}
	s := &Score{
		style:   st,
		history: history.NewHistory(0),
		links:   link.NewRegistry(),
		layout:  NewLayoutTracker(),
	}
	s.dummy = newSegment(s, nil, 0)
	return s
}

// NewPalette creates a score used as a palette of templates. Palette
// elements do not expose their children to scans.
func NewPalette(st *style.Style) *Score {
	s := New(st)
	s.palette = true
	return s
}

// AddExcerpt creates a part score linked to s.
func (s *Score) AddExcerpt() *Score {
	m := s.MasterScore()
	e := &Score{
		style:   m.style.Clone(),
		history: m.history,
		links:   m.links,
		layout:  NewLayoutTracker(),
		master:  m,
	}
	e.dummy = newSegment(e, nil, 0)
	m.excerpts = append(m.excerpts, e)
	return e
}

// MasterScore returns the score owning the undo stack.
func (s *Score) MasterScore() *Score {
	if s.master != nil {
		return s.master
	}
	return s
}

// Excerpts returns the part scores of a master score.
func (s *Score) Excerpts() []*Score { return s.MasterScore().excerpts }

// Style returns the style sheet.
func (s *Score) Style() *style.Style { return s.style }

// SetStyle replaces the style sheet and re-styles every element.
func (s *Score) SetStyle(st *style.Style) {
	s.style = st
	s.forEach(func(e Element) { e.Base().StyleChanged() })
	s.layout.MarkFull()
}

// History returns the undo stack.
func (s *Score) History() *history.History { return s.history }

// Links returns the link registry.
func (s *Score) Links() *link.Registry { return s.links }

// IsPalette reports whether the score is a palette.
func (s *Score) IsPalette() bool { return s.palette }

// Dummy returns the unattached segment used as a parent for elements
// created outside any measure.
func (s *Score) Dummy() *Segment { return s.dummy }

// Systems returns the systems in page order.
func (s *Score) Systems() []*System { return s.systems }

// AddSystem appends a system at pos with the given staff offsets.
func (s *Score) AddSystem(pos geom.PointF, staffY ...float64) *System {
	sys := newSystem(s, pos, staffY)
	s.systems = append(s.systems, sys)
	s.layout.MarkFull()
	return sys
}

// AddFloating records an element that lives outside the system tree so
// that full layouts and style changes reach it.
func (s *Score) AddFloating(e Element) {
	s.floating = append(s.floating, e)
}

// RemoveFloating forgets a floating element.
func (s *Score) RemoveFloating(e Element) {
	for i, f := range s.floating {
		if f == e {
			s.floating = append(s.floating[:i], s.floating[i+1:]...)
			return
		}
	}
}

// LinkList returns every linked copy of e, e included, across all scores.
func (s *Score) LinkList(e Element) []Element {
	ls := s.links.LinkList(e)
	out := make([]Element, 0, len(ls))
	for _, l := range ls {
		if el, ok := l.(Element); ok {
			out = append(out, el)
		}
	}
	return out
}

// TriggerLayout schedules e for the next DoLayout.
func (s *Score) TriggerLayout(e Element) { s.layout.Mark(e) }

// LayoutPending reports whether e waits for layout.
func (s *Score) LayoutPending(e Element) bool { return s.layout.IsPending(e) }

// DoLayout lays out the stale elements of this score and of every linked
// score.
func (s *Score) DoLayout() {
	m := s.MasterScore()
	m.doLayout()
	for _, e := range m.excerpts {
		e.doLayout()
	}
}

func (s *Score) doLayout() {
	pending, full := s.layout.Take()
	if full {
		s.layoutAll()
		return
	}
	for _, e := range pending {
		e.Layout()
	}
}

// layoutAll rebuilds the skylines from the staff content and lays out every
// annotation in segment order.
func (s *Score) layoutAll() {
	for _, sys := range s.systems {
		sys.layoutStaves()
		for _, m := range sys.measures {
			for _, seg := range m.segments {
				for _, a := range seg.annotations {
					a.Layout()
				}
			}
		}
	}
	for _, e := range s.floating {
		e.Layout()
	}
}

// forEach visits every annotation and floating element.
func (s *Score) forEach(fn func(Element)) {
	for _, sys := range s.systems {
		for _, m := range sys.measures {
			for _, seg := range m.segments {
				for _, a := range seg.annotations {
					fn(a)
				}
			}
		}
	}
	for _, e := range s.floating {
		fn(e)
	}
}

// Execute runs cmd and records it on the undo stack.
func (s *Score) Execute(cmd history.Command) error {
	return s.history.Execute(cmd)
}

// StartCmd opens an undo group; commands executed until EndCmd undo as one.
func (s *Score) StartCmd(name string) { s.history.BeginGroup(name) }

// EndCmd closes the undo group and lays out what changed.
func (s *Score) EndCmd() {
	s.history.EndGroup()
	s.DoLayout()
}

// Undo reverts the last undo group and relayouts.
func (s *Score) Undo() error {
	if err := s.history.Undo(); err != nil {
		return err
	}
	s.DoLayout()
	return nil
}

// Redo reapplies the last undone group and relayouts.
func (s *Score) Redo() error {
	if err := s.history.Redo(); err != nil {
		return err
	}
	s.DoLayout()
	return nil
}
