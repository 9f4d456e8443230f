package fret

import (
	"fmt"
	"maps"

	"github.com/dshills/engrave/internal/engine/history"
)

// UndoData is a snapshot of a diagram's dots, markers and barres taken
// before an edit. Removal rules make the effect of an edit hard to invert,
// so undo restores the whole snapshot.
type UndoData struct {
	diagram *Diagram
	dots    map[int][]Dot
	markers map[int]Marker
	barres  map[int]Barre
}

// NewUndoData captures the current state of d.
func NewUndoData(d *Diagram) UndoData {
	return UndoData{
		diagram: d,
		dots:    d.Dots(),
		markers: d.Markers(),
		barres:  d.Barres(),
	}
}

// UpdateDiagram restores the captured state. Restoring a zero UndoData is
// a programming error and panics with ErrNoDiagram.
func (u UndoData) UpdateDiagram() {
	if u.diagram == nil {
		panic(ErrNoDiagram)
	}
	u.diagram.dots = cloneDots(u.dots)
	u.diagram.markers = maps.Clone(u.markers)
	u.diagram.barres = maps.Clone(u.barres)
}

// editCommand snapshots the diagram, applies edit and restores the
// snapshot on undo. It satisfies history.Command.
type editCommand struct {
	diagram *Diagram
	name    string
	edit    func(d *Diagram)
	undo    UndoData
}

// Execute snapshots and edits the diagram.
func (c *editCommand) Execute() error {
	c.undo = NewUndoData(c.diagram)
	c.edit(c.diagram)
	c.diagram.TriggerLayout()
	return nil
}

// Undo restores the snapshot.
func (c *editCommand) Undo() error {
	c.undo.UpdateDiagram()
	c.diagram.TriggerLayout()
	return nil
}

// Description returns a human-readable description.
func (c *editCommand) Description() string {
	return c.name
}

// DotCommand sets or toggles a dot.
type DotCommand struct{ editCommand }

// NewDotCommand creates a command calling SetDot on d.
func NewDotCommand(d *Diagram, s, f int, add bool, t DotType) *DotCommand {
	return &DotCommand{editCommand{
		diagram: d,
		name:    fmt.Sprintf("Set fret dot %d/%d", s, f),
		edit:    func(d *Diagram) { d.SetDot(s, f, add, t) },
	}}
}

// MarkerCommand sets a marker.
type MarkerCommand struct{ editCommand }

// NewMarkerCommand creates a command calling SetMarker on d.
func NewMarkerCommand(d *Diagram, s int, t MarkerType) *MarkerCommand {
	return &MarkerCommand{editCommand{
		diagram: d,
		name:    fmt.Sprintf("Set fret marker %d %s", s, t),
		edit:    func(d *Diagram) { d.SetMarker(s, t) },
	}}
}

// BarreCommand toggles a barre interactively.
type BarreCommand struct{ editCommand }

// NewBarreCommand creates a command calling ToggleBarre on d.
func NewBarreCommand(d *Diagram, s, f int) *BarreCommand {
	return &BarreCommand{editCommand{
		diagram: d,
		name:    fmt.Sprintf("Set fret barre %d/%d", s, f),
		edit:    func(d *Diagram) { d.ToggleBarre(s, f) },
	}}
}

// ClearCommand clears the diagram.
type ClearCommand struct{ editCommand }

// NewClearCommand creates a command calling Clear on d.
func NewClearCommand(d *Diagram) *ClearCommand {
	return &ClearCommand{editCommand{
		diagram: d,
		name:    "Clear fret diagram",
		edit:    (*Diagram).Clear,
	}}
}

// undoEach runs mk for d and every linked copy as one undo step.
func (d *Diagram) undoEach(name string, mk func(l *Diagram) history.Command) error {
	s := d.Score()
	return s.History().Transaction(name, func() error {
		for _, e := range s.LinkList(d) {
			l, ok := e.(*Diagram)
			if !ok {
				continue
			}
			if err := l.Score().Execute(mk(l)); err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
		}
		return nil
	})
}

// UndoSetFretDot applies SetDot to d and its linked copies through the
// undo stack.
func (d *Diagram) UndoSetFretDot(s, f int, add bool, t DotType) error {
	return d.undoEach("Set fret dot", func(l *Diagram) history.Command {
		return NewDotCommand(l, s, f, add, t)
	})
}

// UndoSetFretMarker applies SetMarker to d and its linked copies through
// the undo stack.
func (d *Diagram) UndoSetFretMarker(s int, t MarkerType) error {
	return d.undoEach("Set fret marker", func(l *Diagram) history.Command {
		return NewMarkerCommand(l, s, t)
	})
}

// UndoSetFretBarre applies ToggleBarre to d and its linked copies through
// the undo stack.
func (d *Diagram) UndoSetFretBarre(s, f int) error {
	return d.undoEach("Set fret barre", func(l *Diagram) history.Command {
		return NewBarreCommand(l, s, f)
	})
}

// UndoFretClear clears d and its linked copies through the undo stack.
func (d *Diagram) UndoFretClear() error {
	return d.undoEach("Clear fret diagram", func(l *Diagram) history.Command {
		return NewClearCommand(l)
	})
}

// StateCommand replaces the whole grid, including string and fret counts,
// with a snapshot.
type StateCommand struct {
	diagram *Diagram
	state   State
	prev    State
}

// NewStateCommand creates a command applying st to d.
func NewStateCommand(d *Diagram, st State) *StateCommand {
	return &StateCommand{diagram: d, state: st}
}

// Execute records the current state and applies the new one.
func (c *StateCommand) Execute() error {
	prev, err := c.diagram.State()
	if err != nil {
		return err
	}
	if err := c.diagram.ApplyState(c.state); err != nil {
		return err
	}
	c.prev = prev
	c.diagram.TriggerLayout()
	return nil
}

// Undo restores the recorded state.
func (c *StateCommand) Undo() error {
	if err := c.diagram.ApplyState(c.prev); err != nil {
		return err
	}
	c.diagram.TriggerLayout()
	return nil
}

// Description returns a human-readable description.
func (c *StateCommand) Description() string {
	return "Paste fret diagram"
}

// UndoApplyState applies st to d and its linked copies through the undo
// stack.
func (d *Diagram) UndoApplyState(st State) error {
	return d.undoEach("Paste fret diagram", func(l *Diagram) history.Command {
		return NewStateCommand(l, st)
	})
}
