package history

import (
	"errors"
	"testing"
)

// tally is the edit target for test commands.
type tally struct{ n int }

type addCmd struct {
	t    *tally
	by   int
	fail bool
	name string
}

func (c *addCmd) Execute() error {
	if c.fail {
		return errors.New("rejected")
	}
	c.t.n += c.by
	return nil
}

func (c *addCmd) Undo() error {
	c.t.n -= c.by
	return nil
}

func (c *addCmd) Description() string {
	if c.name == "" {
		return "add"
	}
	return c.name
}

func add(t *tally, by int) *addCmd { return &addCmd{t: t, by: by} }

func TestMacro(t *testing.T) {
	v := &tally{}
	m := &Macro{Name: "both", Commands: []Command{add(v, 1), add(v, 10)}}
	if err := m.Execute(); err != nil || v.n != 11 {
		t.Fatalf("Execute: n=%d err=%v", v.n, err)
	}
	if err := m.Undo(); err != nil || v.n != 0 {
		t.Fatalf("Undo: n=%d err=%v", v.n, err)
	}

	bad := &Macro{Commands: []Command{add(v, 1), add(v, 2), &addCmd{t: v, fail: true}}}
	if err := bad.Execute(); err == nil {
		t.Fatal("expected error")
	}
	if v.n != 0 {
		t.Errorf("failed macro left n=%d", v.n)
	}
}

func TestMacroDescription(t *testing.T) {
	v := &tally{}
	tests := []struct {
		name string
		m    *Macro
		want string
	}{
		{"named", &Macro{Name: "Set fret dot", Commands: []Command{add(v, 1)}}, "Set fret dot"},
		{"single", &Macro{Commands: []Command{&addCmd{t: v, name: "Clear"}}}, "Clear"},
		{"several", &Macro{Commands: []Command{add(v, 1), add(v, 2)}}, "2 edits"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.Description(); got != tt.want {
				t.Errorf("Description() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUndoRedo(t *testing.T) {
	v := &tally{}
	h := NewHistory(0)

	if !errors.Is(h.Undo(), ErrNothingToUndo) {
		t.Error("Undo on empty history")
	}
	if !errors.Is(h.Redo(), ErrNothingToRedo) {
		t.Error("Redo on empty history")
	}

	_ = h.Execute(add(v, 2))
	_ = h.Execute(add(v, 3))
	if err := h.Undo(); err != nil || v.n != 2 {
		t.Fatalf("Undo: n=%d err=%v", v.n, err)
	}
	if !h.CanRedo() {
		t.Fatal("CanRedo() = false after undo")
	}
	if err := h.Redo(); err != nil || v.n != 5 {
		t.Fatalf("Redo: n=%d err=%v", v.n, err)
	}

	_ = h.Undo()
	_ = h.Execute(add(v, 100))
	if h.CanRedo() {
		t.Error("a new edit must drop the redo stack")
	}
}

func TestExecuteFailureNotRecorded(t *testing.T) {
	v := &tally{}
	h := NewHistory(0)
	if err := h.Execute(&addCmd{t: v, fail: true}); err == nil {
		t.Fatal("expected error")
	}
	if h.CanUndo() {
		t.Error("failed command was recorded")
	}
}

func TestLimit(t *testing.T) {
	v := &tally{}
	h := NewHistory(3)
	for range 5 {
		_ = h.Execute(add(v, 1))
	}
	if got := h.UndoCount(); got != 3 {
		t.Fatalf("UndoCount() = %d, want 3", got)
	}
	for h.CanUndo() {
		_ = h.Undo()
	}
	if v.n != 2 {
		t.Errorf("n = %d, want the two trimmed steps to remain", v.n)
	}
}

func TestLabels(t *testing.T) {
	v := &tally{}
	h := NewHistory(0)
	if _, ok := h.UndoLabel(); ok {
		t.Error("UndoLabel on empty history")
	}
	_ = h.Execute(&addCmd{t: v, by: 1, name: "Set fret marker"})
	if l, ok := h.UndoLabel(); !ok || l != "Set fret marker" {
		t.Errorf("UndoLabel() = %q, %v", l, ok)
	}
	_ = h.Undo()
	if l, ok := h.RedoLabel(); !ok || l != "Set fret marker" {
		t.Errorf("RedoLabel() = %q, %v", l, ok)
	}
}

func TestGroupIsOneStep(t *testing.T) {
	v := &tally{}
	h := NewHistory(0)

	h.BeginGroup("Set fret dot")
	_ = h.Execute(add(v, 1))
	h.BeginGroup("inner")
	_ = h.Execute(add(v, 2))
	h.EndGroup()
	if h.CanUndo() {
		t.Fatal("inner EndGroup closed the macro")
	}
	h.EndGroup()

	if h.UndoCount() != 1 {
		t.Fatalf("UndoCount() = %d, want 1", h.UndoCount())
	}
	if l, _ := h.UndoLabel(); l != "Set fret dot" {
		t.Errorf("label = %q, want outer name", l)
	}
	_ = h.Undo()
	if v.n != 0 {
		t.Errorf("n = %d after undoing the macro", v.n)
	}
}

func TestEmptyGroupNotRecorded(t *testing.T) {
	h := NewHistory(0)
	h.BeginGroup("nothing")
	h.EndGroup()
	h.EndGroup()
	if h.CanUndo() {
		t.Error("empty macro was recorded")
	}
}

func TestCancelGroupReverses(t *testing.T) {
	v := &tally{}
	h := NewHistory(0)
	h.BeginGroup("partial")
	_ = h.Execute(add(v, 4))
	if err := h.CancelGroup(); err != nil {
		t.Fatal(err)
	}
	if v.n != 0 || h.CanUndo() {
		t.Errorf("n=%d canUndo=%v after cancel", v.n, h.CanUndo())
	}
}

func TestTransaction(t *testing.T) {
	v := &tally{}
	h := NewHistory(0)

	err := h.Transaction("ok", func() error {
		_ = h.Execute(add(v, 1))
		return h.Execute(add(v, 1))
	})
	if err != nil || v.n != 2 || h.UndoCount() != 1 {
		t.Fatalf("n=%d steps=%d err=%v", v.n, h.UndoCount(), err)
	}

	err = h.Transaction("linked copies", func() error {
		_ = h.Execute(add(v, 5))
		return h.Execute(&addCmd{t: v, fail: true})
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if v.n != 2 || h.UndoCount() != 1 {
		t.Errorf("failed transaction left n=%d steps=%d", v.n, h.UndoCount())
	}
}

func TestCheckpoint(t *testing.T) {
	v := &tally{}
	h := NewHistory(0)
	_ = h.Execute(add(v, 1))
	cp := h.CreateCheckpoint()
	_ = h.Execute(add(v, 2))
	_ = h.Execute(add(v, 3))

	if err := h.UndoToCheckpoint(cp); err != nil {
		t.Fatal(err)
	}
	if v.n != 1 || h.UndoCount() != 1 {
		t.Errorf("n=%d steps=%d, want 1 and 1", v.n, h.UndoCount())
	}
}
