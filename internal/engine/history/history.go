package history

import (
	"errors"
	"sync"
)

var (
	// ErrNothingToUndo is returned by Undo on an empty undo stack.
	ErrNothingToUndo = errors.New("nothing to undo")
	// ErrNothingToRedo is returned by Redo on an empty redo stack.
	ErrNothingToRedo = errors.New("nothing to redo")
)

// DefaultLimit is the undo depth used when NewHistory gets a non-positive
// limit.
const DefaultLimit = 1000

// History holds the undo and redo stacks of one score.
type History struct {
	mu sync.Mutex

	undo  []Command
	redo  []Command
	limit int

	// open collects commands while a macro is recording; depth counts
	// nested BeginGroup calls folded into it.
	open  *Macro
	depth int
}

// NewHistory returns an empty history keeping at most limit undo steps.
func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &History{limit: limit}
}

// Execute applies cmd and records it. A failed command is not recorded.
func (h *History) Execute(cmd Command) error {
	if err := cmd.Execute(); err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.open != nil {
		h.open.Commands = append(h.open.Commands, cmd)
		return nil
	}
	h.recordLocked(cmd)
	return nil
}

// recordLocked pushes an undo step, drops the redo stack and trims the
// oldest steps beyond the limit.
func (h *History) recordLocked(cmd Command) {
	h.undo = append(h.undo, cmd)
	h.redo = nil
	if n := len(h.undo) - h.limit; n > 0 {
		h.undo = h.undo[n:]
	}
}

// Undo reverses the latest step. The lock is not held while the command
// runs, so commands may query the history.
func (h *History) Undo() error {
	return h.move(&h.undo, &h.redo, ErrNothingToUndo, Command.Undo)
}

// Redo reapplies the latest undone step.
func (h *History) Redo() error {
	return h.move(&h.redo, &h.undo, ErrNothingToRedo, Command.Execute)
}

func (h *History) move(from, to *[]Command, empty error, run func(Command) error) error {
	h.mu.Lock()
	if len(*from) == 0 {
		h.mu.Unlock()
		return empty
	}
	cmd := (*from)[len(*from)-1]
	*from = (*from)[:len(*from)-1]
	h.mu.Unlock()

	err := run(cmd)

	h.mu.Lock()
	defer h.mu.Unlock()
	if err != nil {
		*from = append(*from, cmd)
		return err
	}
	*to = append(*to, cmd)
	return nil
}

// CanUndo reports whether an undo step is recorded.
func (h *History) CanUndo() bool { return h.UndoCount() > 0 }

// CanRedo reports whether a redo step is recorded.
func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redo) > 0
}

// UndoCount returns the number of recorded undo steps.
func (h *History) UndoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undo)
}

// UndoLabel describes the step Undo would reverse.
func (h *History) UndoLabel() (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return topLabel(h.undo)
}

// RedoLabel describes the step Redo would reapply.
func (h *History) RedoLabel() (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return topLabel(h.redo)
}

func topLabel(stack []Command) (string, bool) {
	if len(stack) == 0 {
		return "", false
	}
	return stack[len(stack)-1].Description(), true
}

// BeginGroup starts recording a macro. Calls made while a macro is open
// nest into it.
func (h *History) BeginGroup(name string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.open != nil {
		h.depth++
		return
	}
	h.open = &Macro{Name: name}
}

// EndGroup closes the innermost group. Closing the outermost one records
// the macro as a single step unless it is empty.
func (h *History) EndGroup() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.open == nil {
		return
	}
	if h.depth > 0 {
		h.depth--
		return
	}
	m := h.open
	h.open = nil
	if len(m.Commands) > 0 {
		h.recordLocked(m)
	}
}

// CancelGroup closes the innermost group. Cancelling the outermost one
// reverses what the macro applied so far and records nothing.
func (h *History) CancelGroup() error {
	h.mu.Lock()
	if h.open == nil {
		h.mu.Unlock()
		return nil
	}
	if h.depth > 0 {
		h.depth--
		h.mu.Unlock()
		return nil
	}
	m := h.open
	h.open = nil
	h.mu.Unlock()
	return m.Undo()
}

// Transaction runs fn inside a group. If fn fails the group is cancelled
// and its partial edits are reversed.
func (h *History) Transaction(name string, fn func() error) error {
	h.BeginGroup(name)
	if err := fn(); err != nil {
		if uerr := h.CancelGroup(); uerr != nil {
			return errors.Join(err, uerr)
		}
		return err
	}
	h.EndGroup()
	return nil
}

// Checkpoint marks an undo depth.
type Checkpoint struct{ depth int }

// CreateCheckpoint marks the current undo depth.
func (h *History) CreateCheckpoint() Checkpoint {
	return Checkpoint{depth: h.UndoCount()}
}

// UndoToCheckpoint undoes steps until the history is back at cp.
func (h *History) UndoToCheckpoint(cp Checkpoint) error {
	for h.UndoCount() > cp.depth {
		if err := h.Undo(); err != nil {
			return err
		}
	}
	return nil
}
