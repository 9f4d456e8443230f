package history

import "fmt"

// Command is a reversible edit.
type Command interface {
	Execute() error
	Undo() error
	// Description labels the command in undo menus and logs.
	Description() string
}

// Macro is an ordered list of commands recorded as one undo step.
type Macro struct {
	Name     string
	Commands []Command
}

// Execute applies the commands in order. If one fails, those already
// applied are reversed before the error is returned.
func (m *Macro) Execute() error {
	for i, cmd := range m.Commands {
		if err := cmd.Execute(); err != nil {
			for j := i - 1; j >= 0; j-- {
				_ = m.Commands[j].Undo()
			}
			return fmt.Errorf("%s: step %d: %w", m.Description(), i, err)
		}
	}
	return nil
}

// Undo reverses the commands last to first.
func (m *Macro) Undo() error {
	for i := len(m.Commands) - 1; i >= 0; i-- {
		if err := m.Commands[i].Undo(); err != nil {
			return fmt.Errorf("undo %s: step %d: %w", m.Description(), i, err)
		}
	}
	return nil
}

// Description returns the macro name, or the only command's description
// for an unnamed single-command macro.
func (m *Macro) Description() string {
	switch {
	case m.Name != "":
		return m.Name
	case len(m.Commands) == 1:
		return m.Commands[0].Description()
	}
	return fmt.Sprintf("%d edits", len(m.Commands))
}
