package score

import (
	"fmt"
)

// AddElement is an undoable attachment of an element to a container.
type AddElement struct {
	parent Container
	e      Element
}

// NewAddElement creates the command.
func NewAddElement(parent Container, e Element) *AddElement {
	return &AddElement{parent: parent, e: e}
}

// Execute attaches the element.
func (c *AddElement) Execute() error {
	c.parent.Add(c.e)
	return nil
}

// Undo detaches the element.
func (c *AddElement) Undo() error {
	c.parent.Remove(c.e)
	return nil
}

// Description returns a human-readable description.
func (c *AddElement) Description() string {
	return "Add " + c.e.Type().Name()
}

// RemoveElement is an undoable detachment of an element from a container.
type RemoveElement struct {
	parent Container
	e      Element
}

// NewRemoveElement creates the command.
func NewRemoveElement(parent Container, e Element) *RemoveElement {
	return &RemoveElement{parent: parent, e: e}
}

// Execute detaches the element.
func (c *RemoveElement) Execute() error {
	c.parent.Remove(c.e)
	return nil
}

// Undo reattaches the element.
func (c *RemoveElement) Undo() error {
	c.parent.Add(c.e)
	return nil
}

// Description returns a human-readable description.
func (c *RemoveElement) Description() string {
	return "Remove " + c.e.Type().Name()
}

// ChangeProperty sets one property and restores the previous value and
// style flags on undo.
type ChangeProperty struct {
	e        Element
	pid      Pid
	value    any
	flags    PropertyFlags
	old      any
	oldFlags PropertyFlags
}

// NewChangeProperty creates the command. Styleable properties become
// unstyled.
func NewChangeProperty(e Element, pid Pid, v any) *ChangeProperty {
	flags := e.Base().PropertyFlags(pid)
	if flags == Styled {
		flags = Unstyled
	}
	return &ChangeProperty{e: e, pid: pid, value: v, flags: flags}
}

// Execute applies the new value.
func (c *ChangeProperty) Execute() error {
	c.old = c.e.GetProperty(c.pid)
	c.oldFlags = c.e.Base().PropertyFlags(c.pid)
	if !c.e.SetProperty(c.pid, c.value) {
		return fmt.Errorf("%w: %s on %s", ErrPropertyRejected, c.pid, c.e.Type().Name())
	}
	c.e.Base().SetPropertyFlags(c.pid, c.flags)
	return nil
}

// Undo restores the previous value.
func (c *ChangeProperty) Undo() error {
	c.e.SetProperty(c.pid, c.old)
	c.e.Base().SetPropertyFlags(c.pid, c.oldFlags)
	return nil
}

// Description returns a human-readable description.
func (c *ChangeProperty) Description() string {
	return fmt.Sprintf("Change %s", c.pid)
}

// UndoAddElement attaches e to parent through the undo stack.
func (s *Score) UndoAddElement(parent Container, e Element) error {
	return s.Execute(NewAddElement(parent, e))
}

// UndoRemoveElement detaches e from parent through the undo stack.
func (s *Score) UndoRemoveElement(parent Container, e Element) error {
	return s.Execute(NewRemoveElement(parent, e))
}

// UndoChangeProperty sets pid on e and every linked copy as one undo step.
func (s *Score) UndoChangeProperty(e Element, pid Pid, v any) error {
	return s.history.Transaction("Change "+pid.String(), func() error {
		for _, l := range s.LinkList(e) {
			if err := s.Execute(NewChangeProperty(l, pid, v)); err != nil {
				return err
			}
		}
		return nil
	})
}
