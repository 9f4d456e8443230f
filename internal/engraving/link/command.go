package link

import "fmt"

// Command links clone to orig on Execute and unlinks it on Undo. It
// satisfies history.Command.
type Command struct {
	registry *Registry
	clone    Linkable
	orig     Linkable
}

// NewCommand creates a link command.
func NewCommand(r *Registry, clone, orig Linkable) *Command {
	return &Command{registry: r, clone: clone, orig: orig}
}

// Execute links the clone.
func (c *Command) Execute() error {
	return c.registry.Link(c.clone, c.orig)
}

// Undo unlinks the clone.
func (c *Command) Undo() error {
	c.registry.Unlink(c.clone)
	return nil
}

// Description returns a human-readable description.
func (c *Command) Description() string {
	return fmt.Sprintf("Link %s", c.clone.LinkID().String()[:8])
}
