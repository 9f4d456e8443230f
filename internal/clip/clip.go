// Package clip copies fret diagram grids through the system clipboard.
//
// The clipboard text is a tagged base64 encoding of the msgpack state, so
// a paste can tell a diagram from arbitrary text.
package clip

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/dshills/engrave/internal/engraving/fret"
)

// Prefix tags clipboard text holding a diagram.
const Prefix = "engrave-fret:v1:"

var (
	// ErrNotDiagram indicates clipboard text that is not a copied diagram.
	ErrNotDiagram = errors.New("clipboard does not hold a fret diagram")

	// ErrUnavailable indicates there is no system clipboard.
	ErrUnavailable = errors.New("system clipboard unavailable")
)

// Board is a text clipboard.
type Board interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

// System is the operating system clipboard.
type System struct{}

// ReadAll reads the clipboard text.
func (System) ReadAll() (string, error) {
	if clipboard.Unsupported {
		return "", ErrUnavailable
	}
	return clipboard.ReadAll()
}

// WriteAll replaces the clipboard text.
func (System) WriteAll(text string) error {
	if clipboard.Unsupported {
		return ErrUnavailable
	}
	return clipboard.WriteAll(text)
}

// Memory is an in-process clipboard for headless use.
type Memory struct {
	text string
}

// ReadAll returns the stored text.
func (m *Memory) ReadAll() (string, error) { return m.text, nil }

// WriteAll stores text.
func (m *Memory) WriteAll(text string) error {
	m.text = text
	return nil
}

// Default returns the system clipboard when one is available and an
// in-process one otherwise.
func Default() Board {
	if clipboard.Unsupported {
		return &Memory{}
	}
	return System{}
}

// Encode returns the clipboard text for d.
func Encode(d *fret.Diagram) (string, error) {
	st, err := d.State()
	if err != nil {
		return "", err
	}
	data, err := fret.EncodeState(st)
	if err != nil {
		return "", err
	}
	return Prefix + base64.StdEncoding.EncodeToString(data), nil
}

// Decode parses clipboard text produced by Encode.
func Decode(text string) (fret.State, error) {
	payload, ok := strings.CutPrefix(strings.TrimSpace(text), Prefix)
	if !ok {
		return fret.State{}, ErrNotDiagram
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return fret.State{}, fmt.Errorf("%w: %v", ErrNotDiagram, err)
	}
	return fret.DecodeState(data)
}

// Copy writes d to b.
func Copy(b Board, d *fret.Diagram) error {
	text, err := Encode(d)
	if err != nil {
		return fmt.Errorf("copy diagram: %w", err)
	}
	if err := b.WriteAll(text); err != nil {
		return fmt.Errorf("copy diagram: %w", err)
	}
	return nil
}

// Paste replaces the grid of d and its linked copies with the diagram on
// b as one undo step.
func Paste(b Board, d *fret.Diagram) error {
	text, err := b.ReadAll()
	if err != nil {
		return fmt.Errorf("paste diagram: %w", err)
	}
	st, err := Decode(text)
	if err != nil {
		return fmt.Errorf("paste diagram: %w", err)
	}
	return d.UndoApplyState(st)
}
