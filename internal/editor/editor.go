// Package editor is an interactive terminal editor for one fret diagram.
//
// The diagram is shown as its text rendering with a cursor on a string and
// fret; fret 0 is the marker row above the nut. Every edit goes through
// the score's undo stack and the clipboard carries diagram states.
package editor

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/engrave/internal/clip"
	"github.com/dshills/engrave/internal/engraving/fret"
)

// Editor drives a tcell screen.
type Editor struct {
	screen  tcell.Screen
	diagram *fret.Diagram
	board   clip.Board
	logger  *slog.Logger

	mu      sync.Mutex
	str     int
	fret    int
	dotType fret.DotType
	status  string
	quit    bool
}

// Option configures an Editor.
type Option func(*Editor)

// WithClipboard sets the clipboard used by copy and paste.
func WithClipboard(b clip.Board) Option {
	return func(e *Editor) {
		if b != nil {
			e.board = b
		}
	}
}

// WithLogger sets the editor's logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Editor) {
		if l != nil {
			e.logger = l
		}
	}
}

// New creates an editor for d on screen. The screen is initialized by Run.
func New(screen tcell.Screen, d *fret.Diagram, opts ...Option) *Editor {
	e := &Editor{
		screen:  screen,
		diagram: d,
		board:   clip.Default(),
		logger:  slog.Default(),
		fret:    1,
		status:  "arrows move, space dot, b barre, o/x marker, ? help",
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run initializes the screen and processes events until the user quits or
// ctx is done. The screen is finalized on return.
func (e *Editor) Run(ctx context.Context) error {
	if err := e.screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	e.screen.EnableMouse()
	defer e.screen.Fini()

	events := make(chan tcell.Event, 16)
	done := make(chan struct{})
	defer close(done)

	go func() {
		for {
			ev := e.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	e.Draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if !e.HandleEvent(ev) {
				return nil
			}
			e.Draw()
		}
	}
}

// HandleEvent applies one terminal event. It returns false once the user
// has asked to quit.
func (e *Editor) HandleEvent(ev tcell.Event) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch ev := ev.(type) {
	case *tcell.EventKey:
		e.handleKey(ev)
	case *tcell.EventMouse:
		if ev.Buttons()&tcell.Button1 != 0 {
			x, y := ev.Position()
			e.moveTo(x, y)
		}
	case *tcell.EventResize:
		e.screen.Sync()
	}
	return !e.quit
}

// Cursor returns the string and fret under the cursor.
func (e *Editor) Cursor() (str, fret int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.str, e.fret
}

// Status returns the status line message.
func (e *Editor) Status() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.status
}

// clampCursor keeps the cursor on the grid after the grid changed.
func (e *Editor) clampCursor() {
	e.str = max(0, min(e.str, e.diagram.Strings()-1))
	e.fret = max(0, min(e.fret, e.diagram.Frets()))
}

// report sets the status line, logging failures.
func (e *Editor) report(action string, err error) {
	if err != nil {
		e.logger.Warn("editor: "+action+" failed", "error", err)
		e.status = action + ": " + err.Error()
		return
	}
	e.status = action
}
