package editor

import (
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/engrave/internal/clip"
	"github.com/dshills/engrave/internal/engraving/fret"
	"github.com/dshills/engrave/internal/engraving/score"
)

const helpText = "space dot  d type  o/x/n marker  b barre  c clear  +/- frets  </> strings  [/] offset  u undo  r redo  ^C copy  ^V paste  q quit"

func (e *Editor) handleKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyUp:
		e.move(0, -1)
	case tcell.KeyDown:
		e.move(0, 1)
	case tcell.KeyLeft:
		e.move(-1, 0)
	case tcell.KeyRight:
		e.move(1, 0)
	case tcell.KeyEnter:
		e.toggle()
	case tcell.KeyEscape:
		e.quit = true
	case tcell.KeyCtrlZ:
		e.undo()
	case tcell.KeyCtrlY:
		e.redo()
	case tcell.KeyCtrlC:
		e.report("copied", clip.Copy(e.board, e.diagram))
	case tcell.KeyCtrlV:
		e.edit("pasted", func() error { return clip.Paste(e.board, e.diagram) })
	case tcell.KeyRune:
		e.handleRune(ev.Rune())
	}
}

func (e *Editor) handleRune(r rune) {
	switch r {
	case 'h':
		e.move(-1, 0)
	case 'l':
		e.move(1, 0)
	case 'k':
		e.move(0, -1)
	case 'j':
		e.move(0, 1)
	case ' ':
		e.toggle()
	case 'd':
		e.dotType = (e.dotType + 1) % (fret.DotTriangle + 1)
		e.status = "dot type " + e.dotType.String()
	case 'o':
		e.setMarker(fret.MarkerCircle)
	case 'x':
		e.setMarker(fret.MarkerCross)
	case 'n':
		e.setMarker(fret.MarkerNone)
	case 'b':
		if e.fret < 1 {
			e.status = "barre needs a fret"
			return
		}
		s, f := e.str, e.fret
		e.edit("barre", func() error { return e.diagram.UndoSetFretBarre(s, f) })
	case 'c':
		e.edit("cleared", e.diagram.UndoFretClear)
	case '+':
		e.changeGrid("frets", score.PidFretFrets, e.diagram.Frets()+1, 1)
	case '-':
		e.changeGrid("frets", score.PidFretFrets, e.diagram.Frets()-1, 1)
	case '>':
		e.changeGrid("strings", score.PidFretStrings, e.diagram.Strings()+1, 1)
	case '<':
		e.changeGrid("strings", score.PidFretStrings, e.diagram.Strings()-1, 1)
	case ']':
		e.changeGrid("offset", score.PidFretOffset, e.diagram.FretOffset()+1, 0)
	case '[':
		e.changeGrid("offset", score.PidFretOffset, e.diagram.FretOffset()-1, 0)
	case 'u':
		e.undo()
	case 'r':
		e.redo()
	case '?':
		e.status = helpText
	case 'q':
		e.quit = true
	}
}

func (e *Editor) move(ds, df int) {
	e.str += ds
	e.fret += df
	e.clampCursor()
}

// moveTo places the cursor on the grid cell under screen position x, y.
func (e *Editor) moveTo(x, y int) {
	s, f, ok := cellAt(x, y)
	if !ok {
		return
	}
	e.str, e.fret = s, f
	e.clampCursor()
}

// toggle edits the cell under the cursor: a dot of the current type on a
// fret, the next marker on the marker row.
func (e *Editor) toggle() {
	s, f := e.str, e.fret
	if f == 0 {
		next := fret.MarkerCircle
		switch e.diagram.Marker(s).Type {
		case fret.MarkerCircle:
			next = fret.MarkerCross
		case fret.MarkerCross:
			next = fret.MarkerNone
		}
		e.setMarker(next)
		return
	}
	t := e.dotType
	e.edit("dot", func() error { return e.diagram.UndoSetFretDot(s, f, true, t) })
}

func (e *Editor) setMarker(t fret.MarkerType) {
	s := e.str
	e.edit("marker "+t.String(), func() error { return e.diagram.UndoSetFretMarker(s, t) })
}

func (e *Editor) changeGrid(name string, pid score.Pid, n, minimum int) {
	if n < minimum {
		e.status = name + " at minimum"
		return
	}
	e.edit(name, func() error {
		return e.diagram.Score().UndoChangeProperty(e.diagram, pid, n)
	})
}

// edit runs an undoable change and relayouts.
func (e *Editor) edit(action string, fn func() error) {
	err := fn()
	e.diagram.Score().DoLayout()
	e.clampCursor()
	e.report(action, err)
}

func (e *Editor) undo() {
	label, ok := e.diagram.Score().History().UndoLabel()
	if !ok {
		e.status = "nothing to undo"
		return
	}
	e.edit("undo "+label, e.diagram.Score().Undo)
}

func (e *Editor) redo() {
	label, ok := e.diagram.Score().History().RedoLabel()
	if !ok {
		e.status = "nothing to redo"
		return
	}
	e.edit("redo "+label, e.diagram.Score().Redo)
}
