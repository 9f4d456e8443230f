package editor

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Screen position of the text rendering. Row 0 holds the chord symbol.
const (
	gridLeft = 2
	gridTop  = 2
)

var (
	styleDefault = tcell.StyleDefault
	styleCursor  = tcell.StyleDefault.Reverse(true)
	styleStatus  = tcell.StyleDefault.Reverse(true)
	styleHarmony = tcell.StyleDefault.Bold(true)
)

// cellAt maps a screen position to a string and fret. The nut row and the
// gaps between strings map to nothing.
func cellAt(x, y int) (str, fret int, ok bool) {
	dx, dy := x-gridLeft, y-gridTop
	if dx < 0 || dx%2 != 0 || dy < 0 || dy == 1 {
		return 0, 0, false
	}
	if dy == 0 {
		return dx / 2, 0, true
	}
	return dx / 2, dy - 1, true
}

// cellPos is the inverse of cellAt.
func cellPos(str, fret int) (x, y int) {
	x = gridLeft + 2*str
	if fret == 0 {
		return x, gridTop
	}
	return x, gridTop + fret + 1
}

// Draw repaints the screen.
func (e *Editor) Draw() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.screen.Clear()
	w, h := e.screen.Size()

	if hm := e.diagram.Harmony(); hm != nil {
		drawText(e.screen, gridLeft, 0, w, hm.Text(), styleHarmony)
	}

	lines := strings.Split(strings.TrimSuffix(e.diagram.ASCII(), "\n"), "\n")
	for i, line := range lines {
		drawText(e.screen, gridLeft, gridTop+i, w, line, styleDefault)
	}

	cx, cy := cellPos(e.str, e.fret)
	r, _, _, _ := e.screen.GetContent(cx, cy) //nolint:staticcheck // GetContent is the correct API
	if r == 0 {
		r = ' '
	}
	e.screen.SetContent(cx, cy, r, nil, styleCursor)
	e.screen.ShowCursor(cx, cy)

	if h > 0 {
		info := fmt.Sprintf("s%d f%d %s ", e.str, e.fret, e.dotType)
		drawStatus(e.screen, h-1, w, info+e.status)
	}
	e.screen.Show()
}

// drawText writes s from x, y, clipped to width columns.
func drawText(screen tcell.Screen, x, y, width int, s string, style tcell.Style) int {
	for _, r := range s {
		rw := runewidth.RuneWidth(r)
		if rw == 0 {
			continue
		}
		if x+rw > width {
			break
		}
		screen.SetContent(x, y, r, nil, style)
		x += rw
	}
	return x
}

// drawStatus fills row y with msg, truncated to the screen width.
func drawStatus(screen tcell.Screen, y, width int, msg string) {
	msg = runewidth.Truncate(msg, width, "…")
	x := drawText(screen, 0, y, width, msg, styleStatus)
	for ; x < width; x++ {
		screen.SetContent(x, y, ' ', nil, styleStatus)
	}
}
