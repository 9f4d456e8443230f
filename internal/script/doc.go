// Package script runs Lua scripts against a fret diagram.
//
// Scripts run in a sandboxed gopher-lua state: only the base, table,
// string and math libraries are open, the file loading builtins are
// removed and require resolves the preloaded fret module alone. The fret
// module is also installed as a global.
//
//	fret.strings(4)
//	fret.dot(1, 2)
//	fret.dot(2, 3, "square")
//	fret.marker(0, "cross")
//	fret.barre(1, 5)
//	fret.harmony("Am7")
//	print(fret.ascii())
//
// Every edit goes through the score's undo stack and a whole run is one
// undo step. When a script fails, the edits it made are rolled back.
//
// Functions of the fret module:
//
//	dot(string, fret [, type [, add]])   set or toggle a dot
//	marker(string, type)                 "circle", "cross" or "none"
//	barre(string, fret)                  toggle a barre
//	clear()                              remove dots, markers and barres
//	strings([n]) frets([n]) offset([n])  read or change the grid
//	harmony([text])                      read or set the chord symbol
//	state()                              table snapshot of the diagram
//	apply(table)                         replace the fingering from a state table
//	ascii()                              text rendering
package script
