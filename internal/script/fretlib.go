package script

import (
	"fmt"

	"fortio.org/safecast"
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/engrave/internal/engraving/fret"
	"github.com/dshills/engrave/internal/engraving/score"
)

const moduleName = "fret"

var dotTypes = []fret.DotType{fret.DotNormal, fret.DotCross, fret.DotSquare, fret.DotTriangle}

var markerTypes = []fret.MarkerType{fret.MarkerCircle, fret.MarkerCross, fret.MarkerNone}

func lookupDot(name string) (fret.DotType, bool) {
	for _, t := range dotTypes {
		if t.String() == name {
			return t, true
		}
	}
	return fret.DotNormal, false
}

func lookupMarker(name string) (fret.MarkerType, bool) {
	for _, t := range markerTypes {
		if t.String() == name {
			return t, true
		}
	}
	return fret.MarkerNone, false
}

// loader builds the fret module table.
func (e *Engine) loader(L *lua.LState) int {
	mod := L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"dot":     e.luaDot,
		"marker":  e.luaMarker,
		"barre":   e.luaBarre,
		"clear":   e.luaClear,
		"strings": e.luaStrings,
		"frets":   e.luaFrets,
		"offset":  e.luaOffset,
		"harmony": e.luaHarmony,
		"state":   e.luaState,
		"apply":   e.luaApply,
		"ascii":   e.luaASCII,
	})
	L.Push(mod)
	return 1
}

func (e *Engine) checkString(L *lua.LState, n int) int {
	s := L.CheckInt(n)
	if s < 0 || s >= e.diagram.Strings() {
		L.ArgError(n, fmt.Sprintf("string %d out of range [0, %d)", s, e.diagram.Strings()))
	}
	return s
}

func raise(L *lua.LState, err error) int {
	if err != nil {
		L.RaiseError("%s", err.Error())
	}
	return 0
}

// dot(string, fret [, type [, add]])
func (e *Engine) luaDot(L *lua.LState) int {
	s := e.checkString(L, 1)
	f := L.CheckInt(2)
	if f < 0 {
		L.ArgError(2, "fret must not be negative")
	}
	t, ok := lookupDot(L.OptString(3, fret.DotNormal.String()))
	if !ok {
		L.ArgError(3, "unknown dot type")
	}
	add := L.OptBool(4, false)
	return raise(L, e.diagram.UndoSetFretDot(s, f, add, t))
}

// marker(string, type)
func (e *Engine) luaMarker(L *lua.LState) int {
	s := e.checkString(L, 1)
	t, ok := lookupMarker(L.CheckString(2))
	if !ok {
		L.ArgError(2, "unknown marker type")
	}
	return raise(L, e.diagram.UndoSetFretMarker(s, t))
}

// barre(string, fret)
func (e *Engine) luaBarre(L *lua.LState) int {
	s := e.checkString(L, 1)
	f := L.CheckInt(2)
	if f < 1 {
		L.ArgError(2, "fret must be positive")
	}
	return raise(L, e.diagram.UndoSetFretBarre(s, f))
}

func (e *Engine) luaClear(L *lua.LState) int {
	return raise(L, e.diagram.UndoFretClear())
}

// gridProperty reads a grid property or, given an argument, changes it
// through the score's undo stack. The new value is returned either way.
func (e *Engine) gridProperty(L *lua.LState, pid score.Pid, get func() int, min int) int {
	if L.GetTop() >= 1 {
		n := L.CheckInt(1)
		if n < min {
			L.ArgError(1, fmt.Sprintf("must be at least %d", min))
		}
		if err := e.diagram.Score().UndoChangeProperty(e.diagram, pid, n); err != nil {
			return raise(L, err)
		}
	}
	L.Push(lua.LNumber(get()))
	return 1
}

func (e *Engine) luaStrings(L *lua.LState) int {
	return e.gridProperty(L, score.PidFretStrings, e.diagram.Strings, 1)
}

func (e *Engine) luaFrets(L *lua.LState) int {
	return e.gridProperty(L, score.PidFretFrets, e.diagram.Frets, 1)
}

func (e *Engine) luaOffset(L *lua.LState) int {
	return e.gridProperty(L, score.PidFretOffset, e.diagram.FretOffset, 0)
}

// harmony([text]) replaces the chord symbol as one undo step. An empty
// text removes it.
func (e *Engine) luaHarmony(L *lua.LState) int {
	d := e.diagram
	if L.GetTop() >= 1 {
		text := L.CheckString(1)
		s := d.Score()
		err := s.History().Transaction("Change chord symbol", func() error {
			if old := d.Harmony(); old != nil {
				if err := s.UndoRemoveElement(d, old); err != nil {
					return err
				}
			}
			if text == "" {
				return nil
			}
			return s.UndoAddElement(d, score.NewHarmony(s, text))
		})
		if err != nil {
			return raise(L, err)
		}
	}
	if h := d.Harmony(); h != nil {
		L.Push(lua.LString(h.Text()))
	} else {
		L.Push(lua.LNil)
	}
	return 1
}

// state() returns the fingering as a table:
//
//	{strings=, frets=, offset=, dots={{string=, fret=, type=}},
//	 markers={{string=, type=}}, barres={{fret=, start=, ["end"]=}}}
func (e *Engine) luaState(L *lua.LState) int {
	st, err := e.diagram.State()
	if err != nil {
		return raise(L, err)
	}

	dots := make([]map[string]any, 0, len(st.Dots))
	for _, d := range st.Dots {
		dots = append(dots, map[string]any{
			"string": int(d.String),
			"fret":   int(d.Fret),
			"type":   fret.DotType(d.Type).String(),
		})
	}
	markers := make([]map[string]any, 0, len(st.Markers))
	for _, m := range st.Markers {
		markers = append(markers, map[string]any{
			"string": int(m.String),
			"type":   fret.MarkerType(m.Type).String(),
		})
	}
	barres := make([]map[string]any, 0, len(st.Barres))
	for _, b := range st.Barres {
		barres = append(barres, map[string]any{
			"fret":  int(b.Fret),
			"start": int(b.Start),
			"end":   int(b.End),
		})
	}

	L.Push(toLua(L, map[string]any{
		"strings": int(st.Strings),
		"frets":   int(st.Frets),
		"offset":  int(st.Offset),
		"dots":    dots,
		"markers": markers,
		"barres":  barres,
	}))
	return 1
}

// apply(table) replaces the fingering with a table shaped like state().
func (e *Engine) luaApply(L *lua.LState) int {
	m, ok := toGo(L.CheckTable(1)).(map[string]any)
	if !ok {
		L.ArgError(1, "want a state table")
	}
	st, err := e.stateFromTable(m)
	if err != nil {
		return raise(L, err)
	}
	return raise(L, e.diagram.UndoApplyState(st))
}

func (e *Engine) stateFromTable(m map[string]any) (fret.State, error) {
	st, err := e.diagram.State()
	if err != nil {
		return fret.State{}, err
	}
	st.Dots, st.Markers, st.Barres = nil, nil, nil

	conv := func(key string, def int) (uint8, error) {
		n, err := intField(m, key, def)
		if err != nil {
			return 0, err
		}
		return safecast.Conv[uint8](n)
	}
	if st.Strings, err = conv("strings", int(st.Strings)); err != nil {
		return fret.State{}, fmt.Errorf("strings: %w", err)
	}
	if st.Frets, err = conv("frets", int(st.Frets)); err != nil {
		return fret.State{}, fmt.Errorf("frets: %w", err)
	}
	if st.Offset, err = conv("offset", int(st.Offset)); err != nil {
		return fret.State{}, fmt.Errorf("offset: %w", err)
	}

	dots, err := listField(m, "dots")
	if err != nil {
		return fret.State{}, err
	}
	for _, t := range dots {
		sd, err := stateDot(t)
		if err != nil {
			return fret.State{}, err
		}
		st.Dots = append(st.Dots, sd)
	}

	markers, err := listField(m, "markers")
	if err != nil {
		return fret.State{}, err
	}
	for _, t := range markers {
		sm, err := stateMarker(t)
		if err != nil {
			return fret.State{}, err
		}
		st.Markers = append(st.Markers, sm)
	}

	barres, err := listField(m, "barres")
	if err != nil {
		return fret.State{}, err
	}
	for _, t := range barres {
		sb, err := stateBarre(t)
		if err != nil {
			return fret.State{}, err
		}
		st.Barres = append(st.Barres, sb)
	}
	return st, nil
}

func stateDot(t map[string]any) (fret.StateDot, error) {
	s, err := intField(t, "string", -1)
	if err != nil {
		return fret.StateDot{}, err
	}
	f, err := intField(t, "fret", 0)
	if err != nil {
		return fret.StateDot{}, err
	}
	name, err := stringField(t, "type", fret.DotNormal.String())
	if err != nil {
		return fret.StateDot{}, err
	}
	typ, ok := lookupDot(name)
	if !ok {
		return fret.StateDot{}, fmt.Errorf("unknown dot type %q", name)
	}
	str, err := safecast.Conv[uint8](s)
	if err != nil {
		return fret.StateDot{}, fmt.Errorf("dot string: %w", err)
	}
	fr, err := safecast.Conv[uint8](f)
	if err != nil {
		return fret.StateDot{}, fmt.Errorf("dot fret: %w", err)
	}
	return fret.StateDot{String: str, Fret: fr, Type: uint8(typ)}, nil
}

func stateMarker(t map[string]any) (fret.StateMarker, error) {
	s, err := intField(t, "string", -1)
	if err != nil {
		return fret.StateMarker{}, err
	}
	name, err := stringField(t, "type", "")
	if err != nil {
		return fret.StateMarker{}, err
	}
	typ, ok := lookupMarker(name)
	if !ok {
		return fret.StateMarker{}, fmt.Errorf("unknown marker type %q", name)
	}
	str, err := safecast.Conv[uint8](s)
	if err != nil {
		return fret.StateMarker{}, fmt.Errorf("marker string: %w", err)
	}
	return fret.StateMarker{String: str, Type: uint8(typ)}, nil
}

func stateBarre(t map[string]any) (fret.StateBarre, error) {
	f, err := intField(t, "fret", 0)
	if err != nil {
		return fret.StateBarre{}, err
	}
	start, err := intField(t, "start", 0)
	if err != nil {
		return fret.StateBarre{}, err
	}
	end, err := intField(t, "end", -1)
	if err != nil {
		return fret.StateBarre{}, err
	}
	fr, err := safecast.Conv[uint8](f)
	if err != nil {
		return fret.StateBarre{}, fmt.Errorf("barre fret: %w", err)
	}
	s8, err := safecast.Conv[int8](start)
	if err != nil {
		return fret.StateBarre{}, fmt.Errorf("barre start: %w", err)
	}
	e8, err := safecast.Conv[int8](end)
	if err != nil {
		return fret.StateBarre{}, fmt.Errorf("barre end: %w", err)
	}
	return fret.StateBarre{Fret: fr, Start: s8, End: e8}, nil
}

func (e *Engine) luaASCII(L *lua.LState) int {
	L.Push(lua.LString(e.diagram.ASCII()))
	return 1
}
