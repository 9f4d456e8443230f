package fret

import (
	"bytes"
	"fmt"

	"fortio.org/safecast"
	"github.com/vmihailenco/msgpack/v5"
)

// stateSchema is bumped whenever State changes shape.
const stateSchema uint16 = 1

// State is the compact fingering of a diagram: grid size, offset and the
// three maps flattened into lists. It travels through the clipboard and
// script bindings; layout and style properties are not part of it.
type State struct {
	Schema  uint16
	Strings uint8
	Frets   uint8
	Offset  uint8
	Dots    []StateDot
	Markers []StateMarker
	Barres  []StateBarre
}

// StateDot is one dot of a State.
type StateDot struct {
	String uint8
	Fret   uint8
	Type   uint8
}

// StateMarker is one marker of a State.
type StateMarker struct {
	String uint8
	Type   uint8
}

// StateBarre is one barre of a State. End -1 runs to the last string.
type StateBarre struct {
	Fret  uint8
	Start int8
	End   int8
}

// State captures the diagram's fingering. It fails when a value does not
// fit the compact encoding.
func (d *Diagram) State() (State, error) {
	st := State{Schema: stateSchema}
	var err error
	if st.Strings, err = safecast.Conv[uint8](d.strings); err != nil {
		return State{}, fmt.Errorf("strings: %w", err)
	}
	if st.Frets, err = safecast.Conv[uint8](d.frets); err != nil {
		return State{}, fmt.Errorf("frets: %w", err)
	}
	if st.Offset, err = safecast.Conv[uint8](d.fretOffset); err != nil {
		return State{}, fmt.Errorf("fret offset: %w", err)
	}

	for _, s := range sortedKeys(d.dots) {
		str, err := safecast.Conv[uint8](s)
		if err != nil {
			return State{}, fmt.Errorf("dot string: %w", err)
		}
		for _, dot := range d.dots[s] {
			f, err := safecast.Conv[uint8](dot.Fret)
			if err != nil {
				return State{}, fmt.Errorf("dot fret: %w", err)
			}
			st.Dots = append(st.Dots, StateDot{String: str, Fret: f, Type: uint8(dot.Type)})
		}
	}
	for _, s := range sortedKeys(d.markers) {
		str, err := safecast.Conv[uint8](s)
		if err != nil {
			return State{}, fmt.Errorf("marker string: %w", err)
		}
		st.Markers = append(st.Markers, StateMarker{String: str, Type: uint8(d.markers[s].Type)})
	}
	for _, f := range sortedKeys(d.barres) {
		b := d.barres[f]
		fret, err := safecast.Conv[uint8](f)
		if err != nil {
			return State{}, fmt.Errorf("barre fret: %w", err)
		}
		start, err := safecast.Conv[int8](b.Start)
		if err != nil {
			return State{}, fmt.Errorf("barre start: %w", err)
		}
		end, err := safecast.Conv[int8](b.End)
		if err != nil {
			return State{}, fmt.Errorf("barre end: %w", err)
		}
		st.Barres = append(st.Barres, StateBarre{Fret: fret, Start: start, End: end})
	}
	return st, nil
}

// ApplyState replaces the diagram's fingering with st. Entries are applied
// through the regular mutators so the usual range checks hold.
func (d *Diagram) ApplyState(st State) error {
	if st.Schema != stateSchema {
		return fmt.Errorf("%w: schema %d", ErrBadState, st.Schema)
	}
	if st.Strings == 0 {
		return fmt.Errorf("%w: no strings", ErrBadState)
	}
	for _, m := range st.Markers {
		if MarkerType(m.Type) > MarkerCross {
			return fmt.Errorf("%w: marker type %d", ErrBadState, m.Type)
		}
	}
	for _, dot := range st.Dots {
		if DotType(dot.Type) > DotTriangle {
			return fmt.Errorf("%w: dot type %d", ErrBadState, dot.Type)
		}
	}
	d.Clear()
	d.SetStrings(int(st.Strings))
	d.SetFrets(int(st.Frets))
	d.SetFretOffset(int(st.Offset))
	for _, m := range st.Markers {
		d.SetMarker(int(m.String), MarkerType(m.Type))
	}
	for _, dot := range st.Dots {
		d.SetDot(int(dot.String), int(dot.Fret), true, DotType(dot.Type))
	}
	for _, b := range st.Barres {
		d.SetBarre(int(b.Start), int(b.End), int(b.Fret))
	}
	d.TriggerLayout()
	return nil
}

// EncodeState serializes st with msgpack.
func EncodeState(st State) ([]byte, error) {
	var buf bytes.Buffer
	if err := msgpack.NewEncoder(&buf).Encode(&st); err != nil {
		return nil, fmt.Errorf("encode state: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeState parses data produced by EncodeState.
func DecodeState(data []byte) (State, error) {
	var st State
	if err := msgpack.NewDecoder(bytes.NewReader(data)).Decode(&st); err != nil {
		return State{}, fmt.Errorf("%w: %v", ErrBadState, err)
	}
	return st, nil
}
