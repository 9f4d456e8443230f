package layer

import (
	"errors"
	"slices"
	"testing"
)

func fretStack() *Stack {
	st := NewStack()
	st.Put(NewSheet("environment", Env, map[string]any{"fretStrings": int64(4)}))
	st.Put(NewSheet("defaults", Builtin, map[string]any{"fretStrings": 6, "fretFrets": 5}))
	st.Put(NewSheet("style.toml", File, map[string]any{"fretStrings": int64(7), "fretFrets": int64(3)}))
	return st
}

func TestStackRanks(t *testing.T) {
	st := fretStack()

	want := []string{"defaults", "style.toml", "environment"}
	if got := st.Names(); !slices.Equal(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}

	tests := []struct {
		key    string
		value  any
		origin string
	}{
		{"fretStrings", int64(4), "environment"},
		{"fretFrets", int64(3), "style.toml"},
		{"fretNut", nil, ""},
	}
	merged := st.Merged()
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if merged[tt.key] != tt.value {
				t.Errorf("Merged()[%s] = %v, want %v", tt.key, merged[tt.key], tt.value)
			}
			if got := st.Origin(tt.key); got != tt.origin {
				t.Errorf("Origin(%s) = %q, want %q", tt.key, got, tt.origin)
			}
		})
	}
}

func TestStackFileOrder(t *testing.T) {
	st := NewStack()
	for i, name := range []string{"base.toml", "local.yaml"} {
		s := NewSheet(name, File, map[string]any{"fretY": float64(i)})
		s.Rank += i
		st.Put(s)
	}
	if v, origin, _ := st.Lookup("fretY"); v != 1.0 || origin != "local.yaml" {
		t.Errorf("Lookup(fretY) = %v from %q, want the later file", v, origin)
	}
}

func TestStackMergedIsCopy(t *testing.T) {
	st := fretStack()
	m := st.Merged()
	m["fretFrets"] = 99
	if st.Merged()["fretFrets"] != int64(3) {
		t.Error("mutating Merged() changed the stack")
	}
}

func TestStackPutReplaces(t *testing.T) {
	st := fretStack()
	st.Put(NewSheet("style.toml", File, map[string]any{"fretFrets": int64(4)}))
	if n := len(st.Names()); n != 3 {
		t.Fatalf("len(Names()) = %d, want 3", n)
	}
	m := st.Merged()
	if m["fretFrets"] != int64(4) {
		t.Errorf("fretFrets = %v, want 4", m["fretFrets"])
	}
	if m["fretStrings"] != int64(4) {
		t.Errorf("fretStrings = %v, environment must still win", m["fretStrings"])
	}
}

func TestStackSetAndDrop(t *testing.T) {
	st := fretStack()
	st.Put(NewSheet("arguments", Args, nil))

	if err := st.Set("arguments", "fretFrets", int64(2)); err != nil {
		t.Fatal(err)
	}
	if st.Origin("fretFrets") != "arguments" || st.Merged()["fretFrets"] != int64(2) {
		t.Error("Set did not override the file")
	}
	if err := st.Set("missing", "fretFrets", 1); !errors.Is(err, ErrNoSheet) {
		t.Errorf("Set(missing) = %v, want ErrNoSheet", err)
	}

	if !st.Drop("environment") || st.Drop("environment") {
		t.Error("Drop should succeed once")
	}
	if v := st.Merged()["fretStrings"]; v != int64(7) {
		t.Errorf("fretStrings = %v after dropping environment, want 7", v)
	}
	if st.Sheet("environment") != nil {
		t.Error("dropped sheet still returned")
	}
}

func TestSheetClone(t *testing.T) {
	s := NewSheet("defaults", Builtin, map[string]any{"fretNut": true})
	c := s.Clone()
	c.Values["fretNut"] = false
	if s.Values["fretNut"] != true {
		t.Error("Clone shares values")
	}
	if s.Origin.String() != "builtin" || s.Rank != BuiltinRank {
		t.Errorf("origin %v rank %d", s.Origin, s.Rank)
	}
}
