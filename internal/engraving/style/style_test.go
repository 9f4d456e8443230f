package style

import (
	"errors"
	"math"
	"testing"
)

func TestNewHasDefaults(t *testing.T) {
	s := New()
	if got := s.I(SidFretStrings); got != 6 {
		t.Errorf("I(fretStrings) = %d, want 6", got)
	}
	if got := s.I(SidFretFrets); got != 5 {
		t.Errorf("I(fretFrets) = %d, want 5", got)
	}
	if !s.B(SidFretNut) {
		t.Error("fretNut should default to true")
	}
	if got := s.Spatium(); math.Abs(got-DefaultSpatium) > 1e-9 {
		t.Errorf("Spatium() = %v, want %v", got, DefaultSpatium)
	}
}

func TestMMResolvesSpatium(t *testing.T) {
	s := New()
	if err := s.Set(SidSpatium, 20.0); err != nil {
		t.Fatal(err)
	}
	if got := s.MM(SidFretStringSpacing); math.Abs(got-14.0) > 1e-9 {
		t.Errorf("MM(fretStringSpacing) = %v, want 14", got)
	}
	if got := s.MM(SidFretMag); got != 1.0 {
		t.Errorf("MM of a plain double = %v, want 1", got)
	}
}

func TestSetCoerces(t *testing.T) {
	tests := []struct {
		name string
		sid  Sid
		in   any
		want any
	}{
		{"int from float", SidFretStrings, 4.0, 4},
		{"int from int64", SidFretFrets, int64(7), 7},
		{"bool from string", SidFretNut, "false", false},
		{"spatium from float", SidFretY, 2.5, Spatium(2.5)},
		{"double from int", SidFretNumMag, 3, 3.0},
		{"string from number", SidFretFont, 12, "12"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			if err := s.Set(tt.sid, tt.in); err != nil {
				t.Fatalf("Set() error = %v", err)
			}
			if got := s.Value(tt.sid); got != tt.want {
				t.Errorf("Value() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestSetRejects(t *testing.T) {
	s := New()
	if err := s.Set(SidFretMag, "big"); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("Set(string into double) error = %v, want ErrTypeMismatch", err)
	}
	if err := s.Set(SidInvalid, 1); !errors.Is(err, ErrUnknownStyle) {
		t.Errorf("Set(invalid) error = %v, want ErrUnknownStyle", err)
	}
}

func TestSidByName(t *testing.T) {
	for _, sid := range All() {
		got, ok := SidByName(sid.Name())
		if !ok || got != sid {
			t.Errorf("SidByName(%q) = %v, %v", sid.Name(), got, ok)
		}
	}
	if _, ok := SidByName("nope"); ok {
		t.Error("SidByName(nope) should fail")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	s := New()
	c := s.Clone()
	_ = c.Set(SidFretStrings, 4)
	if s.I(SidFretStrings) != 6 {
		t.Error("mutating clone changed original")
	}
}
