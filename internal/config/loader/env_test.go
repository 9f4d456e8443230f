package loader

import "testing"

func TestEnvironment(t *testing.T) {
	env := []string{
		"ENGRAVE_STYLE_FRET_STRING_SPACING=0.8",
		"ENGRAVE_STYLE_FRET_NUT=off",
		"ENGRAVE_STYLE_SPATIUM=1.5",
		"ENGRAVE_STYLE_FONT=Go",
		"ENGRAVE_STYLE_FRET_FRETS=4",
		"ENGRAVE_STYLE_HARMONY_TEXT=",
		"ENGRAVE_STYLE_=x",
		"OTHER_FRET_FRETS=9",
		"garbage",
	}
	got := Environment(DefaultEnvPrefix, env)
	want := map[string]any{
		"fretStringSpacing": 0.8,
		"fretNut":           false,
		"spatium":           1.5,
		"fretFont":          "Go",
		"fretFrets":         int64(4),
		"harmonyText":       "",
	}
	if len(got) != len(want) {
		t.Fatalf("Environment() = %v", got)
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("%s = %#v, want %#v", k, got[k], v)
		}
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		in   string
		want any
	}{
		{"true", true},
		{"Yes", true},
		{"off", false},
		{"42", int64(42)},
		{"-3", int64(-3)},
		{"0.75", 0.75},
		{"1e3", "1e3"},
		{"horizontal", "horizontal"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseValue(tt.in); got != tt.want {
				t.Errorf("ParseValue(%q) = %#v, want %#v", tt.in, got, tt.want)
			}
		})
	}
}
