package script

import (
	"reflect"
	"testing"

	lua "github.com/yuin/gopher-lua"
)

func TestToGo(t *testing.T) {
	L := lua.NewState()
	defer L.Close()

	tests := []struct {
		name string
		code string
		want any
	}{
		{"integer", "return 3", int64(3)},
		{"float", "return 1.5", 1.5},
		{"list", "return {1, 'x', true}", []any{int64(1), "x", true}},
		{"fields", "return {fret = 2, type = 'cross'}", map[string]any{"fret": int64(2), "type": "cross"}},
		{"sparse", "return {[1] = 'a', [3] = 'c'}", map[string]any{"1": "a", "3": "c"}},
		{"empty", "return {}", map[string]any{}},
		{"function", "return print", nil},
		{"cycle", "local t = {}; t.self = t; return t", map[string]any{"self": nil}},
		{"shared", "local d = {fret = 1}; return {d, d}", []any{map[string]any{"fret": int64(1)}, map[string]any{"fret": int64(1)}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := L.DoString(tt.code); err != nil {
				t.Fatal(err)
			}
			got := toGo(L.Get(-1))
			L.Pop(1)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("toGo() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestToLuaRoundTrip(t *testing.T) {
	L := lua.NewState()
	defer L.Close()

	in := map[string]any{
		"strings": int64(6),
		"dots":    []map[string]any{{"string": int64(0), "fret": int64(3), "type": "normal"}},
		"barres":  []any{},
	}
	got := toGo(toLua(L, in)).(map[string]any)
	if got["strings"] != int64(6) {
		t.Errorf("strings = %v", got["strings"])
	}
	dots, err := listField(got, "dots")
	if err != nil || len(dots) != 1 || dots[0]["fret"] != int64(3) {
		t.Errorf("dots = %v, %v", dots, err)
	}
	if barres, err := listField(got, "barres"); err != nil || len(barres) != 0 {
		t.Errorf("barres = %v, %v", barres, err)
	}
	if _, err := intField(got, "dots", 0); err == nil {
		t.Error("intField accepted a list")
	}
	if s, err := stringField(got, "harmony", "none"); err != nil || s != "none" {
		t.Errorf("stringField default = %q, %v", s, err)
	}
}
