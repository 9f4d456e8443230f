package script

import (
	"fmt"
	"maps"
	"slices"
	"strconv"

	lua "github.com/yuin/gopher-lua"
)

// toGo converts a Lua value for the fret library. Integral numbers become
// int64, sequences []any and other tables map[string]any. Functions and
// tables met again inside themselves become nil.
func toGo(lv lua.LValue) any {
	return fromLua{}.value(lv)
}

// fromLua tracks the tables being converted.
type fromLua map[*lua.LTable]struct{}

func (seen fromLua) value(lv lua.LValue) any {
	switch v := lv.(type) {
	case lua.LBool:
		return bool(v)
	case lua.LNumber:
		if f := float64(v); f == float64(int64(f)) {
			return int64(f)
		}
		return float64(v)
	case lua.LString:
		return string(v)
	case *lua.LTable:
		if _, ok := seen[v]; ok {
			return nil
		}
		seen[v] = struct{}{}
		defer delete(seen, v)
		return seen.table(v)
	}
	return nil
}

// table returns a list when the keys are exactly 1..n.
func (seen fromLua) table(t *lua.LTable) any {
	size := 0
	t.ForEach(func(_, _ lua.LValue) { size++ })

	if n := t.Len(); n > 0 && n == size {
		list := make([]any, n)
		for i := range list {
			list[i] = seen.value(t.RawGetInt(i + 1))
		}
		return list
	}
	fields := make(map[string]any, size)
	t.ForEach(func(k, v lua.LValue) {
		key := k.String()
		if n, ok := k.(lua.LNumber); ok {
			key = strconv.FormatFloat(float64(n), 'g', -1, 64)
		}
		fields[key] = seen.value(v)
	})
	return fields
}

// toLua converts the values toGo produces, plus int and lists of tables.
func toLua(L *lua.LState, v any) lua.LValue {
	switch v := v.(type) {
	case nil:
		return lua.LNil
	case bool:
		return lua.LBool(v)
	case int:
		return lua.LNumber(v)
	case int64:
		return lua.LNumber(v)
	case float64:
		return lua.LNumber(v)
	case string:
		return lua.LString(v)
	case []any:
		return luaList(L, v)
	case []map[string]any:
		return luaList(L, v)
	case map[string]any:
		t := L.CreateTable(0, len(v))
		for _, k := range slices.Sorted(maps.Keys(v)) {
			t.RawSetString(k, toLua(L, v[k]))
		}
		return t
	}
	return lua.LString(fmt.Sprint(v))
}

func luaList[T any](L *lua.LState, items []T) *lua.LTable {
	t := L.CreateTable(len(items), 0)
	for _, item := range items {
		t.Append(toLua(L, item))
	}
	return t
}

// intField reads an integral field of a converted table.
func intField(m map[string]any, key string, def int) (int, error) {
	v, ok := m[key]
	if !ok || v == nil {
		return def, nil
	}
	n, ok := v.(int64)
	if !ok {
		return 0, fmt.Errorf("field %q: want integer, got %T", key, v)
	}
	return int(n), nil
}

// stringField reads a string field of a converted table.
func stringField(m map[string]any, key, def string) (string, error) {
	v, ok := m[key]
	if !ok || v == nil {
		return def, nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("field %q: want string, got %T", key, v)
	}
	return s, nil
}

// listField reads a list of tables. An empty Lua table converts to an
// empty map and is accepted as an empty list.
func listField(m map[string]any, key string) ([]map[string]any, error) {
	v, ok := m[key]
	if !ok || v == nil {
		return nil, nil
	}
	if empty, ok := v.(map[string]any); ok && len(empty) == 0 {
		return nil, nil
	}
	items, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("field %q: want list, got %T", key, v)
	}
	out := make([]map[string]any, 0, len(items))
	for i, item := range items {
		t, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("field %q[%d]: want table, got %T", key, i+1, item)
		}
		out = append(out, t)
	}
	return out, nil
}
