package layer

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
	"sync"
)

// Stack keeps sheets ordered by rank and caches their merge.
type Stack struct {
	mu     sync.RWMutex
	sheets []*Sheet // ascending rank, insertion order within a rank
	merged map[string]any
}

func NewStack() *Stack { return &Stack{} }

// Put adds s, replacing a sheet of the same name.
func (st *Stack) Put(s *Sheet) {
	st.mu.Lock()
	defer st.mu.Unlock()
	if i := st.find(s.Name); i >= 0 {
		st.sheets = slices.Delete(st.sheets, i, i+1)
	}
	st.sheets = append(st.sheets, s)
	slices.SortStableFunc(st.sheets, func(a, b *Sheet) int { return cmp.Compare(a.Rank, b.Rank) })
	st.merged = nil
}

// Drop removes the named sheet and reports whether it was present.
func (st *Stack) Drop(name string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	i := st.find(name)
	if i < 0 {
		return false
	}
	st.sheets = slices.Delete(st.sheets, i, i+1)
	st.merged = nil
	return true
}

// Sheet returns the named sheet or nil.
func (st *Stack) Sheet(name string) *Sheet {
	st.mu.RLock()
	defer st.mu.RUnlock()
	if i := st.find(name); i >= 0 {
		return st.sheets[i]
	}
	return nil
}

// Names lists the sheets from lowest to highest rank.
func (st *Stack) Names() []string {
	st.mu.RLock()
	defer st.mu.RUnlock()
	names := make([]string, len(st.sheets))
	for i, s := range st.sheets {
		names[i] = s.Name
	}
	return names
}

// Set stores one value in the named sheet.
func (st *Stack) Set(sheet, key string, value any) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	i := st.find(sheet)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNoSheet, sheet)
	}
	st.sheets[i].Values[key] = value
	st.merged = nil
	return nil
}

// Merged returns every key with its winning value. The result is a copy.
func (st *Stack) Merged() map[string]any {
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.merged == nil {
		st.merged = make(map[string]any)
		for _, s := range st.sheets {
			maps.Copy(st.merged, s.Values)
		}
	}
	return maps.Clone(st.merged)
}

// Lookup returns the winning value of key and the sheet that supplied it.
func (st *Stack) Lookup(key string) (value any, sheet string, ok bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	for i := len(st.sheets) - 1; i >= 0; i-- {
		if v, ok := st.sheets[i].Values[key]; ok {
			return v, st.sheets[i].Name, true
		}
	}
	return nil, "", false
}

// Origin names the sheet supplying key, or "" if none does.
func (st *Stack) Origin(key string) string {
	_, name, _ := st.Lookup(key)
	return name
}

func (st *Stack) find(name string) int {
	return slices.IndexFunc(st.sheets, func(s *Sheet) bool { return s.Name == name })
}
