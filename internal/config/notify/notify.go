// Package notify delivers style changes to observers.
//
// An observer follows every change or one style key. A key also matches
// the styles of its group: "fret" follows "fretStrings" and "fretNumMag".
package notify

import (
	"maps"
	"slices"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"
)

// Kind says whether a style was set or removed.
type Kind int

const (
	Set Kind = iota
	Delete
)

func (k Kind) String() string {
	if k == Delete {
		return "delete"
	}
	return "set"
}

// Change is one style whose effective value moved.
type Change struct {
	Key  string
	Kind Kind
	Old  any // nil when the key was added
	New  any // nil when the key was removed
	// Source names the sheet whose edit caused the change.
	Source string
}

// Observer receives changes. It runs on the goroutine that published them.
type Observer func(Change)

type entry struct {
	key string
	fn  Observer
}

// Notifier fans changes out to observers.
type Notifier struct {
	mu     sync.RWMutex
	subs   map[uint64]entry
	next   uint64
	closed bool
}

func New() *Notifier {
	return &Notifier{subs: make(map[uint64]entry)}
}

// Subscription cancels an observer.
type Subscription struct {
	n  *Notifier
	id uint64
}

// Unsubscribe stops delivery. It may be called more than once.
func (s *Subscription) Unsubscribe() {
	if s == nil || s.n == nil {
		return
	}
	s.n.mu.Lock()
	delete(s.n.subs, s.id)
	s.n.mu.Unlock()
}

// Subscribe follows every change.
func (n *Notifier) Subscribe(fn Observer) *Subscription {
	return n.SubscribeKey("", fn)
}

// SubscribeKey follows key and the styles of its group. An empty key
// follows everything.
func (n *Notifier) SubscribeKey(key string, fn Observer) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()
	id := n.next
	n.next++
	n.subs[id] = entry{key: key, fn: fn}
	return &Subscription{n: n, id: id}
}

// Publish delivers changes in order. Each change reaches observers in
// subscription order. Nothing is delivered after Close.
func (n *Notifier) Publish(changes ...Change) {
	for _, c := range changes {
		for _, fn := range n.observers(c.Key) {
			fn(c)
		}
	}
}

func (n *Notifier) observers(key string) []Observer {
	n.mu.RLock()
	defer n.mu.RUnlock()
	if n.closed {
		return nil
	}
	var out []Observer
	for _, id := range slices.Sorted(maps.Keys(n.subs)) {
		e := n.subs[id]
		if e.key == "" || inGroup(e.key, key) {
			out = append(out, e.fn)
		}
	}
	return out
}

// Close drops every observer.
func (n *Notifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.closed = true
	clear(n.subs)
}

// Diff returns the changes between two merged sheets, sorted by key.
// Integer and float forms of the same number compare equal, so a TOML 1
// replaced by a YAML 1.0 is not a change.
func Diff(before, after map[string]any, source string) []Change {
	var out []Change
	for k, nv := range after {
		ov, had := before[k]
		if had && sameValue(ov, nv) {
			continue
		}
		out = append(out, Change{Key: k, Kind: Set, Old: ov, New: nv, Source: source})
	}
	for k, ov := range before {
		if _, ok := after[k]; !ok {
			out = append(out, Change{Key: k, Kind: Delete, Old: ov, Source: source})
		}
	}
	slices.SortFunc(out, func(a, b Change) int { return strings.Compare(a.Key, b.Key) })
	return out
}

func sameValue(a, b any) bool {
	fa, aNum := number(a)
	fb, bNum := number(b)
	if aNum && bNum {
		return fa == fb
	}
	return a == b
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

// inGroup reports whether key is group itself or a style of the group,
// spelled as the group name followed by an upper case letter.
func inGroup(group, key string) bool {
	rest, ok := strings.CutPrefix(key, group)
	if !ok {
		return false
	}
	if rest == "" {
		return true
	}
	r, _ := utf8.DecodeRuneInString(rest)
	return unicode.IsUpper(r)
}
