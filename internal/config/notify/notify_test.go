package notify

import (
	"slices"
	"testing"
)

func keys(cs []Change) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Key
	}
	return out
}

func TestDiff(t *testing.T) {
	before := map[string]any{"fretStrings": 6, "fretFrets": int64(5), "fretY": 1.0, "fretNut": true}
	after := map[string]any{"fretStrings": 6.0, "fretFrets": int64(4), "fretY": 1.0, "fretOrientation": "horizontal"}

	got := Diff(before, after, "style.yaml")
	if want := []string{"fretFrets", "fretNut", "fretOrientation"}; !slices.Equal(keys(got), want) {
		t.Fatalf("Diff keys = %v, want %v", keys(got), want)
	}

	tests := []struct {
		i    int
		kind Kind
		old  any
		new  any
	}{
		{0, Set, int64(5), int64(4)},
		{1, Delete, true, nil},
		{2, Set, nil, "horizontal"},
	}
	for _, tt := range tests {
		c := got[tt.i]
		if c.Kind != tt.kind || c.Old != tt.old || c.New != tt.new || c.Source != "style.yaml" {
			t.Errorf("%s: %+v", c.Key, c)
		}
	}
}

func TestSubscribeKeyGroups(t *testing.T) {
	tests := []struct {
		sub  string
		key  string
		want bool
	}{
		{"fret", "fretStrings", true},
		{"fret", "fret", true},
		{"fret", "fretboard", false},
		{"fretY", "fretY", true},
		{"fretY", "fretStrings", false},
		{"", "harmonyFontSize", true},
	}
	for _, tt := range tests {
		t.Run(tt.sub+"/"+tt.key, func(t *testing.T) {
			n := New()
			got := false
			n.SubscribeKey(tt.sub, func(Change) { got = true })
			n.Publish(Change{Key: tt.key})
			if got != tt.want {
				t.Errorf("delivered = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPublishOrder(t *testing.T) {
	n := New()
	var seen []string
	n.Subscribe(func(c Change) { seen = append(seen, "a:"+c.Key) })
	n.Subscribe(func(c Change) { seen = append(seen, "b:"+c.Key) })

	n.Publish(Change{Key: "fretFrets"}, Change{Key: "fretNut"})
	want := []string{"a:fretFrets", "b:fretFrets", "a:fretNut", "b:fretNut"}
	if !slices.Equal(seen, want) {
		t.Errorf("order = %v, want %v", seen, want)
	}
}

func TestUnsubscribeAndClose(t *testing.T) {
	n := New()
	count := 0
	sub := n.Subscribe(func(Change) { count++ })
	n.Publish(Change{Key: "fretFrets"})
	sub.Unsubscribe()
	sub.Unsubscribe()
	n.Publish(Change{Key: "fretFrets"})
	if count != 1 {
		t.Fatalf("count = %d after unsubscribe, want 1", count)
	}

	n.Subscribe(func(Change) { count++ })
	n.Close()
	n.Publish(Change{Key: "fretFrets"})
	if count != 1 {
		t.Errorf("delivered after Close")
	}
}

func TestKindString(t *testing.T) {
	if Set.String() != "set" || Delete.String() != "delete" {
		t.Error("Kind names")
	}
}
