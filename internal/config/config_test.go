package config

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dshills/engrave/internal/config/notify"
	"github.com/dshills/engrave/internal/engraving/score"
	"github.com/dshills/engrave/internal/engraving/style"
)

func writeSheet(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func load(t *testing.T, opts ...Option) *Config {
	t.Helper()
	opts = append([]Option{WithEnviron([]string{}), WithLogger(quietLogger())}, opts...)
	c := New(opts...)
	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	t.Cleanup(c.Close)
	return c
}

func TestLoad_Defaults(t *testing.T) {
	c := load(t)
	st := c.Style()
	if st.I(style.SidFretStrings) != 6 || st.I(style.SidFretFrets) != 5 {
		t.Errorf("strings/frets = %d/%d, want 6/5", st.I(style.SidFretStrings), st.I(style.SidFretFrets))
	}
	if st.Spatium() != style.DefaultSpatium {
		t.Errorf("spatium = %v, want %v", st.Spatium(), style.DefaultSpatium)
	}
	if got := c.Source("fretStrings"); got != "defaults" {
		t.Errorf("Source(fretStrings) = %q, want defaults", got)
	}
}

func TestLoad_Precedence(t *testing.T) {
	dir := t.TempDir()
	base := writeSheet(t, dir, "base.toml", `
spatium = 2.0

[fret]
strings = 4
frets = 3
orientation = "horizontal"
`)
	over := writeSheet(t, dir, "over.yaml", `
fret:
  frets: 7
  numPos: right
`)

	c := load(t,
		WithFiles(base, over),
		WithEnviron([]string{"ENGRAVE_STYLE_FRET_STRINGS=5", "HOME=/root"}),
	)
	st := c.Style()

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"strings from env", st.I(style.SidFretStrings), 5},
		{"frets from later file", st.I(style.SidFretFrets), 7},
		{"orientation name", score.Orientation(st.I(style.SidFretOrientation)), score.Horizontal},
		{"number position name", st.I(style.SidFretNumPos), 1},
		{"spatium in millimetres", st.Spatium(), 2.0 * style.DPMM},
		{"untouched default", st.D(style.SidFretNumMag), 2.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}

	if got := c.Source("fretFrets"); got != over {
		t.Errorf("Source(fretFrets) = %q, want %q", got, over)
	}
	if got := c.Source("fretStrings"); got != "environment" {
		t.Errorf("Source(fretStrings) = %q, want environment", got)
	}
}

func TestLoad_Includes(t *testing.T) {
	dir := t.TempDir()
	writeSheet(t, dir, "common.toml", "fretDotSize = 1.5\nfretFrets = 3\n")
	path := writeSheet(t, dir, "main.toml", "\"@include\" = \"common.toml\"\nfretFrets = 4\n")

	st := load(t, WithFiles(path)).Style()
	if st.D(style.SidFretDotSize) != 1.5 {
		t.Errorf("fretDotSize = %v, want 1.5", st.D(style.SidFretDotSize))
	}
	if st.I(style.SidFretFrets) != 4 {
		t.Errorf("fretFrets = %v, want 4", st.I(style.SidFretFrets))
	}
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		content string
		target  error
	}{
		{"bad enum", "[fret]\norientation = \"diagonal\"\n", ErrInvalidValue},
		{"zero strings", "fretStrings = 0\n", ErrInvalidValue},
		{"wrong type", "fretFrets = \"many\"\n", ErrInvalidValue},
		{"bad spatium", "spatium = \"big\"\n", ErrInvalidValue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeSheet(t, dir, "bad.toml", tt.content)
			c := New(WithFiles(path), WithEnviron([]string{}), WithLogger(quietLogger()))
			defer c.Close()
			err := c.Load(context.Background())
			if !errors.Is(err, tt.target) {
				t.Fatalf("Load() error = %v, want %v", err, tt.target)
			}
			var ve *ValueError
			if !errors.As(err, &ve) || ve.Sheet != path {
				t.Errorf("error %v does not name sheet %s", err, path)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	c := New(WithFiles(filepath.Join(t.TempDir(), "none.toml")), WithEnviron([]string{}))
	defer c.Close()
	if err := c.Load(context.Background()); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load() error = %v, want not exist", err)
	}
}

func TestLoad_UnknownKeyIsIgnored(t *testing.T) {
	path := writeSheet(t, t.TempDir(), "s.toml", "noSuchStyle = 3\nfretFrets = 2\n")
	st := load(t, WithFiles(path)).Style()
	if st.I(style.SidFretFrets) != 2 {
		t.Errorf("fretFrets = %d, want 2", st.I(style.SidFretFrets))
	}
}

func TestSet(t *testing.T) {
	c := load(t)

	var changes []notify.Change
	c.SubscribeKey("fret", func(ch notify.Change) { changes = append(changes, ch) })

	if err := c.Set("fretFrets", int64(3)); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if got := c.Style().I(style.SidFretFrets); got != 3 {
		t.Errorf("fretFrets = %d, want 3", got)
	}
	if len(changes) != 1 || changes[0].Key != "fretFrets" || changes[0].Source != "arguments" {
		t.Errorf("changes = %+v", changes)
	}

	if err := c.Set("noSuch", 1); !errors.Is(err, ErrUnknownKey) {
		t.Errorf("Set(noSuch) = %v, want ErrUnknownKey", err)
	}
	if err := c.Set("fretOrientation", "sideways"); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("Set(sideways) = %v, want ErrInvalidValue", err)
	}
	if got := c.Style().I(style.SidFretFrets); got != 3 {
		t.Errorf("fretFrets = %d after rejected Set, want 3", got)
	}
}

func TestSet_BeforeLoad(t *testing.T) {
	c := New()
	defer c.Close()
	if err := c.Set("fretFrets", 3); !errors.Is(err, ErrNotLoaded) {
		t.Errorf("Set() = %v, want ErrNotLoaded", err)
	}
}

func TestReload(t *testing.T) {
	dir := t.TempDir()
	path := writeSheet(t, dir, "s.toml", "fretFrets = 3\nfretDotSize = 1.2\n")
	c := load(t, WithFiles(path))

	var changes []notify.Change
	c.Subscribe(func(ch notify.Change) { changes = append(changes, ch) })

	writeSheet(t, dir, "s.toml", "fretFrets = 4\n")
	if err := c.Reload(path); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	if got := c.Style().I(style.SidFretFrets); got != 4 {
		t.Errorf("fretFrets = %d, want 4", got)
	}
	if got := c.Style().D(style.SidFretDotSize); got != 1.0 {
		t.Errorf("fretDotSize = %v, want default 1.0", got)
	}
	if len(changes) != 2 {
		t.Errorf("changes = %+v, want fretDotSize and fretFrets", changes)
	}

	writeSheet(t, dir, "s.toml", "fretFrets = = 5\n")
	if err := c.Reload(path); err == nil {
		t.Error("expected error reloading a broken sheet")
	}
	if got := c.Style().I(style.SidFretFrets); got != 4 {
		t.Errorf("fretFrets = %d after broken reload, want 4", got)
	}

	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	if err := c.Reload(path); err != nil {
		t.Fatalf("Reload() after remove error = %v", err)
	}
	if got := c.Style().I(style.SidFretFrets); got != 5 {
		t.Errorf("fretFrets = %d after remove, want default 5", got)
	}
}

func TestWatcherReloads(t *testing.T) {
	dir := t.TempDir()
	path := writeSheet(t, dir, "live.toml", "fretFrets = 3\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	c := New(WithFiles(path), WithWatcher(true), WithDebounce(20*time.Millisecond),
		WithEnviron([]string{}), WithLogger(quietLogger()))
	if err := c.Load(ctx); err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	changed := make(chan notify.Change, 4)
	c.SubscribeKey("fretFrets", func(ch notify.Change) { changed <- ch })

	writeSheet(t, dir, "live.toml", "fretFrets = 6\n")

	select {
	case ch := <-changed:
		if ch.New != int64(6) {
			t.Errorf("New = %v, want 6", ch.New)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
	if got := c.Style().I(style.SidFretFrets); got != 6 {
		t.Errorf("fretFrets = %d, want 6", got)
	}
}

func TestLoadStyle(t *testing.T) {
	path := writeSheet(t, t.TempDir(), "s.yml", "style:\n  fret:\n    placement: below\n")
	st, err := LoadStyle(path)
	if err != nil {
		t.Fatal(err)
	}
	if score.Placement(st.I(style.SidFretPlacement)) != score.Below {
		t.Errorf("fretPlacement = %d, want below", st.I(style.SidFretPlacement))
	}
}
