// Package watcher reports changes to style sheet files.
//
// A sheet is watched through its directory, so an editor that saves by
// renaming a temporary file over the sheet is still seen. Each sheet has a
// quiet timer: raw events restart it and the merged change is delivered
// when it fires.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ErrClosed is returned by Watch after Stop.
var ErrClosed = errors.New("watcher closed")

// DefaultDebounce is the quiet period used unless WithDebounce says
// otherwise.
const DefaultDebounce = 100 * time.Millisecond

// Op is what happened to a sheet.
type Op int

const (
	Write Op = iota
	Create
	Remove
)

// String returns the lower-case name of op.
func (op Op) String() string {
	switch op {
	case Write:
		return "write"
	case Create:
		return "create"
	case Remove:
		return "remove"
	}
	return "unknown"
}

// merge folds a new raw event into the pending one. A sheet removed and
// recreated was saved by rename; a created sheet stays created through
// later writes; a removal wins over everything before it.
func merge(pending, next Op) Op {
	switch {
	case next == Remove:
		return Remove
	case pending == Remove && next == Create:
		return Write
	case pending == Create:
		return Create
	}
	return next
}

// Event is a settled change to one sheet.
type Event struct {
	Path string // absolute
	Op   Op
}

// Handler receives events on a timer goroutine, one event at a time.
type Handler func(Event)

type pending struct {
	op    Op
	timer *time.Timer
}

// Watcher watches a set of style sheet files.
type Watcher struct {
	fsw      *fsnotify.Watcher
	handler  Handler
	logger   *slog.Logger
	debounce time.Duration

	mu      sync.Mutex
	sheets  map[string]bool
	dirs    map[string]int // watched directory -> sheets in it
	pending map[string]*pending
	started bool
	closed  bool

	deliver sync.Mutex // one handler call at a time
	loop    sync.WaitGroup
	cancel  context.CancelFunc
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period. Zero delivers on the next tick of
// the runtime timer.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d >= 0 {
			w.debounce = d
		}
	}
}

// WithLogger sets the logger for watch errors. A nil logger is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

// New returns a stopped watcher delivering to h.
func New(h Handler, opts ...Option) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}
	w := &Watcher{
		fsw:      fsw,
		handler:  h,
		logger:   slog.Default(),
		debounce: DefaultDebounce,
		sheets:   make(map[string]bool),
		dirs:     make(map[string]int),
		pending:  make(map[string]*pending),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Watch adds a sheet. The sheet may not exist yet; its directory must.
func (w *Watcher) Watch(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	switch {
	case w.closed:
		return ErrClosed
	case w.sheets[abs]:
		return nil
	}
	dir := filepath.Dir(abs)
	if w.dirs[dir] == 0 {
		if err := w.fsw.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}
	w.dirs[dir]++
	w.sheets[abs] = true
	return nil
}

// Unwatch drops a sheet and any change still waiting for it.
func (w *Watcher) Unwatch(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.sheets[abs] {
		return nil
	}
	delete(w.sheets, abs)
	if p := w.pending[abs]; p != nil {
		p.timer.Stop()
		delete(w.pending, abs)
	}
	dir := filepath.Dir(abs)
	if w.dirs[dir]--; w.dirs[dir] > 0 {
		return nil
	}
	delete(w.dirs, dir)
	if w.closed {
		return nil
	}
	return w.fsw.Remove(dir)
}

// Files lists the watched sheets, sorted.
func (w *Watcher) Files() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return slices.Sorted(maps.Keys(w.sheets))
}

// Start reads file system events until ctx ends or Stop is called.
func (w *Watcher) Start(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.started || w.closed {
		return
	}
	w.started = true
	ctx, w.cancel = context.WithCancel(ctx)
	w.loop.Add(1)
	go w.read(ctx)
}

// Stop ends the watcher and discards waiting changes. Later calls do
// nothing.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	for path, p := range w.pending {
		p.timer.Stop()
		delete(w.pending, path)
	}
	cancel := w.cancel
	w.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	err := w.fsw.Close()
	w.loop.Wait()
	return err
}

func (w *Watcher) read(ctx context.Context) {
	defer w.loop.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if op, ok := opOf(ev.Op); ok {
				w.record(ev.Name, op)
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("style watcher error", "error", err)
		}
	}
}

// opOf maps an fsnotify operation. A rename moves the sheet away, which
// reads as a removal; chmod is ignored.
func opOf(op fsnotify.Op) (Op, bool) {
	switch {
	case op.Has(fsnotify.Remove), op.Has(fsnotify.Rename):
		return Remove, true
	case op.Has(fsnotify.Create):
		return Create, true
	case op.Has(fsnotify.Write):
		return Write, true
	}
	return 0, false
}

// record merges a raw event for path and restarts its quiet timer.
// Events for files that are not watched sheets are dropped.
func (w *Watcher) record(path string, op Op) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed || !w.sheets[abs] {
		return
	}
	if p := w.pending[abs]; p != nil {
		p.op = merge(p.op, op)
		p.timer.Reset(w.debounce)
		return
	}
	w.pending[abs] = &pending{
		op:    op,
		timer: time.AfterFunc(w.debounce, func() { w.fire(abs) }),
	}
}

func (w *Watcher) fire(path string) {
	w.mu.Lock()
	p := w.pending[path]
	delete(w.pending, path)
	closed := w.closed
	w.mu.Unlock()
	if p == nil || closed {
		return
	}

	w.deliver.Lock()
	defer w.deliver.Unlock()
	defer func() {
		if r := recover(); r != nil {
			w.logger.Error("style watcher handler panicked", "path", path, "panic", r)
		}
	}()
	w.handler(Event{Path: path, Op: p.op})
}
