package script

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/engrave/internal/engraving/fret"
)

// DefaultTimeout bounds a single run.
const DefaultTimeout = 5 * time.Second

// Engine owns a sandboxed Lua state bound to one diagram. The Lua state is
// not goroutine-safe; runs are serialized by a mutex.
type Engine struct {
	L *lua.LState

	mu      sync.Mutex
	diagram *fret.Diagram
	timeout time.Duration
	out     io.Writer
	logger  *slog.Logger
	closed  bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithTimeout sets the deadline applied to each run. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(e *Engine) {
		e.timeout = d
	}
}

// WithOutput redirects print.
func WithOutput(w io.Writer) Option {
	return func(e *Engine) {
		if w != nil {
			e.out = w
		}
	}
}

// WithLogger sets the logger used for run diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// New creates an engine editing d.
func New(d *fret.Diagram, opts ...Option) *Engine {
	e := &Engine{
		diagram: d,
		timeout: DefaultTimeout,
		out:     os.Stdout,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}

	e.L = lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(e.L)
	e.L.PreloadModule(moduleName, e.loader)
	installSandbox(e.L, e.out)

	// also reachable without require
	e.L.Push(e.L.NewFunction(e.loader))
	e.L.Call(0, 1)
	e.L.SetGlobal(moduleName, e.L.Get(-1))
	e.L.Pop(1)
	return e
}

// Diagram returns the diagram scripts edit.
func (e *Engine) Diagram() *fret.Diagram { return e.diagram }

// DoString runs a chunk of Lua source.
func (e *Engine) DoString(ctx context.Context, code string) error {
	return e.run(ctx, "script", func() error { return e.L.DoString(code) })
}

// DoFile runs a Lua file.
func (e *Engine) DoFile(ctx context.Context, path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}
	return e.run(ctx, path, func() error {
		fn, err := e.L.Load(bytes.NewReader(src), path)
		if err != nil {
			return err
		}
		e.L.Push(fn)
		return e.L.PCall(0, lua.MultRet, nil)
	})
}

// run executes fn as one undo step. A failing run is rolled back.
func (e *Engine) run(ctx context.Context, name string, fn func() error) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return ErrClosed
	}

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}
	e.L.SetContext(ctx)
	defer e.L.RemoveContext()

	hist := e.diagram.Score().History()
	cp := hist.CreateCheckpoint()
	start := time.Now()

	hist.BeginGroup("Run " + name)
	err := doWithRecovery(fn)
	hist.EndGroup()
	e.diagram.Score().DoLayout()

	if err == nil {
		e.logger.Debug("script: run finished", "name", name, "elapsed", time.Since(start))
		return nil
	}

	if uerr := hist.UndoToCheckpoint(cp); uerr != nil {
		e.logger.Warn("script: rollback failed", "name", name, "error", uerr)
	}
	e.diagram.Score().DoLayout()

	if ctxErr := ctx.Err(); ctxErr != nil {
		if errors.Is(ctxErr, context.DeadlineExceeded) {
			return fmt.Errorf("%s: %w", name, ErrTimeout)
		}
		return fmt.Errorf("%s: %w", name, ctxErr)
	}
	return fmt.Errorf("%s: %w", name, err)
}

func doWithRecovery(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	return fn()
}

// Close releases the Lua state. It is safe to call more than once.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil
	}
	e.L.Close()
	e.closed = true
	return nil
}
