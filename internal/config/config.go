package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/dshills/engrave/internal/config/layer"
	"github.com/dshills/engrave/internal/config/loader"
	"github.com/dshills/engrave/internal/config/notify"
	"github.com/dshills/engrave/internal/config/watcher"
	"github.com/dshills/engrave/internal/engraving/style"
)

// maxIncludeDepth limits nested @include directives in TOML sheets.
const maxIncludeDepth = 8

const (
	defaultsLayer  = "defaults"
	envLayer       = "environment"
	argumentsLayer = "arguments"
)

// Config assembles a style from layered sources and keeps it current.
type Config struct {
	mu sync.RWMutex

	layers   *layer.Stack
	notifier *notify.Notifier
	watcher  *watcher.Watcher

	fs        loader.FileSystem
	files     []string
	fileIndex map[string]int // absolute path -> index in files
	envPrefix string
	environ   []string
	logger    *slog.Logger

	enableWatcher bool
	debounce      time.Duration

	style *style.Style
}

// Option configures a Config instance.
type Option func(*Config)

// WithFiles adds style sheet files. Later files override earlier ones.
func WithFiles(paths ...string) Option {
	return func(c *Config) {
		c.files = append(c.files, paths...)
	}
}

// WithFS sets the file system style sheets are read from.
func WithFS(fsys loader.FileSystem) Option {
	return func(c *Config) {
		c.fs = fsys
	}
}

// WithEnvPrefix sets the environment variable prefix.
func WithEnvPrefix(prefix string) Option {
	return func(c *Config) {
		c.envPrefix = prefix
	}
}

// WithEnviron reads overrides from env instead of the process environment.
func WithEnviron(env []string) Option {
	return func(c *Config) {
		c.environ = env
	}
}

// WithWatcher enables reloading style sheet files when they change.
func WithWatcher(enable bool) Option {
	return func(c *Config) {
		c.enableWatcher = enable
	}
}

// WithDebounce sets the quiet period before a changed file is reloaded.
func WithDebounce(d time.Duration) Option {
	return func(c *Config) {
		c.debounce = d
	}
}

// WithLogger sets the logger for warnings and reload failures.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a new Config instance with the given options.
func New(opts ...Option) *Config {
	c := &Config{
		layers:    layer.NewStack(),
		notifier:  notify.New(),
		fs:        loader.DefaultFS(),
		fileIndex: make(map[string]int),
		envPrefix: loader.DefaultEnvPrefix,
		logger:    slog.Default(),
		debounce:  100 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// LoadStyle builds a style from the defaults, the given sheets and the
// environment.
func LoadStyle(paths ...string) (*style.Style, error) {
	c := New(WithFiles(paths...))
	defer c.Close()
	if err := c.Load(context.Background()); err != nil {
		return nil, err
	}
	return c.Style(), nil
}

// Load reads every layer and builds the style. With the watcher enabled,
// files are watched until ctx is cancelled or Close is called.
func (c *Config) Load(ctx context.Context) error {
	c.mu.Lock()

	c.layers.Put(layer.NewSheet(defaultsLayer, layer.Builtin, defaultSheet()))

	for i, path := range c.files {
		data, err := c.loadFile(path)
		if err != nil {
			c.mu.Unlock()
			return err
		}
		c.layers.Put(c.fileSheet(i, data))
		if abs, err := filepath.Abs(path); err == nil {
			c.fileIndex[abs] = i
		}
	}

	c.loadEnvironment()
	if c.layers.Sheet(argumentsLayer) == nil {
		c.layers.Put(layer.NewSheet(argumentsLayer, layer.Args, nil))
	}

	st, err := c.rebuild()
	if err != nil {
		c.mu.Unlock()
		return err
	}
	c.style = st
	c.mu.Unlock()

	// The watcher is started outside the lock; its handler takes it.
	if c.enableWatcher && len(c.files) > 0 {
		return c.startWatcher(ctx)
	}
	return nil
}

// loadFile reads one sheet. Missing files are errors.
func (c *Config) loadFile(path string) (map[string]any, error) {
	return loader.ReadSheet(c.fs, path, maxIncludeDepth)
}

func (c *Config) fileSheet(i int, data map[string]any) *layer.Sheet {
	s := layer.NewSheet(c.files[i], layer.File, data)
	s.Rank += i
	return s
}

func (c *Config) loadEnvironment() {
	environ := c.environ
	if environ == nil {
		environ = os.Environ()
	}
	if data := loader.Environment(c.envPrefix, environ); len(data) > 0 {
		c.layers.Put(layer.NewSheet(envLayer, layer.Env, data))
	}
}

// rebuild merges the layers into a new style. Callers hold c.mu.
func (c *Config) rebuild() (*style.Style, error) {
	return buildStyle(c.layers.Merged(), c.layers.Origin, c.logger)
}

// Style returns a copy of the current style. Before Load it returns the
// built-in defaults.
func (c *Config) Style() *style.Style {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.style == nil {
		return style.New()
	}
	return c.style.Clone()
}

// Get returns the effective sheet value of key.
func (c *Config) Get(key string) (any, bool) {
	v, _, ok := c.layers.Lookup(key)
	return v, ok
}

// Source returns the name of the layer providing key.
func (c *Config) Source(key string) string {
	return c.layers.Origin(key)
}

// Set overrides a single style in the command line layer. The value is
// given in style sheet units.
func (c *Config) Set(key string, value any) error {
	if err := checkValue(key, value); err != nil {
		return err
	}

	c.mu.Lock()
	if c.style == nil {
		c.mu.Unlock()
		return ErrNotLoaded
	}
	before := c.layers.Merged()
	if err := c.layers.Set(argumentsLayer, key, value); err != nil {
		c.mu.Unlock()
		return err
	}
	st, err := c.rebuild()
	if err != nil {
		c.mu.Unlock()
		return err
	}
	c.style = st
	after := c.layers.Merged()
	c.mu.Unlock()

	c.notifier.Publish(notify.Diff(before, after, argumentsLayer)...)
	return nil
}

// Reload rereads a style sheet file given to WithFiles. A removed file
// drops its layer. If the new sheet is invalid the previous one stays in
// effect and the error is returned.
func (c *Config) Reload(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	c.mu.Lock()
	i, ok := c.fileIndex[abs]
	if !ok || c.style == nil {
		c.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrNotLoaded, path)
	}
	name := c.files[i]
	before := c.layers.Merged()
	prev := c.layers.Sheet(name)

	var loadErr error
	if _, statErr := c.fs.Stat(name); statErr != nil {
		c.layers.Drop(name)
	} else {
		var data map[string]any
		data, loadErr = c.loadFile(name)
		if loadErr == nil {
			c.layers.Put(c.fileSheet(i, data))
		}
	}

	var st *style.Style
	if loadErr == nil {
		st, loadErr = c.rebuild()
	}
	if loadErr != nil {
		if prev != nil {
			c.layers.Put(prev)
		}
		c.mu.Unlock()
		return loadErr
	}
	c.style = st
	after := c.layers.Merged()
	c.mu.Unlock()

	c.notifier.Publish(notify.Diff(before, after, name)...)
	return nil
}

// Subscribe registers an observer for every style change.
func (c *Config) Subscribe(observer notify.Observer) *notify.Subscription {
	return c.notifier.Subscribe(observer)
}

// SubscribeKey registers an observer for a style or a group of styles.
func (c *Config) SubscribeKey(key string, observer notify.Observer) *notify.Subscription {
	return c.notifier.SubscribeKey(key, observer)
}

func (c *Config) startWatcher(ctx context.Context) error {
	w, err := watcher.New(c.handleFileChange, watcher.WithDebounce(c.debounce), watcher.WithLogger(c.logger))
	if err != nil {
		return err
	}
	for _, path := range c.files {
		if err := w.Watch(path); err != nil {
			_ = w.Stop()
			return err
		}
	}
	c.mu.Lock()
	c.watcher = w
	c.mu.Unlock()

	w.Start(ctx)
	return nil
}

// handleFileChange reloads a changed sheet, keeping the last good style
// when the new one does not load.
func (c *Config) handleFileChange(event watcher.Event) {
	c.logger.Debug("style sheet changed", "path", event.Path, "op", event.Op)
	if err := c.Reload(event.Path); err != nil {
		c.logger.Warn("style sheet reload failed", "path", event.Path, "error", err)
	}
}

// Close stops the watcher and the notifier.
func (c *Config) Close() {
	c.mu.Lock()
	w := c.watcher
	c.watcher = nil
	c.mu.Unlock()

	if w != nil {
		_ = w.Stop()
	}
	c.notifier.Close()
}
