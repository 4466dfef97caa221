// Package devwatch reloads templates and site content while developing:
// saves under the watched directories trigger a single debounced reload.
package devwatch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/goliatone/go-hafriyat/pkg/ratelimit"
)

// DefaultDebounce batches the burst of events editors emit on save.
const DefaultDebounce = 300 * time.Millisecond

// Reloader drops cached state so the next render picks up changes.
type Reloader interface {
	Reload()
}

// ReloadFunc adapts a function to Reloader.
type ReloadFunc func()

// Reload calls f.
func (f ReloadFunc) Reload() { f() }

// Option customises a Watcher.
type Option func(*Watcher)

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(w *Watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// WithDebounce sets the quiet period before a reload.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.wait = d
		}
	}
}

// WithClock drives the debounce from clock.
func WithClock(clock ratelimit.Clock) Option {
	return func(w *Watcher) {
		if clock != nil {
			w.clock = clock
		}
	}
}

// WithExtensions limits reloads to files with the given extensions.
func WithExtensions(exts ...string) Option {
	return func(w *Watcher) {
		if len(exts) > 0 {
			w.exts = exts
		}
	}
}

// Watcher watches directories recursively and calls the reloader after
// changes settle.
type Watcher struct {
	dirs     []string
	reloader Reloader
	logger   *zap.Logger
	wait     time.Duration
	clock    ratelimit.Clock
	exts     []string
	debounce *ratelimit.Debouncer[string]
	reloads  atomic.Int64
}

// New creates a watcher for dirs. Empty entries are ignored.
func New(reloader Reloader, dirs []string, opts ...Option) (*Watcher, error) {
	if reloader == nil {
		return nil, errors.New("devwatch: reloader is required")
	}
	w := &Watcher{
		reloader: reloader,
		logger:   zap.NewNop(),
		wait:     DefaultDebounce,
		exts:     []string{".tmpl", ".yaml", ".yml", ".css", ".js"},
	}
	for _, dir := range dirs {
		if strings.TrimSpace(dir) != "" {
			w.dirs = append(w.dirs, dir)
		}
	}
	if len(w.dirs) == 0 {
		return nil, errors.New("devwatch: no directories to watch")
	}
	for _, opt := range opts {
		if opt != nil {
			opt(w)
		}
	}
	w.debounce = ratelimit.Debounce(w.reload, w.wait, w.clock)
	return w, nil
}

// Reloads reports how many reloads ran.
func (w *Watcher) Reloads() int64 {
	return w.reloads.Load()
}

// Run watches until ctx is cancelled. It returns nil on cancellation.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("devwatch: create watcher: %w", err)
	}
	defer watcher.Close()
	defer w.debounce.Stop()

	for _, dir := range w.dirs {
		if err := addTree(watcher, dir); err != nil {
			return err
		}
		w.logger.Info("watching for changes", zap.String("dir", dir))
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := addTree(watcher, event.Name); err != nil {
						w.logger.Warn("watch new directory", zap.String("dir", event.Name), zap.Error(err))
					}
				}
			}
			w.handle(event)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return
	}
	if !w.matches(event.Name) {
		return
	}
	w.logger.Debug("change detected", zap.String("path", event.Name), zap.String("op", event.Op.String()))
	w.debounce.Call(event.Name)
}

func (w *Watcher) matches(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, candidate := range w.exts {
		if ext == candidate {
			return true
		}
	}
	return false
}

func (w *Watcher) reload(path string) {
	w.reloader.Reload()
	w.reloads.Add(1)
	w.logger.Info("reloaded", zap.String("trigger", path))
}

func addTree(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("devwatch: walk %s: %w", path, err)
		}
		if !d.IsDir() {
			return nil
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("devwatch: watch %s: %w", path, err)
		}
		return nil
	})
}
