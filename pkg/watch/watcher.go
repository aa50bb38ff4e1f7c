// Package watch reloads the spec store when the source document changes on
// disk.
package watch

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounceDelay collapses the bursts of write events editors and
// atomic-save tools produce into one reload.
const DefaultDebounceDelay = 500 * time.Millisecond

// ReloadFunc is invoked after the watched file settles. Errors are logged,
// not propagated: a broken edit must not take the previous document down.
type ReloadFunc func(ctx context.Context) error

// Watcher watches one spec file and triggers debounced reloads.
type Watcher struct {
	watcher   *fsnotify.Watcher
	logger    *zap.Logger
	debouncer *Debouncer
	path      string
	reload    ReloadFunc
	cancel    context.CancelFunc
}

// New creates a watcher for the spec file at path. debounceDelay <= 0 uses
// DefaultDebounceDelay.
func New(path string, reload ReloadFunc, debounceDelay time.Duration, logger *zap.Logger) (*Watcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if debounceDelay <= 0 {
		debounceDelay = DefaultDebounceDelay
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		fsw.Close()
		return nil, err
	}
	// Watch the directory, not the file: editors that rename-over the file
	// would otherwise detach the watch on the first save.
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, err
	}
	return &Watcher{
		watcher:   fsw,
		logger:    logger,
		debouncer: NewDebouncer(debounceDelay),
		path:      abs,
		reload:    reload,
	}, nil
}

// Start launches the event loop. It returns immediately; Stop ends the loop.
func (w *Watcher) Start(ctx context.Context) {
	ctx, w.cancel = context.WithCancel(ctx)
	go w.loop(ctx)
	w.logger.Info("watching spec file", zap.String("path", w.path))
}

// Stop ends the event loop and cancels pending reloads.
func (w *Watcher) Stop() error {
	if w.cancel != nil {
		w.cancel()
	}
	w.debouncer.Stop()
	return w.watcher.Close()
}

func (w *Watcher) loop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(ctx, event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("watch error", zap.Error(err))
		}
	}
}

func (w *Watcher) handleEvent(ctx context.Context, event fsnotify.Event) {
	if !w.isWatchedFile(event.Name) {
		return
	}
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return
	}
	w.logger.Debug("spec file changed",
		zap.String("path", event.Name),
		zap.String("op", event.Op.String()),
	)
	w.debouncer.Debounce(event.Name, func() {
		if err := w.reload(ctx); err != nil {
			w.logger.Error("reload failed, keeping previous document",
				zap.String("path", w.path), zap.Error(err))
			return
		}
		w.logger.Info("spec reloaded", zap.String("path", w.path))
	})
}

func (w *Watcher) isWatchedFile(name string) bool {
	abs, err := filepath.Abs(name)
	if err != nil {
		return false
	}
	if abs == w.path {
		return true
	}
	// Atomic saves write a temp file and rename it over the target; match by
	// base name so the rename's final event still counts.
	return strings.EqualFold(filepath.Base(abs), filepath.Base(w.path)) &&
		filepath.Dir(abs) == filepath.Dir(w.path)
}

// Debouncer coalesces rapid successive calls per key into one.
type Debouncer struct {
	delay   time.Duration
	timers  map[string]*time.Timer
	mu      sync.Mutex
	stopped bool
}

// NewDebouncer creates a debouncer with the given delay.
func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{
		delay:  delay,
		timers: make(map[string]*time.Timer),
	}
}

// Debounce schedules fn after the delay, resetting any pending call for the
// same key.
func (d *Debouncer) Debounce(key string, fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if timer, ok := d.timers[key]; ok {
		timer.Stop()
	}
	d.timers[key] = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		delete(d.timers, key)
		stopped := d.stopped
		d.mu.Unlock()
		if !stopped {
			fn()
		}
	})
}

// Stop cancels all pending calls. Further Debounce calls are ignored.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	for key, timer := range d.timers {
		timer.Stop()
		delete(d.timers, key)
	}
}
