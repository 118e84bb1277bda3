package config

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce collapses the burst of events editors emit on save.
const DefaultDebounce = 300 * time.Millisecond

// ChangeFunc is called with the previous and the newly loaded configuration.
type ChangeFunc func(oldCfg, newCfg Config)

// Watcher reloads a config file when it changes on disk. Invalid files are
// logged and ignored; the last good configuration stays current.
type Watcher struct {
	path     string
	debounce time.Duration
	logger   *log.Logger

	mu      sync.RWMutex
	current Config

	cbMu      sync.Mutex
	callbacks []ChangeFunc

	fs *fsnotify.Watcher
}

// NewWatcher loads path and prepares a watcher for it.
func NewWatcher(path string, logger *log.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: cannot resolve %s: %w", path, err)
	}

	cfg, err := LoadFile(abs)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("config: cannot create file watcher: %w", err)
	}

	// Watch the directory; editors often replace the file instead of writing it
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("config: cannot watch %s: %w", filepath.Dir(abs), err)
	}

	if logger == nil {
		logger = log.Default()
	}

	return &Watcher{
		path:     abs,
		debounce: DefaultDebounce,
		logger:   logger,
		current:  cfg,
		fs:       fsw,
	}, nil
}

// Config returns the last successfully loaded configuration.
func (w *Watcher) Config() Config {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current
}

// OnChange registers a callback. Callbacks run on the watcher goroutine.
func (w *Watcher) OnChange(fn ChangeFunc) {
	w.cbMu.Lock()
	defer w.cbMu.Unlock()
	w.callbacks = append(w.callbacks, fn)
}

// Run processes file events until ctx is done, then closes the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fs.Close()

	var (
		timer  *time.Timer
		reload <-chan time.Time
	)
	stopTimer := func() {
		if timer != nil {
			timer.Stop()
		}
	}
	defer stopTimer()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			stopTimer()
			timer = time.NewTimer(w.debounce)
			reload = timer.C

		case <-reload:
			reload = nil
			if err := w.Reload(); err != nil {
				w.logger.Warn("config reload rejected", "path", w.path, "err", err)
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("config watcher error", "err", err)
		}
	}
}

// Reload reads the file now and notifies callbacks when it is valid.
func (w *Watcher) Reload() error {
	cfg, err := LoadFile(w.path)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	w.mu.Lock()
	old := w.current
	w.current = cfg
	w.mu.Unlock()

	w.logger.Info("config reloaded", "path", w.path)

	w.cbMu.Lock()
	callbacks := make([]ChangeFunc, len(w.callbacks))
	copy(callbacks, w.callbacks)
	w.cbMu.Unlock()

	for _, fn := range callbacks {
		fn(old, cfg)
	}
	return nil
}

// Close releases the underlying file watcher without running the loop.
func (w *Watcher) Close() error {
	return w.fs.Close()
}
