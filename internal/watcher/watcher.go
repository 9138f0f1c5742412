// Package watcher monitors the staging snapshot file so a running TUI picks
// up items staged by a parallel CLI invocation.
package watcher

import (
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"agentdeck/internal/logging"
)

// Config controls snapshot watching.
type Config struct {
	Enabled    bool
	DebounceMs int
}

// ChangeHandler is called after the snapshot file changes, debounced.
type ChangeHandler func()

// Watcher watches a single snapshot file for writes. Events within the
// debounce window collapse into one notification.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	path      string
	debounce  time.Duration
	onChange  ChangeHandler
	log       *slog.Logger

	mu       sync.Mutex
	timer    *time.Timer
	done     chan struct{}
	running  bool
	stopOnce sync.Once
}

// New creates a watcher for the snapshot at path. The parent directory is
// watched because editors and atomic writers replace the file by rename.
func New(path string, cfg Config, onChange ChangeHandler) (*Watcher, error) {
	if !cfg.Enabled {
		return &Watcher{running: false}, nil
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	debounceMs := cfg.DebounceMs
	if debounceMs <= 0 {
		debounceMs = 500
	}

	return &Watcher{
		fsWatcher: fsWatcher,
		path:      filepath.Clean(path),
		debounce:  time.Duration(debounceMs) * time.Millisecond,
		onChange:  onChange,
		log:       logging.With("component", "watcher", "path", filepath.Clean(path)),
		done:      make(chan struct{}),
	}, nil
}

// Start begins watching. Safe to call on a disabled watcher.
func (w *Watcher) Start() error {
	if w.fsWatcher == nil {
		return nil
	}

	if err := w.fsWatcher.Add(filepath.Dir(w.path)); err != nil {
		return err
	}

	w.mu.Lock()
	w.running = true
	w.mu.Unlock()

	go w.loop()
	return nil
}

func (w *Watcher) loop() {
	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.scheduleNotify()

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("snapshot watcher error", "error", err)
		}
	}
}

func (w *Watcher) scheduleNotify() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		w.log.Debug("staging snapshot changed")
		if w.onChange != nil {
			w.onChange()
		}
	})
}

// Stop shuts the watcher down. Idempotent.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		w.mu.Lock()
		running := w.running
		w.running = false
		if w.timer != nil {
			w.timer.Stop()
		}
		w.mu.Unlock()

		if !running {
			return
		}
		close(w.done)
		w.fsWatcher.Close()
	})
}
