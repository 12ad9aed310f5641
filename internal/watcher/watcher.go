// Package watcher reports settled changes to a single file.
package watcher

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ChangeHandler is called once the watched file has stopped changing
type ChangeHandler func(path string)

// FileWatcher watches one file. The parent directory is watched rather than
// the file itself so editors that save by rename keep being observed.
type FileWatcher struct {
	path          string
	debounceDelay time.Duration
	handler       ChangeHandler
	watcher       *fsnotify.Watcher
	stopChan      chan struct{}
	doneChan      chan struct{}
	stopOnce      sync.Once

	// Debouncing state
	mu    sync.Mutex
	timer *time.Timer
}

// New creates a watcher for path. Nothing is observed until Start.
func New(path string, debounceDelay time.Duration, handler ChangeHandler) (*FileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &FileWatcher{
		path:          filepath.Clean(abs),
		debounceDelay: debounceDelay,
		handler:       handler,
		watcher:       fsWatcher,
		stopChan:      make(chan struct{}),
		doneChan:      make(chan struct{}),
	}, nil
}

// Path returns the absolute path being watched
func (w *FileWatcher) Path() string {
	return w.path
}

// Start begins watching
func (w *FileWatcher) Start() error {
	dir := filepath.Dir(w.path)
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("directory does not exist: %s", dir)
	}
	if !info.IsDir() {
		return fmt.Errorf("not a directory: %s", dir)
	}
	if err := w.watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to add directory to watch: %w", err)
	}

	go w.processEvents()

	slog.Info("file watcher started",
		"file", w.path,
		"debounce_ms", w.debounceDelay.Milliseconds(),
	)
	return nil
}

// Stop stops watching and cancels a pending notification. Safe to call twice.
func (w *FileWatcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.stopChan)
		err = w.watcher.Close()

		w.mu.Lock()
		if w.timer != nil {
			w.timer.Stop()
		}
		w.mu.Unlock()
	})
	return err
}

// Wait blocks until the event loop has exited
func (w *FileWatcher) Wait() {
	<-w.doneChan
}

func (w *FileWatcher) processEvents() {
	defer close(w.doneChan)

	for {
		select {
		case <-w.stopChan:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("watcher error", "error", err)
		}
	}
}

func (w *FileWatcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return
	}

	slog.Debug("file event detected", "event", event.Op.String(), "file", filepath.Base(w.path))
	w.schedule()
}

// schedule restarts the debounce timer
func (w *FileWatcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()

	select {
	case <-w.stopChan:
		return
	default:
	}

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounceDelay, w.fire)
}

func (w *FileWatcher) fire() {
	select {
	case <-w.stopChan:
		return
	default:
	}

	if _, err := os.Stat(w.path); err != nil {
		slog.Debug("file no longer exists, skipping", "path", w.path)
		return
	}
	w.handler(w.path)
}
