// Package watch provides a debounced watcher over a project's CI
// configuration file.
package watch

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce coalesces the rapid event bursts editors produce on save.
const DefaultDebounce = 100 * time.Millisecond

// Watcher watches one configuration file inside a project directory and
// emits a single event per burst of filesystem changes.
type Watcher struct {
	dir      string
	filename string
	debounce time.Duration

	watcher *fsnotify.Watcher
	events  chan time.Time
	errors  chan error
	done    chan struct{}

	mu      sync.Mutex
	running bool

	pendingMu sync.Mutex
	pending   *time.Timer
}

// New creates a watcher for filename inside dir. A non-positive debounce
// falls back to DefaultDebounce.
func New(dir, filename string, debounce time.Duration) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	return &Watcher{
		dir:      dir,
		filename: filename,
		debounce: debounce,
		watcher:  fsWatcher,
		events:   make(chan time.Time, 1),
		errors:   make(chan error, 10),
		done:     make(chan struct{}),
	}, nil
}

// Start begins watching. The project directory is watched rather than the
// file itself: editors replace files on save, which would drop a watch on
// the file.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	if err := w.watcher.Add(w.dir); err != nil {
		return err
	}

	go w.processEvents(ctx)
	return nil
}

// Stop stops the watcher.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return nil
	}
	w.running = false
	close(w.done)

	return w.watcher.Close()
}

// Events returns the channel of debounced change notifications.
func (w *Watcher) Events() <-chan time.Time {
	return w.events
}

// Errors returns the channel of watcher errors.
func (w *Watcher) Errors() <-chan error {
	return w.errors
}

func (w *Watcher) processEvents(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
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
			select {
			case w.errors <- err:
			default:
			}
		}
	}
}

// handleEvent schedules a debounced notification for events touching the
// watched file.
func (w *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Base(event.Name) != w.filename {
		return
	}

	w.pendingMu.Lock()
	defer w.pendingMu.Unlock()

	if w.pending != nil {
		w.pending.Stop()
	}
	w.pending = time.AfterFunc(w.debounce, func() {
		select {
		case w.events <- time.Now():
		default:
		}
	})
}
