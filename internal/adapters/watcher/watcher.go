package watcher

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"auditlens/internal/ports"
)

// Watcher implements ports.DirectoryWatcher with OS-level notifications.
// Events for one path are held back until the path has been quiet for
// the debounce window, so a logger appending many lines yields one event.
type Watcher struct {
	debounce time.Duration
}

// Ensure Watcher implements DirectoryWatcher
var _ ports.DirectoryWatcher = (*Watcher)(nil)

// New creates a Watcher with the given debounce window
func New(debounce time.Duration) *Watcher {
	return &Watcher{debounce: debounce}
}

// Watch blocks until ctx is cancelled, sending debounced file paths to out.
// Directories that cannot be watched are logged and skipped; if none can
// be watched an error is returned.
func (w *Watcher) Watch(ctx context.Context, dirs []string, out chan<- string) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fsw.Close()

	watched := 0
	for _, dir := range dirs {
		abs, _ := filepath.Abs(dir)
		if err := fsw.Add(abs); err != nil {
			slog.Warn("cannot watch directory", "dir", abs, "error", err)
			continue
		}
		watched++
	}
	if watched == 0 {
		return fmt.Errorf("none of %d directories could be watched", len(dirs))
	}

	d := newDebouncer(w.debounce)
	defer d.stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			// Removals are ignored: reconcile keeps data for files
			// that disappear.
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			d.touch(ev.Name)
		case path := <-d.ready:
			select {
			case out <- path:
			case <-ctx.Done():
				return ctx.Err()
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watcher error", "error", err)
		}
	}
}

// debouncer emits a path on ready once it has not been touched for wait
type debouncer struct {
	wait   time.Duration
	mu     sync.Mutex
	timers map[string]*time.Timer
	ready  chan string
}

func newDebouncer(wait time.Duration) *debouncer {
	return &debouncer{
		wait:   wait,
		timers: make(map[string]*time.Timer),
		ready:  make(chan string, 256),
	}
}

func (d *debouncer) touch(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if t, ok := d.timers[path]; ok {
		t.Reset(d.wait)
		return
	}
	d.timers[path] = time.AfterFunc(d.wait, func() {
		d.mu.Lock()
		delete(d.timers, path)
		d.mu.Unlock()

		select {
		case d.ready <- path:
		default:
			slog.Warn("dropped watch event", "path", path)
		}
	})
}

func (d *debouncer) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for path, t := range d.timers {
		t.Stop()
		delete(d.timers, path)
	}
}
