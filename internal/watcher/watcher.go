// Package watcher observes the library volume for filesystem changes
// and fires a debounced trigger. It is best-effort: a missed or
// duplicate trigger is harmless because reconciliation is idempotent
// for unchanged input, and the periodic ticker catches anything the
// watcher misses.
package watcher

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/llehouerou/wantlist/internal/tags"
)

// Watcher watches a directory tree and calls the trigger callback
// after changes settle.
type Watcher struct {
	root string
	log  *slog.Logger

	fsw      *fsnotify.Watcher
	debounce *Debouncer
	done     chan struct{}
}

// New creates a watcher over root. onTrigger is invoked once per burst
// of events, after window of quiet.
func New(root string, window time.Duration, onTrigger func(), log *slog.Logger) *Watcher {
	if log == nil {
		log = slog.Default()
	}
	return &Watcher{
		root:     root,
		log:      log,
		debounce: NewDebouncer(window, onTrigger),
		done:     make(chan struct{}),
	}
}

// Start registers the directory tree and begins processing events.
func (w *Watcher) Start() error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	w.fsw = fsw

	err = filepath.WalkDir(w.root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			// Unwatchable subtrees are covered by the periodic scan.
			return nil //nolint:nilerr // intentionally skipping errors
		}
		if d.IsDir() {
			return fsw.Add(path)
		}
		return nil
	})
	if err != nil {
		fsw.Close()
		return err
	}

	go w.processEvents()
	w.log.Info("library watcher started", "root", w.root)
	return nil
}

// Stop stops event processing and cancels any pending trigger.
func (w *Watcher) Stop() error {
	close(w.done)
	w.debounce.Stop()
	if w.fsw != nil {
		return w.fsw.Close()
	}
	return nil
}

func (w *Watcher) processEvents() {
	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn("watcher error", "error", err)
		case <-w.done:
			return
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	// Chmod fires when files are merely opened or browsed.
	if event.Op == fsnotify.Chmod {
		return
	}
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}

	info, err := os.Stat(event.Name)
	isDir := err == nil && info.IsDir()

	// New directories must join the watch set; their contents arrive next.
	if isDir && event.Op&fsnotify.Create != 0 {
		_ = w.fsw.Add(event.Name)
		w.debounce.Hit()
		return
	}

	// Removes can't be stat'ed; trigger if the name looks like audio.
	if isDir || tags.IsMusicFile(event.Name) {
		w.debounce.Hit()
	}
}
