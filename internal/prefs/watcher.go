package prefs

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher follows a FileKV's backing file and calls onChange when another
// process rewrites it. Saves made through the watched FileKV itself are
// dropped, as are repeated events for content already reported.
type Watcher struct {
	kv       *FileKV
	onChange func()
	logger   *slog.Logger

	mu     sync.Mutex
	fs     *fsnotify.Watcher
	done   chan struct{}
	exited chan struct{}
}

// NewWatcher creates a Watcher for kv. Nothing is watched until Start.
func NewWatcher(kv *FileKV, onChange func(), logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{kv: kv, onChange: onChange, logger: logger}
}

// Start begins watching. The file itself does not need to exist yet, but its
// directory does. Calling Start on a running Watcher is a no-op.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.fs != nil {
		return nil
	}

	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create file watcher: %w", err)
	}
	// Atomic saves replace the file, which would drop a watch on the file.
	dir := filepath.Dir(w.kv.Path())
	if err := fs.Add(dir); err != nil {
		_ = fs.Close()
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	// Prime with the current content so only later rewrites count.
	w.kv.Changed()

	w.fs = fs
	w.done = make(chan struct{})
	w.exited = make(chan struct{})
	go w.loop(fs, w.done, w.exited)
	return nil
}

func (w *Watcher) loop(fs *fsnotify.Watcher, done, exited chan struct{}) {
	defer close(exited)
	name := filepath.Base(w.kv.Path())

	for {
		select {
		case ev, ok := <-fs.Events:
			if !ok {
				return
			}
			if filepath.Base(ev.Name) != name || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
				continue
			}
			if !w.kv.Changed() {
				continue
			}
			w.logger.Debug("preference file changed by another process", "file", w.kv.Path())
			if w.onChange != nil {
				w.onChange()
			}

		case err, ok := <-fs.Errors:
			if !ok {
				return
			}
			w.logger.Warn("preference watcher error", "file", w.kv.Path(), "error", err)

		case <-done:
			return
		}
	}
}

// Stop stops watching and waits for a callback in flight to return. It is
// safe to call before Start, after a failed Start, and more than once.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	fs, done, exited := w.fs, w.done, w.exited
	w.fs = nil
	w.mu.Unlock()

	if fs == nil {
		return nil
	}
	close(done)
	err := fs.Close()
	<-exited
	return err
}
