package bundle

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher announces new export versions appearing under a base path. It
// only observes and notifies; loading the announced version is the
// caller's decision.
type Watcher struct {
	basePath string
	onExport func(version int, dir string)
	fsw      *fsnotify.Watcher
	done     chan struct{}
	seen     atomic.Uint32
}

// NewWatcher starts watching basePath for version directories. The
// callback runs on the watcher goroutine after a short settle delay so a
// directory still being written is not announced file by file.
func NewWatcher(basePath string, onExport func(version int, dir string)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create export watcher: %w", err)
	}

	if err := fsw.Add(basePath); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch export base path %s: %w", basePath, err)
	}

	w := &Watcher{
		basePath: basePath,
		onExport: onExport,
		fsw:      fsw,
		done:     make(chan struct{}),
	}

	go w.watch()

	return w, nil
}

// watch observes directory creations under the base path.
func (w *Watcher) watch() {
	const settle = 500 * time.Millisecond

	timers := map[int]*time.Timer{}

	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}

			if event.Op&fsnotify.Create != fsnotify.Create {
				continue
			}

			version, ok := ParseVersion(filepath.Base(event.Name))
			if !ok {
				continue
			}

			if timer, exists := timers[version]; exists {
				timer.Stop()
			}

			dir := filepath.Join(w.basePath, FormatVersion(version))
			timers[version] = time.AfterFunc(settle, func() {
				w.announce(version, dir)
			})

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}

			slog.Error("Export watcher error", "base_path", w.basePath, "error", err)

		case <-w.done:
			for _, timer := range timers {
				timer.Stop()
			}
			return
		}
	}
}

// announce reports one new version to the callback.
func (w *Watcher) announce(version int, dir string) {
	count := w.seen.Add(1)
	slog.Info("New export version detected",
		"base_path", w.basePath, "version", version, "count", count)

	w.onExport(version, dir)
}

// SeenCount returns the number of versions announced so far.
func (w *Watcher) SeenCount() uint32 {
	return w.seen.Load()
}

// Close stops the watcher. Pending announcements are dropped.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fsw.Close()
}
