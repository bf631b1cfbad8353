package config

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads and revalidates the serving config when its file
// changes on disk.
type Watcher struct {
	path       string
	schemaPath string
	onReload   func(*Config, error)
	fsw        *fsnotify.Watcher
	done       chan struct{}
	current    *Config
	mu         sync.RWMutex
	reloads    atomic.Uint32
}

// NewWatcher loads the config once, then watches it for changes. Every
// reload attempt, successful or not, is reported through onReload.
func NewWatcher(path, schemaPath string, onReload func(*Config, error)) (*Watcher, error) {
	cfg, err := LoadAndValidate(path, schemaPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load initial config: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create config watcher: %w", err)
	}
	if err := fsw.Add(path); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch config file %s: %w", path, err)
	}

	w := &Watcher{
		path:       path,
		schemaPath: schemaPath,
		onReload:   onReload,
		fsw:        fsw,
		done:       make(chan struct{}),
		current:    cfg,
	}

	go w.watch()

	return w, nil
}

func (cw *Watcher) watch() {
	const debounce = 500 * time.Millisecond

	var timer *time.Timer

	for {
		select {
		case event, ok := <-cw.fsw.Events:
			if !ok {
				return
			}

			// Create covers editors that replace the file on save.
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, cw.reload)

		case err, ok := <-cw.fsw.Errors:
			if !ok {
				return
			}

			slog.Error("Config watcher error", "path", cw.path, "error", err)

		case <-cw.done:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

func (cw *Watcher) reload() {
	count := cw.reloads.Add(1)
	slog.Info("Reloading config file", "path", cw.path, "count", count)

	cfg, err := LoadAndValidate(cw.path, cw.schemaPath)
	if err != nil {
		slog.Error("Failed to reload config", "error", err)
		cw.onReload(nil, err)
		return
	}

	cw.mu.Lock()
	cw.current = cfg
	cw.mu.Unlock()

	cw.onReload(cfg, nil)
}

// Snapshot returns the current config snapshot (thread-safe).
func (cw *Watcher) Snapshot() *Config {
	cw.mu.RLock()
	defer cw.mu.RUnlock()

	return cw.current
}

// ReloadCount returns the number of times the config has been reloaded.
func (cw *Watcher) ReloadCount() uint32 {
	return cw.reloads.Load()
}

// Close stops watching. A reload already in flight may still complete.
func (cw *Watcher) Close() error {
	close(cw.done)
	return cw.fsw.Close()
}
