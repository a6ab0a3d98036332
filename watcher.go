// watcher.go: Filesystem-driven hot reload of the plugins directory
//
// Copyright (c) 2025 SimpleMethod - M. Mlodawski
// SPDX-License-Identifier: MPL-2.0

package docplugins

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DirectoryWatcher drives hot reload: archives appearing in the plugins
// directory are loaded, archives removed are unloaded. Create and write
// events are debounced per path so a file still being copied is only loaded
// once it stops changing; removals take effect immediately.
type DirectoryWatcher struct {
	loader   *Loader
	watcher  *fsnotify.Watcher
	cfg      HostConfig
	logger   Logger
	debounce time.Duration

	mu     sync.Mutex
	timers map[string]*time.Timer

	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewDirectoryWatcher creates a watcher over the configured plugins
// directory. The directory must exist; NewLoader creates it.
func NewDirectoryWatcher(loader *Loader, cfg HostConfig, logger Logger) (*DirectoryWatcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, NewWatcherInitError(cfg.PluginsDir, err)
	}
	if err := fsw.Add(cfg.PluginsDir); err != nil {
		_ = fsw.Close()
		return nil, NewWatcherInitError(cfg.PluginsDir, err)
	}

	return &DirectoryWatcher{
		loader:   loader,
		watcher:  fsw,
		cfg:      cfg,
		logger:   NewLogger(logger),
		debounce: time.Duration(cfg.WatchDebounceMS) * time.Millisecond,
		timers:   make(map[string]*time.Timer),
		stopCh:   make(chan struct{}),
	}, nil
}

// Start begins processing filesystem events in a background goroutine.
func (w *DirectoryWatcher) Start() {
	SafeGo(w.logger, w.loop)
	w.logger.Info("Watching plugins directory", "directory", w.cfg.PluginsDir)
}

// Stop terminates event processing and cancels pending debounce timers.
// Safe to call more than once.
func (w *DirectoryWatcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
		_ = w.watcher.Close()

		w.mu.Lock()
		for path, timer := range w.timers {
			timer.Stop()
			delete(w.timers, path)
		}
		w.mu.Unlock()

		w.logger.Info("Stopped plugins directory watcher")
	})
}

func (w *DirectoryWatcher) loop() {
	for {
		select {
		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !strings.HasSuffix(event.Name, w.cfg.ArchiveExtension) {
				continue
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// The watcher keeps running in degraded mode; already-loaded
			// plugins stay available.
			w.logger.Error("Plugins directory watcher error", "error", err)
		}
	}
}

func (w *DirectoryWatcher) handleEvent(event fsnotify.Event) {
	switch {
	case event.Has(fsnotify.Create), event.Has(fsnotify.Write):
		w.scheduleLoad(event.Name)

	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		pluginID := archiveBaseName(event.Name, w.cfg.ArchiveExtension)
		w.logger.Info("Plugin archive removed", "archive", event.Name, "plugin_id", pluginID)
		w.loader.Unload(pluginID)
	}
}

// scheduleLoad (re)arms the per-path debounce timer. Only the last event in a
// write burst triggers a load.
func (w *DirectoryWatcher) scheduleLoad(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if timer, ok := w.timers[path]; ok {
		timer.Stop()
	}
	w.timers[path] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.timers, path)
		w.mu.Unlock()

		select {
		case <-w.stopCh:
			return
		default:
		}

		w.logger.Info("Plugin archive changed", "archive", filepath.Clean(path))
		if err := w.loader.Load(path); err != nil {
			w.logger.Error("Hot reload failed", "archive", path, "error", err)
		}
	})
}
