// config_watcher.go: Hot reload of the host configuration file via Argus
//
// Copyright (c) 2025 SimpleMethod - M. Mlodawski
// SPDX-License-Identifier: MPL-2.0

package docplugins

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/agilira/argus"
)

// HostConfigWatcher keeps a HostConfig in sync with its file on disk.
// Changes are validated before they are applied; an invalid edit is logged
// and the previous configuration stays active. Runtime-adjustable settings
// (currently the log level) take effect without a restart.
type HostConfigWatcher struct {
	configPath string
	logger     Logger
	watcher    *argus.Watcher

	current  atomic.Pointer[HostConfig]
	onChange func(HostConfig)

	enabled  atomic.Bool
	stopped  atomic.Bool
	stopOnce sync.Once
	mu       sync.Mutex
}

// NewHostConfigWatcher creates a watcher for the given configuration file.
// onChange, when non-nil, runs after each successfully applied reload.
func NewHostConfigWatcher(configPath string, logger Logger, onChange func(HostConfig)) *HostConfigWatcher {
	logger = NewLogger(logger)

	watcher := argus.New(argus.Config{
		PollInterval:         2 * time.Second,
		MaxWatchedFiles:      2,
		OptimizationStrategy: argus.OptimizationSingleEvent,
		ErrorHandler: func(err error, filepath string) {
			logger.Error("Config file watching error", "error", err, "file", filepath)
		},
	})

	return &HostConfigWatcher{
		configPath: configPath,
		logger:     logger,
		watcher:    watcher,
		onChange:   onChange,
	}
}

// Start loads and applies the initial configuration, then begins watching the
// file. A stopped watcher cannot be restarted.
func (w *HostConfigWatcher) Start() error {
	if w.stopped.Load() {
		return NewConfigWatcherError("watcher has been stopped and cannot be restarted", nil)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.enabled.CompareAndSwap(false, true) {
		return NewConfigWatcherError("watcher is already running", nil)
	}

	cfg, err := LoadHostConfig(w.configPath)
	if err != nil {
		w.enabled.Store(false)
		return err
	}
	w.apply(cfg)

	if err := w.watcher.Watch(w.configPath, w.handleChange); err != nil {
		w.enabled.Store(false)
		return NewConfigWatcherError("failed to watch config file", err)
	}
	if err := w.watcher.Start(); err != nil {
		w.enabled.Store(false)
		return NewConfigWatcherError("failed to start config watcher", err)
	}

	w.logger.Info("Configuration watcher started", "config_path", w.configPath)
	return nil
}

// Stop permanently stops the watcher. Safe to call more than once.
func (w *HostConfigWatcher) Stop() {
	w.stopOnce.Do(func() {
		w.stopped.Store(true)
		w.enabled.Store(false)
		if err := w.watcher.Stop(); err != nil {
			w.logger.Error("Error stopping config watcher", "error", err)
		}
		w.logger.Info("Configuration watcher stopped")
	})
}

// Current returns the last successfully applied configuration, or nil before
// Start.
func (w *HostConfigWatcher) Current() *HostConfig {
	return w.current.Load()
}

func (w *HostConfigWatcher) handleChange(event argus.ChangeEvent) {
	if event.IsDelete {
		w.logger.Warn("Configuration file deleted, keeping current configuration", "path", event.Path)
		return
	}

	cfg, err := LoadHostConfig(event.Path)
	if err != nil {
		w.logger.Error("Configuration reload rejected", "path", event.Path, "error", err)
		return
	}

	w.apply(cfg)
	w.logger.Info("Configuration reloaded", "path", event.Path)
}

func (w *HostConfigWatcher) apply(cfg HostConfig) {
	w.current.Store(&cfg)
	ApplyRuntimeConfig(cfg, w.logger)
	if w.onChange != nil {
		w.onChange(cfg)
	}
}

// ApplyRuntimeConfig applies the settings that can change while the host is
// running. Loggers that cannot change level are left as they are.
func ApplyRuntimeConfig(cfg HostConfig, logger Logger) {
	logger = NewLogger(logger)

	if ls, ok := logger.(LevelSetter); ok && cfg.LogLevel != "" {
		if err := ls.SetLevel(cfg.LogLevel); err != nil {
			logger.Warn("Ignoring invalid log level", "log_level", cfg.LogLevel, "error", err)
			return
		}
		logger.Debug("Log level applied", "log_level", cfg.LogLevel)
	}
}
