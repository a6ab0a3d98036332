// config.go: Host runtime configuration
//
// Copyright (c) 2025 SimpleMethod - M. Mlodawski
// SPDX-License-Identifier: MPL-2.0

package docplugins

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// HostConfig is the runtime configuration of the plugin host. It is loadable
// from JSON or YAML and hot-reloadable through HostConfigWatcher.
type HostConfig struct {
	// PluginsDir is the directory scanned and watched for plugin archives.
	PluginsDir string `json:"plugins_dir" yaml:"plugins_dir"`

	// ArchiveExtension selects which files count as plugin archives.
	ArchiveExtension string `json:"archive_extension" yaml:"archive_extension"`

	// WatchEnabled turns filesystem-driven hot reload on.
	WatchEnabled bool `json:"watch_enabled" yaml:"watch_enabled"`

	// WatchDebounceMS delays load of a created or modified archive until
	// writes quiet down.
	WatchDebounceMS int `json:"watch_debounce_ms" yaml:"watch_debounce_ms"`

	// LogLevel is applied to the host logger when it supports level changes.
	LogLevel string `json:"log_level" yaml:"log_level"`
}

// DefaultHostConfig returns the configuration used when no file is provided.
func DefaultHostConfig() HostConfig {
	return HostConfig{
		PluginsDir:       "plugins",
		ArchiveExtension: ".so",
		WatchEnabled:     true,
		WatchDebounceMS:  200,
		LogLevel:         "info",
	}
}

// LoadHostConfig reads a JSON or YAML configuration file, selected by
// extension, over the defaults. Fields absent from the file keep their
// default values.
func LoadHostConfig(path string) (HostConfig, error) {
	cfg := DefaultHostConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, NewConfigNotFoundError(path)
		}
		return cfg, NewConfigParseError(path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		err = json.Unmarshal(data, &cfg)
	}
	if err != nil {
		return DefaultHostConfig(), NewConfigParseError(path, err)
	}

	if err := cfg.Validate(); err != nil {
		return DefaultHostConfig(), err
	}
	return cfg, nil
}

// Validate checks the configuration for values the runtime cannot operate
// with.
func (c HostConfig) Validate() error {
	if c.PluginsDir == "" {
		return NewConfigValidationError("plugins_dir must not be empty")
	}
	if c.ArchiveExtension == "" || !strings.HasPrefix(c.ArchiveExtension, ".") {
		return NewConfigValidationError("archive_extension must start with a dot")
	}
	if c.WatchDebounceMS < 0 {
		return NewConfigValidationError("watch_debounce_ms must not be negative")
	}
	return nil
}
