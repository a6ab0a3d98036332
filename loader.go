// loader.go: Plugin archive discovery and loading
//
// Copyright (c) 2025 SimpleMethod - M. Mlodawski
// SPDX-License-Identifier: MPL-2.0

package docplugins

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var (
	errNoEntryPoints     = errors.New("manifest declares no entry points")
	errNoPluginsProduced = errors.New("no entry point produced a plugin instance")
	errBadConstructor    = errors.New("entry point is not a func() Plugin")
	errNilPlugin         = errors.New("entry point constructor returned nil")
)

// Loader discovers plugin archives on disk, extracts their manifests, and
// registers the plugin instances they provide with the manager. One archive
// may carry several plugin types; a failing type never prevents its siblings
// from loading.
type Loader struct {
	manager *Manager
	opener  ArchiveOpener
	cfg     HostConfig
	logger  Logger
}

// NewLoader creates a loader over the configured plugins directory, creating
// the directory when it does not exist yet.
func NewLoader(manager *Manager, opener ArchiveOpener, cfg HostConfig, logger Logger) (*Loader, error) {
	logger = NewLogger(logger)

	if _, err := os.Stat(cfg.PluginsDir); os.IsNotExist(err) {
		if err := os.MkdirAll(cfg.PluginsDir, 0o755); err != nil {
			return nil, NewArchiveOpenError(cfg.PluginsDir, err)
		}
		logger.Info("Created plugins directory", "directory", cfg.PluginsDir)
	}

	return &Loader{
		manager: manager,
		opener:  opener,
		cfg:     cfg,
		logger:  logger,
	}, nil
}

// Scan loads every archive currently present in the plugins directory.
// A missing or empty directory is not an error: the host starts with no
// plugins and picks them up as they appear.
func (l *Loader) Scan() error {
	entries, err := os.ReadDir(l.cfg.PluginsDir)
	if err != nil {
		l.logger.Warn("Plugins directory is not readable", "directory", l.cfg.PluginsDir, "error", err)
		return nil
	}

	var archives []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), l.cfg.ArchiveExtension) {
			continue
		}
		archives = append(archives, filepath.Join(l.cfg.PluginsDir, entry.Name()))
	}
	sort.Strings(archives)

	if len(archives) == 0 {
		l.logger.Warn("No plugin archives found", "directory", l.cfg.PluginsDir)
		return nil
	}

	for _, path := range archives {
		// Load records failures as ERROR descriptors; a bad archive must not
		// stop the scan.
		_ = l.Load(path)
	}
	return nil
}

// Load opens one archive and registers every plugin type its manifest names,
// in DISCOVERED state. When the archive itself cannot be loaded (unreadable,
// no manifest, malformed manifest, or no entry point produced an instance) an
// ERROR descriptor keyed by the archive's base name is recorded so the
// failure stays visible to host surfaces.
func (l *Loader) Load(path string) error {
	base := archiveBaseName(path, l.cfg.ArchiveExtension)

	archive, err := l.opener.Open(path)
	if err != nil {
		l.logger.Error("Failed to open plugin archive", "archive", path, "error", err)
		l.manager.registerError(base, path)
		return err
	}
	defer func() { _ = archive.Close() }()

	manifest, err := l.readManifest(archive, path)
	if err != nil {
		l.logger.Error("Failed to read plugin manifest", "archive", path, "error", err)
		l.manager.registerError(base, path)
		return err
	}

	loaded := 0
	for _, entryPoint := range manifest.EntryPoints {
		if err := l.loadEntryPoint(archive, path, entryPoint); err != nil {
			l.logger.Error("Failed to load plugin type",
				"archive", path,
				"entry_point", entryPoint,
				"error", err)
			continue
		}
		loaded++
	}

	if loaded == 0 {
		l.manager.registerError(base, path)
		return NewEntryPointError(path, strings.Join(manifest.EntryPoints, ","), errNoPluginsProduced)
	}

	l.logger.Info("Loaded plugin archive", "archive", path, "plugins", loaded)
	return nil
}

// Unload removes the plugin from the manager and runs its shutdown hook.
// Code already mapped into the process stays mapped; only the host's
// references are dropped.
func (l *Loader) Unload(pluginID string) {
	l.manager.UnloadPlugin(pluginID)
}

func (l *Loader) readManifest(archive Archive, path string) (*ArchiveManifest, error) {
	sym, err := archive.Lookup(ManifestSymbol)
	if err != nil {
		return nil, NewManifestAbsentError(path)
	}
	raw, ok := manifestBytes(sym)
	if !ok {
		return nil, NewManifestAbsentError(path)
	}
	manifest, err := parseArchiveManifest(raw)
	if err != nil {
		return nil, NewManifestParseError(path, err)
	}
	if len(manifest.EntryPoints) == 0 {
		return nil, NewManifestParseError(path, errNoEntryPoints)
	}
	return manifest, nil
}

// loadEntryPoint resolves one constructor symbol, instantiates the plugin,
// and registers a DISCOVERED descriptor. A panicking constructor is absorbed
// into an error.
func (l *Loader) loadEntryPoint(archive Archive, path, entryPoint string) error {
	sym, err := archive.Lookup(entryPoint)
	if err != nil {
		return NewEntryPointError(path, entryPoint, err)
	}

	ctor, ok := sym.(EntryPointFunc)
	if !ok {
		return NewEntryPointError(path, entryPoint, errBadConstructor)
	}

	instance, err := instantiate(ctor)
	if err != nil {
		return NewEntryPointError(path, entryPoint, err)
	}
	if instance == nil {
		return NewEntryPointError(path, entryPoint, errNilPlugin)
	}

	rec := &pluginRecord{
		id:      instance.ID(),
		name:    instance.Name(),
		version: instance.Version(),
		plugin:  instance,
		status:  StatusDiscovered,
		source:  path,
	}
	if inv, ok := instance.(Invocable); ok {
		rec.methods = inv.Methods()
	}

	l.manager.register(rec)
	l.logger.Info("Discovered plugin",
		"plugin_id", rec.id,
		"name", rec.name,
		"version", rec.version,
		"archive", path)
	return nil
}

func instantiate(ctor EntryPointFunc) (p Plugin, err error) {
	defer func() { recoverToError(recover(), &err) }()
	return ctor(), nil
}

func archiveBaseName(path, ext string) string {
	return strings.TrimSuffix(filepath.Base(path), ext)
}
