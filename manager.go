// manager.go: Plugin descriptor store and host-facing queries
//
// Copyright (c) 2025 SimpleMethod - M. Mlodawski
// SPDX-License-Identifier: MPL-2.0

package docplugins

import (
	"sort"
	"sync"
	"time"

	"github.com/agilira/go-timecache"
)

// pluginRecord is the descriptor tracking one loaded plugin. Records are
// built fully formed before insertion: a reader never observes a partially
// initialized descriptor. The plugin field is nil only for Error-state
// descriptors recorded when an archive could not be loaded at all.
type pluginRecord struct {
	id       string
	name     string
	version  string
	plugin   Plugin
	methods  []Method
	status   PluginStatus
	source   string
	loadedAt time.Time
	statusAt time.Time
}

func (r *pluginRecord) details() PluginDetails {
	d := PluginDetails{
		ID:       r.id,
		Name:     r.name,
		Version:  r.version,
		Status:   r.status,
		Source:   r.source,
		LoadedAt: r.loadedAt,
	}
	for _, m := range r.methods {
		d.Methods = append(d.Methods, m.Signature())
	}
	return d
}

// Manager owns the descriptor map and drives the plugin lifecycle. It is
// safe for concurrent use: the directory watcher adds and removes records
// while request-handling goroutines query and invoke.
type Manager struct {
	mu      sync.RWMutex
	plugins map[string]*pluginRecord

	context  PluginContext
	handlers *ResponseHandlerChain
	logger   Logger
}

// NewManager creates a manager. The context is handed to plugins during
// initialization; a nil handler chain gets a fresh chain containing only the
// default handler.
func NewManager(pluginCtx PluginContext, handlers *ResponseHandlerChain, logger Logger) *Manager {
	logger = NewLogger(logger)
	if handlers == nil {
		handlers = NewResponseHandlerChain(logger)
	}
	return &Manager{
		plugins:  make(map[string]*pluginRecord),
		context:  pluginCtx,
		handlers: handlers,
		logger:   logger,
	}
}

// ResponseHandlers returns the chain applied to invocation results.
func (m *Manager) ResponseHandlers() *ResponseHandlerChain {
	return m.handlers
}

// register inserts a fully formed record, replacing any prior record with
// the same id. Returns true when an existing record was replaced.
func (m *Manager) register(rec *pluginRecord) bool {
	now := timecache.CachedTime()
	rec.loadedAt = now
	rec.statusAt = now

	m.mu.Lock()
	prior, replaced := m.plugins[rec.id]
	m.plugins[rec.id] = rec
	m.mu.Unlock()

	if replaced {
		m.logger.Warn("Plugin replaced by later load (last write wins)",
			"plugin_id", rec.id,
			"previous_source", prior.source,
			"source", rec.source)
	}
	return replaced
}

// registerError records an Error-state descriptor for an archive that could
// not produce a plugin instance, keyed by the archive's base name.
func (m *Manager) registerError(id, source string) {
	m.register(&pluginRecord{
		id:     id,
		name:   id,
		status: StatusError,
		source: source,
	})
}

// record returns the descriptor for the id, or nil.
func (m *Manager) record(pluginID string) *pluginRecord {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.plugins[pluginID]
}

// Plugins returns the sorted ids of all tracked plugins, including
// Error-state descriptors.
func (m *Manager) Plugins() []string {
	m.mu.RLock()
	ids := make([]string, 0, len(m.plugins))
	for id := range m.plugins {
		ids = append(ids, id)
	}
	m.mu.RUnlock()

	sort.Strings(ids)
	return ids
}

// Status returns the lifecycle status of the plugin and whether it exists.
func (m *Manager) Status(pluginID string) (PluginStatus, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.plugins[pluginID]
	if !ok {
		return 0, false
	}
	return rec.status, true
}

// Plugin returns the live instance for the id. Error-state descriptors have
// no instance and report false.
func (m *Manager) Plugin(pluginID string) (Plugin, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.plugins[pluginID]
	if !ok || rec.plugin == nil {
		return nil, false
	}
	return rec.plugin, true
}

// MethodSignatures lists the invocable method signatures of the plugin in
// "result name(type name, ...)" form. Unknown plugins and plugins without an
// invocable surface yield an empty list.
func (m *Manager) MethodSignatures(pluginID string) []string {
	m.mu.RLock()
	rec, ok := m.plugins[pluginID]
	m.mu.RUnlock()

	if !ok {
		return nil
	}
	var sigs []string
	for _, method := range rec.methods {
		sigs = append(sigs, method.Signature())
	}
	return sigs
}

// PluginDetails returns the aggregate view of every tracked plugin, sorted
// by id. This is the listing consumed by host surfaces such as an HTTP
// controller.
func (m *Manager) PluginDetails() []PluginDetails {
	m.mu.RLock()
	all := make([]PluginDetails, 0, len(m.plugins))
	for _, rec := range m.plugins {
		all = append(all, rec.details())
	}
	m.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all
}

// Shutdown unloads every plugin, invoking each shutdown hook once. Used at
// host teardown.
func (m *Manager) Shutdown() {
	for _, id := range m.Plugins() {
		m.UnloadPlugin(id)
	}
}
