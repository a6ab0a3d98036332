// manager_lifecycle.go: Plugin lifecycle state machine
//
// Copyright (c) 2025 SimpleMethod - M. Mlodawski
// SPDX-License-Identifier: MPL-2.0

package docplugins

import "github.com/agilira/go-timecache"

// setStatus transitions the plugin's status, provided the record still
// exists. Returns false when the record disappeared in the meantime.
func (m *Manager) setStatus(pluginID string, status PluginStatus) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.plugins[pluginID]
	if !ok {
		return false
	}
	rec.status = status
	rec.statusAt = timecache.CachedTime()
	return true
}

// InitializePlugin runs the plugin's init hook with the host's PluginContext
// and moves it from DISCOVERED to INITIALIZED. A failing hook moves the
// plugin to ERROR instead; failures are absorbed and logged, never
// propagated. Calling on an unknown plugin or from any other state is a
// no-op.
func (m *Manager) InitializePlugin(pluginID string) {
	m.mu.RLock()
	rec, ok := m.plugins[pluginID]
	var instance Plugin
	if ok && rec.status == StatusDiscovered {
		instance = rec.plugin
	}
	m.mu.RUnlock()

	if !ok || instance == nil {
		return
	}

	// The init hook may block on plugin-internal work; it runs outside the
	// descriptor lock.
	if err := instance.Initialize(m.context); err != nil {
		m.logger.Error("Error initializing plugin", "plugin_id", pluginID, "error", err)
		m.setStatus(pluginID, StatusError)
		return
	}

	if m.setStatus(pluginID, StatusInitialized) {
		m.logger.Info("Initialized plugin", "plugin_id", pluginID)
	}
}

// EnablePlugin moves the plugin from INITIALIZED or DISABLED to ENABLED.
// Returns false for an unknown plugin or any other source state.
func (m *Manager) EnablePlugin(pluginID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.plugins[pluginID]
	if !ok || (rec.status != StatusInitialized && rec.status != StatusDisabled) {
		return false
	}
	rec.status = StatusEnabled
	rec.statusAt = timecache.CachedTime()
	m.logger.Info("Enabled plugin", "plugin_id", pluginID)
	return true
}

// DisablePlugin moves the plugin from ENABLED to DISABLED. Returns false for
// an unknown plugin or any other source state.
func (m *Manager) DisablePlugin(pluginID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.plugins[pluginID]
	if !ok || rec.status != StatusEnabled {
		return false
	}
	rec.status = StatusDisabled
	rec.statusAt = timecache.CachedTime()
	m.logger.Info("Disabled plugin", "plugin_id", pluginID)
	return true
}

// UnloadPlugin removes the descriptor from any state and invokes the
// shutdown hook exactly once. Hook failures are absorbed and logged. Unknown
// ids are ignored.
func (m *Manager) UnloadPlugin(pluginID string) {
	m.mu.Lock()
	rec, ok := m.plugins[pluginID]
	if ok {
		delete(m.plugins, pluginID)
	}
	m.mu.Unlock()

	if !ok {
		return
	}

	if rec.plugin != nil {
		func() {
			defer withStackRecover(m.logger)()
			if err := rec.plugin.Shutdown(); err != nil {
				m.logger.Error("Error shutting down plugin", "plugin_id", pluginID, "error", err)
			}
		}()
	}
	m.logger.Info("Unloaded plugin", "plugin_id", pluginID)
}
