// types.go: Shared data types for the plugin runtime
//
// Copyright (c) 2025 SimpleMethod - M. Mlodawski
// SPDX-License-Identifier: MPL-2.0

package docplugins

import "time"

// PluginStatus represents the lifecycle state of a loaded plugin.
//
// Transitions:
//   - StatusDiscovered -> initialize -> StatusInitialized (StatusError on failure)
//   - StatusInitialized or StatusDisabled -> enable -> StatusEnabled
//   - StatusEnabled -> disable -> StatusDisabled
//   - any -> unload -> removed
//
// Invocation is only permitted while the plugin is StatusEnabled.
type PluginStatus int

const (
	StatusDiscovered PluginStatus = iota
	StatusInitialized
	StatusEnabled
	StatusDisabled
	StatusError
)

// String returns the canonical upper-case name of the status.
func (s PluginStatus) String() string {
	switch s {
	case StatusDiscovered:
		return "DISCOVERED"
	case StatusInitialized:
		return "INITIALIZED"
	case StatusEnabled:
		return "ENABLED"
	case StatusDisabled:
		return "DISABLED"
	case StatusError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// MarshalText makes the status render as its name in JSON and YAML output.
func (s PluginStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// PluginDetails is the aggregate view of a loaded plugin exposed to host
// surfaces such as an HTTP controller or CLI.
type PluginDetails struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Version  string       `json:"version"`
	Status   PluginStatus `json:"status"`
	Source   string       `json:"source,omitempty"`
	Methods  []string     `json:"methods,omitempty"`
	LoadedAt time.Time    `json:"loaded_at"`
}
