// archive.go: Plugin archive abstraction and manifest format
//
// Copyright (c) 2025 SimpleMethod - M. Mlodawski
// SPDX-License-Identifier: MPL-2.0

package docplugins

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// ManifestSymbol is the exported symbol every plugin archive must carry. Its
// value is the serialized ArchiveManifest.
const ManifestSymbol = "Manifest"

// EntryPointFunc is the required signature of every entry-point constructor
// symbol named in a manifest.
type EntryPointFunc = func() Plugin

// Archive is an opened plugin container. The shared-library implementation
// wraps the runtime plugin handle; tests substitute in-memory fakes.
type Archive interface {
	// Lookup resolves an exported symbol by name.
	Lookup(symbol string) (any, error)

	// Close releases resources tied to the open archive. Closing does not
	// unload code already mapped into the process.
	Close() error
}

// ArchiveOpener opens plugin archives by filesystem path.
type ArchiveOpener interface {
	Open(path string) (Archive, error)
}

// ArchiveManifest declares the plugin types an archive provides. Each entry
// point names an exported constructor symbol of type EntryPointFunc.
type ArchiveManifest struct {
	EntryPoints []string `json:"entrypoints" yaml:"entrypoints"`
}

// parseArchiveManifest decodes manifest bytes, accepting JSON first and
// falling back to YAML.
func parseArchiveManifest(data []byte) (*ArchiveManifest, error) {
	var manifest ArchiveManifest
	if err := json.Unmarshal(data, &manifest); err == nil {
		return &manifest, nil
	}
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, err
	}
	return &manifest, nil
}

// manifestBytes extracts the raw manifest payload from a looked-up symbol.
// Manifests are declared either as a []byte variable (resolved as *[]byte) or
// as a string variable.
func manifestBytes(sym any) ([]byte, bool) {
	switch v := sym.(type) {
	case *[]byte:
		return *v, true
	case []byte:
		return v, true
	case *string:
		return []byte(*v), true
	case string:
		return []byte(v), true
	default:
		return nil, false
	}
}
