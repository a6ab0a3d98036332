// plugin.go: Core plugin contracts shared between the host and plugin archives
//
// Copyright (c) 2025 SimpleMethod - M. Mlodawski
// SPDX-License-Identifier: MPL-2.0

package docplugins

import "fmt"

// Plugin is the lifecycle contract every entry-point type in a plugin archive
// must satisfy. The host instantiates plugins through their fixed-signature
// constructor (see EntryPointFunc), reads the identity accessors to key the
// descriptor, and drives Initialize/Shutdown as the plugin moves through its
// lifecycle.
//
// ID must be unique across all loaded plugins at any instant; loading a second
// plugin with the same id replaces the first (last write wins).
type Plugin interface {
	// ID returns the unique identifier of the plugin.
	ID() string

	// Name returns the human-readable plugin name used for logging and display.
	Name() string

	// Version returns the plugin version string.
	Version() string

	// Initialize prepares the plugin for operation. The context gives the
	// plugin access to host operations and logging. A returned error moves the
	// plugin to StatusError; it is absorbed by the host, never propagated.
	Initialize(ctx PluginContext) error

	// Shutdown releases plugin resources. Called exactly once when the plugin
	// is unloaded, whether explicitly or because its archive disappeared.
	Shutdown() error
}

// Invocable is implemented by plugins that expose methods to the invocation
// gateway. Each Method advertises its name, named parameter schema and result
// type; the gateway matches incoming calls against this schema rather than
// introspecting the instance. A plugin that does not implement Invocable has
// no invocable surface.
type Invocable interface {
	Methods() []Method
}

// PluginContext is the bridge handed to plugin code during initialization.
// It decouples plugins from host service implementations: plugins call back
// into the host only through named operations and the logging hooks.
type PluginContext interface {
	// ExecuteOperation runs the host operation registered under operationID
	// with the given parameters. An unregistered id yields an
	// unknown-operation error, distinct from an operation returning nil.
	ExecuteOperation(operationID string, params ...any) (any, error)

	// OperationRegistry returns the registry backing this context.
	OperationRegistry() *OperationRegistry

	// Log records an informational message in the host log.
	Log(msg string)

	// LogError records an error message together with its cause.
	LogError(msg string, err error)
}

// BasePlugin is an embeddable helper carrying plugin identity and the context
// received at initialization. It satisfies everything in Plugin except the
// domain behavior, so concrete plugins only add their invocable methods.
type BasePlugin struct {
	PluginID      string
	PluginName    string
	PluginVersion string

	Context PluginContext
}

// ID implements Plugin.
func (b *BasePlugin) ID() string { return b.PluginID }

// Name implements Plugin.
func (b *BasePlugin) Name() string { return b.PluginName }

// Version implements Plugin.
func (b *BasePlugin) Version() string { return b.PluginVersion }

// Initialize stores the context and logs the activation through it.
func (b *BasePlugin) Initialize(ctx PluginContext) error {
	b.Context = ctx
	ctx.Log(fmt.Sprintf("Initializing plugin: %s version %s", b.PluginName, b.PluginVersion))
	return nil
}

// Shutdown logs the teardown. Safe to call before Initialize.
func (b *BasePlugin) Shutdown() error {
	if b.Context != nil {
		b.Context.Log(fmt.Sprintf("Shutting down plugin: %s", b.PluginName))
	}
	return nil
}
