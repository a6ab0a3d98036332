// doc.go: Package overview for the docplugins runtime
//
// Copyright (c) 2025 SimpleMethod - M. Mlodawski
// SPDX-License-Identifier: MPL-2.0

// Package docplugins implements a dynamic plugin runtime for the document
// generator host: archive discovery and loading, a per-plugin lifecycle state
// machine, a process-wide operation registry that lets plugins call back into
// host capabilities by string key, a schema-driven invocation gateway that
// dispatches calls by method name and named parameters, and a priority-ordered
// response handler chain for post-processing invocation results.
//
// Plugins are shared libraries placed in a configured directory. Each archive
// exports a Manifest symbol naming its entry-point constructors; the host
// instantiates them without restarting, tracks them through the
// DISCOVERED -> INITIALIZED -> ENABLED -> DISABLED lifecycle, and removes them
// when their archive disappears. The directory is watched continuously, so
// dropping an archive in or deleting one takes effect at runtime.
//
// Basic usage:
//
//	registry := docplugins.NewOperationRegistry(logger)
//	docplugins.RegisterServiceOperations(registry, logger, searchService, tableService)
//
//	pluginCtx := docplugins.NewPluginContext(registry, logger)
//	manager := docplugins.NewManager(pluginCtx, nil, logger)
//
//	loader, _ := docplugins.NewLoader(manager, docplugins.NewSharedLibraryOpener(), cfg, logger)
//	loader.Scan()
//
//	watcher, _ := docplugins.NewDirectoryWatcher(loader, cfg, logger)
//	watcher.Start()
//	defer watcher.Stop()
//
//	manager.InitializePlugin("markdown-formatter")
//	manager.EnablePlugin("markdown-formatter")
//	result, err := manager.Invoke("markdown-formatter", "format", map[string]any{"text": "# hi"})
package docplugins
