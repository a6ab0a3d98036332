// testing_helpers_test.go: Shared fakes for the runtime test suite
//
// Copyright (c) 2025 SimpleMethod - M. Mlodawski
// SPDX-License-Identifier: MPL-2.0

package docplugins

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	goerrors "github.com/agilira/go-errors"
	"github.com/stretchr/testify/require"
)

// errCode extracts the structured error code, failing the test when the error
// is not a structured one.
func errCode(t *testing.T, err error) string {
	t.Helper()
	var structured *goerrors.Error
	require.True(t, errors.As(err, &structured), "expected structured error, got %v", err)
	return string(structured.Code)
}

// testPlugin is an in-memory plugin with a configurable invocable surface and
// counters on its lifecycle hooks.
type testPlugin struct {
	id      string
	name    string
	version string
	methods []Method

	initCalls     atomic.Int32
	shutdownCalls atomic.Int32

	initErr     error
	shutdownErr error

	ctx PluginContext
}

func newTestPlugin(id string) *testPlugin {
	p := &testPlugin{id: id, name: "Test " + id, version: "1.0.0"}
	p.methods = []Method{
		{
			Name:   "echo",
			Params: []Param{{Name: "text", Type: ParamString}},
			Result: "string",
			Call: func(args []any) (any, error) {
				return args[0], nil
			},
		},
		{
			Name:   "add",
			Params: []Param{{Name: "a", Type: ParamInt}, {Name: "b", Type: ParamInt}},
			Result: "int",
			Call: func(args []any) (any, error) {
				return args[0].(int) + args[1].(int), nil
			},
		},
	}
	return p
}

func (p *testPlugin) ID() string      { return p.id }
func (p *testPlugin) Name() string    { return p.name }
func (p *testPlugin) Version() string { return p.version }

func (p *testPlugin) Initialize(ctx PluginContext) error {
	p.initCalls.Add(1)
	p.ctx = ctx
	return p.initErr
}

func (p *testPlugin) Shutdown() error {
	p.shutdownCalls.Add(1)
	return p.shutdownErr
}

func (p *testPlugin) Methods() []Method { return p.methods }

// registerTestPlugin places the plugin into the manager as a freshly
// discovered descriptor, the way the loader would.
func registerTestPlugin(m *Manager, p *testPlugin, source string) {
	m.register(&pluginRecord{
		id:      p.id,
		name:    p.name,
		version: p.version,
		plugin:  p,
		methods: p.methods,
		status:  StatusDiscovered,
		source:  source,
	})
}

// enableTestPlugin walks the plugin to ENABLED.
func enableTestPlugin(m *Manager, p *testPlugin) {
	registerTestPlugin(m, p, p.id+".so")
	m.InitializePlugin(p.id)
	m.EnablePlugin(p.id)
}

func newTestManager() *Manager {
	registry := NewOperationRegistry(nil)
	return NewManager(NewPluginContext(registry, nil), nil, nil)
}

// fakeArchive resolves symbols from a map, standing in for an opened shared
// library.
type fakeArchive struct {
	symbols map[string]any
	closed  atomic.Int32
}

func (a *fakeArchive) Lookup(symbol string) (any, error) {
	sym, ok := a.symbols[symbol]
	if !ok {
		return nil, fmt.Errorf("symbol %s not found", symbol)
	}
	return sym, nil
}

func (a *fakeArchive) Close() error {
	a.closed.Add(1)
	return nil
}

// fakeOpener maps archive paths to fake archives; unknown paths fail to open.
// Guarded because watcher tests add archives while the watch loop opens them.
type fakeOpener struct {
	mu       sync.Mutex
	archives map[string]*fakeArchive
}

func (o *fakeOpener) Open(path string) (Archive, error) {
	o.mu.Lock()
	archive, ok := o.archives[path]
	o.mu.Unlock()
	if !ok {
		return nil, NewArchiveOpenError(path, fmt.Errorf("no such archive: %s", path))
	}
	return archive, nil
}

func (o *fakeOpener) add(path string, archive *fakeArchive) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.archives == nil {
		o.archives = make(map[string]*fakeArchive)
	}
	o.archives[path] = archive
}

// archiveFor builds a fake archive whose manifest names one constructor that
// returns the given plugin.
func archiveFor(plugins ...*testPlugin) *fakeArchive {
	manifest := ArchiveManifest{}
	symbols := map[string]any{}
	for i, p := range plugins {
		entry := fmt.Sprintf("NewPlugin%d", i)
		manifest.EntryPoints = append(manifest.EntryPoints, entry)
		plugin := p
		symbols[entry] = EntryPointFunc(func() Plugin { return plugin })
	}
	raw, _ := json.Marshal(manifest)
	symbols[ManifestSymbol] = &raw
	return &fakeArchive{symbols: symbols}
}
