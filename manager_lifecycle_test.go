// manager_lifecycle_test.go: Lifecycle state machine transitions
//
// Copyright (c) 2025 SimpleMethod - M. Mlodawski
// SPDX-License-Identifier: MPL-2.0

package docplugins

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestInitializeMovesDiscoveredToInitialized(t *testing.T) {
	m := newTestManager()
	p := newTestPlugin("docx")
	registerTestPlugin(m, p, "docx.so")

	m.InitializePlugin("docx")

	status, _ := m.Status("docx")
	assert.Equal(t, StatusInitialized, status)
	assert.Equal(t, int32(1), p.initCalls.Load())
	assert.NotNil(t, p.ctx)
}

func TestInitializeFailureMovesToError(t *testing.T) {
	m := newTestManager()
	p := newTestPlugin("bad")
	p.initErr = fmt.Errorf("missing dependency")
	registerTestPlugin(m, p, "bad.so")

	m.InitializePlugin("bad")

	status, _ := m.Status("bad")
	assert.Equal(t, StatusError, status)
}

func TestInitializeIsNoOpOutsideDiscovered(t *testing.T) {
	m := newTestManager()
	p := newTestPlugin("once")
	registerTestPlugin(m, p, "once.so")

	m.InitializePlugin("once")
	m.InitializePlugin("once")
	m.InitializePlugin("ghost")

	assert.Equal(t, int32(1), p.initCalls.Load())
}

func TestEnableDisableCycle(t *testing.T) {
	m := newTestManager()
	p := newTestPlugin("cycle")
	registerTestPlugin(m, p, "cycle.so")

	// Cannot enable straight from DISCOVERED.
	assert.False(t, m.EnablePlugin("cycle"))

	m.InitializePlugin("cycle")
	assert.True(t, m.EnablePlugin("cycle"))
	assert.False(t, m.EnablePlugin("cycle"))

	assert.True(t, m.DisablePlugin("cycle"))
	assert.False(t, m.DisablePlugin("cycle"))

	// Re-enable after disable.
	assert.True(t, m.EnablePlugin("cycle"))

	status, _ := m.Status("cycle")
	assert.Equal(t, StatusEnabled, status)
}

func TestLifecycleOpsOnUnknownPlugin(t *testing.T) {
	m := newTestManager()

	assert.False(t, m.EnablePlugin("ghost"))
	assert.False(t, m.DisablePlugin("ghost"))
	m.InitializePlugin("ghost")
	m.UnloadPlugin("ghost")
}

func TestUnloadCallsShutdownOnce(t *testing.T) {
	m := newTestManager()
	p := newTestPlugin("gone")
	enableTestPlugin(m, p)

	m.UnloadPlugin("gone")
	m.UnloadPlugin("gone")

	assert.Equal(t, int32(1), p.shutdownCalls.Load())
	_, ok := m.Status("gone")
	assert.False(t, ok)
}

func TestUnloadAbsorbsShutdownFailure(t *testing.T) {
	logger := NewTestLogger()
	m := NewManager(NewPluginContext(NewOperationRegistry(nil), nil), nil, logger)
	p := newTestPlugin("leaky")
	p.shutdownErr = fmt.Errorf("resource still busy")
	enableTestPlugin(m, p)

	m.UnloadPlugin("leaky")

	assert.Empty(t, m.Plugins())
	assert.True(t, logger.HasMessage("ERROR", "Error shutting down plugin"))
}

func TestUnloadAbsorbsShutdownPanic(t *testing.T) {
	logger := NewTestLogger()
	m := NewManager(NewPluginContext(NewOperationRegistry(nil), nil), nil, logger)
	p := &panickyPlugin{testPlugin: testPlugin{id: "volatile", name: "Volatile", version: "1.0.0"}}
	m.register(&pluginRecord{
		id:     "volatile",
		name:   p.Name(),
		plugin: p,
		status: StatusDiscovered,
		source: "volatile.so",
	})

	m.UnloadPlugin("volatile")

	assert.Empty(t, m.Plugins())
	assert.True(t, logger.HasMessage("ERROR", "Panic recovered"))
}

type panickyPlugin struct {
	testPlugin
}

func (p *panickyPlugin) Shutdown() error {
	panic("shutdown exploded")
}

func TestInitializeErrorStateBlocksEnable(t *testing.T) {
	m := newTestManager()
	p := newTestPlugin("bad")
	p.initErr = fmt.Errorf("nope")
	registerTestPlugin(m, p, "bad.so")

	m.InitializePlugin("bad")
	assert.False(t, m.EnablePlugin("bad"))

	status, _ := m.Status("bad")
	assert.Equal(t, StatusError, status)
}

// TestLifecycleTransitionsProperty drives a random sequence of lifecycle
// operations and checks the status stays within the legal transition graph.
func TestLifecycleTransitionsProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		m := newTestManager()
		p := newTestPlugin("prop")
		registerTestPlugin(m, p, "prop.so")

		current := StatusDiscovered
		ops := rapid.SliceOfN(rapid.SampledFrom([]string{"init", "enable", "disable"}), 1, 24).Draw(t, "ops")

		for _, op := range ops {
			switch op {
			case "init":
				m.InitializePlugin("prop")
				if current == StatusDiscovered {
					current = StatusInitialized
				}
			case "enable":
				changed := m.EnablePlugin("prop")
				expected := current == StatusInitialized || current == StatusDisabled
				if changed != expected {
					t.Fatalf("enable from %s: changed=%v expected=%v", current, changed, expected)
				}
				if changed {
					current = StatusEnabled
				}
			case "disable":
				changed := m.DisablePlugin("prop")
				expected := current == StatusEnabled
				if changed != expected {
					t.Fatalf("disable from %s: changed=%v expected=%v", current, changed, expected)
				}
				if changed {
					current = StatusDisabled
				}
			}

			status, ok := m.Status("prop")
			if !ok || status != current {
				t.Fatalf("status drifted: have %v want %v", status, current)
			}
		}

		// The init hook ran at most once regardless of the sequence.
		if calls := p.initCalls.Load(); calls > 1 {
			t.Fatalf("init hook ran %d times", calls)
		}
	})
}

func TestStatusTimestampsAdvance(t *testing.T) {
	m := newTestManager()
	p := newTestPlugin("stamped")
	registerTestPlugin(m, p, "stamped.so")

	rec := m.record("stamped")
	require.NotNil(t, rec)
	loaded := rec.loadedAt

	m.InitializePlugin("stamped")

	rec = m.record("stamped")
	assert.False(t, rec.statusAt.Before(loaded))
}
