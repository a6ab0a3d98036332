// registry_test.go: Operation registry behavior
//
// Copyright (c) 2025 SimpleMethod - M. Mlodawski
// SPDX-License-Identifier: MPL-2.0

package docplugins

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOperationRegistryRegisterAndGet(t *testing.T) {
	registry := NewOperationRegistry(nil)

	registry.RegisterOperation(NewOperation("SearchText.replaceValue", "string",
		func(params ...any) (any, error) {
			return params[0], nil
		}))

	op, err := registry.GetOperation("SearchText.replaceValue")
	require.NoError(t, err)
	assert.Equal(t, "SearchText.replaceValue", op.OperationID())
	assert.Equal(t, "string", op.ResultType())

	result, err := op.Execute("hello")
	require.NoError(t, err)
	assert.Equal(t, "hello", result)
}

func TestOperationRegistryUnknownOperation(t *testing.T) {
	registry := NewOperationRegistry(nil)

	op, err := registry.GetOperation("Missing.operation")
	require.Error(t, err)
	assert.Nil(t, op)
	assert.Equal(t, ErrCodeUnknownOperation, errCode(t, err))
}

func TestOperationRegistryLastWriteWins(t *testing.T) {
	logger := NewTestLogger()
	registry := NewOperationRegistry(logger)

	registry.RegisterOperation(NewOperation("Docs.render", "string",
		func(params ...any) (any, error) { return "first", nil }))
	registry.RegisterOperation(NewOperation("Docs.render", "string",
		func(params ...any) (any, error) { return "second", nil }))

	op, err := registry.GetOperation("Docs.render")
	require.NoError(t, err)

	result, err := op.Execute()
	require.NoError(t, err)
	assert.Equal(t, "second", result)

	assert.True(t, logger.HasMessage("WARN", "Operation replaced by re-registration"))
}

func TestOperationRegistryHasAndRemove(t *testing.T) {
	registry := NewOperationRegistry(nil)
	registry.RegisterOperation(NewOperation("Docs.render", "string",
		func(params ...any) (any, error) { return nil, nil }))

	assert.True(t, registry.HasOperation("Docs.render"))

	registry.RemoveOperation("Docs.render")
	assert.False(t, registry.HasOperation("Docs.render"))

	// Removing twice is harmless.
	registry.RemoveOperation("Docs.render")
}

func TestOperationRegistryAvailableOperationsSorted(t *testing.T) {
	registry := NewOperationRegistry(nil)
	for _, id := range []string{"Zeta.op", "Alpha.op", "Mid.op"} {
		registry.RegisterOperation(NewOperation(id, "any",
			func(params ...any) (any, error) { return nil, nil }))
	}

	assert.Equal(t, []string{"Alpha.op", "Mid.op", "Zeta.op"}, registry.AvailableOperations())
}

func TestOperationExecutionFailureWrapped(t *testing.T) {
	registry := NewOperationRegistry(nil)
	registry.RegisterOperation(NewOperation("Docs.fail", "any",
		func(params ...any) (any, error) {
			return nil, fmt.Errorf("backend unavailable")
		}))

	op, err := registry.GetOperation("Docs.fail")
	require.NoError(t, err)

	_, err = op.Execute()
	require.Error(t, err)
	assert.Equal(t, ErrCodeOperationFailed, errCode(t, err))
	assert.Contains(t, err.Error(), "backend unavailable")
}

func TestOperationRegistryConcurrentAccess(t *testing.T) {
	registry := NewOperationRegistry(nil)
	registry.RegisterOperation(NewOperation("Docs.render", "string",
		func(params ...any) (any, error) { return "ok", nil }))

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			registry.RegisterOperation(NewOperation(fmt.Sprintf("Op.%d", n), "any",
				func(params ...any) (any, error) { return nil, nil }))
		}(i)
		go func() {
			defer wg.Done()
			op, err := registry.GetOperation("Docs.render")
			assert.NoError(t, err)
			result, err := op.Execute()
			assert.NoError(t, err)
			assert.Equal(t, "ok", result)
		}()
	}
	wg.Wait()

	assert.Len(t, registry.AvailableOperations(), 33)
}

func TestRegisterServiceOperations(t *testing.T) {
	registry := NewOperationRegistry(nil)

	RegisterServiceOperations(registry, nil, stubService{}, stubService{prefix: "Other"})

	assert.True(t, registry.HasOperation("Stub.echo"))
	assert.True(t, registry.HasOperation("Other.echo"))
}

type stubService struct {
	prefix string
}

func (s stubService) ExposedOperations() []Operation {
	prefix := s.prefix
	if prefix == "" {
		prefix = "Stub"
	}
	return []Operation{
		NewOperation(prefix+".echo", "string", func(params ...any) (any, error) {
			if len(params) == 0 {
				return "", nil
			}
			return params[0], nil
		}),
	}
}
