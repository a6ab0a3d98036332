// registry.go: Process-wide catalog of host operations
//
// Copyright (c) 2025 SimpleMethod - M. Mlodawski
// SPDX-License-Identifier: MPL-2.0

package docplugins

import (
	"sort"
	"sync"
)

// OperationRegistry is the concurrently-accessible catalog mapping operation
// ids to their descriptors. It is populated once during host startup and read
// from arbitrarily many goroutines afterwards; occasional writers (re-registration,
// tests) never block readers longer than a map insert.
//
// Insertion with an existing key replaces the prior entry: last write wins,
// with a warning logged. Rejecting duplicates was considered and deliberately
// not done, matching the permissive overwrite the rest of the runtime relies
// on for plugin replacement.
type OperationRegistry struct {
	mu         sync.RWMutex
	operations map[string]Operation
	logger     Logger
}

// NewOperationRegistry creates an empty registry.
func NewOperationRegistry(logger Logger) *OperationRegistry {
	return &OperationRegistry{
		operations: make(map[string]Operation),
		logger:     NewLogger(logger),
	}
}

// RegisterOperation inserts the operation, replacing any prior entry with the
// same id.
func (r *OperationRegistry) RegisterOperation(op Operation) {
	r.mu.Lock()
	_, replaced := r.operations[op.OperationID()]
	r.operations[op.OperationID()] = op
	r.mu.Unlock()

	if replaced {
		r.logger.Warn("Operation replaced by re-registration", "operation_id", op.OperationID())
	}
}

// GetOperation returns the operation registered under the id. A miss is a
// caller error and yields an unknown-operation failure, never a nil result.
func (r *OperationRegistry) GetOperation(operationID string) (Operation, error) {
	r.mu.RLock()
	op, ok := r.operations[operationID]
	r.mu.RUnlock()

	if !ok {
		return nil, NewUnknownOperationError(operationID)
	}
	return op, nil
}

// HasOperation reports whether an operation is registered under the id.
func (r *OperationRegistry) HasOperation(operationID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.operations[operationID]
	return ok
}

// RemoveOperation deletes the operation registered under the id, if any.
func (r *OperationRegistry) RemoveOperation(operationID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.operations, operationID)
}

// AvailableOperations returns the sorted ids of all registered operations.
func (r *OperationRegistry) AvailableOperations() []string {
	r.mu.RLock()
	ids := make([]string, 0, len(r.operations))
	for id := range r.operations {
		ids = append(ids, id)
	}
	r.mu.RUnlock()

	sort.Strings(ids)
	return ids
}
