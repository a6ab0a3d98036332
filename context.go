// context.go: Default PluginContext implementation
//
// Copyright (c) 2025 SimpleMethod - M. Mlodawski
// SPDX-License-Identifier: MPL-2.0

package docplugins

// BasePluginContext is the standard PluginContext handed to plugins during
// initialization. It resolves operations against an OperationRegistry and
// routes plugin log calls into the host logger under a "plugin" scope.
type BasePluginContext struct {
	registry *OperationRegistry
	logger   Logger
}

// NewPluginContext creates a context over the given registry.
func NewPluginContext(registry *OperationRegistry, logger Logger) *BasePluginContext {
	return &BasePluginContext{
		registry: registry,
		logger:   NewLogger(logger).With("scope", "plugin"),
	}
}

// ExecuteOperation implements PluginContext.
func (c *BasePluginContext) ExecuteOperation(operationID string, params ...any) (any, error) {
	c.logger.Debug("Executing operation", "operation_id", operationID, "param_count", len(params))

	op, err := c.registry.GetOperation(operationID)
	if err != nil {
		return nil, err
	}
	return op.Execute(params...)
}

// OperationRegistry implements PluginContext.
func (c *BasePluginContext) OperationRegistry() *OperationRegistry {
	return c.registry
}

// Log implements PluginContext.
func (c *BasePluginContext) Log(msg string) {
	c.logger.Info(msg)
}

// LogError implements PluginContext.
func (c *BasePluginContext) LogError(msg string, err error) {
	c.logger.Error(msg, "error", err)
}
