// operation.go: Host operation contract and adapter closures
//
// Copyright (c) 2025 SimpleMethod - M. Mlodawski
// SPDX-License-Identifier: MPL-2.0

package docplugins

// Operation is a named host capability that plugins invoke indirectly by
// string key through their PluginContext. Operation ids follow the
// "Service.method" convention, e.g. "SearchText.replaceValue".
type Operation interface {
	// OperationID returns the unique key the operation is registered under.
	OperationID() string

	// ResultType names the type the operation produces, for diagnostics and
	// host surfaces that list the catalog.
	ResultType() string

	// Execute runs the operation with the given parameters.
	Execute(params ...any) (any, error)
}

// OperationFunc is the adapter closure wrapped by NewOperation.
type OperationFunc func(params ...any) (any, error)

// funcOperation binds an id and result type to an adapter closure. Host
// services expose their callable members as funcOperations instead of being
// discovered by reflection, so the registry holds an explicit schema.
type funcOperation struct {
	id         string
	resultType string
	fn         OperationFunc
}

// NewOperation wraps fn into an Operation registered under id. A failure of
// fn is wrapped with the operation id attached, preserving the original
// cause.
func NewOperation(id, resultType string, fn OperationFunc) Operation {
	return &funcOperation{id: id, resultType: resultType, fn: fn}
}

func (o *funcOperation) OperationID() string { return o.id }

func (o *funcOperation) ResultType() string { return o.resultType }

func (o *funcOperation) Execute(params ...any) (any, error) {
	result, err := o.fn(params...)
	if err != nil {
		return nil, NewOperationExecutionError(o.id, err)
	}
	return result, nil
}

// OperationProvider is implemented by host services that expose operations
// to plugins. Providers are walked once, early in host startup.
type OperationProvider interface {
	ExposedOperations() []Operation
}

// RegisterServiceOperations registers every operation exposed by the given
// host services. Later registrations replace earlier ones with the same id.
func RegisterServiceOperations(registry *OperationRegistry, logger Logger, services ...OperationProvider) {
	logger = NewLogger(logger)
	for _, service := range services {
		for _, op := range service.ExposedOperations() {
			registry.RegisterOperation(op)
			logger.Info("Registered operation",
				"operation_id", op.OperationID(),
				"result_type", op.ResultType())
		}
	}
}
