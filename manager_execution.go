// manager_execution.go: Invocation gateway dispatching by method name and named parameters
//
// Copyright (c) 2025 SimpleMethod - M. Mlodawski
// SPDX-License-Identifier: MPL-2.0

package docplugins

import (
	"context"
	"sort"
)

// resolveInvocable snapshots the plugin's invocable surface after gating on
// existence and lifecycle state.
func (m *Manager) resolveInvocable(pluginID string) ([]Method, error) {
	m.mu.RLock()
	rec, ok := m.plugins[pluginID]
	var (
		status  PluginStatus
		methods []Method
		live    bool
	)
	if ok {
		status = rec.status
		methods = rec.methods
		live = rec.plugin != nil
	}
	m.mu.RUnlock()

	if !ok || !live {
		return nil, NewPluginNotFoundError(pluginID)
	}
	if status != StatusEnabled {
		return nil, NewPluginNotEnabledError(pluginID, status)
	}
	return methods, nil
}

// matchMethod selects the unique method whose name matches and whose formal
// parameter names are set-equal to the supplied keys. When several overloads
// match, the first declared is used; this is a documented limitation of
// name-based matching, kept deterministic by declaration order.
func matchMethod(methods []Method, methodName string, params map[string]any) (Method, bool) {
	for _, method := range methods {
		if method.Name != methodName {
			continue
		}
		if method.matchesParams(params) {
			return method, true
		}
	}
	return Method{}, false
}

// Invoke executes the named method on an enabled plugin with the given
// name->value parameter map, then runs the result through the response
// handler chain.
//
// Failure modes, in order of checking: unknown plugin, plugin not enabled,
// no matching method (the error enumerates all same-named candidates),
// uncoercible parameter value, and a failure raised by the method itself
// (wrapped with the original cause preserved).
func (m *Manager) Invoke(pluginID, methodName string, params map[string]any) (any, error) {
	result, err := m.InvokeRaw(pluginID, methodName, params)
	if err != nil {
		return nil, err
	}
	return m.handlers.Process(result), nil
}

// InvokeRaw is Invoke without the response handler chain, for callers that
// post-process results themselves.
func (m *Manager) InvokeRaw(pluginID, methodName string, params map[string]any) (any, error) {
	methods, err := m.resolveInvocable(pluginID)
	if err != nil {
		return nil, err
	}

	method, ok := matchMethod(methods, methodName, params)
	if !ok {
		return nil, NewParameterMismatchError(pluginID, methodName,
			paramNames(params), signaturesNamed(methods, methodName))
	}

	args, err := orderArguments(method, params)
	if err != nil {
		return nil, err
	}

	m.logger.Debug("Invoking plugin method",
		"plugin_id", pluginID,
		"method", method.Signature())

	result, err := method.Call(args)
	if err != nil {
		m.logger.Error("Error invoking method",
			"plugin_id", pluginID,
			"method", methodName,
			"error", err)
		return nil, NewInvocationError(pluginID, methodName, err)
	}
	return result, nil
}

// InvokeWithContext is Invoke with caller-controlled cancellation. The method
// runs in its own goroutine; if the context ends first the call returns the
// context error and the eventual method result is discarded. The method
// goroutine itself cannot be killed, only abandoned.
func (m *Manager) InvokeWithContext(ctx context.Context, pluginID, methodName string, params map[string]any) (any, error) {
	methods, err := m.resolveInvocable(pluginID)
	if err != nil {
		return nil, err
	}

	method, ok := matchMethod(methods, methodName, params)
	if !ok {
		return nil, NewParameterMismatchError(pluginID, methodName,
			paramNames(params), signaturesNamed(methods, methodName))
	}

	args, err := orderArguments(method, params)
	if err != nil {
		return nil, err
	}

	type outcome struct {
		result any
		err    error
	}
	done := make(chan outcome, 1)
	go func() {
		var out outcome
		defer func() {
			recoverToError(recover(), &out.err)
			done <- out
		}()
		out.result, out.err = method.Call(args)
	}()

	select {
	case <-ctx.Done():
		m.logger.Warn("Invocation abandoned",
			"plugin_id", pluginID,
			"method", methodName,
			"reason", ctx.Err())
		return nil, NewInvocationError(pluginID, methodName, ctx.Err())
	case out := <-done:
		if out.err != nil {
			return nil, NewInvocationError(pluginID, methodName, out.err)
		}
		return m.handlers.Process(out.result), nil
	}
}

// MethodResultType resolves the declared result type of the method that the
// given parameter map would select, without invoking it.
func (m *Manager) MethodResultType(pluginID, methodName string, params map[string]any) (string, error) {
	m.mu.RLock()
	rec, ok := m.plugins[pluginID]
	var methods []Method
	live := false
	if ok {
		methods = rec.methods
		live = rec.plugin != nil
	}
	m.mu.RUnlock()

	if !ok || !live {
		return "", NewPluginNotFoundError(pluginID)
	}

	method, found := matchMethod(methods, methodName, params)
	if !found {
		return "", NewParameterMismatchError(pluginID, methodName,
			paramNames(params), signaturesNamed(methods, methodName))
	}
	return method.Result, nil
}

func paramNames(params map[string]any) []string {
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
