// errors.go: structured error definitions for the plugin runtime
//
// Copyright (c) 2025 SimpleMethod - M. Mlodawski
// SPDX-License-Identifier: MPL-2.0

package docplugins

import (
	"fmt"
	"strings"

	"github.com/agilira/go-errors"
)

// Error codes for the plugin runtime
const (
	// Discovery errors (1100-1199)
	ErrCodeArchiveOpen    = "PLUGIN_1101"
	ErrCodeManifestAbsent = "PLUGIN_1102"
	ErrCodeManifestParse  = "PLUGIN_1103"
	ErrCodeEntryPoint     = "PLUGIN_1104"

	// Lifecycle errors (1200-1299)
	ErrCodePluginNotFound   = "PLUGIN_1201"
	ErrCodePluginNotEnabled = "PLUGIN_1202"

	// Invocation errors (1300-1399)
	ErrCodeParameterMismatch = "INVOKE_1301"
	ErrCodeCoercionFailure   = "INVOKE_1302"
	ErrCodeInvocationFailed  = "INVOKE_1303"

	// Operation registry errors (1400-1499)
	ErrCodeUnknownOperation = "REGISTRY_1401"
	ErrCodeOperationFailed  = "REGISTRY_1402"

	// Configuration errors (1500-1599)
	ErrCodeConfigNotFound   = "CONFIG_1501"
	ErrCodeConfigParse      = "CONFIG_1502"
	ErrCodeConfigValidation = "CONFIG_1503"
	ErrCodeConfigWatcher    = "CONFIG_1504"

	// Watcher errors (1600-1699)
	ErrCodeWatcherInit = "WATCH_1601"
)

// Discovery error constructors

func NewArchiveOpenError(path string, cause error) *errors.Error {
	return errors.Wrap(cause, ErrCodeArchiveOpen, "Failed to open plugin archive").
		WithUserMessage("The plugin archive could not be loaded").
		WithContext("archive_path", path).
		WithSeverity("error")
}

func NewManifestAbsentError(archive string) *errors.Error {
	return errors.New(ErrCodeManifestAbsent, "Plugin manifest not found in archive").
		WithUserMessage("The plugin archive does not declare a manifest entry").
		WithContext("archive", archive).
		WithSeverity("error")
}

func NewManifestParseError(archive string, cause error) *errors.Error {
	return errors.Wrap(cause, ErrCodeManifestParse, "Failed to parse plugin manifest").
		WithUserMessage("The plugin manifest is not valid JSON or YAML").
		WithContext("archive", archive).
		WithSeverity("error")
}

func NewEntryPointError(archive, entryPoint string, cause error) *errors.Error {
	return errors.Wrap(cause, ErrCodeEntryPoint, "Failed to instantiate plugin entry point").
		WithUserMessage("A plugin entry point could not be created").
		WithContext("archive", archive).
		WithContext("entry_point", entryPoint).
		WithSeverity("error")
}

// Lifecycle error constructors

func NewPluginNotFoundError(pluginID string) *errors.Error {
	return errors.New(ErrCodePluginNotFound, "Plugin not found").
		WithUserMessage("No plugin is loaded under the requested id").
		WithContext("plugin_id", pluginID).
		WithSeverity("error")
}

func NewPluginNotEnabledError(pluginID string, status PluginStatus) *errors.Error {
	return errors.New(ErrCodePluginNotEnabled, "Plugin is not enabled").
		WithUserMessage("The plugin must be enabled before it can be invoked").
		WithContext("plugin_id", pluginID).
		WithContext("status", status.String()).
		WithSeverity("warning")
}

// Invocation error constructors

func NewParameterMismatchError(pluginID, methodName string, paramNames []string, candidates []string) *errors.Error {
	msg := fmt.Sprintf("No method %s matches parameters [%s]", methodName, strings.Join(paramNames, ", "))
	if len(candidates) > 0 {
		msg += ". Available candidates:\n  " + strings.Join(candidates, "\n  ")
	}
	return errors.New(ErrCodeParameterMismatch, msg).
		WithUserMessage("No plugin method matches the supplied parameter names").
		WithContext("plugin_id", pluginID).
		WithContext("method", methodName).
		WithSeverity("error")
}

func NewCoercionError(paramName, expectedType string, value any) *errors.Error {
	return errors.New(ErrCodeCoercionFailure,
		fmt.Sprintf("Invalid value for parameter %s: expected %s, got %T", paramName, expectedType, value)).
		WithUserMessage("A parameter value could not be converted to the expected type").
		WithContext("parameter", paramName).
		WithContext("expected_type", expectedType).
		WithContext("actual_type", fmt.Sprintf("%T", value)).
		WithSeverity("error")
}

func NewInvocationError(pluginID, methodName string, cause error) *errors.Error {
	return errors.Wrap(cause, ErrCodeInvocationFailed, "Plugin method invocation failed").
		WithUserMessage("The plugin method raised an error").
		WithContext("plugin_id", pluginID).
		WithContext("method", methodName).
		WithSeverity("error")
}

// Operation registry error constructors

func NewUnknownOperationError(operationID string) *errors.Error {
	return errors.New(ErrCodeUnknownOperation, "Unknown operation: "+operationID).
		WithUserMessage("The requested operation is not registered").
		WithContext("operation_id", operationID).
		WithSeverity("error")
}

func NewOperationExecutionError(operationID string, cause error) *errors.Error {
	return errors.Wrap(cause, ErrCodeOperationFailed, "Error executing operation "+operationID).
		WithUserMessage("The host operation failed").
		WithContext("operation_id", operationID).
		WithSeverity("error")
}

// Configuration error constructors

func NewConfigNotFoundError(path string) *errors.Error {
	return errors.New(ErrCodeConfigNotFound, "Configuration file not found").
		WithUserMessage("The configuration file could not be found").
		WithContext("config_path", path).
		WithSeverity("error")
}

func NewConfigParseError(path string, cause error) *errors.Error {
	return errors.Wrap(cause, ErrCodeConfigParse, "Configuration parse error").
		WithUserMessage("Failed to parse configuration file").
		WithContext("config_path", path).
		WithSeverity("error")
}

func NewConfigValidationError(message string) *errors.Error {
	return errors.New(ErrCodeConfigValidation, "Configuration validation error: "+message).
		WithUserMessage("Configuration validation failed").
		WithSeverity("error")
}

func NewConfigWatcherError(message string, cause error) *errors.Error {
	err := errors.New(ErrCodeConfigWatcher, "Configuration watcher error: "+message)
	if cause != nil {
		err = errors.Wrap(cause, ErrCodeConfigWatcher, "Configuration watcher error: "+message)
	}
	return err.
		WithUserMessage("Configuration monitoring failed").
		WithSeverity("error")
}

// Watcher error constructors

func NewWatcherInitError(dir string, cause error) *errors.Error {
	return errors.Wrap(cause, ErrCodeWatcherInit, "Failed to start directory watcher").
		WithUserMessage("The plugin directory cannot be watched").
		WithContext("directory", dir).
		WithSeverity("error")
}
