// logging.go: Pluggable logging with a logrus adapter
//
// Copyright (c) 2025 SimpleMethod - M. Mlodawski
// SPDX-License-Identifier: MPL-2.0

package docplugins

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Logger is the pluggable logging interface used throughout the runtime.
// Any structured logging framework can be adapted to it; LogrusAdapter is
// provided for logrus, NoOpLogger for silent operation and TestLogger for
// assertions in tests.
type Logger interface {
	// Debug logs a debug message with optional key-value pairs.
	Debug(msg string, args ...any)

	// Info logs an info message with optional key-value pairs.
	Info(msg string, args ...any)

	// Warn logs a warning message with optional key-value pairs.
	Warn(msg string, args ...any)

	// Error logs an error message with optional key-value pairs.
	Error(msg string, args ...any)

	// With returns a new logger carrying persistent context key-value pairs.
	With(args ...any) Logger
}

// LevelSetter is implemented by loggers whose verbosity can be adjusted at
// runtime; the configuration hot-reload path uses it to apply log level
// changes without a restart.
type LevelSetter interface {
	SetLevel(level string) error
}

// NewLogger normalizes a logger argument: a Logger is used directly, nil
// yields a NoOpLogger.
func NewLogger(logger Logger) Logger {
	if logger == nil {
		return NewNoOpLogger()
	}
	return logger
}

// DefaultLogger returns the logger used when none is supplied.
func DefaultLogger() Logger {
	return NewNoOpLogger()
}

// NoOpLogger discards all log output.
type NoOpLogger struct{}

// NewNoOpLogger creates a new no-operation logger.
func NewNoOpLogger() *NoOpLogger {
	return &NoOpLogger{}
}

func (n *NoOpLogger) Debug(msg string, args ...any) {}
func (n *NoOpLogger) Info(msg string, args ...any)  {}
func (n *NoOpLogger) Warn(msg string, args ...any)  {}
func (n *NoOpLogger) Error(msg string, args ...any) {}
func (n *NoOpLogger) With(args ...any) Logger       { return n }

// LogrusAdapter adapts a *logrus.Logger to the Logger interface. Key-value
// argument pairs become logrus fields; a trailing unpaired argument is
// recorded under the "arg" field.
type LogrusAdapter struct {
	logger *logrus.Logger
	fields logrus.Fields
}

// NewLogrusAdapter wraps the given logrus logger. A nil argument wraps
// logrus.StandardLogger().
func NewLogrusAdapter(logger *logrus.Logger) *LogrusAdapter {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &LogrusAdapter{logger: logger, fields: logrus.Fields{}}
}

func (l *LogrusAdapter) entry(args []any) *logrus.Entry {
	fields := make(logrus.Fields, len(l.fields)+len(args)/2)
	for k, v := range l.fields {
		fields[k] = v
	}
	for i := 0; i+1 < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			continue
		}
		fields[key] = args[i+1]
	}
	if len(args)%2 != 0 {
		fields["arg"] = args[len(args)-1]
	}
	return l.logger.WithFields(fields)
}

func (l *LogrusAdapter) Debug(msg string, args ...any) { l.entry(args).Debug(msg) }
func (l *LogrusAdapter) Info(msg string, args ...any)  { l.entry(args).Info(msg) }
func (l *LogrusAdapter) Warn(msg string, args ...any)  { l.entry(args).Warn(msg) }
func (l *LogrusAdapter) Error(msg string, args ...any) { l.entry(args).Error(msg) }

// With returns a new adapter with the given key-value pairs merged into its
// persistent fields.
func (l *LogrusAdapter) With(args ...any) Logger {
	fields := make(logrus.Fields, len(l.fields)+len(args)/2)
	for k, v := range l.fields {
		fields[k] = v
	}
	for i := 0; i+1 < len(args); i += 2 {
		if key, ok := args[i].(string); ok {
			fields[key] = args[i+1]
		}
	}
	return &LogrusAdapter{logger: l.logger, fields: fields}
}

// SetLevel implements LevelSetter using logrus level parsing.
func (l *LogrusAdapter) SetLevel(level string) error {
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	l.logger.SetLevel(parsed)
	return nil
}

// TestLogger captures log messages for assertions in tests.
type TestLogger struct {
	mu       sync.RWMutex
	Messages []TestLogMessage
}

// TestLogMessage is a single captured log record.
type TestLogMessage struct {
	Level   string
	Message string
	Args    []any
}

// NewTestLogger creates a new capturing logger.
func NewTestLogger() *TestLogger {
	return &TestLogger{Messages: make([]TestLogMessage, 0)}
}

func (t *TestLogger) record(level, msg string, args []any) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.Messages = append(t.Messages, TestLogMessage{Level: level, Message: msg, Args: args})
}

func (t *TestLogger) Debug(msg string, args ...any) { t.record("DEBUG", msg, args) }
func (t *TestLogger) Info(msg string, args ...any)  { t.record("INFO", msg, args) }
func (t *TestLogger) Warn(msg string, args ...any)  { t.record("WARN", msg, args) }
func (t *TestLogger) Error(msg string, args ...any) { t.record("ERROR", msg, args) }

// With returns the same logger; tests assert on the flat message list.
func (t *TestLogger) With(args ...any) Logger { return t }

// HasMessage reports whether a message with the given level and exact text
// was captured.
func (t *TestLogger) HasMessage(level, message string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, msg := range t.Messages {
		if msg.Level == level && msg.Message == message {
			return true
		}
	}
	return false
}

// Count returns the number of captured messages.
func (t *TestLogger) Count() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.Messages)
}

// Clear removes all captured messages.
func (t *TestLogger) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.Messages = t.Messages[:0]
}
