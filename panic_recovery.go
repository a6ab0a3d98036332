// panic_recovery.go: Panic recovery with stack trace capture
//
// Copyright (c) 2025 SimpleMethod - M. Mlodawski
// SPDX-License-Identifier: MPL-2.0

package docplugins

import (
	"fmt"
	"runtime"
)

// withStackRecover returns a recovery function that logs the panic value and
// the full stack trace. Plugin hooks and entry-point constructors run inside
// it so a misbehaving plugin cannot take the host down.
//
// Usage:
//
//	defer withStackRecover(logger)()
func withStackRecover(logger Logger) func() {
	return func() {
		if r := recover(); r != nil {
			buf := make([]byte, 64<<10)
			n := runtime.Stack(buf, false)

			logger.Error("Panic recovered",
				"panic", r,
				"stack", string(buf[:n]))
		}
	}
}

// recoverToError converts a recovered panic value into an error assigned to
// *err, preserving an existing error. Used where a panicking plugin call must
// surface as a normal failure to the caller.
//
// Usage:
//
//	defer func() { recoverToError(recover(), &err) }()
func recoverToError(recovered any, err *error) {
	if recovered == nil {
		return
	}
	if *err == nil {
		*err = fmt.Errorf("panic: %v", recovered)
	}
}

// SafeGo runs fn in a new goroutine with panic recovery, so background work
// spawned around plugin code cannot crash the process.
func SafeGo(logger Logger, fn func()) {
	go func() {
		defer withStackRecover(logger)()
		fn()
	}()
}
