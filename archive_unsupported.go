// archive_unsupported.go: Stub archive opener for platforms without shared-library plugins
//
// Copyright (c) 2025 SimpleMethod - M. Mlodawski
// SPDX-License-Identifier: MPL-2.0

//go:build !linux && !darwin && !freebsd

package docplugins

import "errors"

// SharedLibraryOpener is unavailable on this platform; Open always fails.
type SharedLibraryOpener struct{}

// NewSharedLibraryOpener creates the stub opener.
func NewSharedLibraryOpener() *SharedLibraryOpener {
	return &SharedLibraryOpener{}
}

// Open implements ArchiveOpener.
func (SharedLibraryOpener) Open(path string) (Archive, error) {
	return nil, NewArchiveOpenError(path, errors.New("shared-library plugins are not supported on this platform"))
}
