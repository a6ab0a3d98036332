// archive_unix.go: Shared-library archive opener backed by the runtime plugin loader
//
// Copyright (c) 2025 SimpleMethod - M. Mlodawski
// SPDX-License-Identifier: MPL-2.0

//go:build linux || darwin || freebsd

package docplugins

import "plugin"

// SharedLibraryOpener opens .so plugin archives built with -buildmode=plugin.
type SharedLibraryOpener struct{}

// NewSharedLibraryOpener creates the production archive opener.
func NewSharedLibraryOpener() *SharedLibraryOpener {
	return &SharedLibraryOpener{}
}

// Open implements ArchiveOpener.
func (SharedLibraryOpener) Open(path string) (Archive, error) {
	p, err := plugin.Open(path)
	if err != nil {
		return nil, NewArchiveOpenError(path, err)
	}
	return sharedLibraryArchive{p: p}, nil
}

type sharedLibraryArchive struct {
	p *plugin.Plugin
}

func (a sharedLibraryArchive) Lookup(symbol string) (any, error) {
	return a.p.Lookup(symbol)
}

// Close is a no-op: the runtime keeps loaded shared libraries mapped for the
// life of the process. Unloading a plugin only drops the host's references.
func (sharedLibraryArchive) Close() error { return nil }
