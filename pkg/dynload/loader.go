// Package dynload is the bridge's pluggable dynamic-library collaborator.
// Spec.md §1 keeps "the platform dynamic-loader wrapper" out of scope
// and assumes a library that can dlopen a shared object and resolve a
// symbol by name — Loader is that assumption made concrete, backed by
// github.com/ebitengine/purego so the same code path works unmodified
// across the platforms purego supports.
package dynload

import (
	"fmt"

	"github.com/ebitengine/purego"
)

// Library is a shared object opened for the lifetime of one plugin
// instance. Call Close exactly once when the instance is destroyed.
type Library struct {
	path   string
	handle uintptr
}

// Open dlopens path with RTLD_NOW so missing symbols fail immediately
// rather than at first call.
func Open(path string) (*Library, error) {
	handle, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return nil, fmt.Errorf("dynload: open %s: %w", path, err)
	}
	return &Library{path: path, handle: handle}, nil
}

// Sym resolves a symbol's address, or returns an error if it is absent.
func (l *Library) Sym(name string) (uintptr, error) {
	addr, err := purego.Dlsym(l.handle, name)
	if err != nil {
		return 0, fmt.Errorf("dynload: %s: symbol %s: %w", l.path, name, err)
	}
	return addr, nil
}

// HasSym reports whether name is exported, without the error wrapping
// Sym does — used by the resolver's probe pass.
func (l *Library) HasSym(name string) bool {
	_, err := purego.Dlsym(l.handle, name)
	return err == nil
}

// Path returns the path Library was opened with.
func (l *Library) Path() string { return l.path }

// Close releases the library. Safe to call at most once.
func (l *Library) Close() error {
	if l.handle == 0 {
		return nil
	}
	err := purego.Dlclose(l.handle)
	l.handle = 0
	return err
}

// Opener implements resolver.LibraryOpener by opening and immediately
// closing each library it probes. The bridge core keeps its own
// separate, long-lived *Library per instance via Open.
type Opener struct{}

// HasSymbol opens path, checks for symbol, and closes the library
// again — a throwaway probe, not the instance's real handle.
func (Opener) HasSymbol(path, symbol string) (bool, error) {
	lib, err := Open(path)
	if err != nil {
		return false, err
	}
	defer lib.Close()
	return lib.HasSym(symbol), nil
}
