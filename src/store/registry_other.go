//go:build !windows

package store

import "runtime"

// RegistryStore is unavailable off Windows; Open always fails so callers
// degrade the same way they would for a missing key.
type RegistryStore struct {
	Path string
}

func NewRegistry() *RegistryStore {
	return &RegistryStore{Path: LxssPath}
}

func (r *RegistryStore) Location() string { return `registry:HKCU\` + r.Path }

func (r *RegistryStore) Open(Mode) (Handle, error) {
	return nil, &UnsupportedError{Store: "registry", Reason: "the Windows registry is not available on " + runtime.GOOS}
}
