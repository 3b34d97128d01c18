//go:build windows

package store

import (
	"errors"
	"fmt"

	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"
)

// RegistryStore reads and writes the Lxss key under HKEY_CURRENT_USER using
// the 64-bit registry view.
type RegistryStore struct {
	Path string
}

// NewRegistry returns a store rooted at the well-known Lxss key.
func NewRegistry() *RegistryStore {
	return &RegistryStore{Path: LxssPath}
}

func (r *RegistryStore) Location() string { return `registry:HKCU\` + r.Path }

func (r *RegistryStore) Open(mode Mode) (Handle, error) {
	access := uint32(registry.READ | registry.WOW64_64KEY)
	if mode == ReadWrite {
		access |= registry.WRITE
	}
	k, err := registry.OpenKey(registry.CURRENT_USER, r.Path, access)
	if err != nil {
		return nil, mapRegistryErr("open", `HKCU\`+r.Path, err)
	}
	return &registryHandle{path: r.Path, key: k, mode: mode}, nil
}

type registryHandle struct {
	path   string
	key    registry.Key
	mode   Mode
	closed bool
}

func (h *registryHandle) ChildKeys() ([]string, error) {
	if h.closed {
		return nil, errClosed
	}
	names, err := h.key.ReadSubKeyNames(-1)
	if err != nil {
		return nil, mapRegistryErr("enumerate", h.path, err)
	}
	return names, nil
}

func (h *registryHandle) Value(child, name string) (string, bool, error) {
	if h.closed {
		return "", false, errClosed
	}
	if child == "" {
		return readString(h.key, h.path, name)
	}
	sub, err := registry.OpenKey(h.key, child, registry.QUERY_VALUE|registry.WOW64_64KEY)
	if err != nil {
		return "", false, mapRegistryErr("open", h.path+`\`+child, err)
	}
	defer sub.Close()
	return readString(sub, h.path+`\`+child, name)
}

func (h *registryHandle) SetValue(child, name, value string) error {
	if h.closed {
		return errClosed
	}
	if h.mode != ReadWrite {
		return &AccessDeniedError{Op: "write", Path: h.path + `\` + child}
	}
	target := h.key
	path := h.path
	if child != "" {
		path = h.path + `\` + child
		sub, err := registry.OpenKey(h.key, child, registry.SET_VALUE|registry.WOW64_64KEY)
		if err != nil {
			return mapRegistryErr("open", path, err)
		}
		defer sub.Close()
		target = sub
	}
	if err := target.SetStringValue(name, value); err != nil {
		return mapRegistryErr("write", path+`\`+name, err)
	}
	return nil
}

func (h *registryHandle) Close() error {
	if h.closed {
		return errClosed
	}
	h.closed = true
	return h.key.Close()
}

func readString(k registry.Key, path, name string) (string, bool, error) {
	v, _, err := k.GetStringValue(name)
	if errors.Is(err, registry.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, mapRegistryErr("read", path+`\`+name, err)
	}
	return v, true, nil
}

func mapRegistryErr(op, path string, err error) error {
	switch {
	case errors.Is(err, registry.ErrNotExist):
		return &NotFoundError{Resource: "registry key", Name: path}
	case errors.Is(err, windows.ERROR_ACCESS_DENIED):
		return &AccessDeniedError{Op: op, Path: path, Err: err}
	}
	return fmt.Errorf("registry %s %s: %w", op, path, err)
}
