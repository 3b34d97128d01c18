package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	yaml "gopkg.in/yaml.v2"
)

// FileStore keeps the distribution tree in a YAML document shaped like the
// Lxss key, so an exported registry snapshot can be listed and edited on
// any host. Child order in the file is the enumeration order.
//
//	Values:
//	  DefaultDistribution: "{0b1c...}"
//	Distributions:
//	  - Key: "{0b1c...}"
//	    Values:
//	      DistributionName: Ubuntu
//	      BasePath: C:\WSL\Ubuntu
type FileStore struct {
	Path string
}

type fileDoc struct {
	Values        map[string]string `yaml:"Values,omitempty"`
	Distributions []Child           `yaml:"Distributions"`
}

func NewFile(path string) *FileStore {
	return &FileStore{Path: path}
}

func (s *FileStore) Location() string { return "file:" + s.Path }

func (s *FileStore) Open(mode Mode) (Handle, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, s.mapErr("open", err)
	}
	if mode == ReadWrite {
		// Probe write permission up front, as a registry open would.
		f, err := os.OpenFile(s.Path, os.O_WRONLY, 0)
		if err != nil {
			return nil, s.mapErr("open", err)
		}
		f.Close()
	}
	var doc fileDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.Path, err)
	}
	if err := checkKeys(doc.Distributions); err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.Path, err)
	}
	return &fileHandle{s: s, mode: mode, doc: doc}, nil
}

func (s *FileStore) mapErr(op string, err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return &NotFoundError{Resource: "store file", Name: s.Path}
	case errors.Is(err, fs.ErrPermission):
		return &AccessDeniedError{Op: op, Path: s.Path, Err: err}
	}
	return fmt.Errorf("%s %s: %w", op, s.Path, err)
}

type fileHandle struct {
	s      *FileStore
	mode   Mode
	doc    fileDoc
	closed bool
}

// checkKeys rejects repeated child keys. Keys compare case-insensitively,
// as registry key names do.
func checkKeys(children []Child) error {
	seen := make(map[string]struct{}, len(children))
	for _, c := range children {
		k := strings.ToLower(c.Key)
		if _, dup := seen[k]; dup {
			return fmt.Errorf("duplicate distribution key %q", c.Key)
		}
		seen[k] = struct{}{}
	}
	return nil
}

func (h *fileHandle) child(key string) (*Child, bool) {
	for i := range h.doc.Distributions {
		if strings.EqualFold(h.doc.Distributions[i].Key, key) {
			return &h.doc.Distributions[i], true
		}
	}
	return nil, false
}

func (h *fileHandle) ChildKeys() ([]string, error) {
	if h.closed {
		return nil, errClosed
	}
	keys := make([]string, 0, len(h.doc.Distributions))
	for _, c := range h.doc.Distributions {
		keys = append(keys, c.Key)
	}
	return keys, nil
}

func (h *fileHandle) Value(child, name string) (string, bool, error) {
	if h.closed {
		return "", false, errClosed
	}
	vals := h.doc.Values
	if child != "" {
		c, ok := h.child(child)
		if !ok {
			return "", false, &NotFoundError{Resource: "key", Name: child}
		}
		vals = c.Values
	}
	v, ok := vals[name]
	return v, ok, nil
}

// SetValue updates the in-memory document and rewrites the file at once, so
// each write is visible to other readers the way a registry write is.
func (h *fileHandle) SetValue(child, name, value string) error {
	if h.closed {
		return errClosed
	}
	if h.mode != ReadWrite {
		return &AccessDeniedError{Op: "write", Path: h.s.Path}
	}
	if child == "" {
		if h.doc.Values == nil {
			h.doc.Values = map[string]string{}
		}
		h.doc.Values[name] = value
	} else {
		c, ok := h.child(child)
		if !ok {
			return &NotFoundError{Resource: "key", Name: child}
		}
		if c.Values == nil {
			c.Values = map[string]string{}
		}
		c.Values[name] = value
	}
	data, err := yaml.Marshal(h.doc)
	if err != nil {
		return fmt.Errorf("encode %s: %w", h.s.Path, err)
	}
	if err := writeFileAtomic(h.s.Path, data, 0o644); err != nil {
		return h.s.mapErr("write", err)
	}
	return nil
}

func (h *fileHandle) Close() error {
	if h.closed {
		return errClosed
	}
	h.closed = true
	return nil
}

// WriteFile serialises a tree into a store file. Children are written in
// the order given.
func WriteFile(path string, root map[string]string, children []Child) error {
	doc := fileDoc{Values: root, Distributions: children}
	data, err := yaml.Marshal(doc)
	if err != nil {
		return err
	}
	return writeFileAtomic(path, data, 0o644)
}
