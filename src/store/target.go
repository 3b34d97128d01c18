package store

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Target is a parsed store URI.
// Examples: "registry:", "file:/srv/wsl/lxss.yaml"
type Target struct {
	// Raw is the original input string.
	Raw string
	// Scheme is "registry" or "file".
	Scheme string
	// FilePath is set when Scheme == "file" and holds a cleaned absolute path.
	FilePath string
}

// SupportedSchemes lists the schemes ParseTarget accepts.
var SupportedSchemes = map[string]struct{}{
	"registry": {},
	"file":     {},
}

// ParseTarget parses a store URI. An empty string selects the registry.
func ParseTarget(raw string) (Target, error) {
	t := Target{Raw: raw}
	s := strings.TrimSpace(raw)
	if s == "" {
		t.Scheme = "registry"
		return t, nil
	}
	i := strings.Index(s, ":")
	if i <= 0 {
		return t, fmt.Errorf("invalid store %q; expected '<scheme>:<value>' (e.g., 'registry:' or 'file:/path.yaml')", raw)
	}
	scheme := strings.ToLower(strings.TrimSpace(s[:i]))
	val := strings.TrimSpace(s[i+1:])
	if _, ok := SupportedSchemes[scheme]; !ok {
		return t, fmt.Errorf("unsupported store scheme %q", scheme)
	}
	t.Scheme = scheme

	switch scheme {
	case "registry":
		if val != "" {
			return t, fmt.Errorf("registry store takes no value; got %q", val)
		}
	case "file":
		if val == "" {
			return t, fmt.Errorf("file store path must not be empty")
		}
		clean := filepath.Clean(val)
		if !filepath.IsAbs(clean) {
			return t, fmt.Errorf("file store must be an absolute path: %q", val)
		}
		t.FilePath = clean
	}
	return t, nil
}

// Store builds the Store the target names. The backing storage is not
// touched until Store.Open.
func (t Target) Store() Store {
	if t.Scheme == "file" {
		return NewFile(t.FilePath)
	}
	return NewRegistry()
}

// String returns a canonical string form of the target.
func (t Target) String() string {
	switch t.Scheme {
	case "file":
		return "file:" + t.FilePath
	case "registry":
		return "registry:"
	}
	return t.Raw
}
