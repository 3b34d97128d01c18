package store

// LxssPath is the key, relative to HKEY_CURRENT_USER, holding one subkey per
// registered WSL distribution.
const LxssPath = `Software\Microsoft\Windows\CurrentVersion\Lxss`

// Value names recognised under the Lxss tree.
const (
	ValueDistributionName    = "DistributionName"
	ValuePackageFamilyName   = "PackageFamilyName"
	ValueBasePath            = "BasePath"
	ValueDefaultDistribution = "DefaultDistribution"
)

// Mode selects the access requested when opening a store.
type Mode int

const (
	ReadOnly Mode = iota
	ReadWrite
)

func (m Mode) String() string {
	if m == ReadWrite {
		return "read-write"
	}
	return "read-only"
}

// Store is a narrow interface over the persisted distribution tree.
// Keep it small so the registry, file, and fake backings stay swappable.
type Store interface {
	// Open acquires a handle to the root key. Callers must Close it.
	Open(mode Mode) (Handle, error)
	// Location describes where the store lives, for diagnostics.
	Location() string
}

// Handle is an open root key. Child keys are addressed by name; the empty
// child name addresses the root itself.
type Handle interface {
	// ChildKeys lists immediate children in store-defined order.
	ChildKeys() ([]string, error)
	// Value reports a string value and whether it is present.
	Value(child, name string) (string, bool, error)
	// SetValue writes a string value on an existing child.
	SetValue(child, name, value string) error
	Close() error
}

// GetString returns the named value, or def when it is absent or unreadable.
func GetString(h Handle, child, name, def string) string {
	v, ok, err := h.Value(child, name)
	if err != nil || !ok {
		return def
	}
	return v
}

// Child is one distribution subkey and its values.
type Child struct {
	Key    string            `yaml:"Key"`
	Values map[string]string `yaml:"Values"`
}
