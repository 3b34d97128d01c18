package distro

import (
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"whistler/src/store"
)

// Inventory lists registered distributions with their derived attributes.
type Inventory struct {
	Store   store.Store
	Scanner *Scanner
	Logger  *log.Logger
}

// NewInventory returns an Inventory that scans the host filesystem.
func NewInventory(s store.Store, logger *log.Logger) *Inventory {
	return &Inventory{Store: s, Scanner: NewScanner(logger), Logger: logger}
}

// List returns every distribution in store enumeration order, with IDs
// numbered from 1. Store failures are logged and yield an empty list;
// malformed child keys, and keys naming an instance already listed, are
// logged and skipped.
func (inv *Inventory) List() []Distro {
	logger := orDiscard(inv.Logger)
	distros := []Distro{}

	h, err := inv.Store.Open(store.ReadOnly)
	if err != nil {
		reportStoreErr(logger, "list distributions", inv.Store, err)
		return distros
	}
	defer h.Close()

	keys, err := h.ChildKeys()
	if err != nil {
		reportStoreErr(logger, "list distributions", inv.Store, err)
		return distros
	}

	scanner := inv.Scanner
	if scanner == nil {
		scanner = NewScanner(inv.Logger)
	}
	defaults := &DefaultResolver{Store: inv.Store, Logger: inv.Logger}
	defaultKey, hasDefault := defaults.Resolve()

	seen := make(map[uuid.UUID]string, len(keys))
	for _, k := range keys {
		key, err := uuid.Parse(k)
		if err != nil {
			logger.Warn("skipping entry with malformed key", "key", k, "err", err)
			continue
		}
		if first, dup := seen[key]; dup {
			logger.Warn("skipping entry with duplicate key", "key", k, "first", first)
			continue
		}
		seen[key] = k
		d := Distro{
			ID:                len(distros) + 1,
			InstanceKey:       key,
			Name:              store.GetString(h, k, store.ValueDistributionName, ""),
			PackageFamilyName: store.GetString(h, k, store.ValuePackageFamilyName, ""),
			BasePath:          store.GetString(h, k, store.ValueBasePath, ""),
			IsDefault:         hasDefault && key == defaultKey,
		}
		d.TotalBytes = scanner.TotalBytes(d.BasePath)
		d.LastAccess, _ = scanner.LastAccess(d.BasePath)
		distros = append(distros, d)
	}
	return distros
}
