package distro

import (
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"whistler/src/store"
)

// Renamer changes a distribution's display name in the store.
//
// Lookup and write are separate store calls. A change made by another
// process in between is not detected: the write may land on an entry whose
// name has since changed, or fail because the entry is gone.
type Renamer struct {
	Store  store.Store
	Logger *log.Logger
	// Inventory backs the ID and key variants; nil means a default one.
	Inventory *Inventory
}

// NewRenamer returns a Renamer over s.
func NewRenamer(s store.Store, logger *log.Logger) *Renamer {
	return &Renamer{Store: s, Logger: logger, Inventory: NewInventory(s, logger)}
}

// Rename sets the name of the first entry, in store order, whose name is
// exactly oldName. Names are not checked for uniqueness. It reports whether
// a write happened.
func (r *Renamer) Rename(oldName, newName string) bool {
	logger := orDiscard(r.Logger)
	h, err := r.Store.Open(store.ReadWrite)
	if err != nil {
		reportStoreErr(logger, "rename distribution", r.Store, err)
		return false
	}
	defer h.Close()

	key, found, err := findByName(h, oldName, logger)
	if err != nil {
		reportStoreErr(logger, "rename distribution", r.Store, err)
		return false
	}
	if !found {
		logger.Info("no distribution with that name", "name", oldName)
		return false
	}
	if err := h.SetValue(key, store.ValueDistributionName, newName); err != nil {
		reportStoreErr(logger, "rename distribution", r.Store, err)
		return false
	}
	logger.Debug("renamed distribution", "key", key, "from", oldName, "to", newName)
	return true
}

// Lookup returns the key of the first entry named name without changing
// anything.
func (r *Renamer) Lookup(name string) (key string, ok bool) {
	logger := orDiscard(r.Logger)
	h, err := r.Store.Open(store.ReadOnly)
	if err != nil {
		reportStoreErr(logger, "look up distribution", r.Store, err)
		return "", false
	}
	defer h.Close()

	key, ok, err = findByName(h, name, logger)
	if err != nil {
		reportStoreErr(logger, "look up distribution", r.Store, err)
		return "", false
	}
	return key, ok
}

// ResolveID lists the inventory and returns the entry with listing ID id.
func (r *Renamer) ResolveID(id int) (Distro, bool) {
	return FindByID(r.inventory().List(), id)
}

// RenameByID renames the entry shown with ID id by a fresh listing.
func (r *Renamer) RenameByID(id int, newName string) bool {
	d, ok := r.ResolveID(id)
	if !ok {
		orDiscard(r.Logger).Info("no distribution with that id", "id", id)
		return false
	}
	return r.Rename(d.Name, newName)
}

// RenameByKey renames the entry registered under key. The write still goes
// through the name, so an earlier entry sharing that name is renamed instead.
func (r *Renamer) RenameByKey(key uuid.UUID, newName string) bool {
	d, ok := FindByKey(r.inventory().List(), key)
	if !ok {
		orDiscard(r.Logger).Info("no distribution with that key", "key", key)
		return false
	}
	return r.Rename(d.Name, newName)
}

func (r *Renamer) inventory() *Inventory {
	if r.Inventory != nil {
		return r.Inventory
	}
	return NewInventory(r.Store, r.Logger)
}

// findByName scans children in store order. An entry without a
// DistributionName value never matches, even when name is empty.
func findByName(h store.Handle, name string, logger *log.Logger) (string, bool, error) {
	keys, err := h.ChildKeys()
	if err != nil {
		return "", false, err
	}
	for _, k := range keys {
		v, ok, err := h.Value(k, store.ValueDistributionName)
		if err != nil {
			logger.Warn("could not read distribution name", "key", k, "err", err)
			continue
		}
		if ok && v == name {
			return k, true, nil
		}
	}
	return "", false, nil
}
