package distro

import (
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"whistler/src/store"
)

// DefaultResolver reads the DefaultDistribution pointer from the store root.
type DefaultResolver struct {
	Store  store.Store
	Logger *log.Logger
}

// Resolve returns the instance key of the default distribution. ok is false
// when the store cannot be read or holds no usable pointer.
func (r *DefaultResolver) Resolve() (key uuid.UUID, ok bool) {
	logger := orDiscard(r.Logger)
	h, err := r.Store.Open(store.ReadOnly)
	if err != nil {
		reportStoreErr(logger, "resolve default distribution", r.Store, err)
		return uuid.Nil, false
	}
	defer h.Close()

	raw, present, err := h.Value("", store.ValueDefaultDistribution)
	if err != nil {
		reportStoreErr(logger, "resolve default distribution", r.Store, err)
		return uuid.Nil, false
	}
	if !present {
		logger.Debug("no default distribution set", "store", r.Store.Location())
		return uuid.Nil, false
	}
	key, err = uuid.Parse(raw)
	if err != nil {
		logger.Warn("default distribution is not a valid UUID", "value", raw, "err", err)
		return uuid.Nil, false
	}
	return key, true
}

// reportStoreErr logs a store failure with a message matching its kind.
func reportStoreErr(logger *log.Logger, op string, s store.Store, err error) {
	switch {
	case store.IsAccessDenied(err):
		logger.Error("insufficient permissions to access the distribution store", "op", op, "store", s.Location(), "err", err)
	case store.IsNotFound(err):
		logger.Error("the distribution store does not exist or cannot be accessed", "op", op, "store", s.Location(), "err", err)
	case store.IsUnsupported(err):
		logger.Error("the distribution store is not available on this host", "op", op, "store", s.Location(), "err", err)
	default:
		logger.Error("distribution store error", "op", op, "store", s.Location(), "err", err)
	}
}
