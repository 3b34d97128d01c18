package cli

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"whistler/src/store"
)

type storeFactoryFunc func(store.Target) (store.Store, error)

var newStoreFn storeFactoryFunc = defaultStore

var errNotWindows = errors.New("registry store requires Windows")

func defaultStore(t store.Target) (store.Store, error) {
	if t.Scheme == "registry" && runtime.GOOS != "windows" {
		return nil, errNotWindows
	}
	return t.Store(), nil
}

// storeFor returns the configured store. ok is false when the command should
// stop without error, as on a non-Windows host with the registry selected.
func (a *app) storeFor(cmd *cobra.Command) (s store.Store, ok bool, err error) {
	s, err = newStoreFn(a.target)
	if errors.Is(err, errNotWindows) {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s This program is designed for Windows. Use --store file:/path.yaml elsewhere.\n", a.styles.warning.Render("Warning:"))
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return s, true, nil
}

// SetStoreFactoryForTest allows tests to substitute the distribution store.
// The returned function restores the previous factory.
func SetStoreFactoryForTest(fn func(store.Target) (store.Store, error)) func() {
	prev := newStoreFn
	newStoreFn = fn
	return func() {
		newStoreFn = prev
	}
}
