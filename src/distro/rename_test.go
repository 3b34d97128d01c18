package distro_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"whistler/src/distro"
	"whistler/src/store"
)

func newRenamer(t *testing.T, f *store.FakeStore) (*distro.Renamer, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	r := &distro.Renamer{Store: f, Logger: log.New(&logs), Inventory: newInventory(t, f, &logs)}
	return r, &logs
}

func nameOf(t *testing.T, f *store.FakeStore, key string) string {
	t.Helper()
	v, ok := f.Child(key)
	if !ok {
		t.Fatalf("child %s missing", key)
	}
	return v[store.ValueDistributionName]
}

func TestRename_NoMatch(t *testing.T) {
	f := seededFake()
	r, _ := newRenamer(t, f)
	if r.Rename("Fedora", "X") {
		t.Fatalf("rename of unknown name succeeded")
	}
	if r.Rename("ubuntu", "X") {
		t.Fatalf("name match must be case-sensitive")
	}
	if f.Writes != 0 {
		t.Fatalf("store mutated on miss: %d writes", f.Writes)
	}
}

func TestRename_SingleMatch(t *testing.T) {
	f := seededFake()
	r, _ := newRenamer(t, f)
	if !r.Rename("Ubuntu", "Noble") {
		t.Fatalf("rename failed")
	}
	if got := nameOf(t, f, keyUbuntu); got != "Noble" {
		t.Fatalf("name = %q", got)
	}
	if r.Rename("Ubuntu", "Noble") {
		t.Fatalf("second rename with the old name should fail")
	}
	if f.Opened != f.Closed {
		t.Fatalf("handle leak: opened=%d closed=%d", f.Opened, f.Closed)
	}
}

func TestRename_FirstOfDuplicatesWins(t *testing.T) {
	f := seededFake()
	f.AddChild(uuid.NewString(), map[string]string{store.ValueDistributionName: "Ubuntu"})
	r, _ := newRenamer(t, f)
	if !r.Rename("Ubuntu", "Noble") {
		t.Fatalf("rename failed")
	}
	if nameOf(t, f, keyUbuntu) != "Noble" || nameOf(t, f, f.Children[3].Key) != "Ubuntu" {
		t.Fatalf("only the first entry in store order should change")
	}
}

func TestRename_AllowsDuplicateNewName(t *testing.T) {
	f := seededFake()
	r, _ := newRenamer(t, f)
	if !r.Rename("Ubuntu", "Debian") {
		t.Fatalf("collision should not block the write")
	}
	if nameOf(t, f, keyUbuntu) != "Debian" || nameOf(t, f, keyDebian) != "Debian" {
		t.Fatalf("expected two entries named Debian")
	}
}

func TestRename_EmptyNameDoesNotMatchMissingValue(t *testing.T) {
	f := store.NewFake()
	f.AddChild(keyUbuntu, map[string]string{store.ValueBasePath: "/wsl/u"})
	r, _ := newRenamer(t, f)
	if r.Rename("", "Named") {
		t.Fatalf("entry without a name should not match an empty old name")
	}
}

func TestRename_AccessDenied(t *testing.T) {
	f := seededFake()
	f.OpenErr = &store.AccessDeniedError{Op: "open", Path: store.LxssPath}
	r, logs := newRenamer(t, f)
	if r.Rename("Ubuntu", "Noble") {
		t.Fatalf("rename on denied store succeeded")
	}
	if !strings.Contains(logs.String(), "insufficient permissions") {
		t.Fatalf("access denied not reported: %s", logs.String())
	}

	f.OpenErr = nil
	f.WriteErr = &store.AccessDeniedError{Op: "write", Path: keyUbuntu}
	if r.Rename("Ubuntu", "Noble") {
		t.Fatalf("rename with denied write succeeded")
	}
	if f.Opened != f.Closed {
		t.Fatalf("handle leak after failed write: opened=%d closed=%d", f.Opened, f.Closed)
	}
}

// The lookup and the write are separate store calls; a concurrent change
// in between is not detected.
func TestRename_LookupWriteWindow(t *testing.T) {
	f := seededFake()
	f.BeforeWrite = func(f *store.FakeStore) { f.RemoveChild(keyUbuntu) }
	r, _ := newRenamer(t, f)
	if r.Rename("Ubuntu", "Noble") {
		t.Fatalf("write to a removed entry should fail")
	}

	f = seededFake()
	f.BeforeWrite = func(f *store.FakeStore) {
		vals, _ := f.Child(keyUbuntu)
		vals[store.ValueDistributionName] = "RenamedElsewhere"
	}
	r, _ = newRenamer(t, f)
	if !r.Rename("Ubuntu", "Noble") {
		t.Fatalf("rename failed")
	}
	if nameOf(t, f, keyUbuntu) != "Noble" {
		t.Fatalf("the concurrent rename is overwritten")
	}
}

func TestRenameByID(t *testing.T) {
	f := seededFake()
	r, _ := newRenamer(t, f)
	if !r.RenameByID(2, "Bookworm") {
		t.Fatalf("rename by id failed")
	}
	if nameOf(t, f, keyDebian) != "Bookworm" {
		t.Fatalf("wrong entry renamed")
	}
	if r.RenameByID(99, "X") {
		t.Fatalf("unknown id should fail")
	}
	if _, ok := r.ResolveID(0); ok {
		t.Fatalf("id 0 never exists")
	}
}

func TestRenameByKey(t *testing.T) {
	f := seededFake()
	r, _ := newRenamer(t, f)
	if !r.RenameByKey(uuid.MustParse(keyAlpine), "Edge") {
		t.Fatalf("rename by key failed")
	}
	if nameOf(t, f, keyAlpine) != "Edge" {
		t.Fatalf("wrong entry renamed")
	}
	if r.RenameByKey(uuid.New(), "X") {
		t.Fatalf("unknown key should fail")
	}
}

func TestLookup(t *testing.T) {
	f := seededFake()
	r, _ := newRenamer(t, f)
	if key, ok := r.Lookup("Debian"); !ok || key != keyDebian {
		t.Fatalf("Lookup = %q, %v", key, ok)
	}
	if _, ok := r.Lookup("Fedora"); ok {
		t.Fatalf("Lookup of unknown name hit")
	}
	if f.Writes != 0 {
		t.Fatalf("lookup wrote to the store")
	}
}
