package distro_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"whistler/src/distro"
	"whistler/src/store"
)

const (
	keyUbuntu = "{6d2c8d1a-3b7e-4f51-9a0c-1f2e3d4c5b6a}"
	keyDebian = "{0a1b2c3d-4e5f-4a6b-8c7d-9e0f1a2b3c4d}"
	keyAlpine = "{f0e1d2c3-b4a5-4968-8776-a5b4c3d2e1f0}"
)

func seededFake() *store.FakeStore {
	f := store.NewFake()
	f.RootValues[store.ValueDefaultDistribution] = keyDebian
	f.AddChild(keyUbuntu, map[string]string{
		store.ValueDistributionName:  "Ubuntu",
		store.ValuePackageFamilyName: "CanonicalGroupLimited.Ubuntu_79rhkp1fndgsc",
		store.ValueBasePath:          "/wsl/ubuntu",
	})
	f.AddChild(keyDebian, map[string]string{
		store.ValueDistributionName: "Debian",
		store.ValueBasePath:         "/wsl/debian",
	})
	f.AddChild(keyAlpine, map[string]string{
		store.ValueDistributionName: "Alpine",
	})
	return f
}

func newInventory(t *testing.T, s store.Store, logs *bytes.Buffer) *distro.Inventory {
	t.Helper()
	scanner, _ := memScanner(t, map[string]int{
		"/wsl/ubuntu/ext4.vhdx":  500,
		"/wsl/ubuntu/swap.bin":   1524,
		"/wsl/debian/legacy.vhd": 10,
	})
	return &distro.Inventory{Store: s, Scanner: scanner, Logger: log.New(logs)}
}

func TestInventory_List(t *testing.T) {
	f := seededFake()
	var logs bytes.Buffer
	ds := newInventory(t, f, &logs).List()

	if len(ds) != 3 {
		t.Fatalf("got %d distros, want 3", len(ds))
	}
	wantNames := []string{"Ubuntu", "Debian", "Alpine"}
	defaults := 0
	for i, d := range ds {
		if d.ID != i+1 {
			t.Fatalf("entry %d has ID %d", i, d.ID)
		}
		if d.Name != wantNames[i] {
			t.Fatalf("entry %d name %q, want %q (store order)", i, d.Name, wantNames[i])
		}
		if d.IsDefault {
			defaults++
			if d.InstanceKey != uuid.MustParse(keyDebian) {
				t.Fatalf("wrong default: %+v", d)
			}
		}
	}
	if defaults != 1 {
		t.Fatalf("got %d defaults, want 1", defaults)
	}

	u := ds[0]
	if u.TotalBytes != 2024 || u.TotalSpace() != "1.98 KiB" {
		t.Fatalf("ubuntu size %d (%s)", u.TotalBytes, u.TotalSpace())
	}
	if !u.HasLastAccess() {
		t.Fatalf("ubuntu should have a last access time")
	}
	if u.PackageFamilyName == "" {
		t.Fatalf("package family name not read")
	}
	if !ds[1].HasLastAccess() {
		t.Fatalf("debian .vhd should supply last access")
	}
	a := ds[2]
	if a.TotalBytes != 0 || a.HasLastAccess() || a.BasePath != "" {
		t.Fatalf("alpine without base path should degrade to defaults: %+v", a)
	}
	if f.Opened != f.Closed {
		t.Fatalf("handle leak: opened=%d closed=%d", f.Opened, f.Closed)
	}
}

func TestInventory_SkipsMalformedKeys(t *testing.T) {
	f := seededFake()
	f.Children = append(f.Children[:1], append([]store.Child{{Key: "not-a-uuid", Values: map[string]string{store.ValueDistributionName: "Bad"}}}, f.Children[1:]...)...)
	var logs bytes.Buffer
	ds := newInventory(t, f, &logs).List()

	if len(ds) != 3 {
		t.Fatalf("got %d distros, want 3", len(ds))
	}
	for i, d := range ds {
		if d.ID != i+1 || d.Name == "Bad" {
			t.Fatalf("unexpected entry %d: %+v", i, d)
		}
	}
	if !strings.Contains(logs.String(), "malformed") {
		t.Fatalf("malformed key not reported: %s", logs.String())
	}
}

func TestInventory_SkipsRepeatedInstanceKeys(t *testing.T) {
	f := seededFake()
	bare := strings.Trim(keyDebian, "{}")
	f.AddChild(bare, map[string]string{store.ValueDistributionName: "Shadow"})
	f.AddChild(strings.ToUpper(keyDebian), map[string]string{store.ValueDistributionName: "Shadow2"})
	var logs bytes.Buffer
	ds := newInventory(t, f, &logs).List()

	if len(ds) != 3 {
		t.Fatalf("got %d distros, want 3: %+v", len(ds), ds)
	}
	seen := map[uuid.UUID]bool{}
	defaults := 0
	for i, d := range ds {
		if d.ID != i+1 || seen[d.InstanceKey] || strings.HasPrefix(d.Name, "Shadow") {
			t.Fatalf("unexpected entry %d: %+v", i, d)
		}
		seen[d.InstanceKey] = true
		if d.IsDefault {
			defaults++
		}
	}
	if defaults != 1 {
		t.Fatalf("got %d defaults, want 1", defaults)
	}
	if !strings.Contains(logs.String(), "duplicate key") {
		t.Fatalf("repeated key not reported: %s", logs.String())
	}
}

func TestInventory_NoDefault(t *testing.T) {
	for _, ptr := range []string{"", "garbage", uuid.NewString()} {
		f := seededFake()
		if ptr == "" {
			delete(f.RootValues, store.ValueDefaultDistribution)
		} else {
			f.RootValues[store.ValueDefaultDistribution] = ptr
		}
		var logs bytes.Buffer
		for _, d := range newInventory(t, f, &logs).List() {
			if d.IsDefault {
				t.Fatalf("pointer %q: unexpected default %+v", ptr, d)
			}
		}
	}
}

func TestInventory_EmptyStore(t *testing.T) {
	var logs bytes.Buffer
	ds := newInventory(t, store.NewFake(), &logs).List()
	if ds == nil || len(ds) != 0 {
		t.Fatalf("want empty non-nil list, got %#v", ds)
	}
}

func TestInventory_StoreFailures(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{&store.AccessDeniedError{Op: "open", Path: store.LxssPath}, "insufficient permissions"},
		{&store.NotFoundError{Resource: "registry key", Name: store.LxssPath}, "does not exist"},
		{&store.UnsupportedError{Store: "registry", Reason: "linux"}, "not available"},
		{errors.New("boom"), "distribution store error"},
	}
	for _, c := range cases {
		f := seededFake()
		f.OpenErr = c.err
		var logs bytes.Buffer
		ds := newInventory(t, f, &logs).List()
		if len(ds) != 0 {
			t.Fatalf("%v: got %d distros, want 0", c.err, len(ds))
		}
		if !strings.Contains(logs.String(), c.want) {
			t.Fatalf("%v: diagnostic missing %q: %s", c.err, c.want, logs.String())
		}
	}
}

func TestDefaultResolver(t *testing.T) {
	f := seededFake()
	r := &distro.DefaultResolver{Store: f}
	key, ok := r.Resolve()
	if !ok || key != uuid.MustParse(keyDebian) {
		t.Fatalf("Resolve = %v, %v", key, ok)
	}

	f.OpenErr = &store.AccessDeniedError{Op: "open", Path: "x"}
	if key, ok := r.Resolve(); ok || key != uuid.Nil {
		t.Fatalf("Resolve on denied store = %v, %v", key, ok)
	}
}
