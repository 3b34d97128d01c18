package store

// FakeStore is an in-memory implementation for unit tests. Children are
// enumerated in insertion order.
type FakeStore struct {
	RootValues map[string]string
	Children   []Child

	// OpenErr, when set, is returned by every Open call.
	OpenErr error
	// WriteErr, when set, is returned by every SetValue call.
	WriteErr error
	// BeforeWrite runs inside SetValue before the child is looked up, so
	// tests can mutate the store between a rename's lookup and its write.
	BeforeWrite func(f *FakeStore)

	// Opened and Closed count handle acquisitions and releases.
	Opened int
	Closed int
	Writes int
}

func NewFake() *FakeStore {
	return &FakeStore{RootValues: map[string]string{}}
}

// AddChild appends a child key with a copy of values.
func (f *FakeStore) AddChild(key string, values map[string]string) {
	vals := make(map[string]string, len(values))
	for k, v := range values {
		vals[k] = v
	}
	f.Children = append(f.Children, Child{Key: key, Values: vals})
}

// RemoveChild drops a child key if present.
func (f *FakeStore) RemoveChild(key string) {
	for i, c := range f.Children {
		if c.Key == key {
			f.Children = append(f.Children[:i], f.Children[i+1:]...)
			return
		}
	}
}

// Child returns the values of key, if present.
func (f *FakeStore) Child(key string) (map[string]string, bool) {
	for _, c := range f.Children {
		if c.Key == key {
			return c.Values, true
		}
	}
	return nil, false
}

func (f *FakeStore) Location() string { return "fake:" }

func (f *FakeStore) Open(mode Mode) (Handle, error) {
	if f.OpenErr != nil {
		return nil, f.OpenErr
	}
	f.Opened++
	return &fakeHandle{f: f, mode: mode}, nil
}

type fakeHandle struct {
	f      *FakeStore
	mode   Mode
	closed bool
}

func (h *fakeHandle) ChildKeys() ([]string, error) {
	if h.closed {
		return nil, errClosed
	}
	keys := make([]string, 0, len(h.f.Children))
	for _, c := range h.f.Children {
		keys = append(keys, c.Key)
	}
	return keys, nil
}

func (h *fakeHandle) Value(child, name string) (string, bool, error) {
	if h.closed {
		return "", false, errClosed
	}
	vals := h.f.RootValues
	if child != "" {
		v, ok := h.f.Child(child)
		if !ok {
			return "", false, &NotFoundError{Resource: "key", Name: child}
		}
		vals = v
	}
	v, ok := vals[name]
	return v, ok, nil
}

func (h *fakeHandle) SetValue(child, name, value string) error {
	if h.closed {
		return errClosed
	}
	if h.mode != ReadWrite {
		return &AccessDeniedError{Op: "write", Path: child + `\` + name}
	}
	if h.f.BeforeWrite != nil {
		h.f.BeforeWrite(h.f)
	}
	if h.f.WriteErr != nil {
		return h.f.WriteErr
	}
	if child == "" {
		h.f.RootValues[name] = value
		h.f.Writes++
		return nil
	}
	vals, ok := h.f.Child(child)
	if !ok {
		return &NotFoundError{Resource: "key", Name: child}
	}
	vals[name] = value
	h.f.Writes++
	return nil
}

func (h *fakeHandle) Close() error {
	if h.closed {
		return errClosed
	}
	h.closed = true
	h.f.Closed++
	return nil
}
