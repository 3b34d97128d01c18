package store

import (
	"errors"
	"fmt"
)

// AccessDeniedError reports insufficient permission to open or write a key.
type AccessDeniedError struct {
	Op   string
	Path string
	Err  error
}

func (e *AccessDeniedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("access denied: %s %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("access denied: %s %s", e.Op, e.Path)
}

func (e *AccessDeniedError) Unwrap() error { return e.Err }

// NotFoundError reports a missing root, child key, or value.
type NotFoundError struct{ Resource, Name string }

func (e *NotFoundError) Error() string { return e.Resource + " not found: " + e.Name }

// UnsupportedError is returned when a store cannot work on this host.
type UnsupportedError struct{ Store, Reason string }

func (e *UnsupportedError) Error() string { return e.Store + " store unsupported: " + e.Reason }

// IsAccessDenied reports whether err is, or wraps, an AccessDeniedError.
func IsAccessDenied(err error) bool {
	var ad *AccessDeniedError
	return errors.As(err, &ad)
}

// IsNotFound reports whether err is, or wraps, a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsUnsupported reports whether err is, or wraps, an UnsupportedError.
func IsUnsupported(err error) bool {
	var us *UnsupportedError
	return errors.As(err, &us)
}

var errClosed = errors.New("store handle is closed")
