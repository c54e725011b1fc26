// Package source normalizes heterogeneous data backends into a single read
// capability. Each backend adapter owns exactly one client reference and
// translates backend-specific failures into the shared error taxonomy, so
// callers never depend on backend types.
package source

import (
	"context"
	"errors"
	"fmt"
)

// Reader is the capability contract all source adapters satisfy.
// Implementations perform exactly one backend call per invocation and do
// not cache or retry — that belongs to a higher layer.
type Reader interface {
	// Read fetches the blob identified by id from the wrapped backend.
	// The id must be non-empty and meaningful to the backend.
	Read(ctx context.Context, id string) ([]byte, error)
}

// ReaderFunc is an adapter to use a plain function as a Reader.
type ReaderFunc func(ctx context.Context, id string) ([]byte, error)

// Read implements Reader.
func (f ReaderFunc) Read(ctx context.Context, id string) ([]byte, error) {
	return f(ctx, id)
}

// Error kind sentinels. Adapters wrap every backend failure in an *Error
// carrying exactly one of these, so callers can branch with errors.Is
// without knowing which backend produced the failure.
var (
	ErrUnreachable = errors.New("source: backend unreachable")
	ErrNotFound    = errors.New("source: blob not found")
	ErrMalformed   = errors.New("source: malformed response")
	ErrEmptyID     = errors.New("source: empty blob id")
)

// Error is the failure type returned by all source adapters.
type Error struct {
	// Backend names the adapter that produced the error (e.g. "file").
	Backend string

	// ID is the blob identifier the read was attempted for.
	ID string

	// Kind is one of ErrUnreachable, ErrNotFound, or ErrMalformed.
	Kind error

	// Err is the underlying backend error, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("source/%s: read %q: %v", e.Backend, e.ID, e.Kind)
	}
	return fmt.Sprintf("source/%s: read %q: %v: %v", e.Backend, e.ID, e.Kind, e.Err)
}

// Unwrap exposes both the kind sentinel and the underlying cause to
// errors.Is / errors.As.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// NewError builds a source Error for the given backend, blob id, and kind.
func NewError(backend, id string, kind, cause error) *Error {
	return &Error{Backend: backend, ID: id, Kind: kind, Err: cause}
}

// CheckID validates a blob identifier before a backend call.
// Every adapter calls this first so an empty id never reaches a backend.
func CheckID(backend, id string) error {
	if id == "" {
		return &Error{Backend: backend, ID: id, Kind: ErrEmptyID}
	}
	return nil
}
