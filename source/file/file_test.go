package file_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/veldt/tap/source"
	"github.com/veldt/tap/source/file"
)

func TestRead(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "feed.log"), []byte("hello"), 0o600); err != nil {
		t.Fatal(err)
	}

	r := file.New(dir)
	data, err := r.Read(context.Background(), "feed.log")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("expected %q, got %q", "hello", string(data))
	}
}

func TestRead_NotFound(t *testing.T) {
	r := file.New(t.TempDir())
	_, err := r.Read(context.Background(), "missing.log")
	if !errors.Is(err, source.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRead_EmptyID(t *testing.T) {
	r := file.New(t.TempDir())
	_, err := r.Read(context.Background(), "")
	if !errors.Is(err, source.ErrEmptyID) {
		t.Fatalf("expected ErrEmptyID, got %v", err)
	}
}

func TestRead_EscapingPath(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "root")
	if err := os.Mkdir(sub, 0o700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "secret"), []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}

	r := file.New(sub)
	// Clean("/"+id) strips the traversal, so the read resolves inside the
	// root and misses — either ErrMalformed or ErrNotFound is acceptable,
	// but the sibling file must never be readable.
	data, err := r.Read(context.Background(), "../secret")
	if err == nil && string(data) == "x" {
		t.Fatal("path traversal escaped the root directory")
	}
}
