// Package file implements source.Reader over the local filesystem.
// Blob identifiers are paths relative to the reader's root directory.
package file

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/veldt/tap/source"
)

const backend = "file"

// Reader reads blobs from a directory on the local filesystem.
type Reader struct {
	root string
}

// Compile-time interface check.
var _ source.Reader = (*Reader)(nil)

// New creates a file reader rooted at the given directory.
func New(root string) *Reader {
	return &Reader{root: root}
}

// Read returns the contents of the file at root/id.
// Identifiers escaping the root directory are rejected as malformed.
func (r *Reader) Read(ctx context.Context, id string) ([]byte, error) {
	if err := source.CheckID(backend, id); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, source.NewError(backend, id, source.ErrUnreachable, err)
	}

	path := filepath.Join(r.root, filepath.Clean("/"+id))
	if !strings.HasPrefix(path, filepath.Clean(r.root)+string(os.PathSeparator)) {
		return nil, source.NewError(backend, id, source.ErrMalformed, nil)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, source.NewError(backend, id, source.ErrNotFound, err)
		}
		return nil, source.NewError(backend, id, source.ErrUnreachable, err)
	}
	return data, nil
}
