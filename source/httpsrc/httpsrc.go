// Package httpsrc implements source.Reader over HTTP GET.
// Blob identifiers are joined onto a base URL.
package httpsrc

import (
	"context"
	"io"
	"net/http"
	"net/url"

	"github.com/veldt/tap/source"
)

const backend = "httpsrc"

// Reader fetches blobs from an HTTP endpoint. The caller owns the
// http.Client lifecycle; pass nil to use http.DefaultClient.
type Reader struct {
	base   string
	client *http.Client
}

// Compile-time interface check.
var _ source.Reader = (*Reader)(nil)

// New creates an HTTP reader fetching from baseURL/<id>.
func New(baseURL string, client *http.Client) *Reader {
	if client == nil {
		client = http.DefaultClient
	}
	return &Reader{base: baseURL, client: client}
}

// Read performs a single GET request for the blob.
// 404 maps to ErrNotFound, other non-2xx statuses to ErrMalformed,
// transport failures to ErrUnreachable.
func (r *Reader) Read(ctx context.Context, id string) ([]byte, error) {
	if err := source.CheckID(backend, id); err != nil {
		return nil, err
	}

	u, err := url.JoinPath(r.base, id)
	if err != nil {
		return nil, source.NewError(backend, id, source.ErrMalformed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, source.NewError(backend, id, source.ErrMalformed, err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, source.NewError(backend, id, source.ErrUnreachable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, source.NewError(backend, id, source.ErrNotFound, nil)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, source.NewError(backend, id, source.ErrMalformed, nil)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, source.NewError(backend, id, source.ErrMalformed, err)
	}
	return data, nil
}
