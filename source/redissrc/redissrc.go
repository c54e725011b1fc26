// Package redissrc implements source.Reader over Redis GET.
// Blob identifiers are Redis keys, optionally namespaced by a key prefix.
//
// Usage:
//
//	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
//	r := redissrc.New(client, redissrc.WithKeyPrefix("tap:blob:"))
package redissrc

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/veldt/tap/source"
)

const backend = "redissrc"

// Option configures the Reader.
type Option func(*Reader)

// WithKeyPrefix prepends a namespace prefix to every blob key.
func WithKeyPrefix(prefix string) Option {
	return func(r *Reader) { r.prefix = prefix }
}

// Reader fetches blobs from Redis. The caller owns the Redis client
// lifecycle.
type Reader struct {
	client redis.Cmdable
	prefix string
}

// Compile-time interface check.
var _ source.Reader = (*Reader)(nil)

// New creates a Redis-backed reader.
func New(client redis.Cmdable, opts ...Option) *Reader {
	r := &Reader{client: client}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Read performs a single GET for the blob key.
// A missing key maps to ErrNotFound; connection failures to ErrUnreachable.
func (r *Reader) Read(ctx context.Context, id string) ([]byte, error) {
	if err := source.CheckID(backend, id); err != nil {
		return nil, err
	}

	data, err := r.client.Get(ctx, r.prefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, source.NewError(backend, id, source.ErrNotFound, nil)
		}
		return nil, source.NewError(backend, id, source.ErrUnreachable, err)
	}
	return data, nil
}
