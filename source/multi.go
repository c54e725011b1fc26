package source

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// ReadAll fetches multiple blobs concurrently from the same reader.
// Results are returned in the order of ids. If any read fails, the
// remaining reads are cancelled and the first error is returned.
func ReadAll(ctx context.Context, r Reader, ids []string) ([][]byte, error) {
	results := make([][]byte, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	for i, blobID := range ids {
		g.Go(func() error {
			data, err := r.Read(gctx, blobID)
			if err != nil {
				return err
			}
			results[i] = data
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
