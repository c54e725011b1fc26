// Package mongosrc implements source.Reader over a MongoDB collection.
// Blob identifiers are document _id values; the blob bytes live in the
// "data" field.
package mongosrc

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	mongod "go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/veldt/tap/source"
)

const backend = "mongosrc"

// blobDoc is the document shape expected in the collection.
type blobDoc struct {
	ID   string `bson:"_id"`
	Data []byte `bson:"data"`
}

// Reader fetches blobs from a MongoDB collection. The caller owns the
// client lifecycle.
type Reader struct {
	col *mongod.Collection
}

// Compile-time interface check.
var _ source.Reader = (*Reader)(nil)

// New creates a MongoDB-backed reader over the given collection.
func New(col *mongod.Collection) *Reader {
	return &Reader{col: col}
}

// Read performs a single findOne for the blob document.
// A missing document maps to ErrNotFound; a document without a data field
// to ErrMalformed; connection failures to ErrUnreachable.
func (r *Reader) Read(ctx context.Context, id string) ([]byte, error) {
	if err := source.CheckID(backend, id); err != nil {
		return nil, err
	}

	var doc blobDoc
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongod.ErrNoDocuments) {
			return nil, source.NewError(backend, id, source.ErrNotFound, nil)
		}
		return nil, source.NewError(backend, id, source.ErrUnreachable, err)
	}

	if doc.Data == nil {
		return nil, source.NewError(backend, id, source.ErrMalformed, nil)
	}
	return doc.Data, nil
}
