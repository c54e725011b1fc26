// Package journal defines the persistence boundary for imported records.
// The Store interface is the narrow capability the core depends on;
// backends live in subpackages (memory, postgres, bunstore) and a single
// backend implements the whole interface.
package journal

import (
	"context"
	"time"

	"github.com/veldt/tap/id"
)

// Record is one persisted import result.
type Record struct {
	// ID is the record's unique identifier (prefix "rec").
	ID id.RecordID `json:"id"`

	// Kind names what produced the record — a network kind for profile
	// imports, or "raw/<source>" for raw blob imports.
	Kind string `json:"kind"`

	// Key is the identity or blob id the record was imported for.
	Key string `json:"key"`

	// Payload is the encoded record body.
	Payload []byte `json:"payload,omitempty"`

	// Codec names the codec that encoded Payload ("json" or "msgpack").
	Codec string `json:"codec"`

	// CreatedAt is when the record was persisted (UTC).
	CreatedAt time.Time `json:"created_at"`
}

// Store is the persistence interface for journal records.
type Store interface {
	// SaveRecord persists a new record. Saving an already-present ID
	// fails with tap.ErrRecordExists.
	SaveRecord(ctx context.Context, rec *Record) error

	// GetRecord retrieves a record by ID, or tap.ErrRecordNotFound.
	GetRecord(ctx context.Context, recID id.RecordID) (*Record, error)

	// ListRecords returns up to limit records of the given kind, newest
	// first. An empty kind matches all records.
	ListRecords(ctx context.Context, kind string, limit int) ([]*Record, error)

	// Ping checks backend connectivity.
	Ping(ctx context.Context) error

	// Close releases backend resources.
	Close() error
}
