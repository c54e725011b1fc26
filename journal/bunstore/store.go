// Package bunstore implements journal.Store with the Bun ORM on the
// PostgreSQL dialect. The caller owns the *bun.DB lifecycle; the Store
// never closes it.
//
// Usage:
//
//	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
//	db := bun.NewDB(sqldb, pgdialect.New())
//	s := bunstore.New(db)
package bunstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	"github.com/veldt/tap"
	"github.com/veldt/tap/id"
	"github.com/veldt/tap/journal"
)

// Compile-time interface check.
var _ journal.Store = (*Store)(nil)

// Store is a Bun ORM implementation of journal.Store.
type Store struct {
	db     *bun.DB
	logger *slog.Logger
}

// Option configures the Store.
type Option func(*Store)

// WithLogger sets the logger for the store.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// New creates a new Bun store. The caller owns the db lifecycle — the
// Store will not close it on Close().
func New(db *bun.DB, opts ...Option) *Store {
	s := &Store{
		db:     db,
		logger: slog.Default(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Open is a convenience constructor building a *bun.DB from a Postgres DSN.
// The returned db is owned by the caller.
func Open(dsn string) *bun.DB {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	return bun.NewDB(sqldb, pgdialect.New())
}

// DB returns the underlying *bun.DB for advanced usage.
func (s *Store) DB() *bun.DB { return s.db }

// Migrate creates the records table if it does not exist.
func (s *Store) Migrate(ctx context.Context) error {
	_, err := s.db.NewCreateTable().
		Model((*recordModel)(nil)).
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("tap/bunstore: migrate: %w", err)
	}

	_, err = s.db.NewCreateIndex().
		Model((*recordModel)(nil)).
		Index("idx_tap_records_kind_created").
		Column("kind", "created_at").
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("tap/bunstore: create index: %w", err)
	}
	return nil
}

// SaveRecord persists a new record.
func (s *Store) SaveRecord(ctx context.Context, rec *journal.Record) error {
	m := toRecordModel(rec)
	_, err := s.db.NewInsert().Model(m).Exec(ctx)
	if err != nil {
		if isDuplicateKey(err) {
			return tap.ErrRecordExists
		}
		return fmt.Errorf("tap/bunstore: save record: %w", err)
	}
	return nil
}

// GetRecord retrieves a record by ID.
func (s *Store) GetRecord(ctx context.Context, recID id.RecordID) (*journal.Record, error) {
	var m recordModel
	err := s.db.NewSelect().
		Model(&m).
		Where("id = ?", recID.String()).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, tap.ErrRecordNotFound
		}
		return nil, fmt.Errorf("tap/bunstore: get record: %w", err)
	}
	return fromRecordModel(&m)
}

// ListRecords returns up to limit records of the given kind, newest first.
// An empty kind matches all records.
func (s *Store) ListRecords(ctx context.Context, kind string, limit int) ([]*journal.Record, error) {
	if limit <= 0 {
		limit = 100
	}

	var models []recordModel
	q := s.db.NewSelect().
		Model(&models).
		Order("created_at DESC").
		Limit(limit)
	if kind != "" {
		q = q.Where("kind = ?", kind)
	}

	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("tap/bunstore: list records: %w", err)
	}

	recs := make([]*journal.Record, 0, len(models))
	for i := range models {
		rec, err := fromRecordModel(&models[i])
		if err != nil {
			return nil, fmt.Errorf("tap/bunstore: decode record: %w", err)
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

// Ping checks database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close is a no-op — the caller owns the *bun.DB lifecycle.
func (s *Store) Close() error { return nil }

// isDuplicateKey checks if a Postgres error is a unique_violation (23505).
func isDuplicateKey(err error) bool {
	var pgErr pgdriver.Error
	if errors.As(err, &pgErr) {
		return pgErr.Field('C') == "23505"
	}
	return false
}
