package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/veldt/tap"
	"github.com/veldt/tap/id"
	"github.com/veldt/tap/journal"
)

// SaveRecord persists a new record.
func (s *Store) SaveRecord(ctx context.Context, rec *journal.Record) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO tap_records (id, kind, key, payload, codec, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		rec.ID.String(), rec.Kind, rec.Key, rec.Payload, rec.Codec, rec.CreatedAt,
	)
	if err != nil {
		if isDuplicateKey(err) {
			return tap.ErrRecordExists
		}
		return fmt.Errorf("tap/postgres: save record: %w", err)
	}
	return nil
}

// GetRecord retrieves a record by ID.
func (s *Store) GetRecord(ctx context.Context, recID id.RecordID) (*journal.Record, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, kind, key, payload, codec, created_at
		FROM tap_records
		WHERE id = $1`,
		recID.String(),
	)

	rec, err := scanRecord(row)
	if err != nil {
		if isNoRows(err) {
			return nil, tap.ErrRecordNotFound
		}
		return nil, fmt.Errorf("tap/postgres: get record: %w", err)
	}
	return rec, nil
}

// ListRecords returns up to limit records of the given kind, newest first.
// An empty kind matches all records.
func (s *Store) ListRecords(ctx context.Context, kind string, limit int) ([]*journal.Record, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := s.pool.Query(ctx, `
		SELECT id, kind, key, payload, codec, created_at
		FROM tap_records
		WHERE ($1 = '' OR kind = $1)
		ORDER BY created_at DESC
		LIMIT $2`,
		kind, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("tap/postgres: list records: %w", err)
	}
	defer rows.Close()

	var recs []*journal.Record
	for rows.Next() {
		rec, scanErr := scanRecord(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("tap/postgres: scan record: %w", scanErr)
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("tap/postgres: list records: %w", err)
	}
	return recs, nil
}

// scanRecord reads one record from a row.
func scanRecord(row pgx.Row) (*journal.Record, error) {
	var (
		rec   journal.Record
		rawID string
	)
	if err := row.Scan(&rawID, &rec.Kind, &rec.Key, &rec.Payload, &rec.Codec, &rec.CreatedAt); err != nil {
		return nil, err
	}

	parsed, err := id.Parse(rawID)
	if err != nil {
		return nil, err
	}
	rec.ID = parsed
	return &rec, nil
}

// isNoRows returns true when err indicates no rows were found.
func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows)
}

// isDuplicateKey checks if a PostgreSQL error is a unique_violation (23505).
func isDuplicateKey(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
