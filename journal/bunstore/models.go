package bunstore

import (
	"time"

	"github.com/uptrace/bun"

	"github.com/veldt/tap/id"
	"github.com/veldt/tap/journal"
)

type recordModel struct {
	bun.BaseModel `bun:"table:tap_records"`

	ID        string    `bun:"id,pk"`
	Kind      string    `bun:"kind,notnull"`
	Key       string    `bun:"key,notnull"`
	Payload   []byte    `bun:"payload,type:bytea"`
	Codec     string    `bun:"codec,notnull,default:'json'"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
}

func toRecordModel(rec *journal.Record) *recordModel {
	return &recordModel{
		ID:        rec.ID.String(),
		Kind:      rec.Kind,
		Key:       rec.Key,
		Payload:   rec.Payload,
		Codec:     rec.Codec,
		CreatedAt: rec.CreatedAt,
	}
}

func fromRecordModel(m *recordModel) (*journal.Record, error) {
	recID, err := id.Parse(m.ID)
	if err != nil {
		return nil, err
	}

	return &journal.Record{
		ID:        recID,
		Kind:      m.Kind,
		Key:       m.Key,
		Payload:   m.Payload,
		Codec:     m.Codec,
		CreatedAt: m.CreatedAt,
	}, nil
}
