// Package entries persists care entries of every kind in one table, the
// envelope payload stored as JSONB discriminated by the kind column.
package entries

import (
	"context"
	"time"

	"babysteps/internal/models"
)

// Row is one stored entry.
type Row struct {
	ID         string
	BabyID     string
	Kind       models.EntryKind
	RecordedAt time.Time
	Payload    []byte
}

type Repository interface {
	// Upsert creates or replaces one entry.
	Upsert(ctx context.Context, row *Row) error

	// Delete removes one entry of the given kind. Missing rows return
	// common.ErrorNotFound.
	Delete(ctx context.Context, babyID, entryID string, kind models.EntryKind) error

	// ListByBaby returns all of a baby's entries, oldest first.
	ListByBaby(ctx context.Context, babyID string) ([]Row, error)

	// ListByBabySince returns entries recorded at or after since, oldest
	// first.
	ListByBabySince(ctx context.Context, babyID string, since time.Time) ([]Row, error)
}
