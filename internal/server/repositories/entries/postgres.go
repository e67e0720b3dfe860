package entries

import (
	"context"
	"fmt"
	"time"

	"babysteps/internal/common"
	"babysteps/internal/dbx"
	"babysteps/internal/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Upsert(ctx context.Context, row *Row) error {
	query :=
		`INSERT INTO entries (id, baby_id, kind, recorded_at, payload)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (id) DO UPDATE
		 SET recorded_at = excluded.recorded_at,
		     payload = excluded.payload
		 `

	_, err := r.db.ExecContext(ctx, query, row.ID, row.BabyID, row.Kind, row.RecordedAt, row.Payload)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, babyID, entryID string, kind models.EntryKind) error {
	query := `DELETE FROM entries WHERE id = $1 AND baby_id = $2 AND kind = $3`

	res, err := r.db.ExecContext(ctx, query, entryID, babyID, kind)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}

	return nil
}

func (r *PostgresRepository) ListByBaby(ctx context.Context, babyID string) ([]Row, error) {
	query :=
		`SELECT id, baby_id, kind, recorded_at, payload
		 FROM entries
		 WHERE baby_id = $1
		 ORDER BY recorded_at
		 `
	return r.list(ctx, query, babyID)
}

func (r *PostgresRepository) ListByBabySince(ctx context.Context, babyID string, since time.Time) ([]Row, error) {
	query :=
		`SELECT id, baby_id, kind, recorded_at, payload
		 FROM entries
		 WHERE baby_id = $1 AND recorded_at >= $2
		 ORDER BY recorded_at
		 `
	return r.list(ctx, query, babyID, since)
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]Row, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []Row
	for rows.Next() {
		var row Row
		if err := rows.Scan(&row.ID, &row.BabyID, &row.Kind, &row.RecordedAt, &row.Payload); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, row)
	}

	return result, rows.Err()
}
