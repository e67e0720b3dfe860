package settings

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"babysteps/internal/dbx"
	"babysteps/internal/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByUser(ctx context.Context, userID string) (*models.AppSettings, error) {
	query := `SELECT id, payload FROM settings WHERE user_id = $1`

	var id string
	var payload []byte
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&id, &payload)

	if errors.Is(err, sql.ErrNoRows) {
		return r.createDefault(ctx, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	s := &models.AppSettings{}
	if err := json.Unmarshal(payload, s); err != nil {
		return nil, fmt.Errorf("decoding settings: %w", err)
	}
	s.ID = id
	s.UserID = userID
	return s, nil
}

func (r *PostgresRepository) createDefault(ctx context.Context, userID string) (*models.AppSettings, error) {
	s := models.DefaultSettings(userID)

	payload, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encoding settings: %w", err)
	}

	query := `INSERT INTO settings (user_id, payload) VALUES ($1, $2) RETURNING id`
	if err := r.db.QueryRowContext(ctx, query, userID, payload).Scan(&s.ID); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return &s, nil
}

func (r *PostgresRepository) Save(ctx context.Context, s *models.AppSettings) error {
	payload, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}

	query := `UPDATE settings SET payload = $2 WHERE user_id = $1`
	if _, err := r.db.ExecContext(ctx, query, s.UserID, payload); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}
