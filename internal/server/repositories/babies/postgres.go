package babies

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

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

func (r *PostgresRepository) Upsert(ctx context.Context, userID string, baby *models.Baby) error {
	query :=
		`INSERT INTO babies (id, user_id, name, birth_date, weight_grams, height_cm, gender, avatar_url)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (id) DO UPDATE
		 SET name = excluded.name,
		     birth_date = excluded.birth_date,
		     weight_grams = excluded.weight_grams,
		     height_cm = excluded.height_cm,
		     gender = excluded.gender
		 `

	_, err := r.db.ExecContext(ctx, query,
		baby.ID, userID, baby.Name, baby.BirthDate, baby.WeightGrams, baby.HeightCm, baby.Gender, baby.AvatarURL)

	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, babyID string) (*models.Baby, error) {
	query :=
		`SELECT id, name, birth_date, weight_grams, height_cm, gender, avatar_url
		 FROM babies
		 WHERE id = $1
		 `

	b := &models.Baby{}
	err := r.db.QueryRowContext(ctx, query, babyID).Scan(
		&b.ID, &b.Name, &b.BirthDate, &b.WeightGrams, &b.HeightCm, &b.Gender, &b.AvatarURL)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return b, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]models.Baby, error) {
	query :=
		`SELECT id, name, birth_date, weight_grams, height_cm, gender, avatar_url
		 FROM babies
		 WHERE user_id = $1
		 ORDER BY birth_date
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.Baby
	for rows.Next() {
		var b models.Baby
		if err := rows.Scan(&b.ID, &b.Name, &b.BirthDate, &b.WeightGrams, &b.HeightCm, &b.Gender, &b.AvatarURL); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, b)
	}

	return result, rows.Err()
}

func (r *PostgresRepository) SetAvatarURL(ctx context.Context, babyID, url string) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE babies SET avatar_url = $2 WHERE id = $1`, babyID, url); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
