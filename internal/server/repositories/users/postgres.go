package users

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

func (r *PostgresRepository) EnsureByEmail(ctx context.Context, email string) (*models.UserProfile, error) {
	query :=
		`INSERT INTO users (email)
		 VALUES ($1)
		 ON CONFLICT (email) DO UPDATE SET email = excluded.email
		 RETURNING id, email, name, phone, role, locale, timezone, email_verified, phone_verified
		 `

	u := &models.UserProfile{}
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&u.ID, &u.Email, &u.Name, &u.Phone, &u.Role, &u.Locale, &u.Timezone, &u.EmailVerified, &u.PhoneVerified)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return u, nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.UserProfile, error) {
	query :=
		`SELECT id, email, name, phone, role, locale, timezone, email_verified, phone_verified
		 FROM users
		 WHERE email = $1
		 `

	u := &models.UserProfile{}
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&u.ID, &u.Email, &u.Name, &u.Phone, &u.Role, &u.Locale, &u.Timezone, &u.EmailVerified, &u.PhoneVerified)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return u, nil
}

func (r *PostgresRepository) Update(ctx context.Context, profile *models.UserProfile) error {
	query :=
		`UPDATE users
		 SET name = $2, phone = $3, role = $4, locale = $5, timezone = $6
		 WHERE id = $1
		 `

	_, err := r.db.ExecContext(ctx, query,
		profile.ID, profile.Name, profile.Phone, profile.Role, profile.Locale, profile.Timezone)

	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}
