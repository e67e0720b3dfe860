// Package localstore persists the small amount of durable client state: the
// identifying email that re-associates the store with server data on reload,
// and the last selected baby. Backed by a sqlite key/value table.
package localstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"babysteps/internal/client/localstore/migrations"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

const (
	keyIdentityEmail = "identity_email"
	keyCurrentBaby   = "current_baby"
)

type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the local database and applies pending
// migrations.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening local db: %w", err)
	}

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return nil, fmt.Errorf("setting goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return nil, fmt.Errorf("migrating local db: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("db error: %w", err)
	}
	return value, nil
}

func (s *Store) set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO metadata (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (s *Store) delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM metadata WHERE key = ?`, key); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// LoadEmail returns the persisted identifying email, or "" when none is
// stored.
func (s *Store) LoadEmail(ctx context.Context) (string, error) {
	return s.get(ctx, keyIdentityEmail)
}

// SaveEmail persists the identifying email.
func (s *Store) SaveEmail(ctx context.Context, email string) error {
	return s.set(ctx, keyIdentityEmail, email)
}

// ClearEmail removes the persisted identifying email.
func (s *Store) ClearEmail(ctx context.Context) error {
	return s.delete(ctx, keyIdentityEmail)
}

// LoadCurrentBaby returns the last selected baby id, or "".
func (s *Store) LoadCurrentBaby(ctx context.Context) (string, error) {
	return s.get(ctx, keyCurrentBaby)
}

// SaveCurrentBaby persists the selected baby id.
func (s *Store) SaveCurrentBaby(ctx context.Context, babyID string) error {
	return s.set(ctx, keyCurrentBaby, babyID)
}
