package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"babysteps/internal/server/migrations"
	"babysteps/internal/server/repositories/babies"
	"babysteps/internal/server/repositories/entries"
	"babysteps/internal/server/repositories/family"
	"babysteps/internal/server/repositories/settings"
	"babysteps/internal/server/repositories/users"
)

type PostgresRepositoryManager struct {
	db       *sql.DB
	users    users.Repository
	babies   babies.Repository
	entries  entries.Repository
	settings settings.Repository
	family   family.Repository
}

func (m *PostgresRepositoryManager) Conn() *sql.DB {
	return m.db
}

func (m *PostgresRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *PostgresRepositoryManager) Babies() babies.Repository {
	return m.babies
}

func (m *PostgresRepositoryManager) Entries() entries.Repository {
	return m.entries
}

func (m *PostgresRepositoryManager) Settings() settings.Repository {
	return m.settings
}

func (m *PostgresRepositoryManager) Family() family.Repository {
	return m.family
}

func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	if err := goose.UpContext(ctx, m.db, "."); err != nil {
		return err
	}

	return nil
}

func NewPostgresRepositoryManager(dsn string) (RepositoryManager, error) {

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	m := &PostgresRepositoryManager{
		db:       db,
		users:    users.NewPostgresRepository(db),
		babies:   babies.NewPostgresRepository(db),
		entries:  entries.NewPostgresRepository(db),
		settings: settings.NewPostgresRepository(db),
		family:   family.NewPostgresRepository(db),
	}

	err = m.RunMigrations(context.Background())
	if err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return m, nil
}
