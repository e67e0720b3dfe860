// Package repomanager wires every repository to one database handle.
package repomanager

import (
	"context"
	"database/sql"

	"babysteps/internal/server/repositories/babies"
	"babysteps/internal/server/repositories/entries"
	"babysteps/internal/server/repositories/family"
	"babysteps/internal/server/repositories/settings"
	"babysteps/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context) error
	Conn() *sql.DB
	Users() users.Repository
	Babies() babies.Repository
	Entries() entries.Repository
	Settings() settings.Repository
	Family() family.Repository
}
