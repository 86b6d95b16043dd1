// Package localdb opens the client-side SQLite database and wires up the
// repositories that live on it.
package localdb

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/dmitrijs2005/usermgr/internal/client/localdb/migrations"
	"github.com/dmitrijs2005/usermgr/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/usermgr/internal/client/repositories/usercache"
)

// Repositories groups everything stored in the local database.
type Repositories struct {
	Metadata  metadata.Repository
	UserCache usercache.Repository
	DB        *sql.DB
}

// RunMigrations applies the embedded goose migrations.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

// InitDatabase opens (or creates) the SQLite database at dsn, migrates it to
// the latest schema and returns the repositories bound to it.
func InitDatabase(ctx context.Context, dsn string) (*Repositories, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %q: %w", dsn, err)
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Repositories{
		Metadata:  metadata.NewSQLiteRepository(db),
		UserCache: usercache.NewSQLiteRepository(db),
		DB:        db,
	}, nil
}
