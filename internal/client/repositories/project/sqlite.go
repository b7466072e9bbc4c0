package project

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/worldpub/internal/client/migrations"
	"github.com/pressly/goose/v3"
)

// Open opens (creating if needed) the local project database and applies
// pending migrations.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dsn, err)
	}

	if err := RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}
