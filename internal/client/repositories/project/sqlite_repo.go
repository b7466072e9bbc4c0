package project

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/worldpub/internal/dbx"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM project_state WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get project_state[%s]: %w", key, err)
	}
	return value, nil
}

func (r *SQLiteRepository) Set(ctx context.Context, key, value string) error {
	return upsert(ctx, r.db, key, value)
}

func (r *SQLiteRepository) SetMany(ctx context.Context, values map[string]string) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		for key, value := range values {
			if err := upsert(ctx, tx, key, value); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *SQLiteRepository) Delete(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM project_state WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete project_state[%s]: %w", key, err)
	}
	return nil
}

func upsert(ctx context.Context, db dbx.DBTX, key, value string) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO project_state (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set project_state[%s]: %w", key, err)
	}
	return nil
}
