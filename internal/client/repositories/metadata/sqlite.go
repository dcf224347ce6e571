package metadata

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

const (
	queryGet    = `SELECT value FROM metadata WHERE key = ?`
	queryDelete = `DELETE FROM metadata WHERE key = ?`
	queryUpsert = `
		INSERT INTO metadata (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
)

// SQLiteRepository stores metadata in the "metadata" table created by the
// embedded migrations.
type SQLiteRepository struct {
	conn Conn
}

func NewSQLiteRepository(conn Conn) *SQLiteRepository {
	return &SQLiteRepository{conn: conn}
}

func (r *SQLiteRepository) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	switch err := r.conn.QueryRowContext(ctx, queryGet, key).Scan(&value); {
	case errors.Is(err, sql.ErrNoRows):
		return "", false, nil
	case err != nil:
		return "", false, fmt.Errorf("read metadata %q: %w", key, err)
	}
	return value, true, nil
}

// Set inserts or replaces key.
func (r *SQLiteRepository) Set(ctx context.Context, key string, value string) error {
	if _, err := r.conn.ExecContext(ctx, queryUpsert, key, value); err != nil {
		return fmt.Errorf("write metadata %q: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting an absent key is not an error.
func (r *SQLiteRepository) Delete(ctx context.Context, key string) error {
	if _, err := r.conn.ExecContext(ctx, queryDelete, key); err != nil {
		return fmt.Errorf("delete metadata %q: %w", key, err)
	}
	return nil
}
