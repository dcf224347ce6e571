// Package metadata persists small client-side key/value facts, such as the
// session token, in the local sqlite database.
package metadata

import (
	"context"
	"database/sql"
)

// KeySessionToken holds the bearer token of the signed-in user.
const KeySessionToken = "session_token"

// Repository is a durable string key/value store. Get returns ("", false, nil)
// when the key is absent.
type Repository interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
}

// Conn is satisfied by both *sql.DB and *sql.Tx.
type Conn interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
