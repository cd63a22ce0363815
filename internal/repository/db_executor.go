package repository

import (
	"context"
	"database/sql"
)

// DBExecutor defines the database operations repositories need.
// Both *sqlx.DB and *sqlx.Tx implement these methods, so repositories can
// run either on the pooled connection or inside a transaction.
type DBExecutor interface {
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}
