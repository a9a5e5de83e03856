// Package database wraps database/sql with dialect-aware placeholder
// rewriting and file-based migrations, supporting sqlite (default),
// postgres and mysql backends.
package database

import (
	"database/sql"
	"fmt"
	"strings"
)

// DB wraps the database connection with dialect support.
type DB struct {
	*sql.DB
	Dialect Dialect
}

// Open connects to the configured backend and applies the dialect's
// connection settings.
func Open(backend string, cfg ConnConfig) (*DB, error) {
	var dialect Dialect
	switch strings.ToLower(backend) {
	case "postgres", "postgresql":
		dialect = NewPostgresDialect()
	case "mysql":
		dialect = NewMySQLDialect()
	case "sqlite", "sqlite3", "":
		dialect = NewSQLiteDialect()
	default:
		return nil, fmt.Errorf("unsupported database backend: %s", backend)
	}

	db, err := sql.Open(dialect.DriverName(), dialect.DSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := dialect.ConfigureConnection(db); err != nil {
		return nil, fmt.Errorf("failed to configure connection: %w", err)
	}

	return &DB{DB: db, Dialect: dialect}, nil
}

// Close closes the underlying connection.
func (db *DB) Close() error {
	return db.DB.Close()
}

// Query executes a query with automatic placeholder rewriting.
func (db *DB) Query(query string, args ...interface{}) (*sql.Rows, error) {
	return db.DB.Query(db.Dialect.RewriteQuery(query), args...)
}

// QueryRow executes a single-row query with automatic placeholder rewriting.
func (db *DB) QueryRow(query string, args ...interface{}) *sql.Row {
	return db.DB.QueryRow(db.Dialect.RewriteQuery(query), args...)
}

// Exec executes a statement with automatic placeholder rewriting.
func (db *DB) Exec(query string, args ...interface{}) (sql.Result, error) {
	return db.DB.Exec(db.Dialect.RewriteQuery(query), args...)
}

// ExecReturningID executes an INSERT and returns the new row's id,
// bridging the gap between drivers with LastInsertId and PostgreSQL's
// RETURNING clause.
func (db *DB) ExecReturningID(query string, args ...interface{}) (int64, error) {
	rewritten := db.Dialect.RewriteQuery(query)

	if db.Dialect.SupportsLastInsertID() {
		result, err := db.DB.Exec(rewritten, args...)
		if err != nil {
			return 0, err
		}
		return result.LastInsertId()
	}

	rewritten = strings.TrimSuffix(strings.TrimSpace(rewritten), ";") + " RETURNING id"

	var id int64
	if err := db.DB.QueryRow(rewritten, args...).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}
