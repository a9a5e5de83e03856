package database

import (
	"database/sql"
	"regexp"
	"strconv"
)

// Dialect abstracts the differences between the supported SQL backends.
// Repositories always write ?-style placeholders; the dialect rewrites
// them where the driver needs something else.
type Dialect interface {
	// DriverName returns the driver name for sql.Open.
	DriverName() string

	// DSN returns the data source name for the connection.
	DSN(cfg ConnConfig) string

	// RewriteQuery converts placeholder syntax if needed (? to $1 for postgres).
	RewriteQuery(query string) string

	// SupportsLastInsertID reports whether the driver implements LastInsertId.
	SupportsLastInsertID() bool

	// ConfigureConnection applies driver-specific connection settings.
	ConfigureConnection(db *sql.DB) error

	// MigrationsSubdir returns the per-backend migrations directory name.
	MigrationsSubdir() string

	// CreateMigrationsTableQuery returns the SQL for the migrations tracking table.
	CreateMigrationsTableQuery() string
}

// ConnConfig holds backend-specific connection settings.
type ConnConfig struct {
	// Path is the database file for SQLite.
	Path string

	// URL is the connection string for PostgreSQL and MySQL.
	URL string
}

var placeholderRegexp = regexp.MustCompile(`\?`)

// rewritePlaceholdersToNumbered converts ? placeholders to $1, $2, ...
func rewritePlaceholdersToNumbered(query string) string {
	n := 0
	return placeholderRegexp.ReplaceAllStringFunc(query, func(string) string {
		n++
		return "$" + strconv.Itoa(n)
	})
}
