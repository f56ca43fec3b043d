// Package sqlite reads browser history, bookmark and cloud tab stores
// that are kept in SQLite databases.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"iter"
	"net/url"
	"path/filepath"
	"time"

	"github.com/fwojciec/resworb"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// DB represents a read-only SQLite database connection.
type DB struct {
	db   *sql.DB
	path string
}

// NewDB creates a new DB instance for the database file at path.
func NewDB(path string) *DB {
	return &DB{path: path}
}

// DSN returns the read-only URI used to open the database.
func (db *DB) DSN() string {
	u := url.URL{
		Scheme:   "file",
		Path:     filepath.ToSlash(db.path),
		RawQuery: "mode=ro",
	}
	return u.String()
}

// Open opens the database connection.
// The browser's files are never written to.
func (db *DB) Open() error {
	conn, err := sql.Open("sqlite3", db.DSN())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	conn.SetMaxOpenConns(1)

	// Verify connection
	if err := conn.Ping(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// A running browser may hold a write lock; wait for it instead of
	// failing immediately with "database is locked".
	if _, err := conn.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		conn.Close()
		return fmt.Errorf("failed to set busy timeout: %w", err)
	}

	db.db = conn
	return nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.db != nil {
		return db.db.Close()
	}
	return nil
}

// QueryContext executes a query that returns rows.
func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.db.QueryContext(ctx, query, args...)
}

// open opens the database at path, reporting failures through yield.
func open[T any](path string, yield func(T, error) bool) (*DB, bool) {
	db := NewDB(path)
	if err := db.Open(); err != nil {
		var zero T
		yield(zero, fmt.Errorf("%s: %w", path, err))
		return nil, false
	}
	return db, true
}

// queryRows returns a sequence over the rows of query against the database
// at path. The database is opened when iteration starts and closed when it
// stops.
func queryRows[T any](ctx context.Context, path, query string, scan func(*sql.Rows) (T, error)) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var zero T

		db, ok := open(path, yield)
		if !ok {
			return
		}
		defer db.Close()

		rows, err := db.QueryContext(ctx, query)
		if err != nil {
			yield(zero, err)
			return
		}
		defer rows.Close()

		for rows.Next() {
			v, err := scan(rows)
			if err != nil {
				yield(zero, err)
				return
			}
			if !yield(v, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(zero, err)
		}
	}
}

// formatVisitTime formats Unix seconds as local time.
func formatVisitTime(unix int64) string {
	return time.Unix(unix, 0).Local().Format(resworb.VisitTimeLayout)
}
