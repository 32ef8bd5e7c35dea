// Package db persists admin data through database/sql. PostgreSQL is reached
// through the pgx stdlib driver and SQLite through modernc.org/sqlite; the
// queries are shared and rebound to each driver's placeholder style.
package db

import (
	"context"
	"database/sql"
	"strconv"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
	"github.com/pkg/errors"
	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

// ErrNotFound is returned when a row does not exist.
var ErrNotFound = errors.New("not found")

// Supported drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// DB wraps a database/sql pool for one of the supported drivers.
type DB struct {
	sql    *sql.DB
	driver string
}

// New opens a connection pool, verifies it, and applies the schema.
func New(ctx context.Context, driver, url string) (*DB, error) {
	driver = strings.ToLower(strings.TrimSpace(driver))
	if driver == "" {
		driver = DriverFromURL(url)
	}

	var driverName string
	switch driver {
	case DriverPostgres:
		driverName = "pgx"
	case DriverSQLite:
		driverName = "sqlite"
	default:
		return nil, errors.Errorf("unsupported database driver %q", driver)
	}

	pool, err := sql.Open(driverName, url)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database")
	}

	if driver == DriverSQLite {
		// A single connection keeps in-memory databases alive and avoids
		// SQLITE_BUSY between writers.
		pool.SetMaxOpenConns(1)
	} else {
		pool.SetMaxOpenConns(20)
		pool.SetConnMaxIdleTime(5 * time.Minute)
	}

	if err := pool.PingContext(ctx); err != nil {
		pool.Close()
		return nil, errors.Wrap(err, "failed to ping database")
	}

	db := &DB{sql: pool, driver: driver}
	if err := db.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return db, nil
}

// DriverFromURL guesses the driver from a connection string.
func DriverFromURL(url string) string {
	if strings.HasPrefix(url, "postgres://") || strings.HasPrefix(url, "postgresql://") {
		return DriverPostgres
	}
	return DriverSQLite
}

// Close releases the pool.
func (db *DB) Close() error {
	return db.sql.Close()
}

// Driver returns the active driver name.
func (db *DB) Driver() string {
	return db.driver
}

func (db *DB) migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := db.sql.ExecContext(ctx, stmt); err != nil {
			return errors.Wrapf(err, "failed to apply schema: %s", firstLine(stmt))
		}
	}
	return nil
}

// rebind rewrites ? placeholders to $n for PostgreSQL.
func (db *DB) rebind(query string) string {
	if db.driver != DriverPostgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (db *DB) exec(ctx context.Context, q queryer, query string, args ...any) (sql.Result, error) {
	return q.ExecContext(ctx, db.rebind(query), args...)
}

func (db *DB) query(ctx context.Context, q queryer, query string, args ...any) (*sql.Rows, error) {
	return q.QueryContext(ctx, db.rebind(query), args...)
}

func (db *DB) queryRow(ctx context.Context, q queryer, query string, args ...any) *sql.Row {
	return q.QueryRowContext(ctx, db.rebind(query), args...)
}

// withTx runs fn in a transaction, rolling back on error.
func (db *DB) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := db.sql.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "failed to commit transaction")
	}
	return nil
}

// now returns the current time in UTC at the millisecond precision the
// admin API exposes.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

func nullTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time.UTC()
	return &v
}

func nullString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
