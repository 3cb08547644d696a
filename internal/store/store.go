// Package store persists chapters, members, interaction records, and
// matrix snapshots in a single SQLite database file. All access goes
// through database/sql with the modernc.org/sqlite driver, so the
// binary stays CGO-free.
package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	apperrors "bnitrack/internal/errors"
)

// DB wraps the SQLite connection shared by all stores.
type DB struct {
	conn *sql.DB
	path string
}

// Open creates or opens the database at the given path, creating the
// parent directory if needed, and brings the schema up to date.
func Open(dbPath string) (*DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, apperrors.NewStorageError("failed to create data directory", err)
	}

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to open database", err)
	}

	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, apperrors.NewStorageError("failed to set journal mode", err)
	}
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, apperrors.NewStorageError("failed to enable foreign keys", err)
	}

	if err := migrate(conn); err != nil {
		conn.Close()
		return nil, err
	}

	return &DB{conn: conn, path: dbPath}, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Ping verifies the database connection, for health checks.
func (db *DB) Ping(ctx context.Context) error {
	if err := db.conn.PingContext(ctx); err != nil {
		return apperrors.NewStorageError("database ping failed", err)
	}
	return nil
}

// Path returns the database file path.
func (db *DB) Path() string {
	return db.path
}

// Timestamps are stored as RFC 3339 text so they survive the TEXT
// affinity round trip regardless of driver conversion rules.
func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func parseTimestamp(raw string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, apperrors.NewStorageError("failed to parse stored timestamp", err)
	}
	return t, nil
}
