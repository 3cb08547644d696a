package store

import (
	"database/sql"
	"fmt"
	"log/slog"

	apperrors "bnitrack/internal/errors"
)

// Migration represents a single schema migration step.
type Migration struct {
	Version     int
	Description string
	Up          func(tx *sql.Tx) error
}

// getSchemaVersion reads PRAGMA user_version from the database.
func getSchemaVersion(conn *sql.DB) (int, error) {
	var version int
	if err := conn.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return 0, apperrors.NewStorageError("failed to read schema version", err)
	}
	return version, nil
}

// migrate brings the database schema up to the latest version.
// It uses PRAGMA user_version to track which migrations have been applied.
func migrate(conn *sql.DB) error {
	current, err := getSchemaVersion(conn)
	if err != nil {
		return err
	}

	latest := latestVersion()
	if current >= latest {
		return nil
	}

	for _, m := range migrations {
		if m.Version <= current {
			continue
		}

		slog.Info("applying schema migration",
			slog.Int("version", m.Version),
			slog.String("description", m.Description))

		tx, err := conn.Begin()
		if err != nil {
			return apperrors.NewStorageError(fmt.Sprintf("failed to begin migration %d", m.Version), err)
		}

		if err := m.Up(tx); err != nil {
			tx.Rollback()
			return apperrors.NewStorageError(fmt.Sprintf("migration %d (%s) failed", m.Version, m.Description), err)
		}

		if err := tx.Commit(); err != nil {
			return apperrors.NewStorageError(fmt.Sprintf("failed to commit migration %d", m.Version), err)
		}

		// Set user_version outside the transaction (modernc/sqlite requirement).
		// Safe: if we crash here, the idempotent DDL lets the migration re-run.
		if _, err := conn.Exec(fmt.Sprintf("PRAGMA user_version = %d", m.Version)); err != nil {
			return apperrors.NewStorageError(fmt.Sprintf("failed to set schema version %d", m.Version), err)
		}
	}

	return nil
}
