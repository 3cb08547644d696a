package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	apperrors "bnitrack/internal/errors"
	"bnitrack/pkg/contracts/domain"
)

// GetOrCreateChapter returns the chapter with the given name, creating
// it first if necessary, and reports whether it was created. Location
// is only applied on creation, matching get-or-create semantics for
// repeated roster uploads.
func (db *DB) GetOrCreateChapter(ctx context.Context, name, location string) (domain.Chapter, bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Chapter{}, false, apperrors.NewAppValidationError("chapter name is required")
	}

	result, err := db.conn.ExecContext(ctx,
		`INSERT OR IGNORE INTO chapters (name, location, created_at) VALUES (?, ?, ?)`,
		name, location, formatTimestamp(time.Now()),
	)
	if err != nil {
		return domain.Chapter{}, false, apperrors.NewStorageError("failed to create chapter", err)
	}
	inserted, err := result.RowsAffected()
	if err != nil {
		return domain.Chapter{}, false, apperrors.NewStorageError("failed to read affected rows", err)
	}

	chapter, err := db.GetChapterByName(ctx, name)
	return chapter, inserted > 0, err
}

// GetChapter returns the chapter with the given ID.
func (db *DB) GetChapter(ctx context.Context, id int64) (domain.Chapter, error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT id, name, location, meeting_day, created_at FROM chapters WHERE id = ?`, id)
	return scanChapter(row)
}

// GetChapterByName returns the chapter with the given name.
func (db *DB) GetChapterByName(ctx context.Context, name string) (domain.Chapter, error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT id, name, location, meeting_day, created_at FROM chapters WHERE name = ?`, name)
	return scanChapter(row)
}

// ListChapters returns all chapters ordered by name.
func (db *DB) ListChapters(ctx context.Context) ([]domain.Chapter, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, name, location, meeting_day, created_at FROM chapters ORDER BY name`)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to list chapters", err)
	}
	defer rows.Close()

	var chapters []domain.Chapter
	for rows.Next() {
		var (
			c         domain.Chapter
			createdAt string
		)
		if err := rows.Scan(&c.ID, &c.Name, &c.Location, &c.MeetingDay, &createdAt); err != nil {
			return nil, apperrors.NewStorageError("failed to scan chapter row", err)
		}
		if c.CreatedAt, err = parseTimestamp(createdAt); err != nil {
			return nil, err
		}
		chapters = append(chapters, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageError("failed to iterate chapter rows", err)
	}
	return chapters, nil
}

func scanChapter(row *sql.Row) (domain.Chapter, error) {
	var (
		c         domain.Chapter
		createdAt string
	)
	err := row.Scan(&c.ID, &c.Name, &c.Location, &c.MeetingDay, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Chapter{}, apperrors.NewNotFoundError("chapter")
	}
	if err != nil {
		return domain.Chapter{}, apperrors.NewStorageError("failed to scan chapter row", err)
	}
	if c.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return domain.Chapter{}, err
	}
	return c, nil
}
