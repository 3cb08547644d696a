package store

import (
	"context"
	"database/sql"
	"errors"

	apperrors "bnitrack/internal/errors"
	"bnitrack/pkg/contracts/domain"
)

// UpsertMember inserts a member or, when the chapter already has a
// member with the same normalized name, updates the stored spelling and
// activity flag. It reports whether a new row was created. The
// normalized name is the chapter-scoped identity, so repeated roster
// uploads converge instead of duplicating.
func (db *DB) UpsertMember(ctx context.Context, m domain.Member) (domain.Member, bool, error) {
	if m.NormalizedName == "" {
		return domain.Member{}, false, apperrors.NewAppValidationError("member normalized name is required")
	}
	if m.ChapterID == 0 {
		return domain.Member{}, false, apperrors.NewAppValidationError("member chapter is required")
	}

	row := db.conn.QueryRowContext(ctx,
		`SELECT id FROM members WHERE chapter_id = ? AND normalized_name = ?`,
		m.ChapterID, m.NormalizedName)
	err := row.Scan(&m.ID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		result, err := db.conn.ExecContext(ctx,
			`INSERT INTO members (chapter_id, first_name, last_name, normalized_name, is_active)
			VALUES (?, ?, ?, ?, ?)`,
			m.ChapterID, m.FirstName, m.LastName, m.NormalizedName, m.IsActive,
		)
		if err != nil {
			return domain.Member{}, false, apperrors.NewStorageError("failed to insert member", err)
		}
		m.ID, err = result.LastInsertId()
		if err != nil {
			return domain.Member{}, false, apperrors.NewStorageError("failed to read inserted member id", err)
		}
		return m, true, nil
	case err != nil:
		return domain.Member{}, false, apperrors.NewStorageError("failed to look up member", err)
	}

	_, err = db.conn.ExecContext(ctx,
		`UPDATE members SET first_name = ?, last_name = ?, is_active = ? WHERE id = ?`,
		m.FirstName, m.LastName, m.IsActive, m.ID,
	)
	if err != nil {
		return domain.Member{}, false, apperrors.NewStorageError("failed to update member", err)
	}
	return m, false, nil
}

// ActiveMembers returns the chapter's active roster ordered by display name.
func (db *DB) ActiveMembers(ctx context.Context, chapterID int64) ([]domain.Member, error) {
	return db.queryMembers(ctx,
		`SELECT id, chapter_id, first_name, last_name, normalized_name, is_active
		FROM members WHERE chapter_id = ? AND is_active = 1
		ORDER BY first_name, last_name`, chapterID)
}

// ListMembers returns all of the chapter's members, active or not,
// ordered by display name.
func (db *DB) ListMembers(ctx context.Context, chapterID int64) ([]domain.Member, error) {
	return db.queryMembers(ctx,
		`SELECT id, chapter_id, first_name, last_name, normalized_name, is_active
		FROM members WHERE chapter_id = ?
		ORDER BY first_name, last_name`, chapterID)
}

// DeactivateMember marks a member inactive without removing the rows
// that reference their normalized name in past periods.
func (db *DB) DeactivateMember(ctx context.Context, memberID int64) error {
	result, err := db.conn.ExecContext(ctx,
		`UPDATE members SET is_active = 0 WHERE id = ?`, memberID)
	if err != nil {
		return apperrors.NewStorageError("failed to deactivate member", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewStorageError("failed to read affected rows", err)
	}
	if affected == 0 {
		return apperrors.NewNotFoundError("member")
	}
	return nil
}

func (db *DB) queryMembers(ctx context.Context, query string, args ...any) ([]domain.Member, error) {
	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to query members", err)
	}
	defer rows.Close()

	var members []domain.Member
	for rows.Next() {
		var m domain.Member
		if err := rows.Scan(&m.ID, &m.ChapterID, &m.FirstName, &m.LastName, &m.NormalizedName, &m.IsActive); err != nil {
			return nil, apperrors.NewStorageError("failed to scan member row", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageError("failed to iterate member rows", err)
	}
	return members, nil
}
