package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	apperrors "bnitrack/internal/errors"
	"bnitrack/pkg/contracts/domain"
)

// SaveSnapshot upserts the matrix stored for one chapter, period, and
// kind. Re-ingesting a period overwrites the previous snapshot.
func (db *DB) SaveSnapshot(ctx context.Context, snap domain.Snapshot) error {
	return saveSnapshot(ctx, db.conn, snap)
}

// SaveSnapshotSet upserts all three matrices of one generation pass.
func (db *DB) SaveSnapshotSet(ctx context.Context, set domain.SnapshotSet) error {
	return saveSnapshotSet(ctx, db.conn, set)
}

// LoadSnapshot returns the stored matrix for one chapter, period, and kind.
func (db *DB) LoadSnapshot(ctx context.Context, chapterID int64, period string, kind domain.SnapshotKind) (domain.Snapshot, error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT id, chapter_id, period, kind, member_names, cells, created_at
		FROM snapshots WHERE chapter_id = ? AND period = ? AND kind = ?`,
		chapterID, period, kind)

	var (
		snap      domain.Snapshot
		names     string
		cells     string
		createdAt string
	)
	err := row.Scan(&snap.ID, &snap.ChapterID, &snap.Period, &snap.Kind, &names, &cells, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Snapshot{}, apperrors.NewNotFoundError("snapshot")
	}
	if err != nil {
		return domain.Snapshot{}, apperrors.NewStorageError("failed to scan snapshot row", err)
	}

	if err := json.Unmarshal([]byte(names), &snap.Matrix.MemberNames); err != nil {
		return domain.Snapshot{}, apperrors.NewStorageError("failed to decode snapshot member names", err)
	}
	if err := json.Unmarshal([]byte(cells), &snap.Matrix.Cells); err != nil {
		return domain.Snapshot{}, apperrors.NewStorageError("failed to decode snapshot cells", err)
	}
	if snap.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return domain.Snapshot{}, err
	}
	return snap, nil
}

// LoadSnapshotSet returns all three matrices stored for one chapter and
// period. A not-found error means the period has not been ingested.
func (db *DB) LoadSnapshotSet(ctx context.Context, chapterID int64, period string) (domain.SnapshotSet, error) {
	set := domain.SnapshotSet{ChapterID: chapterID, Period: period}

	for kind, dst := range map[domain.SnapshotKind]*domain.Matrix{
		domain.SnapshotReferral:    &set.Referral,
		domain.SnapshotOneToOne:    &set.OneToOne,
		domain.SnapshotCombination: &set.Combination,
	} {
		snap, err := db.LoadSnapshot(ctx, chapterID, period, kind)
		if err != nil {
			return domain.SnapshotSet{}, err
		}
		*dst = snap.Matrix
	}
	return set, nil
}

// SnapshotPeriods returns the distinct periods the chapter has
// snapshots for, oldest first.
func (db *DB) SnapshotPeriods(ctx context.Context, chapterID int64) ([]string, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT DISTINCT period FROM snapshots WHERE chapter_id = ? ORDER BY period`, chapterID)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to query snapshot periods", err)
	}
	defer rows.Close()

	var periods []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, apperrors.NewStorageError("failed to scan snapshot period row", err)
		}
		periods = append(periods, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageError("failed to iterate snapshot period rows", err)
	}
	return periods, nil
}

func saveSnapshotSet(ctx context.Context, e execer, set domain.SnapshotSet) error {
	for kind, matrix := range map[domain.SnapshotKind]domain.Matrix{
		domain.SnapshotReferral:    set.Referral,
		domain.SnapshotOneToOne:    set.OneToOne,
		domain.SnapshotCombination: set.Combination,
	} {
		snap := domain.Snapshot{ChapterID: set.ChapterID, Period: set.Period, Kind: kind, Matrix: matrix}
		if err := saveSnapshot(ctx, e, snap); err != nil {
			return err
		}
	}
	return nil
}

func saveSnapshot(ctx context.Context, e execer, snap domain.Snapshot) error {
	names, err := json.Marshal(snap.Matrix.MemberNames)
	if err != nil {
		return apperrors.NewStorageError("failed to encode snapshot member names", err)
	}
	cells, err := json.Marshal(snap.Matrix.Cells)
	if err != nil {
		return apperrors.NewStorageError("failed to encode snapshot cells", err)
	}

	createdAt := snap.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err = e.ExecContext(ctx,
		`INSERT INTO snapshots (chapter_id, period, kind, member_names, cells, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (chapter_id, period, kind) DO UPDATE SET
			member_names = excluded.member_names,
			cells = excluded.cells,
			created_at = excluded.created_at`,
		snap.ChapterID, snap.Period, snap.Kind, string(names), string(cells), formatTimestamp(createdAt),
	)
	if err != nil {
		return apperrors.NewStorageError("failed to save snapshot", err)
	}
	return nil
}
