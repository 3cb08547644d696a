package store

import (
	"context"
	"database/sql"
	"fmt"

	apperrors "bnitrack/internal/errors"
	"bnitrack/pkg/contracts/domain"
)

// execer is the subset of *sql.DB and *sql.Tx the insert helpers need.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// BulkInsertInteractions stores a batch of interaction records and
// returns how many were newly created. Records that collide with an
// already-stored fingerprint are ignored, so re-inserting the same
// batch is a no-op.
func (db *DB) BulkInsertInteractions(ctx context.Context, records []domain.Interaction) (int, error) {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, apperrors.NewStorageError("failed to begin interaction insert", err)
	}
	created, err := insertInteractions(ctx, tx, records)
	if err != nil {
		tx.Rollback()
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, apperrors.NewStorageError("failed to commit interaction insert", err)
	}
	return created, nil
}

// DeleteInteractionsForPeriod removes every record stored for the
// chapter and period and returns how many rows were deleted.
func (db *DB) DeleteInteractionsForPeriod(ctx context.Context, chapterID int64, period string) (int64, error) {
	result, err := db.conn.ExecContext(ctx,
		`DELETE FROM interactions WHERE chapter_id = ? AND period = ?`, chapterID, period)
	if err != nil {
		return 0, apperrors.NewStorageError("failed to delete period records", err)
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.NewStorageError("failed to read affected rows", err)
	}
	return deleted, nil
}

// InteractionsForPeriod returns the chapter's records for one period in
// insertion order, which preserves the source file's row order.
func (db *DB) InteractionsForPeriod(ctx context.Context, chapterID int64, period string) ([]domain.Interaction, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, chapter_id, period, kind, giver_norm, receiver_norm, amount, currency, within_chapter, detail
		FROM interactions WHERE chapter_id = ? AND period = ? ORDER BY id`, chapterID, period)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to query period records", err)
	}
	defer rows.Close()

	var records []domain.Interaction
	for rows.Next() {
		var rec domain.Interaction
		if err := rows.Scan(&rec.ID, &rec.ChapterID, &rec.Period, &rec.Kind,
			&rec.Giver, &rec.Receiver, &rec.Amount, &rec.Currency, &rec.WithinChapter, &rec.Detail); err != nil {
			return nil, apperrors.NewStorageError("failed to scan interaction row", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageError("failed to iterate interaction rows", err)
	}
	return records, nil
}

// InteractionPeriods returns the distinct periods the chapter has
// records for, oldest first.
func (db *DB) InteractionPeriods(ctx context.Context, chapterID int64) ([]string, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT DISTINCT period FROM interactions WHERE chapter_id = ? ORDER BY period`, chapterID)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to query periods", err)
	}
	defer rows.Close()

	var periods []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, apperrors.NewStorageError("failed to scan period row", err)
		}
		periods = append(periods, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageError("failed to iterate period rows", err)
	}
	return periods, nil
}

// SaveIngestion atomically replaces one period's stored records and
// snapshots: the old records are deleted, the new batch inserted, and
// the regenerated matrices upserted, all in a single transaction.
func (db *DB) SaveIngestion(ctx context.Context, set domain.SnapshotSet, records []domain.Interaction) (int, error) {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, apperrors.NewStorageError("failed to begin ingestion save", err)
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM interactions WHERE chapter_id = ? AND period = ?`,
		set.ChapterID, set.Period); err != nil {
		tx.Rollback()
		return 0, apperrors.NewStorageError("failed to clear period records", err)
	}

	created, err := insertInteractions(ctx, tx, records)
	if err != nil {
		tx.Rollback()
		return 0, err
	}

	if err := saveSnapshotSet(ctx, tx, set); err != nil {
		tx.Rollback()
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, apperrors.NewStorageError("failed to commit ingestion save", err)
	}
	return created, nil
}

func insertInteractions(ctx context.Context, e execer, records []domain.Interaction) (int, error) {
	created := 0
	seen := make(map[string]int, len(records))
	for _, rec := range records {
		result, err := e.ExecContext(ctx,
			`INSERT OR IGNORE INTO interactions
			(chapter_id, period, kind, giver_norm, receiver_norm, amount, currency, within_chapter, detail, fingerprint)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			rec.ChapterID, rec.Period, rec.Kind, rec.Giver, rec.Receiver,
			rec.Amount, rec.Currency, rec.WithinChapter, rec.Detail, fingerprint(rec, seen),
		)
		if err != nil {
			return created, apperrors.NewStorageError("failed to insert interaction record", err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return created, apperrors.NewStorageError("failed to read affected rows", err)
		}
		created += int(affected)
	}
	return created, nil
}

// fingerprint derives the dedupe key for a record. Repeated identical
// tuples within one batch get an incrementing occurrence sequence, so a
// member giving the same member two referrals in one period keeps both,
// while re-ingesting the same file maps onto the same keys. One-to-one
// participants are ordered so the two slip directions collide.
func fingerprint(rec domain.Interaction, seen map[string]int) string {
	a, b := rec.Giver, rec.Receiver
	if rec.Kind == domain.KindOneToOne && a > b {
		a, b = b, a
	}
	base := fmt.Sprintf("%d|%s|%s|%s|%s", rec.ChapterID, rec.Period, rec.Kind, a, b)
	seq := seen[base]
	seen[base] = seq + 1
	return fmt.Sprintf("%s|%d", base, seq)
}
