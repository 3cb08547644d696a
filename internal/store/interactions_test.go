package store

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bnitrack/pkg/contracts/domain"
)

func storedRecord(chapterID int64, period string, kind domain.InteractionKind, giver, receiver string) domain.Interaction {
	return domain.Interaction{
		ChapterID:     chapterID,
		Period:        period,
		Kind:          kind,
		Giver:         giver,
		Receiver:      receiver,
		Currency:      "AED",
		WithinChapter: true,
	}
}

func TestBulkInsertInteractions(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	chapter := seedChapter(t, db)

	tyfcb := storedRecord(chapter.ID, "2026-07", domain.KindTYFCB, "bob smith", "alice johnson")
	tyfcb.Amount = decimal.RequireFromString("1500.50")
	tyfcb.Detail = "Kitchen remodel"

	records := []domain.Interaction{
		storedRecord(chapter.ID, "2026-07", domain.KindReferral, "alice johnson", "bob smith"),
		storedRecord(chapter.ID, "2026-07", domain.KindOneToOne, "alice johnson", "carol white"),
		tyfcb,
	}

	created, err := db.BulkInsertInteractions(ctx, records)
	require.NoError(t, err)
	assert.Equal(t, 3, created)

	stored, err := db.InteractionsForPeriod(ctx, chapter.ID, "2026-07")
	require.NoError(t, err)
	require.Len(t, stored, 3)

	assert.Equal(t, domain.KindReferral, stored[0].Kind)
	assert.Equal(t, "alice johnson", stored[0].Giver)
	assert.Equal(t, "bob smith", stored[0].Receiver)
	assert.True(t, stored[0].WithinChapter)

	assert.Equal(t, domain.KindTYFCB, stored[2].Kind)
	assert.True(t, stored[2].Amount.Equal(decimal.RequireFromString("1500.50")))
	assert.Equal(t, "AED", stored[2].Currency)
	assert.Equal(t, "Kitchen remodel", stored[2].Detail)
	assert.NotZero(t, stored[2].ID)
}

func TestBulkInsertIdempotent(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	chapter := seedChapter(t, db)

	records := []domain.Interaction{
		storedRecord(chapter.ID, "2026-07", domain.KindReferral, "alice johnson", "bob smith"),
		storedRecord(chapter.ID, "2026-07", domain.KindOneToOne, "alice johnson", "carol white"),
	}

	created, err := db.BulkInsertInteractions(ctx, records)
	require.NoError(t, err)
	assert.Equal(t, 2, created)

	created, err = db.BulkInsertInteractions(ctx, records)
	require.NoError(t, err)
	assert.Equal(t, 0, created)

	stored, err := db.InteractionsForPeriod(ctx, chapter.ID, "2026-07")
	require.NoError(t, err)
	assert.Len(t, stored, 2)
}

func TestBulkInsertKeepsRepeatedReferrals(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	chapter := seedChapter(t, db)

	// Two referrals between the same pair in one period are distinct facts.
	records := []domain.Interaction{
		storedRecord(chapter.ID, "2026-07", domain.KindReferral, "alice johnson", "bob smith"),
		storedRecord(chapter.ID, "2026-07", domain.KindReferral, "alice johnson", "bob smith"),
	}

	created, err := db.BulkInsertInteractions(ctx, records)
	require.NoError(t, err)
	assert.Equal(t, 2, created)
}

func TestBulkInsertOneToOnePairOrderCollides(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	chapter := seedChapter(t, db)

	created, err := db.BulkInsertInteractions(ctx, []domain.Interaction{
		storedRecord(chapter.ID, "2026-07", domain.KindOneToOne, "alice johnson", "bob smith"),
	})
	require.NoError(t, err)
	require.Equal(t, 1, created)

	// The reversed slip direction maps onto the same fingerprint.
	created, err = db.BulkInsertInteractions(ctx, []domain.Interaction{
		storedRecord(chapter.ID, "2026-07", domain.KindOneToOne, "bob smith", "alice johnson"),
	})
	require.NoError(t, err)
	assert.Equal(t, 0, created)
}

func TestDeleteInteractionsForPeriod(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	chapter := seedChapter(t, db)

	_, err := db.BulkInsertInteractions(ctx, []domain.Interaction{
		storedRecord(chapter.ID, "2026-07", domain.KindReferral, "alice johnson", "bob smith"),
		storedRecord(chapter.ID, "2026-07", domain.KindOneToOne, "alice johnson", "carol white"),
		storedRecord(chapter.ID, "2026-08", domain.KindReferral, "bob smith", "carol white"),
	})
	require.NoError(t, err)

	deleted, err := db.DeleteInteractionsForPeriod(ctx, chapter.ID, "2026-07")
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	july, err := db.InteractionsForPeriod(ctx, chapter.ID, "2026-07")
	require.NoError(t, err)
	assert.Empty(t, july)

	august, err := db.InteractionsForPeriod(ctx, chapter.ID, "2026-08")
	require.NoError(t, err)
	assert.Len(t, august, 1)
}

func TestInteractionPeriods(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	chapter := seedChapter(t, db)

	_, err := db.BulkInsertInteractions(ctx, []domain.Interaction{
		storedRecord(chapter.ID, "2026-08", domain.KindReferral, "alice johnson", "bob smith"),
		storedRecord(chapter.ID, "2026-07", domain.KindReferral, "alice johnson", "bob smith"),
		storedRecord(chapter.ID, "2026-07", domain.KindOneToOne, "alice johnson", "carol white"),
	})
	require.NoError(t, err)

	periods, err := db.InteractionPeriods(ctx, chapter.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-07", "2026-08"}, periods)
}

func TestSaveIngestionReplacesPeriod(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	chapter := seedChapter(t, db)

	names := []string{"Alice Johnson", "Bob Smith"}
	first := domain.NewMatrix(names)
	first.Cells[0][1] = 2

	set := domain.SnapshotSet{ChapterID: chapter.ID, Period: "2026-07", Referral: first, OneToOne: domain.NewMatrix(names), Combination: domain.NewMatrix(names)}
	created, err := db.SaveIngestion(ctx, set, []domain.Interaction{
		storedRecord(chapter.ID, "2026-07", domain.KindReferral, "alice johnson", "bob smith"),
		storedRecord(chapter.ID, "2026-07", domain.KindReferral, "alice johnson", "bob smith"),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, created)

	second := domain.NewMatrix(names)
	second.Cells[1][0] = 1
	set.Referral = second

	created, err = db.SaveIngestion(ctx, set, []domain.Interaction{
		storedRecord(chapter.ID, "2026-07", domain.KindReferral, "bob smith", "alice johnson"),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, created)

	stored, err := db.InteractionsForPeriod(ctx, chapter.ID, "2026-07")
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "bob smith", stored[0].Giver)

	snap, err := db.LoadSnapshot(ctx, chapter.ID, "2026-07", domain.SnapshotReferral)
	require.NoError(t, err)
	assert.Equal(t, second.Cells, snap.Matrix.Cells)
	assert.Equal(t, names, snap.Matrix.MemberNames)
}

func TestSaveIngestionRollsBackOnFailure(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	chapter := seedChapter(t, db)

	names := []string{"Alice Johnson", "Bob Smith"}
	set := domain.SnapshotSet{ChapterID: chapter.ID, Period: "2026-07", Referral: domain.NewMatrix(names), OneToOne: domain.NewMatrix(names), Combination: domain.NewMatrix(names)}

	_, err := db.SaveIngestion(ctx, set, []domain.Interaction{
		storedRecord(chapter.ID, "2026-07", domain.KindReferral, "alice johnson", "bob smith"),
	})
	require.NoError(t, err)

	// The second record violates the chapter foreign key, so the whole
	// replacement must roll back and leave the first ingestion intact.
	_, err = db.SaveIngestion(ctx, set, []domain.Interaction{
		storedRecord(chapter.ID, "2026-07", domain.KindReferral, "carol white", "bob smith"),
		storedRecord(999, "2026-07", domain.KindReferral, "alice johnson", "bob smith"),
	})
	require.Error(t, err)

	stored, err := db.InteractionsForPeriod(ctx, chapter.ID, "2026-07")
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "alice johnson", stored[0].Giver)
}
