package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"bnitrack/internal/compare"
	apperrors "bnitrack/internal/errors"
	"bnitrack/internal/matrix"
	"bnitrack/pkg/contracts/domain"
)

// ReportStore is the persistence surface report generation needs.
type ReportStore interface {
	GetChapter(ctx context.Context, id int64) (domain.Chapter, error)
	ActiveMembers(ctx context.Context, chapterID int64) ([]domain.Member, error)
	InteractionsForPeriod(ctx context.Context, chapterID int64, period string) ([]domain.Interaction, error)
	InteractionPeriods(ctx context.Context, chapterID int64) ([]string, error)
	LoadSnapshot(ctx context.Context, chapterID int64, period string, kind domain.SnapshotKind) (domain.Snapshot, error)
	SaveSnapshotSet(ctx context.Context, set domain.SnapshotSet) error
}

// SnapshotRef addresses one persisted chapter/period snapshot set.
type SnapshotRef struct {
	ChapterID int64
	Period    string
}

// ReportService builds period reports from stored interaction records
// and runs comparisons over persisted matrix snapshots.
type ReportService struct {
	store  ReportStore
	logger *slog.Logger
}

// NewReportService creates a report service. A nil logger falls back
// to the default.
func NewReportService(store ReportStore, logger *slog.Logger) *ReportService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportService{store: store, logger: logger}
}

// PeriodReport regenerates the full report for one chapter and period
// from the stored interaction records: all three matrices, the
// closed-business and per-member roll-ups, and the quality score.
// Regenerating rather than replaying the persisted snapshots means the
// report always reflects the current active roster; the snapshots
// exist to give comparisons a stable historical baseline.
func (s *ReportService) PeriodReport(ctx context.Context, chapterID int64, period string) (*domain.PeriodReport, error) {
	chapter, err := s.store.GetChapter(ctx, chapterID)
	if err != nil {
		return nil, err
	}

	records, err := s.store.InteractionsForPeriod(ctx, chapterID, period)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		// A period ingested from an empty file has a snapshot; a period
		// never ingested has neither records nor one.
		if _, err := s.store.LoadSnapshot(ctx, chapterID, period, domain.SnapshotReferral); err != nil {
			return nil, err
		}
	}

	roster, err := s.store.ActiveMembers(ctx, chapterID)
	if err != nil {
		return nil, err
	}

	gen := matrix.NewGenerator(roster)
	referral := gen.Referral(records)
	oneToOne := gen.OneToOne(records)
	combination := gen.Combination(records)

	s.logger.DebugContext(ctx, "period report generated",
		slog.String("chapter", chapter.Name),
		slog.String("period", period),
		slog.Int("records", len(records)),
		slog.Int("members", len(roster)))

	return &domain.PeriodReport{
		ChapterID:       chapter.ID,
		ChapterName:     chapter.Name,
		Period:          period,
		Referral:        &referral,
		OneToOne:        &oneToOne,
		Combination:     &combination,
		TYFCBSummaries:  gen.TYFCBSummary(records),
		MemberSummaries: gen.MemberSummary(records),
		Quality:         matrix.Quality(records),
	}, nil
}

// Periods lists every period the chapter has interaction records for.
func (s *ReportService) Periods(ctx context.Context, chapterID int64) ([]string, error) {
	if _, err := s.store.GetChapter(ctx, chapterID); err != nil {
		return nil, err
	}
	return s.store.InteractionPeriods(ctx, chapterID)
}

// Compare diffs two persisted snapshots of the same kind. Only the
// count-valued kinds are accepted here; combination matrices are
// categorical and go through CompareCombination.
func (s *ReportService) Compare(ctx context.Context, kind domain.SnapshotKind, current, previous SnapshotRef) (*domain.ComparisonReport, error) {
	switch kind {
	case domain.SnapshotReferral, domain.SnapshotOneToOne:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownComparisonKind, kind)
	}
	if err := sameChapter(current, previous); err != nil {
		return nil, err
	}

	currentSnap, err := s.store.LoadSnapshot(ctx, current.ChapterID, current.Period, kind)
	if err != nil {
		return nil, err
	}
	previousSnap, err := s.store.LoadSnapshot(ctx, previous.ChapterID, previous.Period, kind)
	if err != nil {
		return nil, err
	}

	return compare.Matrices(&currentSnap.Matrix, &previousSnap.Matrix), nil
}

// CompareCombination diffs two persisted combination snapshots.
func (s *ReportService) CompareCombination(ctx context.Context, current, previous SnapshotRef) (*domain.CombinationReport, error) {
	if err := sameChapter(current, previous); err != nil {
		return nil, err
	}

	currentSnap, err := s.store.LoadSnapshot(ctx, current.ChapterID, current.Period, domain.SnapshotCombination)
	if err != nil {
		return nil, err
	}
	previousSnap, err := s.store.LoadSnapshot(ctx, previous.ChapterID, previous.Period, domain.SnapshotCombination)
	if err != nil {
		return nil, err
	}

	return compare.Combination(&currentSnap.Matrix, &previousSnap.Matrix), nil
}

// CompareFull runs all three comparisons between two periods and
// packages them with cross-metric insights.
func (s *ReportService) CompareFull(ctx context.Context, current, previous SnapshotRef) (*domain.FullComparison, error) {
	if err := sameChapter(current, previous); err != nil {
		return nil, err
	}

	currentSet, currentAt, err := s.loadSet(ctx, current)
	if err != nil {
		return nil, err
	}
	previousSet, previousAt, err := s.loadSet(ctx, previous)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "running full comparison",
		slog.Int64("chapter_id", current.ChapterID),
		slog.String("current_period", current.Period),
		slog.String("previous_period", previous.Period))

	return compare.Full(currentSet, previousSet, currentAt, previousAt)
}

// RegenerateAll rebuilds and re-persists the snapshots of every period
// the chapter has records for, against the current active roster. It
// returns how many periods were regenerated. Periods are independent,
// so they fan out concurrently.
func (s *ReportService) RegenerateAll(ctx context.Context, chapterID int64) (int, error) {
	periods, err := s.store.InteractionPeriods(ctx, chapterID)
	if err != nil {
		return 0, err
	}
	if len(periods) == 0 {
		return 0, nil
	}

	roster, err := s.store.ActiveMembers(ctx, chapterID)
	if err != nil {
		return 0, err
	}
	gen := matrix.NewGenerator(roster)

	g, ctx := errgroup.WithContext(ctx)
	for _, period := range periods {
		g.Go(func() error {
			records, err := s.store.InteractionsForPeriod(ctx, chapterID, period)
			if err != nil {
				return err
			}
			return s.store.SaveSnapshotSet(ctx, gen.Snapshots(chapterID, period, records))
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	s.logger.InfoContext(ctx, "snapshots regenerated",
		slog.Int64("chapter_id", chapterID),
		slog.Int("periods", len(periods)))
	return len(periods), nil
}

// loadSet assembles a snapshot set from its three persisted matrices.
// The referral snapshot's timestamp stands in for the whole set; the
// three are written in one transaction.
func (s *ReportService) loadSet(ctx context.Context, ref SnapshotRef) (domain.SnapshotSet, time.Time, error) {
	set := domain.SnapshotSet{ChapterID: ref.ChapterID, Period: ref.Period}

	referral, err := s.store.LoadSnapshot(ctx, ref.ChapterID, ref.Period, domain.SnapshotReferral)
	if err != nil {
		return domain.SnapshotSet{}, time.Time{}, err
	}
	oneToOne, err := s.store.LoadSnapshot(ctx, ref.ChapterID, ref.Period, domain.SnapshotOneToOne)
	if err != nil {
		return domain.SnapshotSet{}, time.Time{}, err
	}
	combination, err := s.store.LoadSnapshot(ctx, ref.ChapterID, ref.Period, domain.SnapshotCombination)
	if err != nil {
		return domain.SnapshotSet{}, time.Time{}, err
	}

	set.Referral = referral.Matrix
	set.OneToOne = oneToOne.Matrix
	set.Combination = combination.Matrix
	return set, referral.CreatedAt, nil
}

func sameChapter(current, previous SnapshotRef) error {
	if current.ChapterID != previous.ChapterID {
		return apperrors.NewAppValidationError("Cannot compare reports from different chapters")
	}
	return nil
}
