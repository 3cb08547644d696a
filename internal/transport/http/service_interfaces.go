package http

import (
	"context"

	"bnitrack/internal/services"
	"bnitrack/pkg/contracts/domain"
)

// IngestService ingests one uploaded slip-audit workbook for a period.
type IngestService interface {
	Ingest(ctx context.Context, chapterID int64, period string, data []byte) (*domain.IngestResult, error)
}

// ReportService serves period reports and snapshot comparisons.
type ReportService interface {
	PeriodReport(ctx context.Context, chapterID int64, period string) (*domain.PeriodReport, error)
	Periods(ctx context.Context, chapterID int64) ([]string, error)
	Compare(ctx context.Context, kind domain.SnapshotKind, current, previous services.SnapshotRef) (*domain.ComparisonReport, error)
	CompareCombination(ctx context.Context, current, previous services.SnapshotRef) (*domain.CombinationReport, error)
	CompareFull(ctx context.Context, current, previous services.SnapshotRef) (*domain.FullComparison, error)
	RegenerateAll(ctx context.Context, chapterID int64) (int, error)
}

// RosterService lists chapters and rosters and imports region summaries.
type RosterService interface {
	Chapters(ctx context.Context) ([]domain.Chapter, error)
	Members(ctx context.Context, chapterID int64) ([]domain.Member, error)
	Deactivate(ctx context.Context, chapterID, memberID int64) error
	Import(ctx context.Context, data []byte) (*domain.RosterImportResult, error)
}
