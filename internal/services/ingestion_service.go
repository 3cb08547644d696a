package services

import (
	"context"
	"errors"
	"log/slog"

	apperrors "bnitrack/internal/errors"
	"bnitrack/internal/extract"
	"bnitrack/internal/matrix"
	"bnitrack/internal/sheet"
	"bnitrack/pkg/contracts/domain"
	"bnitrack/pkg/contracts/events"
)

// IngestStore is the persistence surface ingestion needs.
type IngestStore interface {
	GetChapter(ctx context.Context, id int64) (domain.Chapter, error)
	ActiveMembers(ctx context.Context, chapterID int64) ([]domain.Member, error)
	SaveIngestion(ctx context.Context, set domain.SnapshotSet, records []domain.Interaction) (int, error)
}

// Publisher pushes progress events to connected clients.
type Publisher interface {
	Broadcast(eventType string, data any)
}

// nopPublisher drops events when no hub is wired in.
type nopPublisher struct{}

func (nopPublisher) Broadcast(string, any) {}

// IngestionService turns an uploaded slip-audit workbook into one
// period's stored interaction records and matrix snapshots.
type IngestionService struct {
	store     IngestStore
	publisher Publisher
	extractor *extract.Extractor
	logger    *slog.Logger
}

// NewIngestionService creates an ingestion service. A nil publisher
// disables progress events, a nil logger falls back to the default.
func NewIngestionService(store IngestStore, publisher Publisher, extractor *extract.Extractor, logger *slog.Logger) *IngestionService {
	if publisher == nil {
		publisher = nopPublisher{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &IngestionService{
		store:     store,
		publisher: publisher,
		extractor: extractor,
		logger:    logger,
	}
}

// Ingest decodes data, extracts the chapter's interactions for the
// period, and replaces whatever the period held before. Unreadable or
// structurally unusable files report failure inside the result; only
// an unknown chapter or a storage fault returns an error.
func (s *IngestionService) Ingest(ctx context.Context, chapterID int64, period string, data []byte) (*domain.IngestResult, error) {
	if len(data) == 0 {
		return nil, ErrEmptyUpload
	}

	chapter, err := s.store.GetChapter(ctx, chapterID)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "ingestion started",
		slog.String("chapter", chapter.Name),
		slog.String("period", period),
		slog.Int("bytes", len(data)))
	s.publisher.Broadcast(events.TypeIngestStarted, events.IngestStarted{
		ChapterID: chapter.ID,
		Chapter:   chapter.Name,
		Period:    period,
	})

	table, err := sheet.Decode(data)
	if err != nil {
		return s.fail(ctx, chapter, period, err), nil
	}

	roster, err := s.store.ActiveMembers(ctx, chapterID)
	if err != nil {
		return nil, err
	}

	extracted, err := s.extractor.Extract(ctx, table, roster, chapterID, period)
	if err != nil {
		return s.fail(ctx, chapter, period, err), nil
	}

	s.publisher.Broadcast(events.TypeIngestProgress, events.IngestProgress{
		ChapterID: chapter.ID,
		Period:    period,
		Referrals: extracted.Referrals,
		OneToOnes: extracted.OneToOnes,
		TYFCBs:    extracted.TYFCBs,
		Warnings:  len(extracted.Warnings),
	})

	set := matrix.NewGenerator(roster).Snapshots(chapterID, period, extracted.Interactions)
	created, err := s.store.SaveIngestion(ctx, set, extracted.Interactions)
	if err != nil {
		s.publishCompleted(chapter, period, false)
		return nil, err
	}

	result := &domain.IngestResult{
		Success:          true,
		ReferralsCreated: extracted.Referrals,
		OneToOnesCreated: extracted.OneToOnes,
		TYFCBsCreated:    extracted.TYFCBs,
		TotalProcessed:   extracted.Processed,
		Errors:           []string{},
		Warnings:         extracted.Warnings,
	}
	if result.Warnings == nil {
		result.Warnings = []string{}
	}

	s.logger.InfoContext(ctx, "ingestion completed",
		slog.String("chapter", chapter.Name),
		slog.String("period", period),
		slog.Int("records_created", created),
		slog.Int("warnings", len(result.Warnings)))
	s.publishCompleted(chapter, period, true)

	return result, nil
}

// fail reports a file-level failure inside the result, mirroring how
// row-level problems stay inside Warnings.
func (s *IngestionService) fail(ctx context.Context, chapter domain.Chapter, period string, err error) *domain.IngestResult {
	s.logger.WarnContext(ctx, "ingestion rejected file",
		slog.String("chapter", chapter.Name),
		slog.String("period", period),
		slog.String("error", err.Error()))
	s.publishCompleted(chapter, period, false)

	return &domain.IngestResult{
		Success:  false,
		Errors:   []string{errorMessage(err)},
		Warnings: []string{},
	}
}

func (s *IngestionService) publishCompleted(chapter domain.Chapter, period string, success bool) {
	s.publisher.Broadcast(events.TypeIngestCompleted, events.IngestCompleted{
		ChapterID: chapter.ID,
		Period:    period,
		Success:   success,
	})
}

// errorMessage strips the error-type prefix and cause chain for
// user-facing result payloads.
func errorMessage(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}
