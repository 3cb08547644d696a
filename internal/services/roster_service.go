package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	apperrors "bnitrack/internal/errors"
	"bnitrack/internal/namematch"
	"bnitrack/internal/sheet"
	"bnitrack/pkg/contracts/domain"
)

// Region summary rows name chapters without a location; new chapters
// default to the regional hub.
const defaultChapterLocation = "Dubai"

// rosterColumns are the headers a region summary must carry.
var rosterColumns = []string{"Chapter", "First Name", "Last Name"}

// RosterStore is the persistence surface roster imports and lookups need.
type RosterStore interface {
	GetOrCreateChapter(ctx context.Context, name, location string) (domain.Chapter, bool, error)
	GetChapter(ctx context.Context, id int64) (domain.Chapter, error)
	ListChapters(ctx context.Context) ([]domain.Chapter, error)
	UpsertMember(ctx context.Context, m domain.Member) (domain.Member, bool, error)
	ListMembers(ctx context.Context, chapterID int64) ([]domain.Member, error)
	DeactivateMember(ctx context.Context, memberID int64) error
}

// RosterService processes region summary workbooks, creating or
// updating every chapter and member they list.
type RosterService struct {
	store  RosterStore
	logger *slog.Logger
}

// NewRosterService creates a roster service. A nil logger falls back
// to the default.
func NewRosterService(store RosterStore, logger *slog.Logger) *RosterService {
	if logger == nil {
		logger = slog.Default()
	}
	return &RosterService{store: store, logger: logger}
}

// Chapters lists every known chapter.
func (s *RosterService) Chapters(ctx context.Context) ([]domain.Chapter, error) {
	return s.store.ListChapters(ctx)
}

// Members lists a chapter's full roster, inactive members included.
func (s *RosterService) Members(ctx context.Context, chapterID int64) ([]domain.Member, error) {
	if _, err := s.store.GetChapter(ctx, chapterID); err != nil {
		return nil, err
	}
	return s.store.ListMembers(ctx, chapterID)
}

// Deactivate marks a member inactive. The member must belong to the
// chapter; historical interaction records keep referencing them.
func (s *RosterService) Deactivate(ctx context.Context, chapterID, memberID int64) error {
	members, err := s.Members(ctx, chapterID)
	if err != nil {
		return err
	}
	for _, m := range members {
		if m.ID == memberID {
			return s.store.DeactivateMember(ctx, memberID)
		}
	}
	return apperrors.NewNotFoundError("member")
}

// Import decodes a region summary workbook and upserts every chapter
// and member row. Rows missing a chapter or member name are skipped
// with a warning; rows the store rejects are recorded as errors and
// processing continues. Success means no row produced an error.
func (s *RosterService) Import(ctx context.Context, data []byte) (*domain.RosterImportResult, error) {
	if len(data) == 0 {
		return nil, ErrEmptyUpload
	}

	table, err := sheet.Decode(data)
	if err != nil {
		s.logger.WarnContext(ctx, "roster import rejected file", slog.String("error", err.Error()))
		return &domain.RosterImportResult{
			Success:  false,
			Errors:   []string{errorMessage(err)},
			Warnings: []string{},
		}, nil
	}

	columns := make(map[string]int, len(table.Headers))
	for i, header := range table.Headers {
		columns[strings.TrimSpace(header)] = i
	}
	var missing []string
	for _, name := range rosterColumns {
		if _, ok := columns[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return &domain.RosterImportResult{
			Success:  false,
			Errors:   []string{fmt.Sprintf("Missing required columns: %s", strings.Join(missing, ", "))},
			Warnings: []string{},
		}, nil
	}

	result := &domain.RosterImportResult{
		TotalProcessed: len(table.Rows),
		Errors:         []string{},
		Warnings:       []string{},
	}
	for i, row := range table.Rows {
		s.processRow(ctx, row, i+1, columns, result)
	}
	result.Success = len(result.Errors) == 0

	s.logger.InfoContext(ctx, "roster import completed",
		slog.Int("rows", result.TotalProcessed),
		slog.Int("chapters_created", result.ChaptersCreated),
		slog.Int("members_created", result.MembersCreated),
		slog.Int("errors", len(result.Errors)),
		slog.Int("warnings", len(result.Warnings)))

	return result, nil
}

func (s *RosterService) processRow(ctx context.Context, row []string, rowNum int, columns map[string]int, result *domain.RosterImportResult) {
	chapterName := cell(row, columns["Chapter"])
	if chapterName == "" {
		result.Warnings = append(result.Warnings, "Skipping row with missing chapter name")
		return
	}

	chapter, created, err := s.store.GetOrCreateChapter(ctx, chapterName, defaultChapterLocation)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %s", rowNum, errorMessage(err)))
		return
	}
	if created {
		result.ChaptersCreated++
		s.logger.InfoContext(ctx, "created chapter", slog.String("chapter", chapterName))
	} else {
		result.ChaptersUpdated++
	}

	firstName := cell(row, columns["First Name"])
	lastName := cell(row, columns["Last Name"])
	if firstName == "" || lastName == "" {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Skipping member with missing name in %s", chapterName))
		return
	}

	_, created, err = s.store.UpsertMember(ctx, domain.Member{
		ChapterID:      chapter.ID,
		FirstName:      firstName,
		LastName:       lastName,
		NormalizedName: namematch.Normalize(firstName + " " + lastName),
		IsActive:       true,
	})
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %s", rowNum, errorMessage(err)))
		return
	}
	if created {
		result.MembersCreated++
		s.logger.InfoContext(ctx, "created member",
			slog.String("member", firstName+" "+lastName),
			slog.String("chapter", chapterName))
	} else {
		result.MembersUpdated++
	}
}

func cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}
