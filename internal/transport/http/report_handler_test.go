package http

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"log/slog"
	"os"

	apierrors "bnitrack/internal/errors"
	"bnitrack/internal/services"
	"bnitrack/pkg/contracts/domain"
)

// MockIngestService is a mock implementation of IngestService
type MockIngestService struct {
	mock.Mock
}

func (m *MockIngestService) Ingest(ctx context.Context, chapterID int64, period string, data []byte) (*domain.IngestResult, error) {
	args := m.Called(chapterID, period, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IngestResult), args.Error(1)
}

// MockReportService is a mock implementation of ReportService
type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) PeriodReport(ctx context.Context, chapterID int64, period string) (*domain.PeriodReport, error) {
	args := m.Called(chapterID, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PeriodReport), args.Error(1)
}

func (m *MockReportService) Periods(ctx context.Context, chapterID int64) ([]string, error) {
	args := m.Called(chapterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockReportService) Compare(ctx context.Context, kind domain.SnapshotKind, current, previous services.SnapshotRef) (*domain.ComparisonReport, error) {
	args := m.Called(kind, current, previous)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ComparisonReport), args.Error(1)
}

func (m *MockReportService) CompareCombination(ctx context.Context, current, previous services.SnapshotRef) (*domain.CombinationReport, error) {
	args := m.Called(current, previous)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CombinationReport), args.Error(1)
}

func (m *MockReportService) CompareFull(ctx context.Context, current, previous services.SnapshotRef) (*domain.FullComparison, error) {
	args := m.Called(current, previous)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FullComparison), args.Error(1)
}

func (m *MockReportService) RegenerateAll(ctx context.Context, chapterID int64) (int, error) {
	args := m.Called(chapterID)
	return args.Int(0), args.Error(1)
}

func newReportTestFixture(t *testing.T) (*MockIngestService, *MockReportService, chi.Router) {
	t.Helper()

	mockIngest := new(MockIngestService)
	mockReports := new(MockReportService)

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	errorHandler := apierrors.NewErrorHandler(logger, false)
	handler := NewReportHandler(mockIngest, mockReports, logger, errorHandler)

	r := chi.NewRouter()
	r.Route("/chapters/{chapterID}", func(cr chi.Router) {
		cr.Mount("/reports", handler.Routes())
	})
	return mockIngest, mockReports, r
}

func TestReportHandler_Ingest(t *testing.T) {
	workbook := []byte(`<?xml version="1.0"?><Workbook/>`)

	tests := []struct {
		name           string
		path           string
		body           []byte
		setupMock      func(*MockIngestService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "successful raw body ingest",
			path: "/chapters/7/reports/2025-01/ingest",
			body: workbook,
			setupMock: func(m *MockIngestService) {
				m.On("Ingest", int64(7), "2025-01", workbook).Return(&domain.IngestResult{
					Success:          true,
					ReferralsCreated: 5,
					OneToOnesCreated: 3,
					TYFCBsCreated:    2,
					TotalProcessed:   10,
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"referrals_created":5`,
		},
		{
			name: "parse failures surface in the result",
			path: "/chapters/7/reports/2025-01/ingest",
			body: workbook,
			setupMock: func(m *MockIngestService) {
				m.On("Ingest", int64(7), "2025-01", workbook).Return(&domain.IngestResult{
					Success: false,
					Errors:  []string{"invalid XML structure"},
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"invalid XML structure"`,
		},
		{
			name: "unknown chapter",
			path: "/chapters/99/reports/2025-01/ingest",
			body: workbook,
			setupMock: func(m *MockIngestService) {
				m.On("Ingest", int64(99), "2025-01", workbook).Return(nil, apierrors.NewNotFoundError("chapter"))
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"chapter not found"`,
		},
		{
			name:           "empty body",
			path:           "/chapters/7/reports/2025-01/ingest",
			body:           nil,
			setupMock:      func(m *MockIngestService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"Request carried no file data"`,
		},
		{
			name:           "malformed period",
			path:           "/chapters/7/reports/Jan-2025/ingest",
			body:           workbook,
			setupMock:      func(m *MockIngestService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"period must be in YYYY-MM form"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockIngest, _, router := newReportTestFixture(t)
			tt.setupMock(mockIngest)

			req := httptest.NewRequest("POST", tt.path, bytes.NewReader(tt.body))
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
			mockIngest.AssertExpectations(t)
		})
	}
}

func TestReportHandler_IngestMultipart(t *testing.T) {
	workbook := []byte(`<?xml version="1.0"?><Workbook/>`)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "slips-audit-report_1_2025-01.xls")
	require.NoError(t, err)
	_, err = part.Write(workbook)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	mockIngest, _, router := newReportTestFixture(t)
	mockIngest.On("Ingest", int64(7), "2025-01", workbook).Return(&domain.IngestResult{
		Success:        true,
		TotalProcessed: 10,
	}, nil)

	req := httptest.NewRequest("POST", "/chapters/7/reports/2025-01/ingest", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total_processed":10`)
	mockIngest.AssertExpectations(t)
}

func TestReportHandler_Matrices(t *testing.T) {
	report := &domain.PeriodReport{
		ChapterID:   7,
		ChapterName: "Dubai Creek",
		Period:      "2025-01",
		Referral:    &domain.Matrix{MemberNames: []string{"Alice Johnson", "Bob Smith"}, Cells: [][]int{{0, 2}, {1, 0}}},
		OneToOne:    &domain.Matrix{MemberNames: []string{"Alice Johnson", "Bob Smith"}, Cells: [][]int{{0, 1}, {1, 0}}},
		Combination: &domain.Matrix{MemberNames: []string{"Alice Johnson", "Bob Smith"}, Cells: [][]int{{0, 3}, {3, 0}}},
	}

	tests := []struct {
		name           string
		path           string
		setupMock      func(*MockReportService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "full report",
			path: "/chapters/7/reports/2025-01/matrices",
			setupMock: func(m *MockReportService) {
				m.On("PeriodReport", int64(7), "2025-01").Return(report, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"combination_matrix"`,
		},
		{
			name: "single matrix by kind",
			path: "/chapters/7/reports/2025-01/matrices?kind=referral",
			setupMock: func(m *MockReportService) {
				m.On("PeriodReport", int64(7), "2025-01").Return(report, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"member_names":["Alice Johnson","Bob Smith"]`,
		},
		{
			name:           "invalid kind",
			path:           "/chapters/7/reports/2025-01/matrices?kind=bogus",
			setupMock:      func(m *MockReportService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"kind must be one of: referral, one_to_one, combination"`,
		},
		{
			name: "unknown chapter",
			path: "/chapters/99/reports/2025-01/matrices",
			setupMock: func(m *MockReportService) {
				m.On("PeriodReport", int64(99), "2025-01").Return(nil, apierrors.NewNotFoundError("chapter"))
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"Resource Not Found"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, mockReports, router := newReportTestFixture(t)
			tt.setupMock(mockReports)

			req := httptest.NewRequest("GET", tt.path, nil)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
			mockReports.AssertExpectations(t)
		})
	}
}

func TestReportHandler_Periods(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		setupMock      func(*MockReportService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "periods listed oldest first",
			path: "/chapters/7/reports/periods",
			setupMock: func(m *MockReportService) {
				m.On("Periods", int64(7)).Return([]string{"2025-01", "2025-02", "2025-03"}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"count":3`,
		},
		{
			name: "chapter with no data",
			path: "/chapters/7/reports/periods",
			setupMock: func(m *MockReportService) {
				m.On("Periods", int64(7)).Return([]string{}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"count":0`,
		},
		{
			name: "unknown chapter",
			path: "/chapters/99/reports/periods",
			setupMock: func(m *MockReportService) {
				m.On("Periods", int64(99)).Return(nil, apierrors.NewNotFoundError("chapter"))
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"chapter not found"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, mockReports, router := newReportTestFixture(t)
			tt.setupMock(mockReports)

			req := httptest.NewRequest("GET", tt.path, nil)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
			mockReports.AssertExpectations(t)
		})
	}
}

func TestReportHandler_Regenerate(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		setupMock      func(*MockReportService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "successful regeneration",
			path: "/chapters/7/reports/regenerate",
			setupMock: func(m *MockReportService) {
				m.On("RegenerateAll", int64(7)).Return(3, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"periods_regenerated":3`,
		},
		{
			name: "storage failure",
			path: "/chapters/7/reports/regenerate",
			setupMock: func(m *MockReportService) {
				m.On("RegenerateAll", int64(7)).Return(0, apierrors.NewStorageError("save snapshot", assert.AnError))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"Internal Server Error"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, mockReports, router := newReportTestFixture(t)
			tt.setupMock(mockReports)

			req := httptest.NewRequest("POST", tt.path, nil)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
			mockReports.AssertExpectations(t)
		})
	}
}
