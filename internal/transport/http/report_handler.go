package http

import (
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	apierrors "bnitrack/internal/errors"
	"bnitrack/internal/infrastructure"
	customMiddleware "bnitrack/internal/middleware"
	"bnitrack/pkg/contracts/domain"
)

// maxUploadBytes caps slip-audit and roster uploads. PALMS exports for
// a 60-member chapter stay well under 2MB.
const maxUploadBytes = 10 * 1024 * 1024

// ReportHandler handles period report ingestion and retrieval
type ReportHandler struct {
	ingest       IngestService
	reports      ReportService
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
	query        *customMiddleware.QueryParamValidator
}

// NewReportHandler creates a new report handler
func NewReportHandler(ingest IngestService, reports ReportService, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *ReportHandler {
	return &ReportHandler{
		ingest:       ingest,
		reports:      reports,
		logger:       logger.With(slog.String("handler", "report")),
		errorHandler: errorHandler,
		query:        customMiddleware.NewQueryParamValidator(logger, errorHandler),
	}
}

// Routes sets up the report routes, mounted under /api/chapters/{chapterID}/reports
func (h *ReportHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/periods", h.Periods)
	r.Post("/regenerate", h.Regenerate)
	r.Post("/{period}/ingest", h.Ingest)
	r.Get("/{period}/matrices", h.Matrices)
	return r
}

// Ingest handles POST /api/chapters/{chapterID}/reports/{period}/ingest.
// The workbook arrives either as multipart field "file" or as the raw
// request body. Ingestion replaces everything the period held before.
func (h *ReportHandler) Ingest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	chapterID, err := chapterIDParam(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	period, err := periodParam(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	data, err := readUpload(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.logger.InfoContext(ctx, "ingest request",
		slog.Int64("chapter_id", chapterID),
		slog.String("period", period),
		slog.Int("bytes", len(data)),
		slog.String("request_id", middleware.GetReqID(ctx)))

	result, err := h.ingest.Ingest(ctx, chapterID, period, data)
	if err != nil {
		h.logger.ErrorContext(ctx, "ingestion failed",
			slog.Int64("chapter_id", chapterID),
			slog.String("period", period),
			slog.String("error", err.Error()))
		h.errorHandler.HandleError(w, r, err)
		return
	}

	infrastructure.RecordIngestRun(ctx, customMiddleware.MetricsFromContext(ctx),
		strconv.FormatInt(chapterID, 10),
		result.TotalProcessed, len(result.Warnings), result.Success)

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   result,
	})
}

// Matrices handles GET /api/chapters/{chapterID}/reports/{period}/matrices.
// An optional kind query parameter narrows the response to one matrix.
func (h *ReportHandler) Matrices(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	chapterID, err := chapterIDParam(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	period, err := periodParam(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	kind, ok := h.query.ValidateEnum(w, r, "kind",
		[]string{"referral", "one_to_one", "combination"}, "")
	if !ok {
		return
	}

	report, err := h.reports.PeriodReport(ctx, chapterID, period)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to build period report",
			slog.Int64("chapter_id", chapterID),
			slog.String("period", period),
			slog.String("error", err.Error()))
		h.errorHandler.HandleError(w, r, err)
		return
	}

	if kind != "" {
		render.JSON(w, r, map[string]interface{}{
			"status": "success",
			"data":   singleMatrix(report, domain.SnapshotKind(kind)),
		})
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   report,
	})
}

// Periods handles GET /api/chapters/{chapterID}/reports/periods
func (h *ReportHandler) Periods(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	chapterID, err := chapterIDParam(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	periods, err := h.reports.Periods(ctx, chapterID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list periods",
			slog.Int64("chapter_id", chapterID),
			slog.String("error", err.Error()))
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   periods,
		"count":  len(periods),
	})
}

// Regenerate handles POST /api/chapters/{chapterID}/reports/regenerate.
// Every stored period has its snapshots rebuilt against the current
// active roster.
func (h *ReportHandler) Regenerate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	chapterID, err := chapterIDParam(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	regenerated, err := h.reports.RegenerateAll(ctx, chapterID)
	if err != nil {
		h.logger.ErrorContext(ctx, "snapshot regeneration failed",
			slog.Int64("chapter_id", chapterID),
			slog.String("error", err.Error()))
		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.logger.InfoContext(ctx, "snapshots regenerated",
		slog.Int64("chapter_id", chapterID),
		slog.Int("periods", regenerated))

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   map[string]int{"periods_regenerated": regenerated},
	})
}

// singleMatrix picks one matrix out of a period report.
func singleMatrix(report *domain.PeriodReport, kind domain.SnapshotKind) *domain.Matrix {
	switch kind {
	case domain.SnapshotReferral:
		return report.Referral
	case domain.SnapshotOneToOne:
		return report.OneToOne
	case domain.SnapshotCombination:
		return report.Combination
	}
	return nil
}

// readUpload pulls the workbook bytes from a multipart "file" field or,
// failing that, the raw request body.
func readUpload(r *http.Request) ([]byte, error) {
	r.Body = http.MaxBytesReader(nil, r.Body, maxUploadBytes)

	if err := r.ParseMultipartForm(maxUploadBytes); err == nil {
		file, _, err := r.FormFile("file")
		if err != nil {
			return nil, apierrors.ErrValidation("file", "Multipart upload must carry a file field")
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			return nil, apierrors.InvalidRequestWithError(err)
		}
		return data, nil
	}

	data, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, apierrors.InvalidRequestWithError(err)
	}
	if len(data) == 0 {
		return nil, apierrors.ErrValidation("file", "Request carried no file data")
	}
	return data, nil
}
