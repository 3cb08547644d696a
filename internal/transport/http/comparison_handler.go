package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	apierrors "bnitrack/internal/errors"
	customMiddleware "bnitrack/internal/middleware"
	"bnitrack/internal/services"
	api "bnitrack/pkg/contracts/api/v1"
	"bnitrack/pkg/contracts/domain"
)

// ComparisonHandler handles snapshot comparison requests
type ComparisonHandler struct {
	service      ReportService
	validator    *customMiddleware.ValidationMiddleware
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewComparisonHandler creates a new comparison handler
func NewComparisonHandler(service ReportService, validator *customMiddleware.ValidationMiddleware, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *ComparisonHandler {
	return &ComparisonHandler{
		service:      service,
		validator:    validator,
		logger:       logger.With(slog.String("handler", "comparison")),
		errorHandler: errorHandler,
	}
}

// Routes sets up the comparison routes
func (h *ComparisonHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Compare)
	r.Post("/full", h.CompareFull)
	return r
}

// Compare handles POST /api/comparisons. The kind field picks the
// matrix: referral and one_to_one diff counts, combination diffs the
// derived categories.
func (h *ComparisonHandler) Compare(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.ComparisonRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
		return
	}
	if err := h.validator.ValidateStruct(&req); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	current := services.SnapshotRef{ChapterID: req.ChapterID, Period: req.CurrentPeriod}
	previous := services.SnapshotRef{ChapterID: req.ChapterID, Period: req.PreviousPeriod}

	h.logger.InfoContext(ctx, "comparison request",
		slog.String("kind", req.Kind),
		slog.Int64("chapter_id", req.ChapterID),
		slog.String("current", req.CurrentPeriod),
		slog.String("previous", req.PreviousPeriod),
		slog.String("request_id", middleware.GetReqID(ctx)))

	var (
		data interface{}
		err  error
	)
	if kind := domain.SnapshotKind(req.Kind); kind == domain.SnapshotCombination {
		data, err = h.service.CompareCombination(ctx, current, previous)
	} else {
		data, err = h.service.Compare(ctx, kind, current, previous)
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "comparison failed",
			slog.String("kind", req.Kind),
			slog.String("error", err.Error()))
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   data,
	})
}

// CompareFull handles POST /api/comparisons/full
func (h *ComparisonHandler) CompareFull(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.FullComparisonRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
		return
	}
	if err := h.validator.ValidateStruct(&req); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	result, err := h.service.CompareFull(ctx,
		services.SnapshotRef{ChapterID: req.ChapterID, Period: req.CurrentPeriod},
		services.SnapshotRef{ChapterID: req.ChapterID, Period: req.PreviousPeriod})
	if err != nil {
		h.logger.ErrorContext(ctx, "full comparison failed",
			slog.Int64("chapter_id", req.ChapterID),
			slog.String("error", err.Error()))
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   result,
	})
}
