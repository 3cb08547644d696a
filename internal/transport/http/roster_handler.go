package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	apierrors "bnitrack/internal/errors"
)

// RosterHandler handles region summary roster uploads
type RosterHandler struct {
	service      RosterService
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewRosterHandler creates a new roster handler
func NewRosterHandler(service RosterService, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *RosterHandler {
	return &RosterHandler{
		service:      service,
		logger:       logger.With(slog.String("handler", "roster")),
		errorHandler: errorHandler,
	}
}

// Routes sets up the roster routes
func (h *RosterHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/upload", h.Upload)
	return r
}

// Upload handles POST /api/rosters/upload. The region summary workbook
// arrives as multipart field "file" or as the raw request body; every
// chapter and member row is upserted.
func (h *RosterHandler) Upload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	data, err := readUpload(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.logger.InfoContext(ctx, "roster upload",
		slog.Int("bytes", len(data)),
		slog.String("request_id", middleware.GetReqID(ctx)))

	result, err := h.service.Import(ctx, data)
	if err != nil {
		h.logger.ErrorContext(ctx, "roster import failed",
			slog.String("error", err.Error()))
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   result,
	})
}
