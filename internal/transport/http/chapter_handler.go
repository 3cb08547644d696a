package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	apierrors "bnitrack/internal/errors"
)

// ChapterHandler handles chapter and roster listing requests
type ChapterHandler struct {
	service      RosterService
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewChapterHandler creates a new chapter handler
func NewChapterHandler(service RosterService, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *ChapterHandler {
	return &ChapterHandler{
		service:      service,
		logger:       logger.With(slog.String("handler", "chapter")),
		errorHandler: errorHandler,
	}
}

// ListChapters handles GET /api/chapters
func (h *ChapterHandler) ListChapters(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	chapters, err := h.service.Chapters(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list chapters",
			slog.String("error", err.Error()),
			slog.String("request_id", middleware.GetReqID(ctx)))
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   chapters,
		"count":  len(chapters),
	})
}

// ListMembers handles GET /api/chapters/{chapterID}/members
func (h *ChapterHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	chapterID, err := chapterIDParam(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	members, err := h.service.Members(ctx, chapterID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list members",
			slog.Int64("chapter_id", chapterID),
			slog.String("error", err.Error()))
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   members,
		"count":  len(members),
	})
}

// DeactivateMember handles DELETE /api/chapters/{chapterID}/members/{memberID}
func (h *ChapterHandler) DeactivateMember(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	chapterID, err := chapterIDParam(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	memberID, err := int64Param(r, "memberID")
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	if err := h.service.Deactivate(ctx, chapterID, memberID); err != nil {
		h.logger.ErrorContext(ctx, "failed to deactivate member",
			slog.Int64("chapter_id", chapterID),
			slog.Int64("member_id", memberID),
			slog.String("error", err.Error()))
		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.logger.InfoContext(ctx, "member deactivated",
		slog.Int64("chapter_id", chapterID),
		slog.Int64("member_id", memberID))

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
	})
}
