package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	apierrors "bnitrack/internal/errors"
)

// int64Param parses a positive integer URL parameter.
func int64Param(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id < 1 {
		return 0, apierrors.ErrValidation(name, name+" must be a positive integer")
	}
	return id, nil
}

func chapterIDParam(r *http.Request) (int64, error) {
	return int64Param(r, "chapterID")
}

// periodParam parses and validates a YYYY-MM period URL parameter.
func periodParam(r *http.Request) (string, error) {
	period := chi.URLParam(r, "period")
	if _, err := time.Parse("2006-01", period); err != nil {
		return "", apierrors.ErrValidation("period", "period must be in YYYY-MM form")
	}
	return period, nil
}
