package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"log/slog"
	"os"

	"bnitrack/internal/services"
)

type fakePinger struct {
	err error
}

func (f fakePinger) Ping(ctx context.Context) error { return f.err }

type fakeClientCounter struct {
	clients int
}

func (f fakeClientCounter) ClientCount() int { return f.clients }

func newHealthTestHandler(pingErr error) *HealthHandler {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	service := services.NewHealthService("0.3.0", fakePinger{err: pingErr}, fakeClientCounter{clients: 2}, logger)
	return NewHealthHandler(service, logger)
}

func TestHealthHandler_HealthCheck(t *testing.T) {
	tests := []struct {
		name         string
		pingErr      error
		expectedBody string
	}{
		{
			name:         "healthy",
			pingErr:      nil,
			expectedBody: `"status":"healthy"`,
		},
		{
			name:         "degraded when storage is down",
			pingErr:      assert.AnError,
			expectedBody: `"status":"degraded"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newHealthTestHandler(tt.pingErr)

			req := httptest.NewRequest("GET", "/api/health", nil)
			rec := httptest.NewRecorder()

			handler.HealthCheck(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
			assert.Contains(t, rec.Body.String(), `"clients":2`)
		})
	}
}

func TestHealthHandler_ReadinessCheck(t *testing.T) {
	tests := []struct {
		name           string
		pingErr        error
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "ready",
			pingErr:        nil,
			expectedStatus: http.StatusOK,
			expectedBody:   `"status":"ready"`,
		},
		{
			name:           "not ready when storage is down",
			pingErr:        assert.AnError,
			expectedStatus: http.StatusServiceUnavailable,
			expectedBody:   `"status":"not_ready"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newHealthTestHandler(tt.pingErr)

			req := httptest.NewRequest("GET", "/api/health/ready", nil)
			rec := httptest.NewRecorder()

			handler.ReadinessCheck(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
		})
	}
}

func TestHealthHandler_LivenessCheck(t *testing.T) {
	handler := newHealthTestHandler(nil)

	req := httptest.NewRequest("GET", "/api/health/live", nil)
	rec := httptest.NewRecorder()

	handler.LivenessCheck(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"alive"`)
	assert.Contains(t, rec.Body.String(), `"uptime_seconds"`)
}

func TestHealthHandler_Version(t *testing.T) {
	handler := newHealthTestHandler(nil)

	req := httptest.NewRequest("GET", "/api/version", nil)
	rec := httptest.NewRecorder()

	handler.Version(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"version":"0.3.0"`)
	assert.Contains(t, rec.Body.String(), `"go_version"`)
}
