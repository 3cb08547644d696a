package services

import (
	"context"
	"log/slog"
	"runtime"
	"time"
)

// Pinger reports storage connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ClientCounter reports how many realtime clients are connected.
type ClientCounter interface {
	ClientCount() int
}

// HealthService provides health check functionality
type HealthService struct {
	version   string
	db        Pinger
	hub       ClientCounter
	startTime time.Time
	logger    *slog.Logger
}

// HealthStatus represents the health status response
type HealthStatus struct {
	Status    string         `json:"status"`
	Timestamp time.Time      `json:"timestamp"`
	Version   string         `json:"version"`
	Runtime   map[string]any `json:"runtime,omitempty"`
	Services  map[string]any `json:"services,omitempty"`
}

// NewHealthService creates a health service. The hub is optional.
func NewHealthService(version string, db Pinger, hub ClientCounter, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthService{
		version:   version,
		db:        db,
		hub:       hub,
		startTime: time.Now(),
		logger:    logger,
	}
}

// Ready reports whether the service can take traffic. Storage must be
// reachable; nothing else gates readiness.
func (s *HealthService) Ready(ctx context.Context) (map[string]any, bool) {
	if err := s.db.Ping(ctx); err != nil {
		return map[string]any{"status": "not_ready", "reason": err.Error()}, false
	}
	return map[string]any{"status": "ready"}, true
}

// Live reports process liveness.
func (s *HealthService) Live() map[string]any {
	return map[string]any{
		"status":         "alive",
		"uptime_seconds": time.Since(s.startTime).Seconds(),
	}
}

// Version reports the running build.
func (s *HealthService) Version() map[string]any {
	return map[string]any{
		"version":    s.version,
		"go_version": runtime.Version(),
	}
}

// Check reports overall health. The database is the only hard
// dependency; anything else only annotates the response.
func (s *HealthService) Check(ctx context.Context) HealthStatus {
	status := "healthy"
	services := make(map[string]any)

	if err := s.db.Ping(ctx); err != nil {
		status = "degraded"
		services["database"] = map[string]any{"status": "down", "message": err.Error()}
		s.logger.ErrorContext(ctx, "health check: database unreachable", slog.String("error", err.Error()))
	} else {
		services["database"] = map[string]any{"status": "up"}
	}

	if s.hub != nil {
		services["realtime"] = map[string]any{
			"status":  "up",
			"clients": s.hub.ClientCount(),
		}
	}

	return HealthStatus{
		Status:    status,
		Timestamp: time.Now().UTC(),
		Version:   s.version,
		Runtime: map[string]any{
			"go_version":     runtime.Version(),
			"os":             runtime.GOOS,
			"arch":           runtime.GOARCH,
			"uptime_seconds": time.Since(s.startTime).Seconds(),
		},
		Services: services,
	}
}
