package http

import (
	"net/http"
	"runtime"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

// ClientCounter reports connected realtime clients.
type ClientCounter interface {
	ClientCount() int
}

// MetricsHandler serves a lightweight runtime summary. Prometheus
// scraping goes through /metrics at the router root.
type MetricsHandler struct {
	hub     ClientCounter
	started time.Time
}

// NewMetricsHandler creates a new metrics handler. The hub is optional.
func NewMetricsHandler(hub ClientCounter) *MetricsHandler {
	return &MetricsHandler{hub: hub, started: time.Now()}
}

// Routes sets up the metrics routes
func (h *MetricsHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/summary", h.GetSummary)
	return r
}

// GetSummary returns process-level runtime readings
func (h *MetricsHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	clients := 0
	if h.hub != nil {
		clients = h.hub.ClientCount()
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data": map[string]interface{}{
			"uptime_seconds":   time.Since(h.started).Seconds(),
			"goroutines":       runtime.NumGoroutine(),
			"heap_alloc_bytes": mem.HeapAlloc,
			"heap_objects":     mem.HeapObjects,
			"gc_runs":          mem.NumGC,
			"realtime_clients": clients,
		},
	})
}
