package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/gorilla/websocket"

	"bnitrack/internal/config"
	apierrors "bnitrack/internal/errors"
	"bnitrack/internal/extract"
	"bnitrack/internal/infrastructure"
	customMiddleware "bnitrack/internal/middleware"
	"bnitrack/internal/realtime"
	"bnitrack/internal/services"
	"bnitrack/internal/store"
	httptransport "bnitrack/internal/transport/http"
	"bnitrack/pkg/contracts"
)

// AppName is the human readable application name used in startup logs.
const AppName = "BNI Tracker"

// Application wires configuration, storage, domain services and the
// HTTP transport into one runnable server.
type Application struct {
	Config        *config.Config
	Logger        *slog.Logger
	DB            *store.DB
	Hub           *realtime.Hub
	OTelProviders *infrastructure.OTelProviders
	Services      *ServiceContainer
	Router        chi.Router
	Server        *http.Server
}

// ServiceContainer holds the application's domain services.
type ServiceContainer struct {
	Ingestion *services.IngestionService
	Reports   *services.ReportService
	Roster    *services.RosterService
	Health    *services.HealthService
}

// NewApplication loads configuration and assembles every component of
// the server. The returned application is ready to Run.
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := infrastructure.InitializeLogger(cfg.Logging)
	slog.SetDefault(logger)

	otelProviders, err := infrastructure.InitializeOTel(
		infrastructure.DefaultOTelConfig(contracts.Version), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize observability: %w", err)
	}

	if err := cfg.EnsureDataDir(); err != nil {
		return nil, err
	}

	db, err := store.Open(cfg.Storage.DatabasePath())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	app := &Application{
		Config:        cfg,
		Logger:        logger,
		DB:            db,
		Hub:           realtime.NewHub(logger),
		OTelProviders: otelProviders,
	}

	app.initializeServices()
	app.setupRouter()
	app.createServer()

	return app, nil
}

// initializeServices constructs the domain services on top of the
// shared store and hub.
func (a *Application) initializeServices() {
	extractor := extract.New(a.Logger, extract.Config{
		Currency: a.Config.Ingest.Currency,
	})

	a.Services = &ServiceContainer{
		Ingestion: services.NewIngestionService(a.DB, a.Hub, extractor, a.Logger),
		Reports:   services.NewReportService(a.DB, a.Logger),
		Roster:    services.NewRosterService(a.DB, a.Logger),
		Health:    services.NewHealthService(contracts.Version, a.DB, a.Hub, a.Logger),
	}
}

// setupRouter builds the chi router. The websocket endpoint sits in
// front of the middleware group because wrapped ResponseWriters break
// the upgrade handshake; everything else runs through the full chain.
func (a *Application) setupRouter() {
	r := chi.NewRouter()

	r.Use(customMiddleware.RequestID)
	r.Use(customMiddleware.RealIP)

	r.With(customMiddleware.WebSocketTraceMiddleware(a.Logger)).Get("/ws", a.handleWebSocket)

	r.Group(func(r chi.Router) {
		otelMiddleware, err := customMiddleware.NewOTelMiddleware(a.OTelProviders)
		if err != nil {
			a.Logger.Error("failed to create otel middleware", slog.String("error", err.Error()))
		} else {
			r.Use(otelMiddleware.Handler)
		}

		if a.OTelProviders.Meter != nil {
			if metrics, err := infrastructure.NewMetrics(a.OTelProviders.Meter); err != nil {
				a.Logger.Error("failed to create metric instruments", slog.String("error", err.Error()))
			} else {
				r.Use(customMiddleware.MetricsMiddleware(metrics))
			}
		}

		r.Use(customMiddleware.StructuredLogger(a.Logger))
		r.Use(customMiddleware.Recoverer(a.Logger))
		r.Use(customMiddleware.SecurityHeaders)
		r.Use(customMiddleware.CORS(a.corsConfig()))

		if a.Config.Security.RateLimit.Enabled {
			r.Use(customMiddleware.NewRateLimiter(
				a.Config.Security.RateLimit.RPS,
				a.Config.Security.RateLimit.Burst,
				a.Logger,
			).Handler)
		}

		a.setupAPIRoutes(r)
	})

	// Liveness probe and Prometheus scrape endpoint stay outside the
	// middleware group.
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	if a.OTelProviders.PrometheusHTTP != nil {
		r.Handle("/metrics", a.OTelProviders.PrometheusHTTP)
	}

	a.Router = r
}

// setupAPIRoutes registers every /api endpoint.
func (a *Application) setupAPIRoutes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))
		r.Use(customMiddleware.Timeout(a.Config.Server.ReadTimeout, a.Logger))

		errorHandler := apierrors.NewErrorHandler(a.Logger, false)
		validator := customMiddleware.NewValidationMiddleware(a.Logger, errorHandler)

		healthHandler := httptransport.NewHealthHandler(a.Services.Health, a.Logger)
		r.Get("/health", healthHandler.HealthCheck)
		r.Get("/health/ready", healthHandler.ReadinessCheck)
		r.Get("/health/live", healthHandler.LivenessCheck)
		r.Get("/version", healthHandler.Version)

		metricsHandler := httptransport.NewMetricsHandler(a.Hub)
		r.Mount("/metrics", metricsHandler.Routes())

		chapterHandler := httptransport.NewChapterHandler(a.Services.Roster, a.Logger, errorHandler)
		reportHandler := httptransport.NewReportHandler(a.Services.Ingestion, a.Services.Reports, a.Logger, errorHandler)
		r.Route("/chapters", func(r chi.Router) {
			r.Get("/", chapterHandler.ListChapters)
			r.Route("/{chapterID}", func(r chi.Router) {
				r.Get("/members", chapterHandler.ListMembers)
				r.Delete("/members/{memberID}", chapterHandler.DeactivateMember)
				r.Mount("/reports", reportHandler.Routes())
			})
		})

		// Comparison and log bodies are JSON; upload routes carry raw
		// workbook bytes and skip the JSON pre-checks.
		jsonOnly := r.With(
			customMiddleware.ContentTypeValidator("application/json"),
			validator.ValidateRequest,
		)

		comparisonHandler := httptransport.NewComparisonHandler(a.Services.Reports, validator, a.Logger, errorHandler)
		jsonOnly.Mount("/comparisons", comparisonHandler.Routes())

		rosterHandler := httptransport.NewRosterHandler(a.Services.Roster, a.Logger, errorHandler)
		r.Mount("/rosters", rosterHandler.Routes())

		jsonOnly.Post("/logs", httptransport.NewClientLogHandler(a.Logger).Handle)
	})
}

// corsConfig derives the CORS policy from configuration.
func (a *Application) corsConfig() customMiddleware.CORSConfig {
	return customMiddleware.CORSConfig{
		AllowedOrigins:   a.Config.Security.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
		Logger:           a.Logger,
	}
}

// isDevelopment reports whether the server runs in development mode.
func (a *Application) isDevelopment() bool {
	env := os.Getenv("ENVIRONMENT")
	return env == "" || env == "development"
}

func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:           fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:        a.Router,
		ReadTimeout:    a.Config.Server.ReadTimeout,
		WriteTimeout:   a.Config.Server.WriteTimeout,
		IdleTimeout:    a.Config.Server.IdleTimeout,
		MaxHeaderBytes: a.Config.Server.MaxHeaderBytes,
	}
}

// handleWebSocket upgrades the connection and hands it to the hub.
func (a *Application) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	reqID := r.Header.Get("X-Request-ID")
	if reqID == "" {
		reqID = fmt.Sprintf("ws-%d", time.Now().UnixNano())
	}
	ctx := infrastructure.WithTraceID(r.Context(), reqID)

	a.Logger.InfoContext(ctx, "websocket upgrade request",
		slog.String("remote_addr", r.RemoteAddr),
		slog.String("origin", r.Header.Get("Origin")))

	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" || a.isDevelopment() {
				return true
			}
			for _, allowed := range a.Config.Security.AllowedOrigins {
				if origin == allowed {
					return true
				}
			}
			a.Logger.WarnContext(ctx, "websocket origin rejected",
				slog.String("origin", origin))
			return false
		},
		Error: func(w http.ResponseWriter, r *http.Request, status int, reason error) {
			a.Logger.ErrorContext(ctx, "websocket upgrade error",
				slog.Int("status", status),
				slog.String("reason", reason.Error()))
		},
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrader already wrote the error response.
		return
	}

	realtime.ServeWS(a.Hub, conn, a.Logger)
}

// performStartupHealthCheck verifies the pieces the server cannot run
// without: a reachable database and a writable data directory.
func (a *Application) performStartupHealthCheck(ctx context.Context) error {
	checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := a.DB.Ping(checkCtx); err != nil {
		return fmt.Errorf("database not reachable: %w", err)
	}

	probe := filepath.Join(a.Config.Storage.DataDir, ".write-test")
	if err := os.WriteFile(probe, []byte("ok"), 0o644); err != nil {
		return fmt.Errorf("data directory not writable: %w", err)
	}
	os.Remove(probe)

	return nil
}

// Start launches the hub and the HTTP server. Server errors cancel the
// given context instead of exiting the process.
func (a *Application) Start(ctx context.Context, cancel context.CancelFunc) error {
	a.Logger.InfoContext(ctx, "starting application",
		slog.String("name", AppName),
		slog.String("version", contracts.Version),
		slog.Int("port", a.Config.Server.Port),
		slog.String("database", a.DB.Path()))

	a.Hub.Start()

	go func() {
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.Logger.ErrorContext(ctx, "server error", slog.String("error", err.Error()))
			cancel()
		}
	}()

	if err := a.performStartupHealthCheck(ctx); err != nil {
		a.Logger.WarnContext(ctx, "startup health check warnings",
			slog.String("warnings", err.Error()))
	}

	a.Logger.InfoContext(ctx, "application started",
		slog.String("address", fmt.Sprintf("http://localhost:%d", a.Config.Server.Port)))
	return nil
}

// Stop shuts the server down gracefully and releases every resource.
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "shutting down application")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	a.Hub.Stop()

	if a.OTelProviders != nil {
		if err := a.OTelProviders.Shutdown(shutdownCtx); err != nil {
			a.Logger.ErrorContext(ctx, "error shutting down observability",
				slog.String("error", err.Error()))
		}
	}

	if err := a.DB.Close(); err != nil {
		a.Logger.ErrorContext(ctx, "error closing database",
			slog.String("error", err.Error()))
	}

	a.Logger.InfoContext(ctx, "application shutdown complete")
	return nil
}

// Run starts the application and blocks until an interrupt or a fatal
// server error, then shuts down gracefully.
func (a *Application) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	if err := a.Start(ctx, cancel); err != nil {
		return err
	}

	select {
	case <-sigChan:
		a.Logger.InfoContext(ctx, "received interrupt signal")
	case <-ctx.Done():
	}

	return a.Stop(context.Background())
}
