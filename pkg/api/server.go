// Package api provides the HTTP server: REST routes for organizations,
// users and profiles, advanced search, batch mutation, and the meta
// endpoints (health, version, stats, OpenAPI, metrics).
package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/ft-manu/forethought-test-api/internal/service"
	"github.com/ft-manu/forethought-test-api/internal/store"
	"github.com/ft-manu/forethought-test-api/pkg/batch"
	"github.com/ft-manu/forethought-test-api/pkg/config"
	"github.com/ft-manu/forethought-test-api/pkg/logging"
	"github.com/ft-manu/forethought-test-api/pkg/metrics"
	"github.com/ft-manu/forethought-test-api/pkg/ratelimit"
)

// Version identifiers reported by the version endpoint.
const (
	Version     = "1.0.0"
	Build       = "2024.1.0"
	Environment = "development"
)

// Server is the API server. Create with New, run with Start, stop with
// Shutdown.
type Server struct {
	cfg      *config.Config
	store    *store.Store
	svc      *service.Service
	executor *batch.Executor

	httpServer *http.Server
	startTime  time.Time
	log        *slog.Logger

	registry      *metrics.Registry
	requestsTotal *metrics.Counter
	rateLimited   *metrics.Counter
	entitiesTotal *metrics.Gauge

	// Per-route-class limiters; nil when rate limiting is disabled.
	crudLimiter   *ratelimit.PerIPLimiter
	searchLimiter *ratelimit.PerIPLimiter
	batchLimiter  *ratelimit.PerIPLimiter
	metaLimiter   *ratelimit.PerIPLimiter
	rootLimiter   *ratelimit.PerIPLimiter

	openapiJSON []byte
}

// New creates a server over a freshly generated dataset.
func New(cfg *config.Config, log *slog.Logger) *Server {
	if log == nil {
		log = logging.Nop()
	}

	st := store.New(cfg.FixtureOptions())
	svc := service.New(st)

	registry := metrics.NewRegistry()
	s := &Server{
		cfg:      cfg,
		store:    st,
		svc:      svc,
		executor: batch.NewExecutor(svc),
		log:      log,
		registry: registry,
		requestsTotal: registry.NewCounter("api_requests_total",
			"Total HTTP requests served.", "method", "path", "status"),
		rateLimited: registry.NewCounter("api_rate_limited_total",
			"Requests rejected by the rate limiter.", "class"),
		entitiesTotal: registry.NewGauge("api_entities_total",
			"Entities currently stored.", "kind"),
	}

	if cfg.RateLimit.Enabled {
		s.crudLimiter = ratelimit.NewPerMinute(cfg.RateLimit.CRUD)
		s.searchLimiter = ratelimit.NewPerMinute(cfg.RateLimit.Search)
		s.batchLimiter = ratelimit.NewPerMinute(cfg.RateLimit.Batch)
		s.metaLimiter = ratelimit.NewPerMinute(cfg.RateLimit.Meta)
		s.rootLimiter = ratelimit.NewPerMinute(10)
	}

	s.openapiJSON = buildOpenAPIJSON()

	mux := http.NewServeMux()
	s.registerRoutes(mux)

	s.httpServer = &http.Server{
		Addr:         cfg.Addr(),
		Handler:      s.withRequestLogging(mux),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return s
}

// Store returns the underlying entity store.
func (s *Server) Store() *store.Store {
	return s.store
}

// Handler returns the full handler chain, for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start begins serving and blocks until the listener fails or is closed.
func (s *Server) Start() error {
	s.startTime = time.Now()
	s.log.Info("api server starting", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("api server: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("api server shutting down")
	return s.httpServer.Shutdown(ctx)
}

// Uptime returns the time since Start.
func (s *Server) Uptime() time.Duration {
	if s.startTime.IsZero() {
		return 0
	}
	return time.Since(s.startTime)
}
