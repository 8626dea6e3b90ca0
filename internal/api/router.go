package api

import (
	"context"
	"encoding/json"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/Harshitk-cp/agentdeck/internal/api/handlers"
	mw "github.com/Harshitk-cp/agentdeck/internal/api/middleware"
	"github.com/Harshitk-cp/agentdeck/internal/buildconfig"
	"github.com/Harshitk-cp/agentdeck/internal/config"
	"github.com/Harshitk-cp/agentdeck/internal/domain"
	"github.com/Harshitk-cp/agentdeck/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// App holds the router and the orchestrator for lifecycle management.
type App struct {
	Router       *chi.Mux
	Orchestrator *service.Orchestrator
	startTime    time.Time
	requestCount atomic.Int64
	errorCount   atomic.Int64
}

func NewApp(orch *service.Orchestrator, upstream domain.Backend, promReg *prometheus.Registry, logger *zap.Logger) *App {
	snapshotHandler := handlers.NewSnapshotHandler(orch)
	workflowHandler := handlers.NewWorkflowHandler(orch)
	actionHandler := handlers.NewActionHandler(orch)

	r := chi.NewRouter()

	app := &App{
		Router:       r,
		Orchestrator: orch,
		startTime:    time.Now(),
	}

	metricsCollector := mw.NewMetricsCollector(&app.requestCount, &app.errorCount)

	// Global middleware (order matters)
	r.Use(mw.RequestID)
	r.Use(middleware.RealIP)
	r.Use(metricsCollector.Middleware)
	r.Use(mw.Logging(logger))
	r.Use(middleware.Recoverer)
	r.Use(mw.RateLimit(config.RateLimitRPS(), config.RateLimitBurst()))

	// Health and metrics
	r.Get("/health", healthHandler(upstream))
	r.Get("/metrics", app.metricsHandler())
	if promReg != nil {
		r.Handle("/metrics/prometheus", promhttp.HandlerFor(promReg, promhttp.HandlerOpts{}))
	}

	r.Route("/v1", func(r chi.Router) {
		r.Get("/snapshot", snapshotHandler.Get)

		r.Route("/slots/{name}", func(r chi.Router) {
			r.Get("/", snapshotHandler.GetSlot)
			r.Post("/refresh", snapshotHandler.RefreshSlot)
		})

		r.Route("/workflows", func(r chi.Router) {
			r.Post("/", workflowHandler.Create)
			r.Put("/{id}/status", workflowHandler.UpdateStatus)
		})

		r.Post("/trends/refresh", actionHandler.RefreshTrends)
		r.Post("/revenue/template-workflows", actionHandler.CreateTemplateWorkflow)
	})

	return app
}

// healthHandler probes the upstream with a short deadline. The daemon is
// healthy either way (stale-but-present data keeps serving); the probe
// result is informational.
func healthHandler(upstream domain.Backend) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		backendStatus := "ok"
		if _, err := upstream.AgentStatus(ctx); err != nil {
			backendStatus = "unreachable"
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"status":  "ok",
			"backend": backendStatus,
			"version": buildconfig.Version(),
			"commit":  buildconfig.Commit(),
		})
	}
}

func (app *App) metricsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var memStats runtime.MemStats
		runtime.ReadMemStats(&memStats)

		uptime := time.Since(app.startTime)

		response := map[string]any{
			"uptime_seconds": uptime.Seconds(),
			"uptime_human":   uptime.Round(time.Second).String(),
			"request_count":  app.requestCount.Load(),
			"error_count":    app.errorCount.Load(),
			"goroutines":     runtime.NumGoroutine(),
			"loading":        app.Orchestrator.Loading(),
			"memory": map[string]any{
				"alloc_mb":       float64(memStats.Alloc) / 1024 / 1024,
				"total_alloc_mb": float64(memStats.TotalAlloc) / 1024 / 1024,
				"sys_mb":         float64(memStats.Sys) / 1024 / 1024,
				"num_gc":         memStats.NumGC,
			},
			"go_version": runtime.Version(),
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(response)
	}
}
