package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Harshitk-cp/agentdeck/internal/api"
	"github.com/Harshitk-cp/agentdeck/internal/backend"
	"github.com/Harshitk-cp/agentdeck/internal/config"
	"github.com/Harshitk-cp/agentdeck/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

func main() {
	if err := config.Load(); err != nil {
		panic(err)
	}

	logger := newLogger(config.LogLevel())
	defer func() { _ = logger.Sync() }()

	client := backend.NewClient(config.BackendURL())
	client.SetTimeout(config.BackendTimeout())
	if rps := config.BackendRateLimitRPS(); rps > 0 {
		client.SetRateLimit(rps, config.RateLimitBurst())
	}
	logger.Info("backend configured", zap.String("url", config.BackendURL()))

	promReg := prometheus.NewRegistry()
	metrics := service.NewMetrics(promReg)

	orch := service.NewOrchestrator(client, metrics, logger, service.Options{
		RevenueSlots: config.RevenueSlotsEnabled(),
		ProductsSlot: config.ProductsSlotEnabled(),
	})
	orch.SetInterval(config.PollInterval())

	// Initial load: populate every slot before serving. Failures are
	// non-fatal; slots fill in on later ticks.
	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 30*time.Second)
	orch.LoadAll(loadCtx)
	cancelLoad()
	logger.Info("initial load complete", zap.Strings("slots", orch.SlotNames()))

	orch.StartPolling()

	app := api.NewApp(orch, client, promReg, logger)

	addr := config.ServerAddr()
	srv := &http.Server{
		Addr:    addr,
		Handler: app.Router,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("server starting", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("shutting down server")

	orch.StopPolling()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}

func newLogger(level string) *zap.Logger {
	cfg := zap.NewProductionConfig()
	if lvl, err := zap.ParseAtomicLevel(level); err == nil {
		cfg.Level = lvl
	}
	logger, err := cfg.Build()
	if err != nil {
		logger, _ = zap.NewProduction()
	}
	return logger
}
