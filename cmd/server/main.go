// backend-go/cmd/server/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/andresuchdata/inventory-flow/backend-go/internal/api"
	"github.com/andresuchdata/inventory-flow/backend-go/internal/cache"
	"github.com/andresuchdata/inventory-flow/backend-go/internal/config"
	"github.com/andresuchdata/inventory-flow/backend-go/internal/metrics"
	"github.com/andresuchdata/inventory-flow/backend-go/internal/repository"
	"github.com/andresuchdata/inventory-flow/backend-go/internal/repository/postgres"
	"github.com/andresuchdata/inventory-flow/backend-go/internal/service"
	"github.com/andresuchdata/inventory-flow/backend-go/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	logger.SetFormat(cfg.Server.LogFormat)
	logger.SetLevel(cfg.Server.Mode)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	// Initialize database (optional)
	var (
		db   *postgres.DB
		runs repository.SimulationRunRepository
	)
	if cfg.Database.Enabled {
		var err error
		db, err = postgres.NewDB(&cfg.Database)
		if err != nil {
			logger.Log.Fatal().Err(err).Msg("Failed to connect to database")
		}
		defer db.Close()

		if err := db.Migrate(ctx); err != nil {
			logger.Log.Fatal().Err(err).Msg("Failed to apply schema")
		}
		runs = postgres.NewSimulationRunRepository(db)
	}

	// Dataset source
	source, err := newDatasetSource(ctx, cfg, db)
	if err != nil {
		logger.Log.Fatal().Err(err).Str("source", cfg.App.DatasetSource).Msg("Failed to configure dataset source")
	}

	// Initialize cache
	simCache, err := cache.NewSimulationCache(ctx, cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("Redis unavailable, simulation cache disabled")
		simCache = cache.NewNoopSimulationCache()
	}

	// Metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	// Initialize services
	simService := service.NewSimulationService(source, runs, simCache, m, cfg.Simulation.Defaults())
	if err := simService.Reload(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to load dataset")
	}

	// Initialize HTTP server
	router := api.NewRouter(&api.Services{SimulationService: simService, Gatherer: reg}, cfg.Server.AllowedOrigins)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Str("dataset", cfg.App.DatasetSource).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	// The context is used to inform the server it has 5 seconds to finish
	// the request it is currently handling
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}
