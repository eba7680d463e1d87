// cmd/server/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/talvik-analytics/shipkpi/internal/api"
	"github.com/talvik-analytics/shipkpi/internal/cache"
	"github.com/talvik-analytics/shipkpi/internal/config"
	"github.com/talvik-analytics/shipkpi/internal/repository/postgres"
	"github.com/talvik-analytics/shipkpi/internal/service"
	"github.com/talvik-analytics/shipkpi/internal/storage"
	"github.com/talvik-analytics/shipkpi/pkg/logger"
)

func main() {
	cfg := config.Load()

	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
		logger.SetLevel("debug")
	} else {
		gin.SetMode(gin.ReleaseMode)
		logger.SetLevel("info")
		logger.UseJSON()
	}

	services := &api.Services{
		UploadDir: cfg.App.UploadDir,
	}

	// Workbook archive is optional; a misconfigured store downgrades to no
	// archiving instead of refusing to start.
	var archive storage.ObjectStorage
	if cfg.Archive.Enabled {
		client, err := storage.NewMinioClient(cfg.Archive)
		if err != nil {
			logger.Log.Warn().Err(err).Msg("workbook archive disabled")
		} else {
			archive = client
		}
	}
	services.Datasets = service.NewDatasetService(archive)

	resultCache, err := cache.NewResultCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("result cache unavailable, running without cache")
		resultCache = cache.NewNoopResultCache()
	}

	if cfg.Database.Enabled {
		db, err := postgres.NewDB(&cfg.Database)
		if err != nil {
			logger.Log.Fatal().Err(err).Msg("Failed to connect to database")
		}
		defer db.Close()

		services.Presets = service.NewPresetService(postgres.NewPresetRepository(db))
		services.Calculations = service.NewCalculationService(services.Datasets, resultCache, postgres.NewRunRepository(db))
	} else {
		services.Calculations = service.NewCalculationService(services.Datasets, resultCache, nil)
	}

	router := api.NewRouter(services, cfg.Server.AllowedOrigins)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}
