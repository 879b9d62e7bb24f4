// Package main is the entry point for the stockchart web service.
//
// Startup order matters: the dataset is loaded before the HTTP server is
// created, so the first page request always sees a loaded dataset.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aristath/stockchart/internal/config"
	"github.com/aristath/stockchart/internal/di"
	"github.com/aristath/stockchart/internal/server"
	"github.com/aristath/stockchart/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Use fallback logger if config fails
		fallbackLog := logger.New(logger.Config{
			Level:  "info",
			Pretty: true,
		})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.LogPretty || cfg.DevMode,
	})
	logger.SetGlobalLogger(log)

	log.Info().
		Str("data_source", cfg.DataSource).
		Str("row_policy", cfg.RowPolicy).
		Msg("Starting stockchart")

	container, err := di.Wire(context.Background(), cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to wire dependencies")
	}

	// Initial load; nothing is served until it succeeds
	loadCtx, loadCancel := context.WithTimeout(context.Background(), cfg.FetchTimeout())
	ds, err := container.Store.Reload(loadCtx)
	loadCancel()
	if err != nil {
		log.Fatal().Err(err).Str("source", cfg.DataSource).Msg("Failed to load dataset")
	}
	log.Info().
		Str("dataset_id", ds.ID()).
		Int("records", ds.Len()).
		Int("symbols", len(ds.Symbols())).
		Msg("Dataset loaded")

	srv, err := server.New(server.Config{
		Log:       log,
		Port:      cfg.Port,
		DevMode:   cfg.DevMode,
		Title:     cfg.Title,
		Surface:   container.Surface,
		Store:     container.Store,
		Scheduler: container.Scheduler,

		ReloadTimeout: cfg.FetchTimeout(),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create server")
	}

	container.Scheduler.Start()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	log.Info().Int("port", cfg.Port).Msg("Server started successfully")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	container.Scheduler.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
