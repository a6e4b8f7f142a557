package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	fileadapter "github.com/couchcryptid/hurdat2-report-service/internal/adapter/file"
	"github.com/couchcryptid/hurdat2-report-service/internal/adapter/httpadapter"
	kafkaadapter "github.com/couchcryptid/hurdat2-report-service/internal/adapter/kafka"
	"github.com/couchcryptid/hurdat2-report-service/internal/adapter/nhc"
	"github.com/couchcryptid/hurdat2-report-service/internal/adapter/postgres"
	"github.com/couchcryptid/hurdat2-report-service/internal/config"
	"github.com/couchcryptid/hurdat2-report-service/internal/domain"
	"github.com/couchcryptid/hurdat2-report-service/internal/geo"
	"github.com/couchcryptid/hurdat2-report-service/internal/observability"
	"github.com/couchcryptid/hurdat2-report-service/internal/pipeline"
	"github.com/couchcryptid/hurdat2-report-service/internal/report"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	// Resolve the region and criteria before any parsing work.
	region, err := buildRegion(cfg)
	if err != nil {
		logger.Error("failed to build region", "error", err)
		os.Exit(1)
	}
	criteria := report.Criteria{
		Region:          geo.NewCachedRegion(region, cfg.RegionCacheSize),
		StartYear:       cfg.StartYear,
		EndYear:         cfg.EndYear,
		RequireLandfall: cfg.RequireLandfall,
		MinCategory:     domain.Category(cfg.MinCategory),
	}
	if err := criteria.Validate(); err != nil {
		logger.Error("invalid criteria", "error", err)
		os.Exit(1)
	}

	// Dataset source: remote archive when a URL is configured, local file otherwise.
	var source pipeline.DatasetSource
	if cfg.DatasetURL != "" {
		source = nhc.NewClient(cfg.DatasetURL, cfg.HTTPTimeout, logger)
		logger.Info("dataset source: nhc archive", "url", cfg.DatasetURL)
	} else {
		source = fileadapter.NewSource(cfg.DatasetPath, logger)
		logger.Info("dataset source: local file", "path", cfg.DatasetPath)
	}

	writer, err := fileadapter.NewWriter(cfg.ReportDir, logger)
	if err != nil {
		logger.Error("failed to create report writer", "error", err)
		os.Exit(1)
	}
	sinks := []pipeline.ReportSink{writer}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var kafkaWriter *kafkaadapter.Writer
	if cfg.KafkaEnabled {
		kafkaWriter = kafkaadapter.NewWriter(cfg, logger)
		sinks = append(sinks, kafkaWriter)
		logger.Info("kafka publishing enabled", "topic", cfg.KafkaReportTopic)
	}

	var store *postgres.Store
	if cfg.PostgresEnabled {
		store, err = postgres.NewStore(ctx, cfg.PostgresDSN, logger)
		if err != nil {
			logger.Error("failed to connect postgres", "error", err)
			os.Exit(1)
		}
		sinks = append(sinks, store)
		logger.Info("postgres persistence enabled")
	}

	p := pipeline.New(source, sinks, criteria, logger, metrics, cfg.RefreshInterval)

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, logger)

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start report pipeline.
	pipelineDone := make(chan error, 1)
	go func() {
		pipelineDone <- p.Run(ctx)
	}()

	exitCode := 0
	select {
	case <-ctx.Done():
	case err := <-pipelineDone:
		if err != nil {
			logger.Error("pipeline error", "error", err)
			exitCode = 1
		}
		stop()
	}
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if kafkaWriter != nil {
		if err := kafkaWriter.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}
	if store != nil {
		store.Close()
	}

	logger.Info("shutdown complete")
	os.Exit(exitCode)
}

// buildRegion loads the boundary from a GeoJSON file when configured,
// falling back to the builtin region table.
func buildRegion(cfg *config.Config) (geo.Region, error) {
	if cfg.RegionGeoJSON != "" {
		data, err := os.ReadFile(cfg.RegionGeoJSON)
		if err != nil {
			return nil, err
		}
		name := cfg.Region
		if name == "" {
			name = "custom"
		}
		return geo.FromGeoJSON(name, data)
	}
	return geo.Builtin(cfg.Region)
}
