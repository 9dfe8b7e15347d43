package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/agenthands/protgraph/internal/config"
	"github.com/agenthands/protgraph/internal/core"
	"github.com/agenthands/protgraph/internal/driver"
	"github.com/agenthands/protgraph/internal/metrics"
	"github.com/agenthands/protgraph/internal/server"
	"github.com/agenthands/protgraph/internal/source"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if err := godotenv.Load(); err != nil {
		logger.Info("No .env file found, using defaults")
	}

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config/config.toml"
	}
	cfg, err := config.Resolve(cfgPath)
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	ctx := context.Background()
	d, err := driver.NewNeo4jDriver(ctx, cfg.Neo4j.URI, cfg.Neo4j.User, cfg.Neo4j.Password, cfg.Neo4j.Database, logger)
	if err != nil {
		logger.Fatal("Failed to connect to Neo4j", zap.Error(err))
	}
	defer d.Close(ctx)

	rec := metrics.NewRecorder(prometheus.DefaultRegisterer)
	ingester := core.NewIngester(d, logger, rec, cfg.Ingest.Parallel)
	loader := source.NewRemoteLoader(ctx, cfg, logger)

	if cfg.Ingest.BuildIndices {
		if err := ingester.BuildIndices(ctx); err != nil {
			logger.Warn("Failed to build indices", zap.Error(err))
		}
	}

	runSource := func() {
		log := logger.With(zap.String("source", cfg.Source.URL))
		doc, err := loader.Load(ctx, cfg.Source.URL)
		if err != nil {
			log.Error("Scheduled ingestion failed to load source", zap.Error(err))
			return
		}
		if _, err := ingester.Ingest(ctx, doc); err != nil {
			log.Error("Scheduled ingestion failed", zap.Error(err))
		}
	}

	if cfg.Source.URL != "" && cfg.Schedule.Cron != "" {
		scheduler := cron.New()
		if _, err := scheduler.AddFunc(cfg.Schedule.Cron, runSource); err != nil {
			logger.Fatal("Invalid cron schedule", zap.String("cron", cfg.Schedule.Cron), zap.Error(err))
		}
		scheduler.Start()
		defer scheduler.Stop()
		logger.Info("Scheduled ingestion", zap.String("cron", cfg.Schedule.Cron), zap.String("source", cfg.Source.URL))
	}
	if cfg.Source.URL != "" && cfg.Schedule.RunOnStart {
		go runSource()
	}

	srv := server.NewServer(ingester, loader, logger, prometheus.DefaultGatherer)
	httpServer := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           srv.SetupRouter(),
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	logger.Info("Starting server", zap.String("port", cfg.Server.Port))
	if err := httpServer.ListenAndServe(); err != nil {
		logger.Fatal("Failed to run server", zap.Error(err))
	}
}
