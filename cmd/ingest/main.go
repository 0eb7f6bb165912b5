package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vanshika/airnet/internal/config"
	"github.com/vanshika/airnet/internal/dataset"
	"github.com/vanshika/airnet/internal/graph"
	"github.com/vanshika/airnet/internal/logging"
	"github.com/vanshika/airnet/internal/repository"
	"github.com/vanshika/airnet/internal/service"
)

func main() {
	var (
		datasetDir = flag.String("dataset-dir", "", "Directory containing airports.csv and routes.csv (defaults to DATA_DIR)")
		workers    = flag.Int("workers", 4, "Number of concurrent workers for ingestion")
		batchSize  = flag.Int("batch-size", service.DefaultBatchSize, "Records written per transaction")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *datasetDir == "" {
		*datasetDir = cfg.Data.Dir
	}

	logger := logging.New(cfg.Logging).With("component", "ingest")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	tables, err := dataset.LoadAll(ctx, *datasetDir)
	if err != nil {
		logger.Error("failed to load dataset", "error", err, "dir", *datasetDir)
		os.Exit(1)
	}
	if len(tables.Routes) == 0 {
		logger.Error("routes dataset empty", "dir", *datasetDir)
		os.Exit(1)
	}
	if tables.SkippedAirports > 0 {
		logger.Warn("skipped malformed airport rows", "count", tables.SkippedAirports)
	}

	graphClient, err := graph.Dial(ctx, cfg.Graph)
	if err != nil {
		logger.Error("failed to create graph client", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := graphClient.Close(context.Background()); err != nil {
			logger.Warn("closing graph client failed", "error", err)
		}
	}()
	logger.Info("connected to graph", "uri", cfg.Graph.URI, "database", cfg.Graph.Database)

	repo := repository.New(graphClient)
	if err := repo.EnsureSchema(ctx); err != nil {
		logger.Error("schema setup failed", "error", err)
		os.Exit(1)
	}
	ingestor := service.NewBulkIngestor(repo, *workers, *batchSize)

	start := time.Now()
	logger.Info("ingesting airports", "count", len(tables.Airports), "workers", *workers)
	stored, err := ingestor.IngestAirports(ctx, tables.Airports)
	if err != nil {
		logger.Error("airport ingestion failed", "error", err)
		os.Exit(1)
	}

	logger.Info("ingesting routes", "count", len(tables.Routes))
	dropped, err := ingestor.IngestRoutes(ctx, tables.Routes)
	if err != nil {
		logger.Error("route ingestion failed", "error", err)
		os.Exit(1)
	}
	if dropped > 0 {
		logger.Warn("dropped routes with an empty endpoint", "count", dropped)
	}

	total, err := repo.CountRoutes(ctx)
	if err != nil {
		logger.Warn("route count failed", "error", err)
	}

	logger.Info("ingestion complete",
		"duration", time.Since(start).String(),
		"airports", stored,
		"routes", len(tables.Routes)-dropped,
		"stored_routes", total,
	)
}
