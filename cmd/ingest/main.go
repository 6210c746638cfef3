package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/ldurand/paydash/backend/internal/config"
	"github.com/ldurand/paydash/backend/internal/domain"
	"github.com/ldurand/paydash/backend/internal/graph"
	"github.com/ldurand/paydash/backend/internal/logging"
	"github.com/ldurand/paydash/backend/internal/service"
	"github.com/ldurand/paydash/backend/internal/store"
)

var errMissingDataset = errors.New("dataset not found")

func main() {
	var (
		datasetDir = flag.String("dataset-dir", "./data", "Directory containing transactions.json")
		dataset    = flag.String("transactions", "", "Path to transactions.json (overrides dataset-dir)")
		workers    = flag.Int("workers", 4, "Number of concurrent workers for ingestion")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Logging).With("component", "ingest")

	path := *dataset
	if path == "" {
		path = filepath.Join(*datasetDir, "transactions.json")
	}
	transactions, err := loadTransactions(path)
	if err != nil {
		logger.Error("dataset load failed", "error", err, "path", path)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	client, err := graph.NewNeo4jClient(ctx, graph.Options{
		URI:            cfg.Store.Graph.URI,
		Database:       cfg.Store.Graph.Database,
		Username:       cfg.Store.Graph.Username,
		Password:       cfg.Store.Graph.Password,
		MaxConnections: cfg.Store.Graph.MaxConnections,
	})
	if err != nil {
		logger.Error("failed to create graph client", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := client.Close(context.Background()); err != nil {
			logger.Warn("closing graph client failed", "error", err)
		}
	}()

	sink := store.NewGraphSource(client)
	ingestor := service.NewBulkIngestor(sink, *workers)

	start := time.Now()
	logger.Info("starting ingestion", "transactions", len(transactions), "workers", *workers)

	if err := ingestor.IngestTransactions(ctx, transactions); err != nil {
		var taskErr *service.TaskError
		if errors.As(err, &taskErr) {
			logger.Error("ingestion completed with errors", "failed", len(taskErr.Errors))
			os.Exit(1)
		}
		logger.Error("ingestion aborted", "error", err)
		os.Exit(1)
	}

	logger.Info("ingestion finished",
		"transactions", len(transactions),
		"duration_ms", time.Since(start).Milliseconds(),
	)
}

func loadTransactions(path string) ([]domain.Transaction, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", errMissingDataset, path)
		}
		return nil, fmt.Errorf("read dataset: %w", err)
	}

	var dataset struct {
		Transactions []domain.Transaction `json:"transactions"`
	}
	if err := json.Unmarshal(data, &dataset); err != nil {
		return nil, fmt.Errorf("parse dataset: %w", err)
	}
	return dataset.Transactions, nil
}
