package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ldurand/paydash/backend/internal/auth"
	"github.com/ldurand/paydash/backend/internal/config"
	"github.com/ldurand/paydash/backend/internal/domain"
	"github.com/ldurand/paydash/backend/internal/graph"
	"github.com/ldurand/paydash/backend/internal/logging"
	"github.com/ldurand/paydash/backend/internal/server"
	"github.com/ldurand/paydash/backend/internal/service"
	"github.com/ldurand/paydash/backend/internal/store"
)

type transactionSource interface {
	service.TransactionSource
	Probe(ctx context.Context) error
	Close(ctx context.Context) error
}

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Logging)

	source, err := buildSource(ctx, logger, cfg.Store)
	if err != nil {
		logger.Error("failed to create transaction source", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := source.Close(context.Background()); err != nil {
			logger.Warn("closing transaction source failed", "error", err)
		}
	}()

	session, err := auth.NewSession(auth.DefaultRoster(), auth.NewFileStore(cfg.Auth.StateFile))
	if err != nil {
		logger.Error("failed to restore session", "error", err)
		os.Exit(1)
	}
	session.Subscribe(func(user *domain.User) {
		if user != nil {
			logger.Info("session active", "email", user.Email, "role", string(user.Role))
			return
		}
		logger.Info("session cleared")
	})

	txService := service.NewTransactionService(source)
	apiHandlers := server.NewAPIHandlers(logger, txService, session)

	router := server.NewRouter(logger, server.RouterDependencies{
		Health:           server.SourceHealthService{Source: source},
		API:              apiHandlers,
		AllowedOrigins:   parseAllowedOrigins(cfg.HTTP.AllowedOriginsCSV),
		AllowCredentials: true,
	})

	srv := server.New(logger, cfg.HTTP, router)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("received shutdown signal", "signal", sig.String())
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("server stopped unexpectedly", "error", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}

func buildSource(ctx context.Context, logger *slog.Logger, cfg config.StoreConfig) (transactionSource, error) {
	switch cfg.Kind {
	case "graph":
		client, err := graph.NewNeo4jClient(ctx, graph.Options{
			URI:            cfg.Graph.URI,
			Database:       cfg.Graph.Database,
			Username:       cfg.Graph.Username,
			Password:       cfg.Graph.Password,
			MaxConnections: cfg.Graph.MaxConnections,
		})
		if err != nil {
			return nil, err
		}
		logger.Info("using graph transaction source", "uri", cfg.Graph.URI)
		return store.NewGraphSource(client), nil
	default:
		if cfg.DatasetPath != "" {
			logger.Info("using dataset transaction source", "path", cfg.DatasetPath)
			return store.NewMemorySourceFromFile(cfg.DatasetPath)
		}
		logger.Info("using built-in demo transaction source")
		return store.NewMemorySource(store.SeedTransactions())
	}
}

func parseAllowedOrigins(csv string) []string {
	if csv == "" {
		return nil
	}
	parts := strings.Split(csv, ",")
	var origins []string
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin == "" {
			continue
		}
		origins = append(origins, origin)
	}
	return origins
}
