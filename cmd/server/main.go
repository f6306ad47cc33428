package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	grpcapi "github.com/nemanja-m/mrlabs/internal/api/grpc"
	"github.com/nemanja-m/mrlabs/internal/api/rest"
	"github.com/nemanja-m/mrlabs/internal/catalog"
	"github.com/nemanja-m/mrlabs/internal/shared/config"
	"github.com/nemanja-m/mrlabs/internal/shared/logging"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.LoadServer(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	logger, err := logging.FromConfig(os.Stdout, cfg.Logging)
	if err != nil {
		slog.Error("Failed to configure logging", "error", err)
		os.Exit(1)
	}

	registry := catalog.Default()
	logger.Info("Catalog loaded", "experiments", registry.Len())

	httpServer := rest.NewServer(cfg.REST, registry, logger)
	grpcServer := grpcapi.NewServer(cfg.GRPC, registry, logger)

	go func() {
		logger.Info("Starting HTTP server", "addr", cfg.REST.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", "error", err)
		}
	}()

	go func() {
		if err := grpcServer.Start(); err != nil {
			logger.Fatal("gRPC server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down servers...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	grpcServer.Stop()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("HTTP server forced to shutdown", "error", err)
	}

	logger.Info("Servers stopped")
}
