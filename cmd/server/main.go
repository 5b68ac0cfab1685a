package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"baseball-graph-service/internal/config"
	"baseball-graph-service/internal/logging"
	"baseball-graph-service/internal/server"
)

const appVersion = "dev"

func main() {
	if os.Getenv("SKIP_SERVER_RUN") == "1" {
		return
	}

	cfg := config.Load()
	logger := logging.NewLogger(logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: "baseball-graph-service",
		Version: appVersion,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Error("server construction failed", "error", err)
		os.Exit(1)
	}
	if err := srv.Run(ctx, stop); err != nil {
		logger.Error("server exited", "error", err)
		os.Exit(1)
	}
}
