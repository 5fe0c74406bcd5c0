// Package main is the entry point for the alumni search server.
//
// The main package is kept minimal. Its job is to:
// 1. Read configuration (env vars, .env, optional YAML file)
// 2. Create dependencies (logger, repository)
// 3. Start the application
//
// All actual logic lives in internal/server, internal/handler and below.
//
// RUNNING:
//
//	go run ./cmd/server
//	PORT=8080 STORE_DRIVER=sqlite go run ./cmd/server
//	CONFIG_PATH=config/local.yaml go run ./cmd/server
package main

import (
	"log/slog"
	"os"

	"github.com/sakif/alumni-search/internal/config"
	"github.com/sakif/alumni-search/internal/logging"
	"github.com/sakif/alumni-search/internal/server"
)

func main() {
	// === 1. READ CONFIGURATION ===
	// No logger exists yet, so a config failure goes to a bootstrap one.
	cfg, err := config.Load()
	if err != nil {
		logging.New("dev", os.Stderr).Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// === 2. SET UP LOGGING ===
	logger := logging.New(cfg.Env, os.Stdout)
	for _, w := range cfg.Warnings {
		logger.Warn(w)
	}

	// === 3. CREATE AND START THE SERVER ===
	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Start() blocks until the server is shut down (via Ctrl+C or SIGTERM)
	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
