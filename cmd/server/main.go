// Package main implements the entry point for the vocabulary validation
// server, which gates AI-generated Chinese learning content against a
// learner's curriculum position and recommends content by comprehension.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"

	"github.com/joho/godotenv"

	"github.com/IsakPar/hanzi-vocab-val/internal/config"
	"github.com/IsakPar/hanzi-vocab-val/internal/platform/logger"
)

func main() {
	// A missing .env is fine; production configures through real
	// environment variables.
	_ = godotenv.Load()

	app, err := initializeApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer app.cleanup()

	if err := app.startHTTPServer(context.Background(), app.setupRouter()); err != nil {
		app.logger.Error("server exited with error", "error", err)
	}
}

// initializeApp loads configuration, sets up logging, and wires the
// application's services.
func initializeApp() (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger := logger.Setup(cfg.Server)
	slog.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"environment", cfg.Server.Environment,
		"data_dir", cfg.Sync.DataDir)

	return newApplication(cfg, appLogger)
}
