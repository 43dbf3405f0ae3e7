// Package main implements the entry point for the deck API server, which
// turns uploaded chapter PDFs into themed slide decks with AI-generated
// diagrams and exports them as PowerPoint files.
package main

import (
	"fmt"
	"log"
	"log/slog"

	"github.com/vedasmart/deck-api/internal/config"
	"github.com/vedasmart/deck-api/internal/platform/logger"
)

func main() {
	app, err := initializeApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := app.run(); err != nil {
		app.logger.Error("Server exited with error", "error", err)
		app.cleanup()
		log.Fatalf("Server exited with error: %v", err)
	}
}

// initializeApp loads configuration, sets up logging, and wires the
// application dependencies.
func initializeApp() (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"content_model", cfg.LLM.ContentModel,
		"image_model", cfg.LLM.ImageModel)

	app, err := newApplication(cfg, appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to build application: %w", err)
	}
	return app, nil
}
