package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/vedasmart/deck-api/internal/config"
	"github.com/vedasmart/deck-api/internal/export"
	"github.com/vedasmart/deck-api/internal/platform/gemini"
	"github.com/vedasmart/deck-api/internal/retry"
	"github.com/vedasmart/deck-api/internal/service"
	"github.com/vedasmart/deck-api/internal/task"
)

// application holds the composed dependencies of the running server.
type application struct {
	config      *config.Config
	logger      *slog.Logger
	taskRunner  *task.TaskRunner
	deckService *service.DeckService
	exporter    *export.Exporter
}

// newApplication wires the Gemini clients, pipeline, task runner, deck
// service and exporter from configuration.
func newApplication(cfg *config.Config, logger *slog.Logger) (*application, error) {
	ctx := context.Background()

	contentClient, err := gemini.NewContentClient(ctx, logger, cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("failed to create content client: %w", err)
	}

	imageClient, err := gemini.NewImageClient(ctx, logger, cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("failed to create image client: %w", err)
	}

	pipeline, err := service.NewPipeline(contentClient, imageClient, service.PipelineConfig{
		RetryPolicy: retry.Policy{
			MaxRetries: cfg.LLM.MaxRetries,
			BaseDelay:  time.Duration(cfg.LLM.RetryBaseDelayMillis) * time.Millisecond,
		},
		ImageDelay: time.Duration(cfg.Pipeline.ImageRequestDelayMillis) * time.Millisecond,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create pipeline: %w", err)
	}

	taskRunner := task.NewTaskRunner(task.TaskRunnerConfig{
		WorkerCount: cfg.Task.WorkerCount,
		QueueSize:   cfg.Task.QueueSize,
	}, logger)

	deckService, err := service.NewDeckService(pipeline, taskRunner, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create deck service: %w", err)
	}

	exporter, err := export.NewExporter(logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create exporter: %w", err)
	}

	return &application{
		config:      cfg,
		logger:      logger,
		taskRunner:  taskRunner,
		deckService: deckService,
		exporter:    exporter,
	}, nil
}

// run starts background task processing and serves HTTP until shutdown.
func (app *application) run() error {
	if err := app.taskRunner.Start(); err != nil {
		return fmt.Errorf("failed to start task runner: %w", err)
	}

	return app.startHTTPServer(context.Background(), app.setupRouter())
}

// cleanup stops background processing.
func (app *application) cleanup() {
	app.taskRunner.Stop()
}
