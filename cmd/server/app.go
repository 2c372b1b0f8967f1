package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/insightboard/internal/config"
	"github.com/phrazzld/insightboard/internal/extraction"
	"github.com/phrazzld/insightboard/internal/platform/gemini"
	"github.com/phrazzld/insightboard/internal/redact"
	"github.com/phrazzld/insightboard/internal/service"
	"github.com/phrazzld/insightboard/internal/store"
)

// application holds the wired dependencies of the server.
type application struct {
	config *config.Config
	logger *slog.Logger

	// db is nil when no database is configured
	db *sql.DB

	taskStore   *store.Failover
	extractor   *extraction.Extractor
	taskService service.TaskService
}

// newApplication wires stores, extraction and services from cfg.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	taskStore, db, err := setupTaskStore(ctx, cfg.Database, logger)
	if err != nil {
		return nil, err
	}
	app.taskStore = taskStore
	app.db = db

	extractor, err := setupExtractor(ctx, cfg.LLM, logger)
	if err != nil {
		app.cleanup()
		return nil, err
	}
	app.extractor = extractor

	taskService, err := service.NewTaskService(app.taskStore, app.extractor, logger)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}
	app.taskService = taskService

	return app, nil
}

// setupExtractor builds the extractor, with a Gemini completer when an API
// key is configured.
func setupExtractor(ctx context.Context, cfg config.LLMConfig, logger *slog.Logger) (*extraction.Extractor, error) {
	prompt, err := extraction.LoadPromptTemplate(cfg.PromptTemplatePath)
	if err != nil {
		return nil, err
	}

	opts := []extraction.Option{
		extraction.WithPromptTemplate(prompt),
		extraction.WithTimeout(cfg.Timeout),
	}

	if cfg.HasModel() {
		completer, err := gemini.NewCompleter(ctx, logger, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini completer: %w", err)
		}
		opts = append(opts, extraction.WithCompleter(completer))
	} else {
		logger.Info("no Gemini API key configured, using heuristic extraction only")
	}

	return extraction.NewExtractor(logger, opts...)
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db == nil {
		return
	}
	if err := app.db.Close(); err != nil {
		app.logger.Error("failed to close database connection", "error", redact.Error(err))
	}
}
