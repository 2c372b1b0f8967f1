package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/insightboard/internal/config"
	"github.com/phrazzld/insightboard/internal/platform/memory"
	"github.com/phrazzld/insightboard/internal/platform/sqlstore"
	"github.com/phrazzld/insightboard/internal/store"
)

// initialCheckTimeout bounds the first connectivity check at startup.
const initialCheckTimeout = 5 * time.Second

// setupTaskStore builds the failover store. Without a database URL it only
// has the in-memory backend and the returned *sql.DB is nil. An unreachable
// database is not an error: the server starts on memory and the health
// monitor switches over once the database answers.
func setupTaskStore(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*store.Failover, *sql.DB, error) {
	mem := memory.NewTaskStore()

	if !cfg.HasDatabase() {
		logger.Info("no database configured, tasks are kept in memory")
		return store.NewFailover(logger, nil, mem), nil, nil
	}

	db, dialect, err := sqlstore.Open(cfg.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	durable := sqlstore.NewTaskStore(db, dialect, logger)
	failover := store.NewFailover(logger, durable, mem)

	checkCtx, cancel := context.WithTimeout(ctx, initialCheckTimeout)
	defer cancel()

	if failover.Check(checkCtx) {
		logger.Info("database connection established", "dialect", string(dialect))
	} else {
		logger.Warn("database unreachable at startup, serving from memory", "dialect", string(dialect))
	}

	return failover, db, nil
}
