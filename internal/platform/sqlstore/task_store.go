package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/phrazzld/insightboard/internal/domain"
	"github.com/phrazzld/insightboard/internal/platform/logger"
	"github.com/phrazzld/insightboard/internal/redact"
	"github.com/phrazzld/insightboard/internal/store"
)

const taskColumns = "id, text, status, priority, created_at"

// TaskStore implements store.DurableStore on a SQL database.
type TaskStore struct {
	db      *sql.DB
	dialect Dialect
	logger  *slog.Logger

	schemaMu sync.Mutex
	migrated bool
}

var _ store.DurableStore = (*TaskStore)(nil)

// NewTaskStore creates a TaskStore. The schema is migrated by the first
// successful Ping.
func NewTaskStore(db *sql.DB, dialect Dialect, logger *slog.Logger) *TaskStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskStore{
		db:      db,
		dialect: dialect,
		logger:  logger.With("component", "sqlstore", "dialect", string(dialect)),
	}
}

// Dialect returns the database dialect.
func (s *TaskStore) Dialect() Dialect {
	return s.dialect
}

// Ping verifies connectivity and applies pending migrations the first time
// it succeeds.
func (s *TaskStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}
	return s.ensureSchema(ctx)
}

func (s *TaskStore) ensureSchema(ctx context.Context) error {
	s.schemaMu.Lock()
	defer s.schemaMu.Unlock()

	if s.migrated {
		return nil
	}
	if err := Migrate(ctx, s.db, s.dialect, s.logger); err != nil {
		return err
	}
	s.migrated = true
	return nil
}

// List implements store.TaskStore.
func (s *TaskStore) List(ctx context.Context) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := "SELECT " + taskColumns + " FROM tasks ORDER BY created_at DESC, seq DESC"
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to list tasks", "error", redact.Error(err))
		return nil, fmt.Errorf("failed to list tasks: %w", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	tasks := make([]*domain.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tasks: %w", MapError(err))
	}
	return tasks, nil
}

// Get implements store.TaskStore.
func (s *TaskStore) Get(ctx context.Context, id string) (*domain.Task, error) {
	return s.get(ctx, s.db, id)
}

func (s *TaskStore) get(ctx context.Context, q store.DBTX, id string) (*domain.Task, error) {
	query := s.dialect.rebind("SELECT " + taskColumns + " FROM tasks WHERE id = ?")
	task, err := scanTask(q.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrTaskNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", MapError(err))
	}
	return task, nil
}

// CreateMany implements store.TaskStore. Each task is inserted on its own,
// so one failure does not undo the others.
func (s *TaskStore) CreateMany(ctx context.Context, tasks []*domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)
	query := s.dialect.rebind("INSERT INTO tasks (" + taskColumns + ") VALUES (?, ?, ?, ?, ?)")

	batchErr := &store.BatchError{}
	for _, task := range tasks {
		if task == nil {
			continue
		}
		if err := task.Validate(); err != nil {
			batchErr.Add(task.ID, fmt.Errorf("%w: %w", store.ErrInvalidEntity, err))
			continue
		}

		_, err := s.db.ExecContext(ctx, query,
			task.ID,
			task.Text,
			string(task.Status),
			string(task.Priority),
			s.dialect.timeArg(task.CreatedAt),
		)
		if err != nil {
			log.Error("failed to insert task",
				"task_id", task.ID,
				"error", redact.Error(err))
			batchErr.Add(task.ID, MapError(err))
		}
	}
	return batchErr.ErrOrNil()
}

// UpdateStatus implements store.TaskStore.
func (s *TaskStore) UpdateStatus(ctx context.Context, id string, status domain.Status) (*domain.Task, error) {
	if !status.Valid() {
		return nil, domain.ErrInvalidStatus
	}

	var updated *domain.Task
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx,
			s.dialect.rebind("UPDATE tasks SET status = ? WHERE id = ?"),
			string(status), id)
		if err != nil {
			return fmt.Errorf("failed to update task status: %w", MapError(err))
		}
		if err := requireRow(result); err != nil {
			return err
		}

		updated, err = s.get(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete implements store.TaskStore.
func (s *TaskStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, s.dialect.rebind("DELETE FROM tasks WHERE id = ?"), id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", MapError(err))
	}
	return requireRow(result)
}

func requireRow(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return store.ErrTaskNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var (
		task      domain.Task
		status    string
		priority  string
		createdAt any
	)
	if err := row.Scan(&task.ID, &task.Text, &status, &priority, &createdAt); err != nil {
		return nil, err
	}

	ts, err := scanTime(createdAt)
	if err != nil {
		return nil, err
	}
	task.Status = domain.Status(status)
	task.Priority = domain.Priority(priority)
	task.CreatedAt = ts
	return &task, nil
}
