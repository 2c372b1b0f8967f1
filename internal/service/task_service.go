package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/phrazzld/insightboard/internal/domain"
	"github.com/phrazzld/insightboard/internal/extraction"
	"github.com/phrazzld/insightboard/internal/platform/logger"
	"github.com/phrazzld/insightboard/internal/redact"
	"github.com/phrazzld/insightboard/internal/store"
)

// Extractor derives action items from a transcript. *extraction.Extractor
// implements it.
type Extractor interface {
	Extract(ctx context.Context, transcript string) extraction.Result
}

// CreateResult is returned by the bulk create operations.
type CreateResult struct {
	// Tasks are all tasks built from the input, in input order, including
	// those that could not be stored.
	Tasks []*domain.Task
	// Unpersisted lists the IDs of tasks that could not be stored.
	Unpersisted []string
	// Source tells whether the items came from the model or the heuristic.
	// It is empty for CreateMany.
	Source extraction.Source
}

// TaskService provides task-related operations
type TaskService interface {
	// CreateFromTranscript extracts action items and stores them as tasks.
	CreateFromTranscript(ctx context.Context, transcript string) (*CreateResult, error)

	// CreateMany stores one pending task per item.
	CreateMany(ctx context.Context, items []extraction.Item) (*CreateResult, error)

	// Create stores a single task. An empty priority means the default.
	Create(ctx context.Context, text, priority string) (*domain.Task, error)

	// List returns all tasks, newest first.
	List(ctx context.Context) ([]*domain.Task, error)

	// Get retrieves one task.
	Get(ctx context.Context, id string) (*domain.Task, error)

	// UpdateStatus sets a task's status.
	UpdateStatus(ctx context.Context, id string, status domain.Status) (*domain.Task, error)

	// Delete removes a task.
	Delete(ctx context.Context, id string) error

	// Summary counts completed and pending tasks.
	Summary(ctx context.Context) (domain.Summary, error)
}

type taskServiceImpl struct {
	store     store.TaskStore
	extractor Extractor
	logger    *slog.Logger
}

// NewTaskService creates a new TaskService.
// It returns an error if any of the required dependencies are nil.
func NewTaskService(taskStore store.TaskStore, extractor Extractor, logger *slog.Logger) (TaskService, error) {
	if taskStore == nil {
		return nil, &TaskServiceError{Operation: "create_service", Message: "taskStore cannot be nil"}
	}
	if extractor == nil {
		return nil, &TaskServiceError{Operation: "create_service", Message: "extractor cannot be nil"}
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		store:     taskStore,
		extractor: extractor,
		logger:    logger.With("component", "task_service"),
	}, nil
}

func (s *taskServiceImpl) log(ctx context.Context) *slog.Logger {
	return logger.FromContextOrDefault(ctx, s.logger)
}

// CreateFromTranscript implements TaskService.
func (s *taskServiceImpl) CreateFromTranscript(ctx context.Context, transcript string) (*CreateResult, error) {
	if transcript == "" {
		return nil, ErrEmptyTranscript
	}

	extracted := s.extractor.Extract(ctx, transcript)
	s.log(ctx).InfoContext(ctx, "extracted action items",
		"source", extracted.Source,
		"item_count", len(extracted.Items),
		"fallback_reason", extracted.FallbackReason)

	result, err := s.CreateMany(ctx, extracted.Items)
	if err != nil {
		return nil, err
	}
	result.Source = extracted.Source
	return result, nil
}

// CreateMany implements TaskService. Items that fail validation are skipped;
// items the store rejects are still returned and listed in Unpersisted.
func (s *taskServiceImpl) CreateMany(ctx context.Context, items []extraction.Item) (*CreateResult, error) {
	log := s.log(ctx)
	result := &CreateResult{
		Tasks:       make([]*domain.Task, 0, len(items)),
		Unpersisted: []string{},
	}

	for _, item := range items {
		task, err := domain.NewTask(item.Text, item.Priority)
		if err != nil {
			log.WarnContext(ctx, "skipping invalid action item", "error", err)
			continue
		}
		result.Tasks = append(result.Tasks, task)
	}

	if len(result.Tasks) == 0 {
		return result, nil
	}

	err := s.store.CreateMany(ctx, result.Tasks)
	var batchErr *store.BatchError
	switch {
	case err == nil:
	case errors.As(err, &batchErr):
		result.Unpersisted = batchErr.FailedIDs()
	default:
		for _, task := range result.Tasks {
			result.Unpersisted = append(result.Unpersisted, task.ID)
		}
	}

	if err != nil {
		log.WarnContext(ctx, "some tasks were not persisted",
			"unpersisted_count", len(result.Unpersisted),
			"task_count", len(result.Tasks),
			"error", redact.Error(err))
	}
	return result, nil
}

// Create implements TaskService.
func (s *taskServiceImpl) Create(ctx context.Context, text, priority string) (*domain.Task, error) {
	p := domain.DefaultPriority
	if strings.TrimSpace(priority) != "" {
		parsed, err := domain.ParsePriority(priority)
		if err != nil {
			return nil, err
		}
		p = parsed
	}

	task, err := domain.NewTask(strings.TrimSpace(text), p)
	if err != nil {
		return nil, err
	}

	if err := s.store.CreateMany(ctx, []*domain.Task{task}); err != nil {
		s.log(ctx).ErrorContext(ctx, "failed to create task",
			"task_id", task.ID,
			"error", redact.Error(err))
		return nil, NewTaskServiceError("create_task", "failed to save task", err)
	}
	return task, nil
}

// List implements TaskService.
func (s *taskServiceImpl) List(ctx context.Context) ([]*domain.Task, error) {
	tasks, err := s.store.List(ctx)
	if err != nil {
		return nil, NewTaskServiceError("list_tasks", "failed to list tasks", err)
	}
	return tasks, nil
}

// Get implements TaskService.
func (s *taskServiceImpl) Get(ctx context.Context, id string) (*domain.Task, error) {
	task, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, NewTaskServiceError("get_task", "failed to get task", err)
	}
	return task, nil
}

// UpdateStatus implements TaskService.
func (s *taskServiceImpl) UpdateStatus(ctx context.Context, id string, status domain.Status) (*domain.Task, error) {
	if !status.Valid() {
		return nil, domain.ErrInvalidStatus
	}

	task, err := s.store.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, NewTaskServiceError("update_task_status", "failed to update task status", err)
	}

	s.log(ctx).InfoContext(ctx, "task status updated", "task_id", id, "status", status)
	return task, nil
}

// Delete implements TaskService.
func (s *taskServiceImpl) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return NewTaskServiceError("delete_task", "failed to delete task", err)
	}

	s.log(ctx).InfoContext(ctx, "task deleted", "task_id", id)
	return nil
}

// Summary implements TaskService.
func (s *taskServiceImpl) Summary(ctx context.Context) (domain.Summary, error) {
	tasks, err := s.List(ctx)
	if err != nil {
		return domain.Summary{}, err
	}
	return domain.Summarize(tasks), nil
}
