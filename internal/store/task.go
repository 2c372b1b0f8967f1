package store

import (
	"context"

	"github.com/phrazzld/insightboard/internal/domain"
)

// TaskStore defines the interface for task persistence.
// Implementations must be safe for concurrent use.
type TaskStore interface {
	// List returns all tasks, newest first. Tasks created at the same
	// instant are returned in reverse insertion order.
	List(ctx context.Context) ([]*domain.Task, error)

	// Get retrieves a task by its ID.
	// Returns ErrTaskNotFound if the task does not exist.
	Get(ctx context.Context, id string) (*domain.Task, error)

	// CreateMany writes each task independently. When some writes fail the
	// others are kept and a *BatchError lists the failed IDs.
	CreateMany(ctx context.Context, tasks []*domain.Task) error

	// UpdateStatus sets the status of a task and returns the updated task.
	// Returns ErrTaskNotFound if the task does not exist.
	UpdateStatus(ctx context.Context, id string, status domain.Status) (*domain.Task, error)

	// Delete removes a task.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id string) error
}

// DurableStore is a TaskStore backed by an external database.
type DurableStore interface {
	TaskStore

	// Ping verifies the database can be reached.
	Ping(ctx context.Context) error
}
