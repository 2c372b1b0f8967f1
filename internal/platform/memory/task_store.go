package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/phrazzld/insightboard/internal/domain"
	"github.com/phrazzld/insightboard/internal/store"
)

type entry struct {
	task *domain.Task
	seq  uint64
}

// TaskStore keeps tasks in memory. The zero value is not usable; create one
// with NewTaskStore.
type TaskStore struct {
	mu      sync.RWMutex
	entries map[string]*entry
	nextSeq uint64
}

var _ store.TaskStore = (*TaskStore)(nil)

// NewTaskStore creates an empty TaskStore.
func NewTaskStore() *TaskStore {
	return &TaskStore{entries: make(map[string]*entry)}
}

// List implements store.TaskStore.
func (s *TaskStore) List(ctx context.Context) ([]*domain.Task, error) {
	s.mu.RLock()
	entries := make([]*entry, 0, len(s.entries))
	for _, e := range s.entries {
		entries = append(entries, e)
	}
	s.mu.RUnlock()

	slices.SortFunc(entries, func(a, b *entry) int {
		if c := b.task.CreatedAt.Compare(a.task.CreatedAt); c != 0 {
			return c
		}
		switch {
		case a.seq > b.seq:
			return -1
		case a.seq < b.seq:
			return 1
		default:
			return 0
		}
	})

	tasks := make([]*domain.Task, 0, len(entries))
	for _, e := range entries {
		tasks = append(tasks, e.task.Clone())
	}
	return tasks, nil
}

// Get implements store.TaskStore.
func (s *TaskStore) Get(ctx context.Context, id string) (*domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}
	return e.task.Clone(), nil
}

// CreateMany implements store.TaskStore.
func (s *TaskStore) CreateMany(ctx context.Context, tasks []*domain.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	batchErr := &store.BatchError{}
	for _, task := range tasks {
		if task == nil {
			continue
		}
		if err := task.Validate(); err != nil {
			batchErr.Add(task.ID, fmt.Errorf("%w: %w", store.ErrInvalidEntity, err))
			continue
		}
		if _, exists := s.entries[task.ID]; exists {
			batchErr.Add(task.ID, store.ErrTaskExists)
			continue
		}

		s.nextSeq++
		s.entries[task.ID] = &entry{task: task.Clone(), seq: s.nextSeq}
	}
	return batchErr.ErrOrNil()
}

// UpdateStatus implements store.TaskStore.
func (s *TaskStore) UpdateStatus(ctx context.Context, id string, status domain.Status) (*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}
	if err := e.task.SetStatus(status); err != nil {
		return nil, err
	}
	return e.task.Clone(), nil
}

// Delete implements store.TaskStore.
func (s *TaskStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[id]; !ok {
		return store.ErrTaskNotFound
	}
	delete(s.entries, id)
	return nil
}

// Len returns the number of stored tasks.
func (s *TaskStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
