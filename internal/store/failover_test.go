package store_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/phrazzld/insightboard/internal/domain"
	"github.com/phrazzld/insightboard/internal/platform/logger"
	"github.com/phrazzld/insightboard/internal/platform/memory"
	"github.com/phrazzld/insightboard/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDurable is an in-memory store with a controllable Ping.
type fakeDurable struct {
	*memory.TaskStore

	mu      sync.Mutex
	pingErr error
	pings   int
}

func newFakeDurable() *fakeDurable {
	return &fakeDurable{TaskStore: memory.NewTaskStore()}
}

func (f *fakeDurable) Ping(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pings++
	return f.pingErr
}

func (f *fakeDurable) setPingErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pingErr = err
}

func (f *fakeDurable) pingCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pings
}

func createTask(t *testing.T, s store.TaskStore, text string) *domain.Task {
	t.Helper()
	task, err := domain.NewTask(text, "")
	require.NoError(t, err)
	require.NoError(t, s.CreateMany(context.Background(), []*domain.Task{task}))
	return task
}

func TestFailover_NoDurable(t *testing.T) {
	t.Parallel()
	log, _ := logger.NewTestLogger(t)
	mem := memory.NewTaskStore()
	f := store.NewFailover(log, nil, mem)

	assert.False(t, f.HasDurable())
	assert.False(t, f.Check(context.Background()))
	assert.Equal(t, store.BackendMemory, f.Backend())

	createTask(t, f, "in memory")
	assert.Equal(t, 1, mem.Len())
}

func TestFailover_SwitchesOnCheck(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	log, buf := logger.NewTestLogger(t)
	durable := newFakeDurable()
	mem := memory.NewTaskStore()
	f := store.NewFailover(log, durable, mem)

	// unchecked durable store is not used
	assert.Equal(t, store.BackendMemory, f.Backend())

	require.True(t, f.Check(ctx))
	assert.Equal(t, store.BackendDurable, f.Backend())
	durableTask := createTask(t, f, "durable")
	assert.Equal(t, 1, durable.Len())
	assert.Equal(t, 0, mem.Len())

	durable.setPingErr(errors.New("dial tcp: connection refused"))
	require.False(t, f.Check(ctx))
	assert.Equal(t, store.BackendMemory, f.Backend())
	logger.AssertLogContains(t, buf, "durable store unreachable, switching to memory")

	createTask(t, f, "memory")
	assert.Equal(t, 1, mem.Len())
	_, err := f.Get(ctx, durableTask.ID)
	assert.ErrorIs(t, err, store.ErrTaskNotFound)

	durable.setPingErr(nil)
	require.True(t, f.Check(ctx))
	got, err := f.Get(ctx, durableTask.ID)
	require.NoError(t, err)
	assert.Equal(t, "durable", got.Text)
}

func TestFailover_DelegatesAllOperations(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	log, _ := logger.NewTestLogger(t)
	durable := newFakeDurable()
	f := store.NewFailover(log, durable, memory.NewTaskStore())
	require.True(t, f.Check(ctx))

	task := createTask(t, f, "delegate")

	tasks, err := f.List(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 1)

	updated, err := f.UpdateStatus(ctx, task.ID, domain.StatusDone)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDone, updated.Status)

	require.NoError(t, f.Delete(ctx, task.ID))
	assert.Equal(t, 0, durable.Len())
}

func TestFailover_Monitor(t *testing.T) {
	t.Parallel()
	log, _ := logger.NewTestLogger(t)
	durable := newFakeDurable()
	f := store.NewFailover(log, durable, memory.NewTaskStore())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		f.Monitor(ctx, 5*time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		return f.Backend() == store.BackendDurable
	}, time.Second, 5*time.Millisecond)

	durable.setPingErr(errors.New("down"))
	assert.Eventually(t, func() bool {
		return f.Backend() == store.BackendMemory
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Monitor did not stop after cancellation")
	}
	assert.GreaterOrEqual(t, durable.pingCount(), 2)
}
