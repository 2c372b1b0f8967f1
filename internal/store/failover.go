package store

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/phrazzld/insightboard/internal/domain"
	"github.com/phrazzld/insightboard/internal/redact"
)

// Backend names reported by Failover.
const (
	BackendDurable = "durable"
	BackendMemory  = "memory"
)

// Failover is a TaskStore that sends every call to the durable store while
// it is reachable and to the in-memory store otherwise. Reachability is a
// flag updated by Check; nothing else changes it.
//
// Tasks written to one backend are not copied to the other, so the visible
// list changes when the backend switches.
type Failover struct {
	logger  *slog.Logger
	durable DurableStore
	memory  TaskStore
	healthy atomic.Bool
}

var _ TaskStore = (*Failover)(nil)

// NewFailover creates a Failover over memory and an optional durable store.
// With a nil durable store every call goes to memory. Otherwise the durable
// store is used only after a Check succeeds.
func NewFailover(logger *slog.Logger, durable DurableStore, memory TaskStore) *Failover {
	if logger == nil {
		logger = slog.Default()
	}
	return &Failover{
		logger:  logger.With("component", "store_failover"),
		durable: durable,
		memory:  memory,
	}
}

// Check pings the durable store and records the result. It reports whether
// the durable store is in use.
func (f *Failover) Check(ctx context.Context) bool {
	if f.durable == nil {
		return false
	}

	err := f.durable.Ping(ctx)
	healthy := err == nil
	was := f.healthy.Swap(healthy)

	switch {
	case was && !healthy:
		f.logger.WarnContext(ctx, "durable store unreachable, switching to memory",
			"error", redact.Error(err))
	case !was && healthy:
		f.logger.InfoContext(ctx, "durable store reachable, using it")
	case !healthy:
		f.logger.DebugContext(ctx, "durable store still unreachable",
			"error", redact.Error(err))
	}
	return healthy
}

// Monitor calls Check every interval until ctx is cancelled.
func (f *Failover) Monitor(ctx context.Context, interval time.Duration) {
	if f.durable == nil || interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			checkCtx, cancel := context.WithTimeout(ctx, interval)
			f.Check(checkCtx)
			cancel()
		}
	}
}

// Backend returns the name of the backend calls currently go to.
func (f *Failover) Backend() string {
	if f.useDurable() {
		return BackendDurable
	}
	return BackendMemory
}

// HasDurable reports whether a durable store is configured at all.
func (f *Failover) HasDurable() bool {
	return f.durable != nil
}

func (f *Failover) useDurable() bool {
	return f.durable != nil && f.healthy.Load()
}

func (f *Failover) current() TaskStore {
	if f.useDurable() {
		return f.durable
	}
	return f.memory
}

// List implements TaskStore.
func (f *Failover) List(ctx context.Context) ([]*domain.Task, error) {
	return f.current().List(ctx)
}

// Get implements TaskStore.
func (f *Failover) Get(ctx context.Context, id string) (*domain.Task, error) {
	return f.current().Get(ctx, id)
}

// CreateMany implements TaskStore.
func (f *Failover) CreateMany(ctx context.Context, tasks []*domain.Task) error {
	return f.current().CreateMany(ctx, tasks)
}

// UpdateStatus implements TaskStore.
func (f *Failover) UpdateStatus(ctx context.Context, id string, status domain.Status) (*domain.Task, error) {
	return f.current().UpdateStatus(ctx, id, status)
}

// Delete implements TaskStore.
func (f *Failover) Delete(ctx context.Context, id string) error {
	return f.current().Delete(ctx, id)
}
