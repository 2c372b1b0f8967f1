package client_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/phrazzld/insightboard/internal/api"
	"github.com/phrazzld/insightboard/internal/client"
	"github.com/phrazzld/insightboard/internal/domain"
	"github.com/phrazzld/insightboard/internal/extraction"
	"github.com/phrazzld/insightboard/internal/platform/logger"
	"github.com/phrazzld/insightboard/internal/platform/memory"
	"github.com/phrazzld/insightboard/internal/service"
	"github.com/phrazzld/insightboard/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBoard(t *testing.T) *client.Client {
	t.Helper()

	log, _ := logger.NewTestLogger(t)
	mem := memory.NewTaskStore()
	extractor, err := extraction.NewExtractor(log)
	require.NoError(t, err)
	svc, err := service.NewTaskService(mem, extractor, log)
	require.NoError(t, err)

	srv := httptest.NewServer(api.NewRouter(api.RouterConfig{
		Tasks:       svc,
		Health:      store.NewFailover(log, nil, mem),
		Logger:      log,
		CORSOrigins: []string{"*"},
	}))
	t.Cleanup(srv.Close)

	c, err := client.New(srv.URL+"/", 5*time.Second)
	require.NoError(t, err)
	return c
}

func TestNew_RejectsBadURLs(t *testing.T) {
	for _, raw := range []string{"", "localhost:4000", "ftp://example.com", "http://"} {
		t.Run(raw, func(t *testing.T) {
			_, err := client.New(raw, time.Second)
			assert.Error(t, err)
		})
	}
}

func TestClient_Workflow(t *testing.T) {
	ctx := context.Background()
	c := newBoard(t)

	created, err := c.CreateFromTranscript(ctx, "Buy milk. Call Bob tomorrow.")
	require.NoError(t, err)
	require.Len(t, created.Tasks, 2)
	assert.Equal(t, "heuristic", created.Source)
	assert.Empty(t, created.Unpersisted)
	assert.Equal(t, "Buy milk", created.Tasks[0].Text)
	assert.Equal(t, domain.PriorityMedium, created.Tasks[0].Priority)

	tasks, err := c.ListTasks(ctx)
	require.NoError(t, err)
	assert.Len(t, tasks, 2)

	id := created.Tasks[0].ID

	toggled, err := c.Toggle(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDone, toggled.Status)

	summary, err := c.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.Summary{Total: 2, Completed: 1, Pending: 1, CompletedPercent: 50}, summary)

	toggled, err = c.Toggle(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, toggled.Status)

	require.NoError(t, c.DeleteTask(ctx, id))

	err = c.DeleteTask(ctx, id)
	assert.True(t, client.IsNotFound(err))

	_, err = c.Toggle(ctx, id)
	assert.True(t, client.IsNotFound(err))
}

func TestClient_SetStatusRejectsUnknownStatus(t *testing.T) {
	ctx := context.Background()
	c := newBoard(t)

	created, err := c.CreateFromTranscript(ctx, "Write the report.")
	require.NoError(t, err)
	require.Len(t, created.Tasks, 1)

	_, err = c.SetStatus(ctx, created.Tasks[0].ID, domain.Status("archived"))
	assert.ErrorIs(t, err, client.ErrBadRequest)
}

func TestClient_DecodesErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"An unexpected error occurred","trace_id":"abc123"}`))
	}))
	defer srv.Close()

	c, err := client.New(srv.URL, time.Second)
	require.NoError(t, err)

	_, err = c.ListTasks(context.Background())
	var apiErr *client.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, "An unexpected error occurred", apiErr.Message)
	assert.Equal(t, "abc123", apiErr.TraceID)
	assert.Contains(t, err.Error(), "trace abc123")
	assert.False(t, client.IsNotFound(err))
}

func TestClient_HonoursTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c, err := client.New(srv.URL, 50*time.Millisecond)
	require.NoError(t, err)

	_, err = c.Summary(context.Background())
	assert.Error(t, err)
}
