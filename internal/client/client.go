package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/phrazzld/insightboard/internal/domain"
)

// DefaultTimeout bounds every request when no timeout is configured.
const DefaultTimeout = 30 * time.Second

// maxResponseBytes caps how much of a response body is read.
const maxResponseBytes = 4 << 20

// Client calls the task API at a fixed base URL.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. Its timeout is used
// as is.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New creates a Client for baseURL. A zero timeout means DefaultTimeout.
func New(baseURL string, timeout time.Duration, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid api url %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid api url %q: scheme must be http or https", baseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("invalid api url %q: missing host", baseURL)
	}

	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	c := &Client{
		baseURL:    u,
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// CreateResult is the response to a transcript submission.
type CreateResult struct {
	Tasks       []*domain.Task `json:"tasks"`
	Unpersisted []string       `json:"unpersisted,omitempty"`
	Source      string         `json:"source,omitempty"`
}

type tasksResponse struct {
	Tasks []*domain.Task `json:"tasks"`
}

type taskResponse struct {
	Task *domain.Task `json:"task"`
}

type errorResponse struct {
	Error   string `json:"error"`
	TraceID string `json:"trace_id"`
}

// ListTasks returns all tasks, newest first.
func (c *Client) ListTasks(ctx context.Context) ([]*domain.Task, error) {
	var resp tasksResponse
	if err := c.do(ctx, http.MethodGet, "/api/tasks", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Tasks, nil
}

// CreateFromTranscript submits a transcript for extraction.
func (c *Client) CreateFromTranscript(ctx context.Context, transcript string) (*CreateResult, error) {
	body := map[string]string{"transcript": transcript}
	var resp CreateResult
	if err := c.do(ctx, http.MethodPost, "/api/tasks/from-transcript", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SetStatus sets the status of the task with id.
func (c *Client) SetStatus(ctx context.Context, id string, status domain.Status) (*domain.Task, error) {
	body := map[string]string{"status": string(status)}
	var resp taskResponse
	if err := c.do(ctx, http.MethodPatch, taskPath(id), body, &resp); err != nil {
		return nil, err
	}
	return resp.Task, nil
}

// Toggle flips the status of the task with id between pending and done.
// The API has no single-task read, so the current status comes from the
// task list.
func (c *Client) Toggle(ctx context.Context, id string) (*domain.Task, error) {
	tasks, err := c.ListTasks(ctx)
	if err != nil {
		return nil, err
	}
	for _, t := range tasks {
		if t.ID == id {
			return c.SetStatus(ctx, id, t.Status.Toggle())
		}
	}
	return nil, &APIError{StatusCode: http.StatusNotFound, Message: "Task not found"}
}

// DeleteTask deletes the task with id.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, taskPath(id), nil, nil)
}

// Summary returns completion counts for the board.
func (c *Client) Summary(ctx context.Context) (domain.Summary, error) {
	var s domain.Summary
	if err := c.do(ctx, http.MethodGet, "/api/tasks/summary", nil, &s); err != nil {
		return domain.Summary{}, err
	}
	return s, nil
}

func taskPath(id string) string {
	return "/api/tasks/" + url.PathEscape(id)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var er errorResponse
		if json.Unmarshal(raw, &er) == nil {
			apiErr.Message = er.Error
			apiErr.TraceID = er.TraceID
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
