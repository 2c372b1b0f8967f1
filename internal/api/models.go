package api

import (
	"encoding/json"

	"github.com/phrazzld/insightboard/internal/domain"
)

// TranscriptRequest defines the payload for creating tasks from a transcript.
// Transcript stays raw so that non-string values can be rejected.
type TranscriptRequest struct {
	Transcript json.RawMessage `json:"transcript"`
}

// CreateTaskRequest defines the payload for creating a single task.
type CreateTaskRequest struct {
	Text     string `json:"text"     validate:"required,max=2000"`
	Priority string `json:"priority" validate:"omitempty,max=16"`
}

// UpdateTaskRequest defines the payload for updating a task. A nil status
// leaves the task unchanged.
type UpdateTaskRequest struct {
	Status *string `json:"status,omitempty"`
}

// TaskListResponse is returned by the list endpoint.
type TaskListResponse struct {
	Tasks []*domain.Task `json:"tasks"`
}

// CreateTasksResponse is returned by the transcript endpoint.
type CreateTasksResponse struct {
	Tasks []*domain.Task `json:"tasks"`

	// Unpersisted lists tasks that were built but could not be stored
	Unpersisted []string `json:"unpersisted,omitempty"`

	// Source is "model" or "heuristic"
	Source string `json:"source,omitempty"`
}

// TaskResponse wraps a single task.
type TaskResponse struct {
	Task *domain.Task `json:"task"`
}

// DeleteResponse is returned by the delete endpoint.
type DeleteResponse struct {
	OK bool `json:"ok"`
}

// HealthResponse is returned by the health endpoint.
type HealthResponse struct {
	Status  string `json:"status"`
	Backend string `json:"backend"`
}
