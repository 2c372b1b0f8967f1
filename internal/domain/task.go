package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Status is the completion state of a task.
type Status string

// Possible task status values.
const (
	StatusPending Status = "pending"
	StatusDone    Status = "done"
)

// Priority ranks a task. The capitalized values are part of the wire format.
type Priority string

// Possible task priority values.
const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// DefaultPriority is used when no priority is given or a given one is unknown.
const DefaultPriority = PriorityMedium

// Task is a single action item on the board.
//
// ID and CreatedAt are fixed at creation. Status and Priority are the only
// fields that change afterwards.
type Task struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Status    Status    `json:"status"`
	Priority  Priority  `json:"priority"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewTask creates a pending task with a fresh ID and the current time.
// An empty priority becomes DefaultPriority.
func NewTask(text string, priority Priority) (*Task, error) {
	if priority == "" {
		priority = DefaultPriority
	}

	task := &Task{
		ID:        uuid.New().String(),
		Text:      text,
		Status:    StatusPending,
		Priority:  priority,
		CreatedAt: time.Now().UTC(),
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
func (t *Task) Validate() error {
	if t.ID == "" {
		return ErrEmptyTaskID
	}

	if strings.TrimSpace(t.Text) == "" {
		return ErrEmptyTaskText
	}

	if !t.Status.Valid() {
		return ErrInvalidStatus
	}

	if !t.Priority.Valid() {
		return ErrInvalidPriority
	}

	return nil
}

// SetStatus updates the task's status.
func (t *Task) SetStatus(status Status) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}

	t.Status = status
	return nil
}

// Clone returns a copy that shares no memory with t.
func (t *Task) Clone() *Task {
	c := *t
	return &c
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusDone:
		return true
	default:
		return false
	}
}

// Toggle returns the opposite status.
func (s Status) Toggle() Status {
	if s == StatusDone {
		return StatusPending
	}
	return StatusDone
}

// ParseStatus converts a wire value to a Status.
func ParseStatus(s string) (Status, error) {
	status := Status(strings.ToLower(strings.TrimSpace(s)))
	if !status.Valid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}

// Valid reports whether p is a known priority.
func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}

// ParsePriority matches s case-insensitively against the known priorities.
func ParsePriority(s string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high":
		return PriorityHigh, nil
	case "medium":
		return PriorityMedium, nil
	case "low":
		return PriorityLow, nil
	default:
		return "", ErrInvalidPriority
	}
}

// NormalizePriority is ParsePriority with DefaultPriority for anything unknown.
func NormalizePriority(s string) Priority {
	p, err := ParsePriority(s)
	if err != nil {
		return DefaultPriority
	}
	return p
}

// Summary counts tasks by completion state.
type Summary struct {
	Total            int     `json:"total"`
	Completed        int     `json:"completed"`
	Pending          int     `json:"pending"`
	CompletedPercent float64 `json:"completedPercent"`
}

// Summarize computes the completion summary for tasks.
func Summarize(tasks []*Task) Summary {
	var s Summary
	for _, t := range tasks {
		s.Total++
		if t.Status == StatusDone {
			s.Completed++
		}
	}
	s.Pending = s.Total - s.Completed
	if s.Total > 0 {
		s.CompletedPercent = float64(s.Completed) * 100 / float64(s.Total)
	}
	return s
}
