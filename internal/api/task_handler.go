package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/insightboard/internal/api/shared"
	"github.com/phrazzld/insightboard/internal/domain"
	"github.com/phrazzld/insightboard/internal/platform/logger"
	"github.com/phrazzld/insightboard/internal/service"
)

// TaskHandler handles task-related HTTP requests.
type TaskHandler struct {
	tasks  service.TaskService
	logger *slog.Logger
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(tasks service.TaskService, logger *slog.Logger) *TaskHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskHandler{
		tasks:  tasks,
		logger: logger.With("component", "task_handler"),
	}
}

// ListTasks handles GET /api/tasks.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.tasks.List(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	if tasks == nil {
		tasks = []*domain.Task{}
	}

	shared.RespondWithJSON(w, r, http.StatusOK, TaskListResponse{Tasks: tasks})
}

// CreateFromTranscript handles POST /api/tasks/from-transcript.
func (h *TaskHandler) CreateFromTranscript(w http.ResponseWriter, r *http.Request) {
	var req TranscriptRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, TranscriptRequiredMessage, err)
		return
	}

	var transcript string
	if len(req.Transcript) == 0 || json.Unmarshal(req.Transcript, &transcript) != nil || transcript == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, TranscriptRequiredMessage)
		return
	}

	result, err := h.tasks.CreateFromTranscript(r.Context(), transcript)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).Info("tasks created from transcript",
		"task_count", len(result.Tasks),
		"unpersisted_count", len(result.Unpersisted),
		"source", result.Source)

	shared.RespondWithJSON(w, r, http.StatusOK, CreateTasksResponse{
		Tasks:       result.Tasks,
		Unpersisted: result.Unpersisted,
		Source:      string(result.Source),
	})
}

// CreateTask handles POST /api/tasks.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req CreateTaskRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	task, err := h.tasks.Create(r.Context(), req.Text, req.Priority)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, TaskResponse{Task: task})
}

// UpdateTask handles PATCH /api/tasks/{id}. Only status can change; a body
// without status returns the task unchanged.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdateTaskRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil && !errors.Is(err, shared.ErrEmptyBody) {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if req.Status == nil {
		task, err := h.tasks.Get(r.Context(), id)
		if err != nil {
			h.handleError(w, r, err)
			return
		}
		shared.RespondWithJSON(w, r, http.StatusOK, TaskResponse{Task: task})
		return
	}

	status, err := domain.ParseStatus(*req.Status)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	task, err := h.tasks.UpdateStatus(r.Context(), id, status)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, TaskResponse{Task: task})
}

// DeleteTask handles DELETE /api/tasks/{id}.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	if err := h.tasks.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.handleError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, DeleteResponse{OK: true})
}

// Summary handles GET /api/tasks/summary.
func (h *TaskHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.tasks.Summary(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, summary)
}

func (h *TaskHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
}
