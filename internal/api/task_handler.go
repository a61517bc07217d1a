package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/taskhub-api/internal/api/shared"
	"github.com/phrazzld/taskhub-api/internal/domain"
	"github.com/phrazzld/taskhub-api/internal/service"
)

// TaskHandler handles task-related HTTP requests. All routes are scoped
// under the owning group.
type TaskHandler struct {
	taskService service.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// CreateTask handles POST /api/groups/{groupID}/tasks requests.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req CreateTaskRequest
	if err := decodeRequest(r, &req); err != nil {
		respondWithMappedError(w, r, err)
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request data", err)
		return
	}

	deadline, err := parseDeadline(req.Deadline)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	task, err := h.taskService.CreateTask(r.Context(), chi.URLParam(r, "groupID"), service.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Deadline:    deadline,
	})
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, NewTaskResponse(task))
}

// GetTask handles GET /api/groups/{groupID}/tasks/{taskID} requests.
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	task, err := h.taskService.GetTask(
		r.Context(), chi.URLParam(r, "groupID"), chi.URLParam(r, "taskID"))
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewTaskResponse(task))
}

// ListTasks handles GET /api/groups/{groupID}/tasks requests.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.taskService.ListTasks(r.Context(), chi.URLParam(r, "groupID"))
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	responses := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		responses = append(responses, NewTaskResponse(task))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, responses)
}

// UpdateTask handles PUT /api/groups/{groupID}/tasks/{taskID} requests.
// Only the provided fields are applied; a status transition into done
// and a near deadline trigger notification events after commit.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	var req UpdateTaskRequest
	if err := decodeRequest(r, &req); err != nil {
		respondWithMappedError(w, r, err)
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request data", err)
		return
	}

	deadline, err := parseDeadline(req.Deadline)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	task, err := h.taskService.UpdateTask(
		r.Context(),
		chi.URLParam(r, "groupID"),
		chi.URLParam(r, "taskID"),
		domain.TaskUpdate{
			Title:       req.Title,
			Description: req.Description,
			Status:      req.Status,
			Deadline:    deadline,
		},
	)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewTaskResponse(task))
}

// DeleteTask handles DELETE /api/groups/{groupID}/tasks/{taskID} requests.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	err := h.taskService.DeleteTask(
		r.Context(), chi.URLParam(r, "groupID"), chi.URLParam(r, "taskID"))
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
