package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/taskhub-api/internal/api"
	"github.com/phrazzld/taskhub-api/internal/domain"
	"github.com/phrazzld/taskhub-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTaskRouter(taskService *MockTaskService) *chi.Mux {
	handler := api.NewTaskHandler(taskService)
	r := chi.NewRouter()
	r.Route("/api/groups/{groupID}/tasks", func(r chi.Router) {
		r.Post("/", handler.CreateTask)
		r.Get("/", handler.ListTasks)
		r.Get("/{taskID}", handler.GetTask)
		r.Put("/{taskID}", handler.UpdateTask)
		r.Delete("/{taskID}", handler.DeleteTask)
	})
	return r
}

func doJSON(t *testing.T, router http.Handler, method, path string, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCreateTaskHandler(t *testing.T) {
	groupID := uuid.NewString()

	t.Run("creates a task", func(t *testing.T) {
		svc := &MockTaskService{}
		task, err := domain.NewTask(uuid.New(), uuid.NewString(), "Ship release", "cut the tag", 0, nil)
		require.NoError(t, err)
		svc.On("CreateTask", mock.Anything, groupID, mock.Anything).Return(task, nil)

		rec := doJSON(t, newTaskRouter(svc), http.MethodPost,
			"/api/groups/"+groupID+"/tasks",
			`{"title":"Ship release","description":"cut the tag","status":0}`)

		assert.Equal(t, http.StatusCreated, rec.Code)

		var resp api.TaskResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, task.ExternalID, resp.ID)
		assert.Equal(t, "Ship release", resp.Title)
	})

	t.Run("missing title is a validation error", func(t *testing.T) {
		rec := doJSON(t, newTaskRouter(&MockTaskService{}), http.MethodPost,
			"/api/groups/"+groupID+"/tasks", `{"description":"no title"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed deadline is a validation error naming the field", func(t *testing.T) {
		rec := doJSON(t, newTaskRouter(&MockTaskService{}), http.MethodPost,
			"/api/groups/"+groupID+"/tasks",
			`{"title":"Ship release","deadline":"next tuesday"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "RFC 3339")
	})

	t.Run("absent group maps to 404", func(t *testing.T) {
		svc := &MockTaskService{}
		svc.On("CreateTask", mock.Anything, groupID, mock.Anything).
			Return(nil, fmt.Errorf("retrieving group: %w", store.ErrGroupNotFound))

		rec := doJSON(t, newTaskRouter(svc), http.MethodPost,
			"/api/groups/"+groupID+"/tasks", `{"title":"Ship release"}`)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "Group not found")
	})

	t.Run("duplicate title maps to 409", func(t *testing.T) {
		svc := &MockTaskService{}
		svc.On("CreateTask", mock.Anything, groupID, mock.Anything).
			Return(nil, fmt.Errorf("creating task: %w", store.ErrTitleExists))

		rec := doJSON(t, newTaskRouter(svc), http.MethodPost,
			"/api/groups/"+groupID+"/tasks", `{"title":"Ship release"}`)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestUpdateTaskHandler(t *testing.T) {
	groupID := uuid.NewString()
	taskID := uuid.NewString()
	path := "/api/groups/" + groupID + "/tasks/" + taskID

	t.Run("applies a partial update", func(t *testing.T) {
		svc := &MockTaskService{}
		task, err := domain.NewTask(uuid.New(), taskID, "Ship release", "", domain.StatusDone, nil)
		require.NoError(t, err)

		svc.On("UpdateTask", mock.Anything, groupID, taskID,
			mock.MatchedBy(func(u domain.TaskUpdate) bool {
				return u.Status != nil && *u.Status == domain.StatusDone &&
					u.Title == nil && u.Description == nil && u.Deadline == nil
			})).Return(task, nil)

		rec := doJSON(t, newTaskRouter(svc), http.MethodPut, path, `{"status":1}`)

		assert.Equal(t, http.StatusOK, rec.Code)

		var resp api.TaskResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, domain.StatusDone, resp.Status)
	})

	t.Run("wrong JSON type names the offending field", func(t *testing.T) {
		rec := doJSON(t, newTaskRouter(&MockTaskService{}), http.MethodPut, path,
			`{"status":"done"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "must be of type int")
	})

	t.Run("absent task maps to 404", func(t *testing.T) {
		svc := &MockTaskService{}
		svc.On("UpdateTask", mock.Anything, groupID, taskID, mock.Anything).
			Return(nil, fmt.Errorf("retrieving task for update: %w", store.ErrTaskNotFound))

		rec := doJSON(t, newTaskRouter(svc), http.MethodPut, path, `{"title":"Renamed"}`)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "Task not found")
	})

	t.Run("title collision maps to 409", func(t *testing.T) {
		svc := &MockTaskService{}
		svc.On("UpdateTask", mock.Anything, groupID, taskID, mock.Anything).
			Return(nil, fmt.Errorf("saving task update: %w", store.ErrTitleExists))

		rec := doJSON(t, newTaskRouter(svc), http.MethodPut, path, `{"title":"Taken"}`)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestGetAndDeleteTaskHandlers(t *testing.T) {
	groupID := uuid.NewString()
	taskID := uuid.NewString()
	path := "/api/groups/" + groupID + "/tasks/" + taskID

	t.Run("get returns the task", func(t *testing.T) {
		svc := &MockTaskService{}
		task, err := domain.NewTask(uuid.New(), taskID, "Ship release", "", 0, nil)
		require.NoError(t, err)
		svc.On("GetTask", mock.Anything, groupID, taskID).Return(task, nil)

		rec := doJSON(t, newTaskRouter(svc), http.MethodGet, path, "")

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("get on missing task maps to 404", func(t *testing.T) {
		svc := &MockTaskService{}
		svc.On("GetTask", mock.Anything, groupID, taskID).
			Return(nil, fmt.Errorf("retrieving task: %w", store.ErrTaskNotFound))

		rec := doJSON(t, newTaskRouter(svc), http.MethodGet, path, "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("delete returns 204", func(t *testing.T) {
		svc := &MockTaskService{}
		svc.On("DeleteTask", mock.Anything, groupID, taskID).Return(nil)

		rec := doJSON(t, newTaskRouter(svc), http.MethodDelete, path, "")

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Body.String())
	})

	t.Run("list returns the group's tasks", func(t *testing.T) {
		svc := &MockTaskService{}
		internalGroup := uuid.New()
		first, err := domain.NewTask(internalGroup, uuid.NewString(), "First", "", 0, nil)
		require.NoError(t, err)
		second, err := domain.NewTask(internalGroup, uuid.NewString(), "Second", "", 0, nil)
		require.NoError(t, err)
		svc.On("ListTasks", mock.Anything, groupID).Return([]*domain.Task{first, second}, nil)

		rec := doJSON(t, newTaskRouter(svc), http.MethodGet, "/api/groups/"+groupID+"/tasks", "")

		assert.Equal(t, http.StatusOK, rec.Code)

		var resp []api.TaskResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Len(t, resp, 2)
	})
}
