package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/iudanet/taskkeeper/internal/models"
	"github.com/iudanet/taskkeeper/pkg/api"
)

// TaskRepository определяет операции над задачами, нужные handler'у
type TaskRepository interface {
	ListAll(ctx context.Context) ([]models.Task, error)
	GetByID(ctx context.Context, id string) (*models.Task, error)
	Create(ctx context.Context, ownerID, title, description string) (*models.Task, error)
	Update(ctx context.Context, ownerID, id string, patch models.TaskPatch) (*models.Task, error)
	Delete(ctx context.Context, ownerID, id string) (*models.Task, error)
}

// TaskHandler обрабатывает запросы /tasks/
type TaskHandler struct {
	responder
	repo TaskRepository
}

// NewTaskHandler создает новый handler для задач
func NewTaskHandler(logger *slog.Logger, repo TaskRepository) *TaskHandler {
	return &TaskHandler{
		responder: responder{logger: logger},
		repo:      repo,
	}
}

// List обрабатывает GET /tasks/
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.repo.ListAll(r.Context())
	if err != nil {
		h.sendFailure(w, r, err)
		return
	}

	data := make([]api.Task, 0, len(tasks))
	for i := range tasks {
		data = append(data, toAPITask(&tasks[i]))
	}

	h.sendJSON(w, api.TaskListResponse{Count: len(data), Data: data}, http.StatusOK)
}

// Get обрабатывает GET /tasks/{id}
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	task, err := h.repo.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		h.sendFailure(w, r, err)
		return
	}

	h.sendJSON(w, toAPITask(task), http.StatusOK)
}

// Create обрабатывает POST /tasks/
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	var req api.CreateTaskRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.sendFailure(w, r, err)
		return
	}

	task, err := h.repo.Create(ctx, userID, req.Title, req.Description)
	if err != nil {
		h.sendFailure(w, r, err)
		return
	}

	h.logger.InfoContext(ctx, "task created",
		slog.String("task_id", task.ID),
		slog.String("user_id", userID))

	h.sendJSON(w, toAPITask(task), http.StatusCreated)
}

// Update обрабатывает PATCH /tasks/{id}
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	var req api.UpdateTaskRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.sendFailure(w, r, err)
		return
	}

	patch := models.TaskPatch{Title: req.Title, Description: req.Description}
	task, err := h.repo.Update(ctx, userID, r.PathValue("id"), patch)
	if err != nil {
		h.sendFailure(w, r, err)
		return
	}

	h.logger.InfoContext(ctx, "task updated",
		slog.String("task_id", task.ID),
		slog.String("user_id", userID))

	h.sendJSON(w, toAPITask(task), http.StatusOK)
}

// Delete обрабатывает DELETE /tasks/{id}
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	task, err := h.repo.Delete(ctx, userID, r.PathValue("id"))
	if err != nil {
		h.sendFailure(w, r, err)
		return
	}

	h.logger.InfoContext(ctx, "task deleted",
		slog.String("task_id", task.ID),
		slog.String("user_id", userID))

	h.sendJSON(w, toAPITask(task), http.StatusOK)
}

// requireUser достает user_id, выставленный AuthMiddleware
func (h *TaskHandler) requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := GetUserID(r.Context())
	if !ok {
		h.logger.ErrorContext(r.Context(), "user_id not found in context")
		h.sendError(w, "unauthorized", http.StatusUnauthorized)
		return "", false
	}
	return userID, true
}

func toAPITask(t *models.Task) api.Task {
	return api.Task{
		ID:          t.ID,
		UserID:      t.UserID,
		Title:       t.Title,
		Description: t.Description,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
