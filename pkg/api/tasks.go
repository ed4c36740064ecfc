package api

import "time"

// Task представляет задачу в ответах API
type Task struct {
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
}

// TaskListResponse представляет ответ GET /tasks/
type TaskListResponse struct {
	Data  []Task `json:"data"`
	Count int    `json:"count"`
}

// CreateTaskRequest представляет запрос на создание задачи
type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// UpdateTaskRequest представляет частичное обновление задачи.
// Отсутствующее поле не меняется.
type UpdateTaskRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
}
