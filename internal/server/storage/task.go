package storage

import (
	"context"
	"time"

	"github.com/iudanet/taskkeeper/internal/models"
)

// TaskStorage defines interface for task persistence.
// Чтение не ограничено владельцем, изменения выполняются только
// над строками с user_id = ownerID.
type TaskStorage interface {
	// ListTasks возвращает задачи всех пользователей, новые первыми.
	// limit <= 0 означает без ограничения.
	ListTasks(ctx context.Context, limit int) ([]models.Task, error)

	// GetTask retrieves task by ID
	// Returns ErrTaskNotFound if task doesn't exist
	GetTask(ctx context.Context, id string) (*models.Task, error)

	// CreateTask сохраняет новую задачу
	CreateTask(ctx context.Context, task *models.Task) error

	// UpdateTask применяет patch к задаче владельца и выставляет updated_at.
	// Returns ErrTaskNotFound if task doesn't exist or belongs to another user
	UpdateTask(ctx context.Context, ownerID, id string, patch models.TaskPatch, updatedAt time.Time) (*models.Task, error)

	// DeleteTask удаляет задачу владельца и возвращает удаленную строку.
	// Returns ErrTaskNotFound if task doesn't exist or belongs to another user
	DeleteTask(ctx context.Context, ownerID, id string) (*models.Task, error)
}

// Storage объединяет все хранилища сервера
type Storage interface {
	UserStorage
	TaskStorage
	Ping(ctx context.Context) error
	Close() error
}
