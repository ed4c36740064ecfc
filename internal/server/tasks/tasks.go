// Package tasks реализует репозиторий задач. Чтение не ограничено
// владельцем, изменения выполняются только над задачами владельца.
package tasks

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/taskkeeper/internal/models"
	"github.com/iudanet/taskkeeper/internal/server/storage"
	"github.com/iudanet/taskkeeper/internal/validation"
)

// DefaultListLimit верхняя граница числа задач в ответе ListAll
const DefaultListLimit = 1000

const reasonEmptyTitle = "title cannot be empty"

// Repository репозиторий задач
type Repository struct {
	store     storage.TaskStorage
	now       func() time.Time
	newID     func() string
	listLimit int
}

// Option настраивает Repository
type Option func(*Repository)

// WithClock подменяет источник времени
func WithClock(now func() time.Time) Option {
	return func(r *Repository) {
		r.now = now
	}
}

// WithIDGenerator подменяет генератор идентификаторов
func WithIDGenerator(newID func() string) Option {
	return func(r *Repository) {
		r.newID = newID
	}
}

// WithListLimit задает максимальное число задач в ListAll.
// limit <= 0 снимает ограничение.
func WithListLimit(limit int) Option {
	return func(r *Repository) {
		r.listLimit = limit
	}
}

// NewRepository создает Repository
func NewRepository(store storage.TaskStorage, opts ...Option) *Repository {
	r := &Repository{
		store:     store,
		now:       time.Now,
		newID:     func() string { return uuid.New().String() },
		listLimit: DefaultListLimit,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ListAll возвращает задачи всех пользователей
func (r *Repository) ListAll(ctx context.Context) ([]models.Task, error) {
	return r.store.ListTasks(ctx, r.listLimit)
}

// GetByID возвращает задачу по id независимо от владельца
func (r *Repository) GetByID(ctx context.Context, id string) (*models.Task, error) {
	return r.store.GetTask(ctx, id)
}

// Create создает задачу владельца ownerID
func (r *Repository) Create(ctx context.Context, ownerID, title, description string) (*models.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, validation.New(reasonEmptyTitle)
	}

	task := &models.Task{
		ID:          r.newID(),
		UserID:      ownerID,
		Title:       title,
		Description: description,
		CreatedAt:   r.now().UTC(),
	}

	if err := r.store.CreateTask(ctx, task); err != nil {
		return nil, err
	}

	return task, nil
}

// Update меняет только переданные поля задачи владельца.
// Пустой patch возвращает *validation.Error, чужая или отсутствующая
// задача возвращает storage.ErrTaskNotFound.
func (r *Repository) Update(ctx context.Context, ownerID, id string, patch models.TaskPatch) (*models.Task, error) {
	if patch.IsEmpty() {
		return nil, validation.New("at least one of title, description must be provided")
	}

	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, validation.New(reasonEmptyTitle)
		}
		patch.Title = &title
	}

	return r.store.UpdateTask(ctx, ownerID, id, patch, r.now().UTC())
}

// Delete удаляет задачу владельца и возвращает ее
func (r *Repository) Delete(ctx context.Context, ownerID, id string) (*models.Task, error) {
	return r.store.DeleteTask(ctx, ownerID, id)
}
