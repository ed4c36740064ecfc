package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/taskkeeper/internal/dbx"
	"github.com/iudanet/taskkeeper/internal/models"
	"github.com/iudanet/taskkeeper/internal/server/storage"
)

const taskColumns = `id, user_id, title, description, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

// ListTasks возвращает задачи всех пользователей, новые первыми
func (s *Storage) ListTasks(ctx context.Context, limit int) ([]models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks ORDER BY created_at DESC, id`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storage.Wrap("list tasks", fmt.Errorf("failed to query tasks: %w", err))
	}
	defer rows.Close()

	tasks := make([]models.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, storage.Wrap("list tasks", fmt.Errorf("failed to scan task: %w", err))
		}
		tasks = append(tasks, *task)
	}

	if err := rows.Err(); err != nil {
		return nil, storage.Wrap("list tasks", fmt.Errorf("rows iteration error: %w", err))
	}

	return tasks, nil
}

// GetTask retrieves task by ID
func (s *Storage) GetTask(ctx context.Context, id string) (*models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`

	task, err := scanTask(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrTaskNotFound
		}
		return nil, storage.Wrap("get task", fmt.Errorf("failed to get task: %w", err))
	}

	return task, nil
}

// CreateTask сохраняет новую задачу
func (s *Storage) CreateTask(ctx context.Context, task *models.Task) error {
	query := `
		INSERT INTO tasks (id, user_id, title, description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		_, err := tx.ExecContext(ctx, query,
			task.ID,
			task.UserID,
			task.Title,
			task.Description,
			task.CreatedAt.UTC(),
			nullTime(task.UpdatedAt),
		)
		return err
	})
	if err != nil {
		return storage.Wrap("create task", fmt.Errorf("failed to insert task: %w", err))
	}

	return nil
}

// UpdateTask применяет patch к задаче владельца.
// Чтение и запись выполняются в одной транзакции.
func (s *Storage) UpdateTask(ctx context.Context, ownerID, id string, patch models.TaskPatch, updatedAt time.Time) (*models.Task, error) {
	selectQuery := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ? AND user_id = ?`
	updateQuery := `
		UPDATE tasks SET title = ?, description = ?, updated_at = ?
		WHERE id = ? AND user_id = ?
	`

	var updated models.Task
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		current, err := scanTask(tx.QueryRowContext(ctx, selectQuery, id, ownerID))
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return storage.ErrTaskNotFound
			}
			return fmt.Errorf("failed to get task: %w", err)
		}

		updated = patch.Apply(*current)
		ts := updatedAt.UTC()
		updated.UpdatedAt = &ts

		res, err := tx.ExecContext(ctx, updateQuery, updated.Title, updated.Description, ts, id, ownerID)
		if err != nil {
			return fmt.Errorf("failed to update task: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if n == 0 {
			return storage.ErrTaskNotFound
		}
		return nil
	})
	if err != nil {
		return nil, storage.Wrap("update task", err)
	}

	return &updated, nil
}

// DeleteTask удаляет задачу владельца и возвращает удаленную строку
func (s *Storage) DeleteTask(ctx context.Context, ownerID, id string) (*models.Task, error) {
	query := `DELETE FROM tasks WHERE id = ? AND user_id = ? RETURNING ` + taskColumns

	var deleted *models.Task
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		task, err := scanTask(tx.QueryRowContext(ctx, query, id, ownerID))
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return storage.ErrTaskNotFound
			}
			return fmt.Errorf("failed to delete task: %w", err)
		}
		deleted = task
		return nil
	})
	if err != nil {
		return nil, storage.Wrap("delete task", err)
	}

	return deleted, nil
}

func scanTask(row rowScanner) (*models.Task, error) {
	task := &models.Task{}
	var updatedAt sql.NullTime

	if err := row.Scan(
		&task.ID,
		&task.UserID,
		&task.Title,
		&task.Description,
		&task.CreatedAt,
		&updatedAt,
	); err != nil {
		return nil, err
	}

	task.UpdatedAt = timePtr(updatedAt)
	return task, nil
}
