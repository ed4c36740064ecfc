package postgres

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
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storage.Wrap("list tasks", fmt.Errorf("db error: %w", err))
	}
	defer rows.Close()

	tasks := make([]models.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, storage.Wrap("list tasks", fmt.Errorf("scan task: %w", err))
		}
		tasks = append(tasks, *task)
	}

	if err := rows.Err(); err != nil {
		return nil, storage.Wrap("list tasks", fmt.Errorf("rows iteration: %w", err))
	}

	return tasks, nil
}

// GetTask retrieves task by ID
func (s *Storage) GetTask(ctx context.Context, id string) (*models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`

	task, err := scanTask(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrTaskNotFound
		}
		return nil, storage.Wrap("get task", fmt.Errorf("db error: %w", err))
	}

	return task, nil
}

// CreateTask сохраняет новую задачу
func (s *Storage) CreateTask(ctx context.Context, task *models.Task) error {
	query := `
		INSERT INTO tasks (id, user_id, title, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
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
		return storage.Wrap("create task", fmt.Errorf("db error: %w", err))
	}

	return nil
}

// UpdateTask применяет patch к задаче владельца. Строка блокируется
// SELECT ... FOR UPDATE до конца транзакции, поэтому параллельные
// обновления одной задачи выполняются по очереди.
func (s *Storage) UpdateTask(ctx context.Context, ownerID, id string, patch models.TaskPatch, updatedAt time.Time) (*models.Task, error) {
	selectQuery := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1 AND user_id = $2 FOR UPDATE`
	updateQuery := `
		UPDATE tasks SET title = $1, description = $2, updated_at = $3
		WHERE id = $4 AND user_id = $5
	`

	var updated models.Task
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		current, err := scanTask(tx.QueryRowContext(ctx, selectQuery, id, ownerID))
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return storage.ErrTaskNotFound
			}
			return fmt.Errorf("db error: %w", err)
		}

		updated = patch.Apply(*current)
		ts := updatedAt.UTC()
		updated.UpdatedAt = &ts

		res, err := tx.ExecContext(ctx, updateQuery, updated.Title, updated.Description, ts, id, ownerID)
		if err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
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
	query := `DELETE FROM tasks WHERE id = $1 AND user_id = $2 RETURNING ` + taskColumns

	var deleted *models.Task
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		task, err := scanTask(tx.QueryRowContext(ctx, query, id, ownerID))
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return storage.ErrTaskNotFound
			}
			return fmt.Errorf("db error: %w", err)
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
