package storage

import (
	"errors"
	"fmt"
)

// Common storage errors
var (
	// ErrNotFound базовая ошибка отсутствующей записи
	ErrNotFound = errors.New("not found")

	// ErrUserNotFound indicates that user was not found in storage
	ErrUserNotFound = fmt.Errorf("user %w", ErrNotFound)

	// ErrTaskNotFound задача не найдена или принадлежит другому пользователю.
	// Эти случаи намеренно не различаются.
	ErrTaskNotFound = fmt.Errorf("task %w", ErrNotFound)

	// ErrConflict базовая ошибка нарушения уникальности
	ErrConflict = errors.New("already exists")

	// ErrUsernameTaken indicates that user with this username already exists
	ErrUsernameTaken = fmt.Errorf("username %w", ErrConflict)

	// ErrEmailTaken indicates that user with this email already exists
	ErrEmailTaken = fmt.Errorf("email %w", ErrConflict)
)

// Error сбой хранилища: БД недоступна, запрос завершился ошибкой и т.п.
// Отличается от ErrNotFound и ErrConflict, которые описывают состояние данных.
type Error struct {
	Err error
	Op  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Wrap оборачивает err в *Error. Sentinel-ошибки хранилища и nil
// возвращаются как есть.
func Wrap(op string, err error) error {
	if err == nil || errors.Is(err, ErrNotFound) || errors.Is(err, ErrConflict) {
		return err
	}
	var serr *Error
	if errors.As(err, &serr) {
		return err
	}
	return &Error{Op: op, Err: err}
}

// IsStorageError сообщает, является ли err сбоем хранилища
func IsStorageError(err error) bool {
	var serr *Error
	return errors.As(err, &serr)
}
