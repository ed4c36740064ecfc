package models

import "time"

// Task представляет задачу пользователя
type Task struct {
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"` // nil до первого обновления
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"` // владелец задачи
	Title       string     `json:"title"`
	Description string     `json:"description"`
}

// TaskPatch описывает частичное обновление задачи.
// nil поле означает "не менять".
type TaskPatch struct {
	Title       *string
	Description *string
}

// IsEmpty возвращает true, если патч не содержит ни одного поля
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil
}

// Apply применяет патч к копии задачи и возвращает результат
func (p TaskPatch) Apply(t Task) Task {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	return t
}
