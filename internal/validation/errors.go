package validation

import (
	"errors"
	"strings"
)

// Error ошибка валидации входных данных.
// Содержит полный список причин, а не только первую найденную.
type Error struct {
	Reasons []string
}

func (e *Error) Error() string {
	if len(e.Reasons) == 0 {
		return "validation failed"
	}
	return "validation failed: " + strings.Join(e.Reasons, "; ")
}

// New создает ошибку валидации из списка причин
func New(reasons ...string) *Error {
	return &Error{Reasons: reasons}
}

// Collector накапливает причины из нескольких проверок
type Collector struct {
	reasons []string
}

// Add добавляет причину, если err не nil.
// Вложенные *Error раскрываются в отдельные причины.
func (c *Collector) Add(err error) {
	if err == nil {
		return
	}
	var verr *Error
	if errors.As(err, &verr) {
		c.reasons = append(c.reasons, verr.Reasons...)
		return
	}
	c.reasons = append(c.reasons, err.Error())
}

// Err возвращает *Error, если была добавлена хотя бы одна причина, иначе nil
func (c *Collector) Err() error {
	if len(c.reasons) == 0 {
		return nil
	}
	return &Error{Reasons: c.reasons}
}

// Reasons извлекает список причин из ошибки валидации
func Reasons(err error) ([]string, bool) {
	var verr *Error
	if errors.As(err, &verr) {
		return verr.Reasons, true
	}
	return nil, false
}
