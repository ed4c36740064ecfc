package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/iudanet/taskkeeper/internal/server/jwt"
	"github.com/iudanet/taskkeeper/internal/server/storage"
	"github.com/iudanet/taskkeeper/internal/server/users"
	"github.com/iudanet/taskkeeper/internal/validation"
	"github.com/iudanet/taskkeeper/pkg/api"
)

// MaxBodyBytes максимальный размер тела запроса
const MaxBodyBytes = 1 << 20

// errInvalidBody тело запроса не удалось разобрать
var errInvalidBody = errors.New("invalid request body")

// responder общие для всех handler'ов методы формирования ответа
type responder struct {
	logger *slog.Logger
}

// sendJSON отправляет JSON ответ
func (h responder) sendJSON(w http.ResponseWriter, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response", slog.Any("error", err))
	}
}

// sendError отправляет JSON ответ с ошибкой
func (h responder) sendError(w http.ResponseWriter, message string, statusCode int) {
	h.sendJSON(w, api.ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	}, statusCode)
}

// sendFailure переводит ошибку в HTTP ответ:
// валидация 400, конфликт 409, аутентификация 401, отсутствие 404,
// все остальное 500 без подробностей для клиента
func (h responder) sendFailure(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()

	if reasons, ok := validation.Reasons(err); ok {
		h.logger.WarnContext(ctx, "validation failed", slog.Any("reasons", reasons))
		h.sendJSON(w, api.ErrorResponse{
			Error:   http.StatusText(http.StatusBadRequest),
			Message: "validation failed",
			Errors:  reasons,
		}, http.StatusBadRequest)
		return
	}

	switch {
	case errors.Is(err, errInvalidBody):
		h.logger.WarnContext(ctx, "invalid request body", slog.Any("error", err))
		h.sendError(w, errInvalidBody.Error(), http.StatusBadRequest)
	case errors.Is(err, storage.ErrConflict):
		h.logger.WarnContext(ctx, "conflict", slog.Any("error", err))
		h.sendError(w, err.Error(), http.StatusConflict)
	case errors.Is(err, users.ErrInvalidCredentials):
		h.sendError(w, "invalid credentials", http.StatusUnauthorized)
	case errors.Is(err, jwt.ErrUnauthorized):
		h.sendError(w, "invalid or expired token", http.StatusUnauthorized)
	case errors.Is(err, storage.ErrTaskNotFound):
		h.sendError(w, "task not found", http.StatusNotFound)
	case errors.Is(err, storage.ErrUserNotFound):
		h.sendError(w, "user not found", http.StatusNotFound)
	default:
		h.logger.ErrorContext(ctx, "request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
	}
}

// decodeJSON разбирает тело запроса в dst. Неизвестные поля, лишние данные
// после объекта и тело больше MaxBodyBytes отклоняются.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: %v", errInvalidBody, err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: unexpected data after JSON object", errInvalidBody)
	}
	return nil
}
