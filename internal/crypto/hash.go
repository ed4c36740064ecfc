package crypto

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"
)

// ErrMismatch возвращается, если пароль не соответствует хешу
var ErrMismatch = errors.New("password does not match hash")

// PasswordHasher хеширует и проверяет пароли
type PasswordHasher interface {
	Hash(ctx context.Context, password string) (string, error)
	Compare(ctx context.Context, hash, password string) error
}

// BcryptHasher хеширует пароли bcrypt с фиксированной стоимостью.
// Число одновременных вычислений ограничено семафором, чтобы дорогое
// хеширование не забирало все ядра у остальных запросов.
type BcryptHasher struct {
	sem  *semaphore.Weighted
	cost int
}

var _ PasswordHasher = (*BcryptHasher)(nil)

// NewBcryptHasher создает hasher. cost вне диапазона bcrypt заменяется на
// bcrypt.DefaultCost, workers <= 0 означает GOMAXPROCS.
func NewBcryptHasher(cost, workers int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &BcryptHasher{
		sem:  semaphore.NewWeighted(int64(workers)),
		cost: cost,
	}
}

// Hash возвращает bcrypt хеш пароля. Соль генерируется для каждого вызова.
func (h *BcryptHasher) Hash(ctx context.Context, password string) (string, error) {
	if err := h.sem.Acquire(ctx, 1); err != nil {
		return "", fmt.Errorf("acquire hashing slot: %w", err)
	}
	defer h.sem.Release(1)

	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Compare проверяет пароль против хеша. При несовпадении возвращает ErrMismatch.
func (h *BcryptHasher) Compare(ctx context.Context, hash, password string) error {
	if err := h.sem.Acquire(ctx, 1); err != nil {
		return fmt.Errorf("acquire hashing slot: %w", err)
	}
	defer h.sem.Release(1)

	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrMismatch
	}
	if err != nil {
		return fmt.Errorf("failed to compare password: %w", err)
	}
	return nil
}

// Cost возвращает стоимость bcrypt, с которой работает hasher
func (h *BcryptHasher) Cost() int {
	return h.cost
}
