// Package users реализует хранилище учетных данных: регистрацию,
// поиск пользователей и проверку пароля.
package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/taskkeeper/internal/crypto"
	"github.com/iudanet/taskkeeper/internal/models"
	"github.com/iudanet/taskkeeper/internal/server/storage"
	"github.com/iudanet/taskkeeper/internal/validation"
)

// ErrInvalidCredentials неизвестный username или неверный пароль.
// Случаи не различаются, чтобы не раскрывать существование пользователя.
var ErrInvalidCredentials = errors.New("invalid credentials")

// dummyPassword хешируется при создании Store. С этим хешем сравнивается
// пароль неизвестного пользователя, чтобы время ответа не зависело от
// существования username.
const dummyPassword = "taskkeeper-dummy-Passw0rd!"

// Store хранилище учетных данных
type Store struct {
	users     storage.UserStorage
	hasher    crypto.PasswordHasher
	now       func() time.Time
	newID     func() string
	dummyHash string
}

// Option настраивает Store
type Option func(*Store)

// WithClock подменяет источник времени
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithIDGenerator подменяет генератор идентификаторов
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) {
		s.newID = newID
	}
}

// NewStore создает Store
func NewStore(users storage.UserStorage, hasher crypto.PasswordHasher, opts ...Option) *Store {
	s := &Store{
		users:  users,
		hasher: hasher,
		now:    time.Now,
		newID:  func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(s)
	}
	// Ошибка здесь возможна только при сбое источника случайности,
	// тогда Authenticate пропускает фиктивное сравнение
	s.dummyHash, _ = hasher.Hash(context.Background(), dummyPassword)
	return s
}

// CreateUser регистрирует пользователя. Все нарушения формата username,
// email и парольной политики возвращаются вместе в *validation.Error.
// При занятом username или email возвращается storage.ErrUsernameTaken
// или storage.ErrEmailTaken.
func (s *Store) CreateUser(ctx context.Context, username, email, password string) (*models.User, error) {
	username = strings.TrimSpace(username)

	var v validation.Collector
	v.Add(validation.ValidateUsername(username))
	normalizedEmail, err := validation.NormalizeEmail(email)
	v.Add(err)
	v.Add(validation.CheckPassword(password))
	v.Add(validation.CheckPasswordSize(password))
	if err := v.Err(); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(ctx, password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		ID:           s.newID(),
		Username:     username,
		Email:        normalizedEmail,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// FindByUsername возвращает пользователя по username или storage.ErrUserNotFound
func (s *Store) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.users.GetUserByUsername(ctx, username)
}

// FindByID возвращает пользователя по id или storage.ErrUserNotFound
func (s *Store) FindByID(ctx context.Context, id string) (*models.User, error) {
	return s.users.GetUserByID(ctx, id)
}

// Authenticate проверяет пару username/пароль. Username обрезается так же,
// как при регистрации.
func (s *Store) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.users.GetUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			// Сравниваем с фиктивным хешем, результат не важен
			if s.dummyHash != "" {
				_ = s.hasher.Compare(ctx, s.dummyHash, password)
			}
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := s.hasher.Compare(ctx, user.PasswordHash, password); err != nil {
		if errors.Is(err, crypto.ErrMismatch) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("compare password: %w", err)
	}

	return user, nil
}
