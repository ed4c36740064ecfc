// Package backend открывает хранилище по имени драйвера.
package backend

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/taskkeeper/internal/server/storage"
	"github.com/iudanet/taskkeeper/internal/server/storage/postgres"
	"github.com/iudanet/taskkeeper/internal/server/storage/sqlite"
)

// Имена драйверов
const (
	Postgres = "pgx"
	SQLite   = "sqlite"
)

// ErrUnknownDriver драйвер не поддерживается
var ErrUnknownDriver = errors.New("unknown database driver")

// Options параметры подключения
type Options struct {
	Driver          string
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Open открывает хранилище и применяет миграции.
// Параметры пула учитываются только для PostgreSQL: SQLite работает через одно соединение.
func Open(ctx context.Context, opts Options) (storage.Storage, error) {
	switch opts.Driver {
	case Postgres:
		s, err := postgres.New(ctx, opts.DSN, postgres.PoolConfig{
			MaxOpenConns:    opts.MaxOpenConns,
			MaxIdleConns:    opts.MaxIdleConns,
			ConnMaxLifetime: opts.ConnMaxLifetime,
		})
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		return s, nil
	case SQLite:
		s, err := sqlite.New(ctx, opts.DSN)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, opts.Driver)
	}
}
