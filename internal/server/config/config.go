// Package config собирает конфигурацию сервера из переменных окружения и флагов.
// Флаги имеют приоритет над окружением.
package config

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/iudanet/taskkeeper/internal/server/storage/backend"
)

// Поддерживаемые драйверы базы данных
const (
	DriverPostgres = backend.Postgres
	DriverSQLite   = backend.SQLite
)

// DevJWTSecret секрет по умолчанию, допустим только в режиме разработки
const DevJWTSecret = "taskkeeper-dev-secret"

var (
	ErrUnknownDriver   = backend.ErrUnknownDriver
	ErrEmptyDSN        = errors.New("database DSN is required")
	ErrEmptySecret     = errors.New("JWT secret is required")
	ErrDevSecret       = errors.New("development JWT secret is not allowed outside dev mode")
	ErrInvalidTokenTTL = errors.New("token TTL must be positive")
	ErrInvalidLogLevel = errors.New("invalid log level")
	ErrInvalidFormat   = errors.New("invalid log format")
)

// Config конфигурация сервера
type Config struct {
	Addr            string        `env:"TASKKEEPER_ADDR"              envDefault:":8080"`
	DatabaseDriver  string        `env:"TASKKEEPER_DATABASE_DRIVER"   envDefault:"sqlite"`
	DatabaseDSN     string        `env:"TASKKEEPER_DATABASE_DSN"      envDefault:"taskkeeper.db"`
	JWTSecret       string        `env:"TASKKEEPER_JWT_SECRET"        envDefault:"taskkeeper-dev-secret"`
	LogLevel        string        `env:"TASKKEEPER_LOG_LEVEL"         envDefault:"info"`
	LogFormat       string        `env:"TASKKEEPER_LOG_FORMAT"        envDefault:"json"`
	TokenTTL        time.Duration `env:"TASKKEEPER_TOKEN_TTL"         envDefault:"3h"`
	ConnMaxLifetime time.Duration `env:"TASKKEEPER_CONN_MAX_LIFETIME" envDefault:"30m"`
	ShutdownTimeout time.Duration `env:"TASKKEEPER_SHUTDOWN_TIMEOUT"  envDefault:"10s"`
	BcryptCost      int           `env:"TASKKEEPER_BCRYPT_COST"       envDefault:"10"`
	ListLimit       int           `env:"TASKKEEPER_LIST_LIMIT"        envDefault:"1000"`
	MaxOpenConns    int           `env:"TASKKEEPER_MAX_OPEN_CONNS"    envDefault:"25"`
	MaxIdleConns    int           `env:"TASKKEEPER_MAX_IDLE_CONNS"    envDefault:"5"`
	Dev             bool          `env:"TASKKEEPER_DEV"               envDefault:"false"`
}

// Parse читает окружение, затем флаги из args, и проверяет результат.
func Parse(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	fs.StringVar(&cfg.Addr, "a", cfg.Addr, "HTTP listen address")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database DSN (file path for sqlite)")
	fs.StringVar(&cfg.DatabaseDriver, "driver", cfg.DatabaseDriver, "database driver: pgx or sqlite")
	fs.StringVar(&cfg.JWTSecret, "s", cfg.JWTSecret, "JWT signing secret")
	fs.DurationVar(&cfg.TokenTTL, "t", cfg.TokenTTL, "access token lifetime")
	fs.BoolVar(&cfg.Dev, "dev", cfg.Dev, "development mode")

	if args == nil {
		args = []string{}
	}
	if err := fs.Parse(args); err != nil {
		return Config{}, fmt.Errorf("parse flags: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// StorageOptions параметры подключения к хранилищу
func (c Config) StorageOptions() backend.Options {
	return backend.Options{
		Driver:          c.DatabaseDriver,
		DSN:             c.DatabaseDSN,
		MaxOpenConns:    c.MaxOpenConns,
		MaxIdleConns:    c.MaxIdleConns,
		ConnMaxLifetime: c.ConnMaxLifetime,
	}
}

// Validate проверяет согласованность конфигурации
func (c Config) Validate() error {
	switch c.DatabaseDriver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDriver, c.DatabaseDriver)
	}
	if strings.TrimSpace(c.DatabaseDSN) == "" {
		return ErrEmptyDSN
	}
	if c.JWTSecret == "" {
		return ErrEmptySecret
	}
	if c.JWTSecret == DevJWTSecret && !c.Dev {
		return ErrDevSecret
	}
	if c.TokenTTL <= 0 {
		return ErrInvalidTokenTTL
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	switch c.LogFormat {
	case "json", "text":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidFormat, c.LogFormat)
	}
	return nil
}

// SlogLevel преобразует LogLevel в slog.Level
func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.LogLevel)
	}
	return level, nil
}
