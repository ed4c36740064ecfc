package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/iudanet/taskkeeper/internal/client/api"
	"github.com/iudanet/taskkeeper/internal/client/iocli"
	"github.com/iudanet/taskkeeper/internal/client/storage"
	pkgapi "github.com/iudanet/taskkeeper/pkg/api"
)

// ErrNotAuthenticated нет действующей сессии
var ErrNotAuthenticated = errors.New("not authenticated. Please run 'taskkeeper-client login' first")

// Client операции сервера, которые использует CLI
type Client interface {
	Register(ctx context.Context, req pkgapi.RegisterRequest) (*pkgapi.RegisterResponse, error)
	Login(ctx context.Context, req pkgapi.LoginRequest) (*pkgapi.TokenResponse, error)
	Bio(ctx context.Context, token string) (*pkgapi.BioResponse, error)
	ListTasks(ctx context.Context, token string) (*pkgapi.TaskListResponse, error)
	GetTask(ctx context.Context, token, id string) (*pkgapi.Task, error)
	CreateTask(ctx context.Context, token string, req pkgapi.CreateTaskRequest) (*pkgapi.Task, error)
	UpdateTask(ctx context.Context, token, id string, req pkgapi.UpdateTaskRequest) (*pkgapi.Task, error)
	DeleteTask(ctx context.Context, token, id string) (*pkgapi.Task, error)
}

type Cli struct {
	apiClient Client
	sessions  storage.SessionStorage
	io        iocli.IO
	now       func() time.Time
}

func New(apiClient Client, sessions storage.SessionStorage, io iocli.IO) *Cli {
	return &Cli{
		apiClient: apiClient,
		sessions:  sessions,
		io:        io,
		now:       time.Now,
	}
}

// requireSession возвращает действующую сессию или ErrNotAuthenticated
func (c *Cli) requireSession(ctx context.Context) (*storage.Session, error) {
	session, err := c.sessions.GetSession(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			return nil, ErrNotAuthenticated
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if session.Expired(c.now()) {
		return nil, fmt.Errorf("session expired: %w", ErrNotAuthenticated)
	}
	return session, nil
}

// explain добавляет подсказку к ошибке авторизации от сервера
func explain(err error) error {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("%w (try 'taskkeeper-client login')", err)
	}
	return err
}

func PrintUsage(io iocli.IO) {
	io.Println("TaskKeeper Client")
	io.Println()
	io.Println("Usage:")
	io.Println("  taskkeeper-client [OPTIONS] COMMAND [ARGS]")
	io.Println()
	io.Println("Options:")
	io.Println("  -version       Show version information")
	io.Println("  -server URL    Server URL (default: http://localhost:8080)")
	io.Println("  -db PATH       Path to local session database (default: taskkeeper-client.db)")
	io.Println()
	io.Println("Commands:")
	io.Println("  register                                  Register new user")
	io.Println("  login                                     Login to server")
	io.Println("  logout                                    Delete local session")
	io.Println("  status                                    Show authentication status")
	io.Println("  bio                                       Show current user")
	io.Println("  list                                      List all tasks")
	io.Println("  get <id>                                  Show task")
	io.Println("  add -title T [-description D]             Create task")
	io.Println("  update <id> [-title T] [-description D]   Update own task")
	io.Println("  delete <id>                               Delete own task")
	io.Println()
	io.Println("Examples:")
	io.Println("  taskkeeper-client register")
	io.Println("  taskkeeper-client login")
	io.Println("  taskkeeper-client add -title 'Buy milk' -description '2 liters'")
	io.Println("  taskkeeper-client update b692f5c0-2d88-4aa1-a9e1-13aa6e4976d5 -description '1 liter'")
	io.Println("  taskkeeper-client -server https://example.com list")
}
