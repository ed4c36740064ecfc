// Package server собирает HTTP API: маршруты, middleware и жизненный цикл http.Server.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/iudanet/taskkeeper/internal/server/handlers"
	"github.com/iudanet/taskkeeper/internal/server/jwt"
	"github.com/iudanet/taskkeeper/internal/server/middleware"
)

// DefaultShutdownTimeout время на завершение активных запросов при остановке
const DefaultShutdownTimeout = 10 * time.Second

// TokenService выдает и проверяет access токены
type TokenService interface {
	jwt.Issuer
	jwt.Verifier
}

// Deps зависимости HTTP API
type Deps struct {
	Users   handlers.CredentialStore
	Tasks   handlers.TaskRepository
	Tokens  TokenService
	DB      handlers.Pinger
	Logger  *slog.Logger
	Version string
}

// NewRouter регистрирует маршруты API.
// Все маршруты /tasks и /users/bio требуют bearer токен.
func NewRouter(deps Deps) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	userHandler := handlers.NewUserHandler(logger, deps.Users, deps.Tokens)
	taskHandler := handlers.NewTaskHandler(logger, deps.Tasks)
	healthHandler := handlers.NewHealthHandler(logger, deps.Version, deps.DB)

	auth := middleware.AuthMiddleware(logger, deps.Tokens)
	protected := func(h http.HandlerFunc) http.Handler {
		return auth(h)
	}

	mux := http.NewServeMux()

	// Public endpoints
	mux.HandleFunc("GET /health", healthHandler.Health)
	mux.HandleFunc("POST /users/register", userHandler.Register)
	mux.HandleFunc("POST /users/login", userHandler.Login)

	// Protected endpoints
	mux.Handle("POST /users/bio", protected(userHandler.Bio))
	mux.Handle("GET /tasks/{$}", protected(taskHandler.List))
	mux.Handle("POST /tasks/{$}", protected(taskHandler.Create))
	mux.Handle("GET /tasks/{id}", protected(taskHandler.Get))
	mux.Handle("PATCH /tasks/{id}", protected(taskHandler.Update))
	mux.Handle("DELETE /tasks/{id}", protected(taskHandler.Delete))

	return middleware.Chain(mux,
		middleware.RequestID,
		middleware.LoggingMiddleware(logger, "/health"),
		middleware.RecoveryMiddleware(logger),
	)
}

// Server HTTP сервер API
type Server struct {
	httpServer      *http.Server
	logger          *slog.Logger
	shutdownTimeout time.Duration
}

// New создает сервер на addr с готовым handler'ом
func New(addr string, handler http.Handler, logger *slog.Logger, shutdownTimeout time.Duration) *Server {
	if shutdownTimeout <= 0 {
		shutdownTimeout = DefaultShutdownTimeout
	}
	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
			ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelError),
		},
		logger:          logger,
		shutdownTimeout: shutdownTimeout,
	}
}

// Run обслуживает запросы до отмены ctx, затем дожидается
// завершения активных запросов, но не дольше shutdownTimeout.
func (s *Server) Run(ctx context.Context) error {
	serveErr := make(chan error, 1)
	s.logger.Info("HTTP server listening", slog.String("addr", s.httpServer.Addr))
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}
