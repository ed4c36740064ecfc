package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/iudanet/taskkeeper/internal/models"
	"github.com/iudanet/taskkeeper/internal/server/jwt"
	"github.com/iudanet/taskkeeper/internal/validation"
	"github.com/iudanet/taskkeeper/pkg/api"
)

// RegisteredMessage сообщение в ответе на успешную регистрацию
const RegisteredMessage = "user is registered"

// CredentialStore определяет операции над учетными данными, нужные handler'у
type CredentialStore interface {
	CreateUser(ctx context.Context, username, email, password string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
}

// UserHandler обрабатывает регистрацию, вход и профиль пользователя
type UserHandler struct {
	responder
	store  CredentialStore
	tokens jwt.Issuer
}

// NewUserHandler создает новый handler для пользователей
func NewUserHandler(logger *slog.Logger, store CredentialStore, tokens jwt.Issuer) *UserHandler {
	return &UserHandler{
		responder: responder{logger: logger},
		store:     store,
		tokens:    tokens,
	}
}

// Register обрабатывает POST /users/register
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.sendFailure(w, r, err)
		return
	}

	user, err := h.store.CreateUser(ctx, req.Username, req.Email, req.Password)
	if err != nil {
		h.sendFailure(w, r, err)
		return
	}

	h.logger.InfoContext(ctx, "user registered successfully",
		slog.String("username", user.Username),
		slog.String("user_id", user.ID))

	h.sendJSON(w, api.RegisterResponse{
		Message: RegisteredMessage,
		Data:    toAPIUser(user),
	}, http.StatusCreated)
}

// Login обрабатывает POST /users/login
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.sendFailure(w, r, err)
		return
	}

	var v validation.Collector
	if strings.TrimSpace(req.Username) == "" {
		v.Add(validation.New("username is required"))
	}
	if req.Password == "" {
		v.Add(validation.New("password is required"))
	}
	if err := v.Err(); err != nil {
		h.sendFailure(w, r, err)
		return
	}

	user, err := h.store.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		h.logger.WarnContext(ctx, "login failed", slog.String("username", req.Username), slog.Any("error", err))
		h.sendFailure(w, r, err)
		return
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		h.sendFailure(w, r, err)
		return
	}

	h.logger.InfoContext(ctx, "user logged in successfully",
		slog.String("username", user.Username),
		slog.String("user_id", user.ID))

	h.sendJSON(w, api.TokenResponse{
		Token:     token.Value,
		IssuedAt:  token.IssuedAt,
		ExpiresAt: token.ExpiresAt,
	}, http.StatusOK)
}

// Bio обрабатывает POST /users/bio
// Возвращает id и username текущего пользователя
func (h *UserHandler) Bio(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		h.sendError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	user, err := h.store.FindByID(ctx, userID)
	if err != nil {
		h.sendFailure(w, r, err)
		return
	}

	profile := user.Profile()
	h.sendJSON(w, api.BioResponse{ID: profile.ID, Username: profile.Username}, http.StatusOK)
}

func toAPIUser(u *models.User) api.User {
	return api.User{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
