package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/taskkeeper/internal/models"
	"github.com/iudanet/taskkeeper/internal/server/jwt"
	"github.com/iudanet/taskkeeper/internal/server/storage"
	"github.com/iudanet/taskkeeper/internal/server/users"
	"github.com/iudanet/taskkeeper/internal/validation"
	"github.com/iudanet/taskkeeper/pkg/api"
)

// mockCredentialStore is an in-memory CredentialStore for testing
type mockCredentialStore struct {
	users     map[string]*models.User // username -> User
	passwords map[string]string       // username -> plaintext password
	err       error
}

func newMockCredentialStore() *mockCredentialStore {
	return &mockCredentialStore{
		users:     make(map[string]*models.User),
		passwords: make(map[string]string),
	}
}

func (m *mockCredentialStore) CreateUser(_ context.Context, username, email, password string) (*models.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	if reasons := validation.ValidatePassword(password); len(reasons) > 0 {
		return nil, validation.New(reasons...)
	}
	if _, exists := m.users[username]; exists {
		return nil, storage.ErrUsernameTaken
	}
	for _, u := range m.users {
		if u.Email == email {
			return nil, storage.ErrEmailTaken
		}
	}
	user := &models.User{
		ID:           "id-" + username,
		Username:     username,
		Email:        email,
		PasswordHash: "hashed:" + password,
		CreatedAt:    time.Now().UTC(),
	}
	m.users[username] = user
	m.passwords[username] = password
	return user, nil
}

func (m *mockCredentialStore) FindByID(_ context.Context, id string) (*models.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, storage.ErrUserNotFound
}

func (m *mockCredentialStore) Authenticate(_ context.Context, username, password string) (*models.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	u, ok := m.users[username]
	if !ok || m.passwords[username] != password {
		return nil, users.ErrInvalidCredentials
	}
	return u, nil
}

func newTestTokenService(t *testing.T) *jwt.Service {
	t.Helper()
	s, err := jwt.NewService([]byte("test-secret"), jwt.DefaultTTL)
	require.NoError(t, err)
	return s
}

func TestUserHandler_Register_Success(t *testing.T) {
	store := newMockCredentialStore()
	handler := NewUserHandler(setupTestLogger(), store, newTestTokenService(t))

	req := newJSONRequest(t, http.MethodPost, "/users/register", api.RegisterRequest{
		Username: "alice",
		Email:    "a@x.com",
		Password: "Passw0rd!",
	})
	w := httptest.NewRecorder()
	handler.Register(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.NotContains(t, w.Body.String(), "Passw0rd!")
	assert.NotContains(t, w.Body.String(), "hashed:")

	var response api.RegisterResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, RegisteredMessage, response.Message)
	assert.Equal(t, "id-alice", response.Data.ID)
	assert.Equal(t, "alice", response.Data.Username)
	assert.Equal(t, "a@x.com", response.Data.Email)
	assert.Nil(t, response.Data.UpdatedAt)
}

func TestUserHandler_Register_Failures(t *testing.T) {
	tests := []struct {
		body        any
		name        string
		wantErrors  []string
		wantCode    int
		storeErr    error
		preRegister bool
	}{
		{
			name:     "invalid json",
			body:     "invalid json",
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "unknown field",
			body:     `{"username":"alice","email":"a@x.com","password":"Passw0rd!","role":"admin"}`,
			wantCode: http.StatusBadRequest,
		},
		{
			name:       "weak password lists every reason",
			body:       api.RegisterRequest{Username: "alice", Email: "a@x.com", Password: "abc"},
			wantCode:   http.StatusBadRequest,
			wantErrors: validation.ValidatePassword("abc"),
		},
		{
			name:        "duplicate username",
			body:        api.RegisterRequest{Username: "alice", Email: "other@x.com", Password: "Passw0rd!"},
			preRegister: true,
			wantCode:    http.StatusConflict,
		},
		{
			name:        "duplicate email",
			body:        api.RegisterRequest{Username: "bob", Email: "a@x.com", Password: "Passw0rd!"},
			preRegister: true,
			wantCode:    http.StatusConflict,
		},
		{
			name:     "storage failure",
			body:     api.RegisterRequest{Username: "alice", Email: "a@x.com", Password: "Passw0rd!"},
			storeErr: storage.Wrap("create user", errors.New("disk full")),
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMockCredentialStore()
			if tt.preRegister {
				_, err := store.CreateUser(context.Background(), "alice", "a@x.com", "Passw0rd!")
				require.NoError(t, err)
			}
			store.err = tt.storeErr
			handler := NewUserHandler(setupTestLogger(), store, newTestTokenService(t))

			w := httptest.NewRecorder()
			handler.Register(w, newJSONRequest(t, http.MethodPost, "/users/register", tt.body))

			require.Equal(t, tt.wantCode, w.Code)
			resp := decodeError(t, w)
			assert.Equal(t, http.StatusText(tt.wantCode), resp.Error)
			assert.NotEmpty(t, resp.Message)
			if tt.wantErrors != nil {
				assert.Equal(t, tt.wantErrors, resp.Errors)
			}
			if tt.wantCode == http.StatusInternalServerError {
				assert.NotContains(t, resp.Message, "disk full")
			}
		})
	}
}

func TestUserHandler_Login(t *testing.T) {
	store := newMockCredentialStore()
	_, err := store.CreateUser(context.Background(), "alice", "a@x.com", "Passw0rd!")
	require.NoError(t, err)

	tokens := newTestTokenService(t)
	handler := NewUserHandler(setupTestLogger(), store, tokens)

	t.Run("success", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.Login(w, newJSONRequest(t, http.MethodPost, "/users/login", api.LoginRequest{
			Username: "alice",
			Password: "Passw0rd!",
		}))

		require.Equal(t, http.StatusOK, w.Code)

		var resp api.TokenResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, 3*time.Hour, resp.ExpiresAt.Sub(resp.IssuedAt))

		userID, err := tokens.Verify(resp.Token)
		require.NoError(t, err)
		assert.Equal(t, "id-alice", userID)
	})

	tests := []struct {
		body       any
		name       string
		wantCode   int
		wantReason int
	}{
		{name: "wrong password", body: api.LoginRequest{Username: "alice", Password: "nope"}, wantCode: http.StatusUnauthorized},
		{name: "unknown user", body: api.LoginRequest{Username: "bob", Password: "Passw0rd!"}, wantCode: http.StatusUnauthorized},
		{name: "missing fields", body: api.LoginRequest{}, wantCode: http.StatusBadRequest, wantReason: 2},
		{name: "malformed body", body: "{", wantCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.Login(w, newJSONRequest(t, http.MethodPost, "/users/login", tt.body))

			require.Equal(t, tt.wantCode, w.Code)
			resp := decodeError(t, w)
			assert.Len(t, resp.Errors, tt.wantReason)
		})
	}
}

func TestUserHandler_Bio(t *testing.T) {
	store := newMockCredentialStore()
	_, err := store.CreateUser(context.Background(), "alice", "a@x.com", "Passw0rd!")
	require.NoError(t, err)
	handler := NewUserHandler(setupTestLogger(), store, newTestTokenService(t))

	t.Run("returns id and username only", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.Bio(w, withUser(httptest.NewRequest(http.MethodPost, "/users/bio", nil), "id-alice"))

		require.Equal(t, http.StatusOK, w.Code)

		var raw map[string]any
		require.NoError(t, json.NewDecoder(strings.NewReader(w.Body.String())).Decode(&raw))
		assert.Equal(t, map[string]any{"id": "id-alice", "username": "alice"}, raw)
	})

	t.Run("no user in context", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.Bio(w, httptest.NewRequest(http.MethodPost, "/users/bio", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("user no longer exists", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.Bio(w, withUser(httptest.NewRequest(http.MethodPost, "/users/bio", nil), "id-ghost"))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
