package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/taskkeeper/internal/models"
	"github.com/iudanet/taskkeeper/internal/server/storage"
)

func TestUserStorage_CreateUser(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	user := &models.User{
		ID:           uuid.New().String(),
		Username:     "alice",
		Email:        "a@x.com",
		PasswordHash: "$2a$10$hash",
		CreatedAt:    time.Now(),
	}
	require.NoError(t, s.CreateUser(ctx, user))

	// Verify user was created
	retrieved, err := s.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, retrieved.ID)
	assert.Equal(t, user.Username, retrieved.Username)
	assert.Equal(t, user.Email, retrieved.Email)
	assert.Equal(t, user.PasswordHash, retrieved.PasswordHash)
	assert.WithinDuration(t, user.CreatedAt, retrieved.CreatedAt, time.Second)
	assert.Nil(t, retrieved.UpdatedAt)
}

func TestUserStorage_CreateUser_Conflicts(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	require.NoError(t, s.CreateUser(ctx, &models.User{
		ID:           uuid.New().String(),
		Username:     "duplicate",
		Email:        "dup@example.com",
		PasswordHash: "hash1",
		CreatedAt:    time.Now(),
	}))

	tests := []struct {
		wantError error
		name      string
		username  string
		email     string
	}{
		{
			name:      "same username",
			username:  "duplicate",
			email:     "other@example.com",
			wantError: storage.ErrUsernameTaken,
		},
		{
			name:      "same email",
			username:  "other",
			email:     "dup@example.com",
			wantError: storage.ErrEmailTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.CreateUser(ctx, &models.User{
				ID:           uuid.New().String(),
				Username:     tt.username,
				Email:        tt.email,
				PasswordHash: "hash2",
				CreatedAt:    time.Now(),
			})
			require.ErrorIs(t, err, tt.wantError)
			assert.ErrorIs(t, err, storage.ErrConflict)
			assert.False(t, storage.IsStorageError(err))
		})
	}
}

func TestUserStorage_GetUserByUsername(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	userID := createTestUser(t, ctx, s)
	created, err := s.GetUserByID(ctx, userID)
	require.NoError(t, err)

	tests := []struct {
		wantError error
		name      string
		username  string
	}{
		{name: "existing user", username: created.Username},
		{name: "non-existing user", username: "ghost", wantError: storage.ErrUserNotFound},
		{name: "case sensitive", username: "TESTUSER_" + userID[:8], wantError: storage.ErrUserNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := s.GetUserByUsername(ctx, tt.username)
			if tt.wantError != nil {
				assert.ErrorIs(t, err, tt.wantError)
				assert.Nil(t, user)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, userID, user.ID)
		})
	}
}

func TestUserStorage_GetUserByID_NotFound(t *testing.T) {
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	_, err := s.GetUserByID(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, storage.ErrUserNotFound)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestUserStorage_ClosedDatabase(t *testing.T) {
	s, _ := setupTestStorage(t)
	require.NoError(t, s.Close())

	_, err := s.GetUserByID(context.Background(), "id")
	require.Error(t, err)
	assert.True(t, storage.IsStorageError(err))
	assert.NotErrorIs(t, err, storage.ErrNotFound)
}
