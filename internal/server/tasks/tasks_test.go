package tasks

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/taskkeeper/internal/models"
	"github.com/iudanet/taskkeeper/internal/server/storage"
	"github.com/iudanet/taskkeeper/internal/server/storage/sqlite"
	"github.com/iudanet/taskkeeper/internal/validation"
)

type fixture struct {
	repo  *Repository
	db    *sqlite.Storage
	alice string
	bob   string
}

func setup(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	ctx := context.Background()

	db, err := sqlite.New(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	f := &fixture{repo: NewRepository(db, opts...), db: db}
	f.alice = createUser(t, db, "alice")
	f.bob = createUser(t, db, "bob")
	return f
}

func createUser(t *testing.T, db *sqlite.Storage, name string) string {
	t.Helper()
	id := uuid.New().String()
	require.NoError(t, db.CreateUser(context.Background(), &models.User{
		ID:           id,
		Username:     name,
		Email:        name + "@x.com",
		PasswordHash: "hash",
		CreatedAt:    time.Now(),
	}))
	return id
}

func strPtr(s string) *string {
	return &s
}

func TestRepository_CreateThenGet(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	created, err := f.repo.Create(ctx, f.alice, "t", "d")
	require.NoError(t, err)

	got, err := f.repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "t", got.Title)
	assert.Equal(t, "d", got.Description)
	assert.Equal(t, f.alice, got.UserID)
	assert.False(t, got.CreatedAt.After(time.Now()))
	assert.Nil(t, got.UpdatedAt)
}

func TestRepository_Create_Validation(t *testing.T) {
	f := setup(t)

	for _, title := range []string{"", "   "} {
		_, err := f.repo.Create(context.Background(), f.alice, title, "d")
		reasons, ok := validation.Reasons(err)
		require.True(t, ok)
		assert.Equal(t, []string{reasonEmptyTitle}, reasons)
	}

	// Empty description is allowed
	task, err := f.repo.Create(context.Background(), f.alice, "title", "")
	require.NoError(t, err)
	assert.Empty(t, task.Description)
}

func TestRepository_Create_UsesClockAndIDs(t *testing.T) {
	now := time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)
	f := setup(t,
		WithClock(func() time.Time { return now }),
		WithIDGenerator(func() string { return "task-1" }),
	)

	task, err := f.repo.Create(context.Background(), f.alice, "  padded  ", "")
	require.NoError(t, err)
	assert.Equal(t, "task-1", task.ID)
	assert.Equal(t, "padded", task.Title)
	assert.Equal(t, now, task.CreatedAt)
}

func TestRepository_ListAll(t *testing.T) {
	ctx := context.Background()
	f := setup(t, WithListLimit(2))

	tasks, err := f.repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, tasks)

	for _, owner := range []string{f.alice, f.bob, f.alice} {
		_, err := f.repo.Create(ctx, owner, "task", "")
		require.NoError(t, err)
	}

	tasks, err = f.repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, tasks, 2, "list must be capped")

	unbounded := NewRepository(f.db, WithListLimit(0))
	tasks, err = unbounded.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, tasks, 3, "reads are not scoped to an owner")
}

func TestRepository_Update(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)
	clock := created
	f := setup(t, WithClock(func() time.Time { return clock }))

	task, err := f.repo.Create(ctx, f.alice, "title", "description")
	require.NoError(t, err)

	clock = created.Add(time.Hour)

	t.Run("only description keeps title", func(t *testing.T) {
		got, err := f.repo.Update(ctx, f.alice, task.ID, models.TaskPatch{Description: strPtr("changed")})
		require.NoError(t, err)
		assert.Equal(t, "title", got.Title)
		assert.Equal(t, "changed", got.Description)
		require.NotNil(t, got.UpdatedAt)
		assert.True(t, got.UpdatedAt.Equal(clock))
	})

	t.Run("empty patch is rejected", func(t *testing.T) {
		_, err := f.repo.Update(ctx, f.alice, task.ID, models.TaskPatch{})
		_, ok := validation.Reasons(err)
		assert.True(t, ok, "expected validation error, got %v", err)
	})

	t.Run("blank title is rejected", func(t *testing.T) {
		_, err := f.repo.Update(ctx, f.alice, task.ID, models.TaskPatch{Title: strPtr(" ")})
		_, ok := validation.Reasons(err)
		assert.True(t, ok)
	})

	t.Run("missing task", func(t *testing.T) {
		_, err := f.repo.Update(ctx, f.alice, uuid.New().String(), models.TaskPatch{Title: strPtr("x")})
		assert.ErrorIs(t, err, storage.ErrTaskNotFound)
	})
}

func TestRepository_OwnershipEnforced(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	task, err := f.repo.Create(ctx, f.alice, "alice's", "private")
	require.NoError(t, err)

	_, err = f.repo.Update(ctx, f.bob, task.ID, models.TaskPatch{Title: strPtr("pwned")})
	assert.ErrorIs(t, err, storage.ErrTaskNotFound)

	_, err = f.repo.Delete(ctx, f.bob, task.ID)
	assert.ErrorIs(t, err, storage.ErrTaskNotFound)

	got, err := f.repo.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice's", got.Title)
}

func TestRepository_Delete(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	task, err := f.repo.Create(ctx, f.alice, "temp", "")
	require.NoError(t, err)

	deleted, err := f.repo.Delete(ctx, f.alice, task.ID)
	require.NoError(t, err)
	assert.Equal(t, task.ID, deleted.ID)

	_, err = f.repo.GetByID(ctx, task.ID)
	assert.ErrorIs(t, err, storage.ErrTaskNotFound)
}
