package main

import (
	"bytes"
	"context"
	"errors"
	"math/rand/v2"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/iudanet/taskkeeper/internal/models"
	"github.com/iudanet/taskkeeper/internal/server/storage/backend"
	"github.com/iudanet/taskkeeper/internal/server/storage/sqlite"
	"github.com/iudanet/taskkeeper/internal/validation"
)

func newRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func TestRandomPassword_SatisfiesPolicy(t *testing.T) {
	rng := newRand()
	for range 200 {
		p := randomPassword(rng)
		assert.Empty(t, validation.ValidatePassword(p), "password %q", p)
	}
}

func TestPhrase(t *testing.T) {
	got := phrase(newRand(), 15)
	assert.Len(t, strings.Fields(got), 15)
}

func TestRun_SeedsSQLite(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "seed.db")

	var out bytes.Buffer
	err := run(ctx, config{Driver: backend.SQLite, DSN: dsn, Count: 3, BcryptCost: bcrypt.MinCost}, &out)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "Data 1: user id: "))

	store, err := sqlite.New(ctx, dsn)
	require.NoError(t, err)
	defer store.Close()

	list, err := store.ListTasks(ctx, 0)
	require.NoError(t, err)
	require.Len(t, list, 3)

	owners := map[string]bool{}
	for _, task := range list {
		owners[task.UserID] = true
		assert.Len(t, strings.Fields(task.Title), 3)
	}
	assert.Len(t, owners, 3)
}

type failingCreator struct{}

func (failingCreator) CreateUser(context.Context, string, string, string) (*models.User, error) {
	return nil, errors.New("db down")
}

func (failingCreator) Create(context.Context, string, string, string) (*models.Task, error) {
	return nil, errors.New("db down")
}

func TestSeed_StopsOnError(t *testing.T) {
	var out bytes.Buffer
	err := seed(context.Background(), 5, failingCreator{}, failingCreator{}, newRand(), &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create user 1")
	assert.Empty(t, out.String())
}

func TestRun_UnknownDriver(t *testing.T) {
	err := run(context.Background(), config{Driver: "mysql"}, &bytes.Buffer{})
	require.ErrorIs(t, err, backend.ErrUnknownDriver)
}
