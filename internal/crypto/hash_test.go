package crypto

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_HashAndCompare(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost, 2)
	ctx := context.Background()

	hash, err := h.Hash(ctx, "Passw0rd!")
	require.NoError(t, err)
	assert.NotEqual(t, "Passw0rd!", hash)
	assert.True(t, strings.HasPrefix(hash, "$2a$"), "unexpected hash format: %s", hash)

	require.NoError(t, h.Compare(ctx, hash, "Passw0rd!"))
	assert.ErrorIs(t, h.Compare(ctx, hash, "passw0rd!"), ErrMismatch)
}

func TestBcryptHasher_SaltPerHash(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost, 1)
	ctx := context.Background()

	first, err := h.Hash(ctx, "same-password")
	require.NoError(t, err)
	second, err := h.Hash(ctx, "same-password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestBcryptHasher_Cost(t *testing.T) {
	tests := []struct {
		name string
		cost int
		want int
	}{
		{name: "explicit cost", cost: 11, want: 11},
		{name: "zero falls back to default", cost: 0, want: bcrypt.DefaultCost},
		{name: "too high falls back to default", cost: bcrypt.MaxCost + 1, want: bcrypt.DefaultCost},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewBcryptHasher(tt.cost, 0).Cost())
		})
	}
}

func TestBcryptHasher_MalformedHash(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost, 1)

	err := h.Compare(context.Background(), "not-a-hash", "whatever")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMismatch)
}

func TestBcryptHasher_ContextCanceledWhileWaiting(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost, 1)

	// Occupy the only slot
	require.NoError(t, h.sem.Acquire(context.Background(), 1))
	defer h.sem.Release(1)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := h.Hash(ctx, "Passw0rd!")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	err = h.Compare(ctx, "$2a$04$abc", "Passw0rd!")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
