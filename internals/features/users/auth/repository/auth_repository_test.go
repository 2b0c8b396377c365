package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tvdigital_backend/internals/databases/store"
	"tvdigital_backend/internals/features/users/auth/model"
)

func TestFindResetTicket(t *testing.T) {
	mem := store.NewMemoryStore()
	ctx := context.Background()

	ticket := &model.PasswordResetTicket{Email: "budi@example.com", OTP: "654321", ExpiresAt: 1710060000}
	require.NoError(t, SaveResetTicket(ctx, mem, "budi", ticket))

	got, err := FindResetTicket(ctx, mem, "budi")
	require.NoError(t, err)
	assert.Equal(t, ticket, got)

	_, err = FindResetTicket(ctx, mem, "ani")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFindResetTicket_SlashNeverReachesNestedPath(t *testing.T) {
	mem := store.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, mem.Set(ctx, "otp/budi/x", map[string]any{"email": "x@example.com", "otp": "111111", "expires_at": 1}))

	for _, username := range []string{"budi/x", " ", ""} {
		_, err := FindResetTicket(ctx, mem, username)
		assert.ErrorIs(t, err, ErrNotFound, "username %q", username)
	}
	_, err := FindPending(ctx, mem, "budi/x")
	assert.ErrorIs(t, err, ErrNotFound)
}
