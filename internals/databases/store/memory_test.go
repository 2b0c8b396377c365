package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_GetMissingReturnsEmpty(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	n, err := s.Get(ctx, "siaran/Aceh/Banda Aceh")
	require.NoError(t, err)
	assert.NotNil(t, n)
	assert.Empty(t, n)

	v, err := s.Value(ctx, "siaran/Aceh")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestMemoryStore_SetReplacesSubtree(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "a/b", map[string]any{"x": 1, "y": "dua"}))
	require.NoError(t, s.Set(ctx, "a/b", map[string]any{"z": true}))

	n, err := s.Get(ctx, "a/b")
	require.NoError(t, err)
	assert.Equal(t, Node{"z": true}, n)
}

func TestMemoryStore_UpdateMerges(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "rec", map[string]any{"foo": "bar", "siaran": []string{"A"}}))
	require.NoError(t, s.Update(ctx, "rec", map[string]any{"siaran": []string{"B", "C"}}))

	n, err := s.Get(ctx, "rec")
	require.NoError(t, err)
	assert.Equal(t, "bar", n["foo"])
	assert.Equal(t, []any{"B", "C"}, n["siaran"])
}

func TestMemoryStore_DeletePrunesAndIsIdempotent(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "siaran/P/R/M", map[string]any{"siaran": []string{"X"}}))
	require.NoError(t, s.Delete(ctx, "siaran/P/R/M"))
	require.NoError(t, s.Delete(ctx, "siaran/P/R/M"))
	require.NoError(t, s.Delete(ctx, "tidak/ada"))

	assert.Empty(t, s.Snapshot())
}

func TestMemoryStore_ApplyIsAllOrNothing(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, s.Set(ctx, "pending_users/budi", map[string]any{"otp": "123456"}))

	err := s.Apply(ctx, map[string]any{
		"users/budi":         map[string]any{"name": "Budi"},
		"pending_users/budi": nil,
	})
	require.NoError(t, err)

	snap := s.Snapshot()
	assert.Equal(t, map[string]any{"users": map[string]any{"budi": map[string]any{"name": "Budi"}}}, snap)

	// nilai yang tidak bisa di-encode membatalkan seluruh batch
	err = s.Apply(ctx, map[string]any{
		"users/ani": map[string]any{"name": "Ani"},
		"users/bad": func() {},
	})
	require.Error(t, err)
	assert.Equal(t, snap, s.Snapshot())
}

func TestMemoryStore_ReturnedNodesAreCopies(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, s.Set(ctx, "a", map[string]any{"b": "c"}))

	n, err := s.Get(ctx, "a")
	require.NoError(t, err)
	n["b"] = "diubah"

	again, err := s.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "c", again["b"])
}

func TestMemoryStore_EmptyObjectsAreDropped(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, s.Set(ctx, "a", map[string]any{"b": map[string]any{}, "c": 1}))

	n, err := s.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, Node{"c": float64(1)}, n)
}

func TestMemoryStore_CancelledContext(t *testing.T) {
	s := NewMemoryStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Get(ctx, "a")
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestUnavailable(t *testing.T) {
	s := Unavailable(errors.New("dial tcp: connection refused"))
	ctx := context.Background()

	_, err := s.Get(ctx, "siaran")
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorIs(t, s.Set(ctx, "a", 1), ErrUnavailable)
	assert.ErrorIs(t, s.Delete(ctx, "a"), ErrUnavailable)
	assert.ErrorIs(t, s.Ping(ctx), ErrUnavailable)
}

func TestPathHelpers(t *testing.T) {
	assert.Equal(t, "siaran/Jawa Barat/MUX 1", Join("siaran", "/Jawa Barat/", "", "MUX 1"))
	assert.Equal(t, []string{"a", "b"}, Split("/a//b/"))
	assert.Empty(t, Split(""))

	assert.NoError(t, ValidSegment("Bandung-Kota"))
	assert.ErrorIs(t, ValidSegment("  "), ErrInvalidPath)
	assert.ErrorIs(t, ValidSegment("a/b"), ErrInvalidPath)
}

func TestNodeHelpers(t *testing.T) {
	n := Node{"b": map[string]any{"x": 1}, "a": "leaf"}
	assert.Equal(t, []string{"a", "b"}, n.Keys())
	assert.Equal(t, Node{"x": 1}, n.Child("b"))
	assert.Empty(t, n.Child("a"))
	assert.Empty(t, n.Child("zzz"))
}

func TestFlattenAndAssemble(t *testing.T) {
	leaves := map[string]any{}
	flatten("siaran/P", map[string]any{
		"R": map[string]any{"M": map[string]any{"siaran": []any{"A"}, "last_updated_by": "budi"}},
	}, leaves)
	assert.Equal(t, map[string]any{
		"siaran/P/R/M/siaran":          []any{"A"},
		"siaran/P/R/M/last_updated_by": "budi",
	}, leaves)

	assert.Equal(t, []string{"a", "a/b"}, ancestorsOf("a/b/c"))
	assert.Equal(t, `a\_b\%c\\`, escapeLike(`a_b%c\`))
}
