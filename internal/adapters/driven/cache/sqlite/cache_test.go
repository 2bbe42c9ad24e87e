package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	cache, err := NewCache(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { cache.Close() })
	return cache
}

func TestCache_GetMiss(t *testing.T) {
	cache := newTestCache(t)

	vec, err := cache.Get(context.Background(), "nomic-embed-text", "never stored")
	require.NoError(t, err)
	assert.Nil(t, vec)
}

func TestCache_PutGet(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	want := []float32{0.1, -0.5, 3.25, 0}
	require.NoError(t, cache.Put(ctx, "nomic-embed-text", "some text", want))

	got, err := cache.Get(ctx, "nomic-embed-text", "some text")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestCache_KeyedByModel(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Put(ctx, "model-a", "text", []float32{1}))

	got, err := cache.Get(ctx, "model-b", "text")
	require.NoError(t, err)
	assert.Nil(t, got, "entries do not leak across models")
}

func TestCache_PutOverwrites(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Put(ctx, "m", "text", []float32{1, 2}))
	require.NoError(t, cache.Put(ctx, "m", "text", []float32{3, 4, 5}))

	got, err := cache.Get(ctx, "m", "text")
	require.NoError(t, err)
	assert.Equal(t, []float32{3, 4, 5}, got)
}

func TestCache_Reopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	cache, err := NewCache(dir)
	require.NoError(t, err)
	require.NoError(t, cache.Put(ctx, "m", "persisted", []float32{7, 8}))
	require.NoError(t, cache.Close())

	reopened, err := NewCache(dir)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Get(ctx, "m", "persisted")
	require.NoError(t, err)
	assert.Equal(t, []float32{7, 8}, got)
}

func TestVectorCodec(t *testing.T) {
	want := []float32{0.25, -1, 1e-7}
	got, err := decodeVector(encodeVector(want), len(want))
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestDecodeVector_BadLength(t *testing.T) {
	_, err := decodeVector([]byte{1, 2, 3}, 2)
	assert.Error(t, err)
}
