package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rushteam/finreckit/core"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	assert.Equal(t, "memory", s.Name())

	_, err := s.Get(ctx, "missing")
	assert.True(t, core.IsStoreNotFound(err))

	value := []byte("v1")
	require.NoError(t, s.Set(ctx, "k1", value))
	value[0] = 'x'
	got, err := s.Get(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, []byte("v1"), got)

	got[0] = 'y'
	again, _ := s.Get(ctx, "k1")
	assert.Equal(t, []byte("v1"), again)

	require.NoError(t, s.Set(ctx, "k2", []byte("v2")))
	batch, err := s.BatchGet(ctx, []string{"k1", "k2", "k3"})
	require.NoError(t, err)
	assert.Equal(t, map[string][]byte{"k1": []byte("v1"), "k2": []byte("v2")}, batch)

	require.NoError(t, s.Delete(ctx, "k1"))
	_, err = s.Get(ctx, "k1")
	assert.True(t, core.IsStoreNotFound(err))

	require.NoError(t, s.Close())
	_, err = s.Get(ctx, "k2")
	assert.True(t, core.IsStoreNotFound(err))
}

func TestMemoryStoreTTL(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 2, 9, 30, 0, 0, time.UTC)
	s := NewMemoryStore()
	s.now = func() time.Time { return now }

	require.NoError(t, s.Set(ctx, "short", []byte("a"), 10))
	require.NoError(t, s.Set(ctx, "forever", []byte("b"), 0))

	now = now.Add(10 * time.Second)
	_, err := s.Get(ctx, "short")
	assert.NoError(t, err)

	now = now.Add(time.Second)
	_, err = s.Get(ctx, "short")
	assert.True(t, core.IsStoreNotFound(err))

	batch, err := s.BatchGet(ctx, []string{"short", "forever"})
	require.NoError(t, err)
	assert.Equal(t, map[string][]byte{"forever": []byte("b")}, batch)
}
