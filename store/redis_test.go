package store

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rushteam/finreckit/core"
)

// 需要本地 Redis：FINREC_TEST_REDIS_ADDR=localhost:6379 go test ./store/...
func newTestRedis(t *testing.T) *RedisStore {
	t.Helper()
	addr := os.Getenv("FINREC_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("FINREC_TEST_REDIS_ADDR not set")
	}
	s, err := NewRedisStore(context.Background(), addr, "", 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestRedisStore(t *testing.T) {
	s := newTestRedis(t)
	ctx := context.Background()
	prefix := "finrec:test:" + uuid.NewString() + ":"
	k1, k2 := prefix+"k1", prefix+"k2"
	t.Cleanup(func() {
		_ = s.Delete(ctx, k1)
		_ = s.Delete(ctx, k2)
	})

	_, err := s.Get(ctx, k1)
	assert.True(t, core.IsStoreNotFound(err))

	require.NoError(t, s.Set(ctx, k1, []byte("v1"), 60))
	got, err := s.Get(ctx, k1)
	require.NoError(t, err)
	assert.Equal(t, []byte("v1"), got)

	batch, err := s.BatchGet(ctx, []string{k1, k2})
	require.NoError(t, err)
	assert.Equal(t, map[string][]byte{k1: []byte("v1")}, batch)

	require.NoError(t, s.Delete(ctx, k1))
	_, err = s.Get(ctx, k1)
	assert.True(t, core.IsStoreNotFound(err))
}

func TestNewRedisStoreUnreachable(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewRedisStore(ctx, "127.0.0.1:1", "", 0)
	assert.Error(t, err)
}
