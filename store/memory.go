// Package store 提供 core.Store 的实现：MemoryStore 用于测试/单机，RedisStore 用于生产。
package store

import (
	"context"
	"sync"
	"time"

	"github.com/rushteam/finreckit/core"
)

// MemoryStore 是内存实现的 Store，支持 TTL（读取时惰性过期），进程重启后数据丢失。
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]entry
	now  func() time.Time
}

type entry struct {
	value    []byte
	expireAt time.Time // 零值表示不过期
}

func (e entry) expired(now time.Time) bool {
	return !e.expireAt.IsZero() && now.After(e.expireAt)
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string]entry),
		now:  time.Now,
	}
}

func (m *MemoryStore) Name() string { return "memory" }

func (m *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.data[key]
	if !ok || e.expired(m.now()) {
		return nil, core.ErrStoreNotFound
	}
	return append([]byte(nil), e.value...), nil
}

// Set 写入 value 的副本；ttl 单位为秒，<= 0 表示不过期。
func (m *MemoryStore) Set(_ context.Context, key string, value []byte, ttl ...int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e := entry{value: append([]byte(nil), value...)}
	if len(ttl) > 0 && ttl[0] > 0 {
		e.expireAt = m.now().Add(time.Duration(ttl[0]) * time.Second)
	}
	m.data[key] = e
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *MemoryStore) BatchGet(_ context.Context, keys []string) (map[string][]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	now := m.now()
	out := make(map[string][]byte, len(keys))
	for _, k := range keys {
		if e, ok := m.data[k]; ok && !e.expired(now) {
			out[k] = append([]byte(nil), e.value...)
		}
	}
	return out, nil
}

func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = make(map[string]entry)
	return nil
}

var _ core.Store = (*MemoryStore)(nil)
