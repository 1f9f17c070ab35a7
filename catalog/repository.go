// Package catalog 负责候选集快照的读写与样例数据转换：
// 外部系统把一致的候选集写入 Store，引擎每次请求读取一份快照。
package catalog

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/rushteam/finreckit/core"
)

// Repository 通过 core.Store 以 JSON 存取 Catalog。
type Repository struct {
	store core.Store
	key   string
}

func NewRepository(store core.Store, key string) *Repository {
	return &Repository{store: store, key: key}
}

// Save 写入快照，ttl 单位为秒，<= 0 表示不过期。
func (r *Repository) Save(ctx context.Context, c *core.Catalog, ttl int) error {
	if c == nil {
		return core.NewDomainError(core.ModuleCatalog, core.ErrorCodeInvalidInput, "catalog: nil catalog")
	}
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("catalog: encode: %w", err)
	}
	if err := r.store.Set(ctx, r.key, data, ttl); err != nil {
		return fmt.Errorf("catalog: save to %s: %w", r.store.Name(), err)
	}
	return nil
}

// Load 读取快照；key 不存在时返回 NOT_FOUND 的 DomainError。
func (r *Repository) Load(ctx context.Context) (*core.Catalog, error) {
	data, err := r.store.Get(ctx, r.key)
	if err != nil {
		if core.IsStoreNotFound(err) {
			return nil, core.NewDomainError(core.ModuleCatalog, core.ErrorCodeNotFound,
				fmt.Sprintf("catalog: snapshot %q not found", r.key))
		}
		return nil, fmt.Errorf("catalog: load from %s: %w", r.store.Name(), err)
	}
	var c core.Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("catalog: decode: %w", err)
	}
	return &c, nil
}
