package filter

import (
	"context"

	"github.com/rushteam/finreckit/core"
)

// BlacklistFilter 过滤掉身份标识在黑名单中的产品（例如已下架或合规禁售的产品）。
type BlacklistFilter struct {
	keys map[string]struct{}
}

// NewBlacklistFilter 创建一个黑名单过滤器。
func NewBlacklistFilter(keys []string) *BlacklistFilter {
	m := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		m[k] = struct{}{}
	}
	return &BlacklistFilter{keys: m}
}

func (f *BlacklistFilter) Name() string {
	return "filter.blacklist"
}

func (f *BlacklistFilter) ShouldFilter(
	_ context.Context,
	_ *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}
	_, ok := f.keys[item.Key()]
	return ok, nil
}
