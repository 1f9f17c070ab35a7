package rerank

import (
	"context"

	"github.com/rushteam/finreckit/core"
	"github.com/rushteam/finreckit/pipeline"
)

// TopNNode 是一个 Top-N 截断节点，位于合并去重之后，保证 len(结果) <= Limit。
//
// 截断数量：
//   - N > 0 时取 min(N, rctx.Limit)（N 是配置层面的硬上限）
//   - 否则取 rctx.Limit；rctx.Limit 为 0 时返回空列表，为负数时不截断
type TopNNode struct {
	N int
}

func (n *TopNNode) Name() string {
	return "rerank.topn"
}

func (n *TopNNode) Kind() pipeline.Kind {
	return pipeline.KindReRank
}

func (n *TopNNode) Process(
	_ context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	limit := -1
	if rctx != nil {
		limit = rctx.Limit
	}
	if n.N > 0 && (limit < 0 || n.N < limit) {
		limit = n.N
	}

	if limit < 0 || len(items) <= limit {
		return items, nil
	}
	return items[:limit], nil
}
