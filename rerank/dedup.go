package rerank

import (
	"context"

	"github.com/rushteam/finreckit/core"
	"github.com/rushteam/finreckit/pipeline"
	"github.com/rushteam/finreckit/recall"
)

// DedupNode 按产品身份（保险/基金 ID、股票代码）去重，保留第一次出现的。
// 放在截断之前，保证结果中没有重复产品，即使召回阶段使用了 union 合并。
type DedupNode struct{}

func (n *DedupNode) Name() string        { return "rerank.dedup" }
func (n *DedupNode) Kind() pipeline.Kind { return pipeline.KindReRank }

func (n *DedupNode) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(items) == 0 {
		return items, nil
	}
	return recall.DedupFirst(items), nil
}
