package pipeline

import (
	"context"

	"github.com/rushteam/finreckit/core"
)

// Kind 是 Node 所处的阶段，写入日志便于按阶段排查。
type Kind string

const (
	KindRecall Kind = "recall" // 策略召回，生成带分结果
	KindFilter Kind = "filter" // 黑名单、风险等级、规则过滤
	KindReRank Kind = "rerank" // 去重、截断
)

// Node 接收上一阶段的结果并返回新的结果。
// 召回 Node 忽略输入，直接从 rctx.Catalog 生成候选。
type Node interface {
	Name() string
	Kind() Kind

	Process(
		ctx context.Context,
		rctx *core.RecommendContext,
		items []*core.Item,
	) ([]*core.Item, error)
}
