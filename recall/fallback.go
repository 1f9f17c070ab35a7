package recall

import (
	"context"

	"github.com/rushteam/finreckit/core"
	"github.com/rushteam/finreckit/pipeline"
	"github.com/rushteam/finreckit/pkg/utils"
)

// Fallback 是一个 Recall Node：先执行 Primary，结果为空时才执行 Backup。
// 典型用法是基金推荐的热度兜底（新用户、没有符合风险偏好的基金时）。
type Fallback struct {
	Primary pipeline.Node
	Backup  Source
}

func (n *Fallback) Name() string        { return "recall.fallback" }
func (n *Fallback) Kind() pipeline.Kind { return pipeline.KindRecall }

func (n *Fallback) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	var out []*core.Item
	if n.Primary != nil {
		var err error
		out, err = n.Primary.Process(ctx, rctx, items)
		if err != nil {
			return nil, err
		}
	}
	if len(out) > 0 || n.Backup == nil {
		return out, nil
	}

	backup, err := n.Backup.Recall(ctx, rctx)
	if err != nil {
		return nil, err
	}
	for _, it := range backup {
		it.PutLabel(labelRecallSource, utils.Label{Value: n.Backup.Name(), Source: "fallback"})
	}
	return backup, nil
}
