package pipeline

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/rushteam/finreckit/core"
)

// Pipeline 是一条资产大类的推荐链路：召回 → 过滤 → 去重 → 截断。
type Pipeline struct {
	Name  string
	Nodes []Node
}

// Run 依次执行 Node。任一 Node 出错时整条链路失败，错误中带上 Node 名称。
func (p *Pipeline) Run(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	log := zerolog.Ctx(ctx)
	cur := items
	for _, node := range p.Nodes {
		in := len(cur)
		next, err := node.Process(ctx, rctx, cur)
		if err != nil {
			return nil, fmt.Errorf("node %s: %w", node.Name(), err)
		}
		log.Trace().
			Str("pipeline", p.Name).
			Str("node", node.Name()).
			Str("kind", string(node.Kind())).
			Int("in", in).
			Int("out", len(next)).
			Msg("node done")
		cur = next
	}
	return cur, nil
}
