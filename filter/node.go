package filter

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/rushteam/finreckit/core"
	"github.com/rushteam/finreckit/pipeline"
)

// FilterNode 是过滤 Node，可以组合多个过滤器进行过滤。
// 如果任何一个过滤器返回 true，该物品就会被过滤掉。
type FilterNode struct {
	Filters []Filter
}

func (n *FilterNode) Name() string {
	return "filter.node"
}

func (n *FilterNode) Kind() pipeline.Kind {
	return pipeline.KindFilter
}

func (n *FilterNode) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(n.Filters) == 0 || len(items) == 0 {
		return items, nil
	}

	log := zerolog.Ctx(ctx)
	out := make([]*core.Item, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}

		dropped := ""
		for _, f := range n.Filters {
			ok, err := f.ShouldFilter(ctx, rctx, item)
			if err != nil {
				// 过滤器错误时记录但不中断流程
				log.Debug().Err(err).Str("filter", f.Name()).Str("key", item.Key()).Msg("filter error ignored")
				continue
			}
			if ok {
				dropped = f.Name()
				break
			}
		}
		if dropped != "" {
			log.Debug().Str("filter", dropped).Str("key", item.Key()).Msg("item filtered")
			continue
		}
		out = append(out, item)
	}
	return out, nil
}
