package recall

import (
	"context"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/rushteam/finreckit/core"
	"github.com/rushteam/finreckit/pipeline"
	"github.com/rushteam/finreckit/pkg/utils"
)

// 合并策略
const (
	MergeFirst = "first" // 按身份去重，保留第一次出现的（默认）
	MergeUnion = "union" // 不去重，保留所有来源
)

// Fanout 是一个 Recall Node：执行多个召回策略，并按 Sources 声明顺序拼接结果。
//
// 策略可以并发执行（MaxConcurrent > 1），但合并顺序只取决于 Sources 的顺序，
// 因此输出是确定的：排在前面的策略在去重时胜出。
type Fanout struct {
	Sources       []Source
	Timeout       time.Duration // 每个召回策略的超时时间，0 表示不限
	MaxConcurrent int           // 最大并发数，<= 1 时顺序执行
	MergeStrategy string        // first / union
}

func (n *Fanout) Name() string        { return "recall.fanout" }
func (n *Fanout) Kind() pipeline.Kind { return pipeline.KindRecall }

func (n *Fanout) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	if len(n.Sources) == 0 {
		return nil, nil
	}

	// 每个策略写入自己的槽位，避免结果顺序依赖 goroutine 调度
	slots := make([][]*core.Item, len(n.Sources))
	eg, egCtx := errgroup.WithContext(ctx)
	limit := n.MaxConcurrent
	if limit <= 0 {
		limit = 1
	}
	eg.SetLimit(limit)

	for i, src := range n.Sources {
		eg.Go(func() error {
			recallCtx := egCtx
			if n.Timeout > 0 {
				var cancel context.CancelFunc
				recallCtx, cancel = context.WithTimeout(egCtx, n.Timeout)
				defer cancel()
			}

			items, err := src.Recall(recallCtx, rctx)
			if err != nil {
				// 单个策略失败时视为空结果，不中断其他策略
				zerolog.Ctx(ctx).Warn().Err(err).Str("source", src.Name()).Msg("recall source failed")
				return nil
			}

			// 记录召回来源 label，方便 explain / 观测
			for _, it := range items {
				it.PutLabel(labelRecallSource, utils.Label{Value: src.Name(), Source: "recall"})
				it.PutLabel("recall_priority", utils.Label{Value: strconv.Itoa(i), Source: "recall"})
			}
			slots[i] = items
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	all := make([]*core.Item, 0)
	for _, items := range slots {
		all = append(all, items...)
	}

	if n.MergeStrategy == MergeUnion {
		return all, nil
	}
	return DedupFirst(all), nil
}

// DedupFirst 按身份去重，保留第一个出现的，后来者的 labels 合并到胜出者上。
func DedupFirst(all []*core.Item) []*core.Item {
	seen := make(map[string]*core.Item, len(all))
	out := make([]*core.Item, 0, len(all))
	for _, it := range all {
		if it == nil {
			continue
		}
		key := it.Key()
		if old, ok := seen[key]; ok {
			if lbl, ok := it.Labels[labelRecallSource]; ok {
				old.PutLabel("also_recalled_by", lbl)
			}
			continue
		}
		seen[key] = it
		out = append(out, it)
	}
	return out
}
