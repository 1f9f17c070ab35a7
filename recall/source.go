package recall

import (
	"context"

	"github.com/rushteam/finreckit/core"
)

// Source 表示一个召回策略（KNN / 余弦 / 风险偏好 / 热度 / 行业相关 / 趋势 ...）。
// 每个策略只读取 RecommendContext 中的候选集，输出已按自身分数排好序、且不超过 Limit 的结果。
type Source interface {
	Name() string
	Recall(ctx context.Context, rctx *core.RecommendContext) ([]*core.Item, error)
}

// 策略算法标签，写入 Item.Algorithm
const (
	AlgorithmKNN        = "KNN"
	AlgorithmCosine     = "Cosine Similarity"
	AlgorithmCF         = "Collaborative Filtering"
	AlgorithmRiskBased  = "Risk-Based"
	AlgorithmPopularity = "Popularity"
	AlgorithmIndustry   = "Industry Correlation"
	AlgorithmTrend      = "Trend Analysis"
)

// LabelStrategySkipped 是请求级 Label：值为被跳过的策略名。
const LabelStrategySkipped = "strategy_skipped"

const labelRecallSource = "recall_source"

// limitOf 返回本次请求单策略最多输出的条数，负数表示不限。
func limitOf(rctx *core.RecommendContext, n int) int {
	if rctx == nil || rctx.Limit < 0 || rctx.Limit > n {
		return n
	}
	return rctx.Limit
}
