package recall

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/rushteam/finreckit/core"
	"github.com/rushteam/finreckit/feature"
	"github.com/rushteam/finreckit/filter"
	"github.com/rushteam/finreckit/pkg/utils"
	"github.com/rushteam/finreckit/vector"
)

const (
	riskBasedScore  = 0.8
	popularityScore = 0.7
)

// FundSimilar 是基于最近点击基金的“协同过滤”召回：
// 以被点击基金的特征向量为查询，按余弦相似度对其它基金降序排列。
//
// ClickedFundID 为空或不在候选集中时，策略跳过（不报错）。
type FundSimilar struct {
	Encoding feature.FundEncoding
}

func (r *FundSimilar) Name() string { return "recall.fund_similar" }

func (r *FundSimilar) Recall(ctx context.Context, rctx *core.RecommendContext) ([]*core.Item, error) {
	if rctx == nil || rctx.Catalog == nil || len(rctx.Catalog.Funds) == 0 || rctx.ClickedFundID == "" {
		return nil, nil
	}
	clicked, ok := rctx.Catalog.FindFund(rctx.ClickedFundID)
	if !ok {
		err := core.NewDomainError(core.ModuleRecall, core.ErrorCodeUnknownReference,
			fmt.Sprintf("recall: clicked fund %q not in catalog", rctx.ClickedFundID))
		zerolog.Ctx(ctx).Debug().Err(err).Msg("fund similarity skipped")
		rctx.PutLabel(LabelStrategySkipped, utils.Label{Value: r.Name(), Source: "recall"})
		return nil, nil
	}

	encoding := r.Encoding.Resolve(rctx.Catalog.Funds)
	others := make([]core.Fund, 0, len(rctx.Catalog.Funds))
	vecs := make([][]float64, 0, len(rctx.Catalog.Funds))
	for _, f := range rctx.Catalog.Funds {
		if f.ID == clicked.ID {
			continue
		}
		others = append(others, f)
		vecs = append(vecs, feature.FundVector(f, encoding))
	}

	hits := vector.RankCosine(feature.FundVector(clicked, encoding), vecs)
	n := limitOf(rctx, len(hits))
	out := make([]*core.Item, 0, n)
	for _, h := range hits[:n] {
		out = append(out, core.NewItem(others[h.Index], h.Score, AlgorithmCF))
	}
	return out, nil
}

// FundRiskTier 召回风险等级允许范围内的基金，按热度键（星级或 |日涨跌幅|）降序。
type FundRiskTier struct {
	Encoding feature.FundEncoding
	Filter   filter.Filter // 为空时使用 filter.RiskTierFilter
}

func (r *FundRiskTier) Name() string { return "recall.fund_risk_tier" }

func (r *FundRiskTier) Recall(ctx context.Context, rctx *core.RecommendContext) ([]*core.Item, error) {
	if rctx == nil || rctx.Catalog == nil || len(rctx.Catalog.Funds) == 0 {
		return nil, nil
	}
	f := r.Filter
	if f == nil {
		f = &filter.RiskTierFilter{}
	}

	suitable := make([]core.Fund, 0, len(rctx.Catalog.Funds))
	for _, fund := range rctx.Catalog.Funds {
		drop, err := f.ShouldFilter(ctx, rctx, core.NewItem(fund, 0, ""))
		if err != nil || drop {
			continue
		}
		suitable = append(suitable, fund)
	}
	encoding := r.Encoding.Resolve(rctx.Catalog.Funds)
	key := func(f core.Fund) float64 { return feature.FundPopularity(f, encoding) }
	return rankFunds(rctx, suitable, key, riskBasedScore, AlgorithmRiskBased), nil
}

// FundPopular 是热度兜底召回：全部基金按日涨跌幅（带符号）或星级降序。
type FundPopular struct {
	Encoding feature.FundEncoding
}

func (r *FundPopular) Name() string { return "recall.fund_popular" }

func (r *FundPopular) Recall(_ context.Context, rctx *core.RecommendContext) ([]*core.Item, error) {
	if rctx == nil || rctx.Catalog == nil || len(rctx.Catalog.Funds) == 0 {
		return nil, nil
	}
	funds := append([]core.Fund(nil), rctx.Catalog.Funds...)
	encoding := r.Encoding.Resolve(funds)
	key := func(f core.Fund) float64 { return feature.FundHeat(f, encoding) }
	return rankFunds(rctx, funds, key, popularityScore, AlgorithmPopularity), nil
}

// rankFunds 按 key 降序（稳定）取前 Limit 个，统一打分。
func rankFunds(rctx *core.RecommendContext, funds []core.Fund, key func(core.Fund) float64, score float64, algorithm string) []*core.Item {
	sort.SliceStable(funds, func(i, j int) bool { return key(funds[i]) > key(funds[j]) })
	n := limitOf(rctx, len(funds))
	out := make([]*core.Item, 0, n)
	for _, f := range funds[:n] {
		out = append(out, core.NewItem(f, score, algorithm))
	}
	return out
}
