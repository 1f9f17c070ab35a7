package filter

import (
	"context"

	"github.com/rushteam/finreckit/core"
	"github.com/rushteam/finreckit/feature"
)

// RiskTierFilter 过滤掉超出用户风险等级的基金：
// low 只保留货币型/债券型，medium 再加混合型，high 再加股票型。
// 非基金产品不受影响。
type RiskTierFilter struct{}

func (f *RiskTierFilter) Name() string {
	return "filter.risk_tier"
}

func (f *RiskTierFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}
	fund, ok := item.Fund()
	if !ok {
		return false, nil
	}
	tier := core.RiskMedium
	if rctx != nil {
		tier = rctx.User.Tier()
	}
	_, allowed := feature.AllowedFundCategories(tier)[feature.ClassifyFund(fund.FundType)]
	return !allowed, nil
}
