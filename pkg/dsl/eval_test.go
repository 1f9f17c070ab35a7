package dsl

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rushteam/finreckit/core"
	"github.com/rushteam/finreckit/pkg/utils"
)

func TestEvaluate(t *testing.T) {
	stars := 4
	fee := 1.2
	fund := core.NewItem(core.Fund{ID: "f1", Name: "稳健债基", FundType: "债券型", StarCount: &stars, Fee: &fee}, 0.8, "Risk-Based")
	fund.PutLabel("recall_source", utils.Label{Value: "recall.fund_risk_tier"})
	stock := core.NewItem(core.Stock{Code: "600000.SH", Industry: "半导体", ChangeRate: 3.5}, 0.6, "Trend Analysis")

	rctx := core.NewRecommendContext(core.NewUserProfile("u", 45, "low", decimal.NewFromInt(1_000_000)), nil)

	tests := []struct {
		name string
		expr string
		item *core.Item
		want bool
	}{
		{"score", `item.score > 0.5`, fund, true},
		{"asset class and fee", `item.asset_class == "fund" && item.fee < 1.5`, fund, true},
		{"star count int", `item.star_count >= 5`, fund, false},
		{"label", `label.recall_source == "recall.fund_risk_tier"`, fund, true},
		{"request context", `rctx.risk_tolerance == "low" && rctx.age > 40`, fund, true},
		{"stock industry", `rctx.risk_tolerance == "low" && item.industry == "半导体"`, stock, true},
		{"has key", `"fee" in item`, stock, false},
		{"total assets", `rctx.total_assets >= 1000000.0`, stock, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prg, err := Compile(tt.expr)
			require.NoError(t, err)
			got, err := prg.Evaluate(tt.item, rctx)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.expr, prg.String())
		})
	}
}

func TestEvaluateErrors(t *testing.T) {
	item := core.NewItem(core.Stock{Code: "s"}, 0.1, "")

	_, err := Compile(`item.score >`)
	assert.Error(t, err)

	prg, err := Compile(`item.fee < 1.0`)
	require.NoError(t, err)
	_, err = prg.Evaluate(item, nil)
	assert.Error(t, err)

	prg, err = Compile(`item.score`)
	require.NoError(t, err)
	_, err = prg.Evaluate(item, nil)
	assert.Error(t, err)
}
