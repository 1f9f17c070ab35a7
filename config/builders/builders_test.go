package builders

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rushteam/finreckit/feature"
	"github.com/rushteam/finreckit/filter"
	"github.com/rushteam/finreckit/model"
	"github.com/rushteam/finreckit/recall"
	"github.com/rushteam/finreckit/rerank"
)

func TestBuildSource(t *testing.T) {
	src, err := BuildSource(map[string]any{"type": "fund.popular", "encoding": "market"})
	require.NoError(t, err)
	pop, ok := src.(*recall.FundPopular)
	require.True(t, ok)
	assert.Equal(t, feature.FundEncodingMarket, pop.Encoding)

	_, err = BuildSource(map[string]any{"type": "fund.mmoe"})
	assert.ErrorContains(t, err, "unknown source type")

	assert.Contains(t, SourceTypes(), "insurance.knn")
	assert.IsIncreasing(t, SourceTypes())
}

func TestBuildStockIndustrySource(t *testing.T) {
	src, err := BuildStockIndustrySource(map[string]any{
		"mode":    "static",
		"bias":    0.1,
		"weights": map[string]any{"industry_affinity": 0.6, "trend": 0.3},
	})
	require.NoError(t, err)
	ind := src.(*recall.StockIndustry)
	assert.Equal(t, recall.StockScoringStatic, ind.Mode)
	lin, ok := ind.Model.(*model.LinearModel)
	require.True(t, ok)
	assert.Equal(t, 0.1, lin.Bias)
	assert.Equal(t, 0.6, lin.Weights["industry_affinity"])

	_, err = BuildStockIndustrySource(map[string]any{"weights": map[string]any{}})
	assert.Error(t, err)
}

func TestBuildFanoutNode(t *testing.T) {
	n, err := BuildFanoutNode(map[string]any{
		"sources":        []any{map[string]any{"type": "stock.trend"}, map[string]any{"type": "stock.industry"}},
		"max_concurrent": 2,
		"merge_strategy": "union",
		"timeout_ms":     500,
	})
	require.NoError(t, err)
	f := n.(*recall.Fanout)
	assert.Len(t, f.Sources, 2)
	assert.Equal(t, 2, f.MaxConcurrent)
	assert.Equal(t, recall.MergeUnion, f.MergeStrategy)
	assert.Equal(t, 500*time.Millisecond, f.Timeout)

	tests := []struct {
		name string
		cfg  map[string]any
	}{
		{"no sources", map[string]any{}},
		{"unknown source", map[string]any{"sources": []any{map[string]any{"type": "x"}}}},
		{"bad merge", map[string]any{
			"sources":        []any{map[string]any{"type": "stock.trend"}},
			"merge_strategy": "interleave",
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildFanoutNode(tt.cfg)
			assert.Error(t, err)
		})
	}
}

func TestBuildFallbackNode(t *testing.T) {
	n, err := BuildFallbackNode(map[string]any{
		"primary": map[string]any{"sources": []any{map[string]any{"type": "fund.risk_tier"}}},
		"backup":  map[string]any{"type": "fund.popular"},
	})
	require.NoError(t, err)
	fb := n.(*recall.Fallback)
	assert.NotNil(t, fb.Primary)
	assert.IsType(t, &recall.FundPopular{}, fb.Backup)

	_, err = BuildFallbackNode(map[string]any{})
	assert.Error(t, err)

	_, err = BuildFallbackNode(map[string]any{
		"primary": map[string]any{"sources": []any{map[string]any{"type": "fund.risk_tier"}}},
		"backup":  map[string]any{"type": "nope"},
	})
	assert.ErrorContains(t, err, "backup")
}

func TestBuildFilterAndRerankNodes(t *testing.T) {
	_, err := BuildExprFilterNode(map[string]any{})
	assert.Error(t, err)
	_, err = BuildExprFilterNode(map[string]any{"expr": "item.fee <"})
	assert.Error(t, err)

	n, err := BuildExprFilterNode(map[string]any{"expr": "item.fee < 1.5"})
	require.NoError(t, err)
	assert.IsType(t, &filter.FilterNode{}, n)

	n, err = BuildBlacklistFilterNode(map[string]any{"keys": []any{"f1", "600000.SH"}})
	require.NoError(t, err)
	assert.Len(t, n.(*filter.FilterNode).Filters, 1)

	n, err = BuildTopNNode(map[string]any{"n": 3})
	require.NoError(t, err)
	assert.Equal(t, 3, n.(*rerank.TopNNode).N)

	n, err = BuildDedupNode(nil)
	require.NoError(t, err)
	assert.IsType(t, &rerank.DedupNode{}, n)
}
