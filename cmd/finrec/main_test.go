package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rushteam/finreckit/config"
	"github.com/rushteam/finreckit/core"
)

const requestJSON = `{
  "profile": {"user_id": "u1", "age": 35, "risk_tolerance": "high", "total_assets": "800000"},
  "catalog": {
    "insurance": [
      {"id": "i1", "name": "综合意外险", "category": "意外险", "base_premium": "100元/年", "tags": "意外"},
      {"id": "i2", "name": "百万医疗险", "category": "医疗险", "base_premium": "500元/年", "tags": "医疗"}
    ],
    "funds": [
      {"id": "f1", "name": "债券B", "fund_type": "债券型", "star_count": 4},
      {"id": "f2", "name": "股票D", "fund_type": "股票型", "star_count": 5}
    ],
    "stocks": [
      {"code": "600519.SH", "name": "贵州茅台", "industry": "白酒", "current_price": 1680, "change_rate": 2.3}
    ]
  },
  "held_industries": ["白酒"],
  "history": [
    {"asset_class": "fund", "amount": "700000"},
    {"asset_class": "stock", "amount": "300000"}
  ],
  "limit": 2,
  "diagnosis": {
    "user_id": "u1", "income": "10000", "expenses": "5000", "savings": "3000",
    "risk_tolerance": "high", "investment_goal": "养老"
  }
}`

func TestRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "req.json")
	require.NoError(t, os.WriteFile(path, []byte(requestJSON), 0o600))

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), config.New(), path, false, false, &out))

	var resp struct {
		Insurance []map[string]any `json:"insurance"`
		Funds     []map[string]any `json:"funds"`
		Stocks    []map[string]any `json:"stocks"`
		Rebalance []map[string]any `json:"rebalance"`
		Diagnosis map[string]any   `json:"diagnosis"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
	assert.Len(t, resp.Insurance, 2)
	assert.Len(t, resp.Funds, 2)
	assert.Len(t, resp.Stocks, 1)
	assert.Len(t, resp.Rebalance, 3)
	assert.Equal(t, "良好", resp.Diagnosis["savings_health"])
}

const rawRequestJSON = `{
  "profile": {"user_id": "u2", "age": 40, "risk_tolerance": "high", "total_assets": "500000"},
  "sample": {
    "insurance": [
      {"id": 7, "name": "少儿重疾险", "type": "重疾险", "premium": "800元/年", "tags": ["重疾", "少儿"]}
    ],
    "funds": [
      {"code": "110011", "name": "易方达中小盘", "type": "混合型", "daily_change": "+0.52%", "week_change": "-1.1%"},
      {"code": "bad", "name": "坏数据", "type": "股票型", "daily_change": "n/a"}
    ],
    "stocks": [
      {"code": "601398.SH", "name": "工商银行", "industry": "银行", "current_price": 5.1, "change_rate": "+0.8%", "market_cap": "18000亿元"}
    ]
  },
  "stock_info": [
    {"ts_code": "600519.SH", "symbol": "600519", "name": "贵州茅台", "industry": "白酒"},
    {"ts_code": "300750.SZ", "symbol": "300750", "name": "宁德时代", "industry": "电池"},
    {"ts_code": "688981.SH", "symbol": "688981", "name": "中芯国际", "industry": "半导体"}
  ],
  "stock_daily": [
    {"ts_code": "600519.SH", "trade_date": "20240101", "close": 1700, "pct_chg": 9},
    {"ts_code": "600519.SH", "trade_date": "20240102", "close": 1680, "pct_chg": 1.5},
    {"ts_code": "300750.SZ", "trade_date": "2024-01-02", "close": 190, "pct_chg": -2}
  ],
  "held_stocks": ["600519.SH", "000000.SZ"],
  "held_industries": ["医药"],
  "limit": 5
}`

func TestBuildCatalog(t *testing.T) {
	var req Request
	require.NoError(t, json.Unmarshal([]byte(rawRequestJSON), &req))
	req.Catalog = &core.Catalog{Funds: []core.Fund{{ID: "f1", Name: "货币A", FundType: "货币型"}}}

	cat, err := buildCatalog(context.Background(), &req)
	require.NoError(t, err)
	require.Len(t, cat.Insurance, 1)
	assert.Equal(t, "7", cat.Insurance[0].ID)
	assert.Equal(t, "重疾,少儿", cat.Insurance[0].Tags)

	tests := []struct {
		name string
		got  []string
		want []string
	}{
		{"funds keep request order and skip malformed records", fundIDs(cat.Funds), []string{"f1", "110011"}},
		{"stocks join latest daily rows", stockCodes(cat.Stocks), []string{"601398.SH", "600519.SH", "300750.SZ"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
	assert.InDelta(t, 1.5, cat.Stocks[1].ChangeRate, 1e-9)
	assert.Equal(t, "20240102", cat.Stocks[1].TradeDate)

	held := heldIndustries(&req, cat.Stocks)
	assert.Equal(t, map[string]struct{}{"白酒": {}, "医药": {}}, held)

	_, err = buildCatalog(context.Background(), &Request{Sample: []byte(`{"funds": 1}`)})
	assert.ErrorContains(t, err, "decode sample")
}

func TestRunWithRawRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "req.json")
	require.NoError(t, os.WriteFile(path, []byte(rawRequestJSON), 0o600))

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), config.New(), path, false, false, &out))

	var resp struct {
		Insurance []map[string]any `json:"insurance"`
		Funds     []map[string]any `json:"funds"`
		Stocks    []struct {
			Product struct {
				Code string `json:"code"`
			} `json:"product"`
		} `json:"stocks"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
	assert.Len(t, resp.Insurance, 1)
	assert.Len(t, resp.Funds, 1)
	codes := make([]string, 0, len(resp.Stocks))
	for _, s := range resp.Stocks {
		codes = append(codes, s.Product.Code)
	}
	assert.ElementsMatch(t, []string{"601398.SH", "600519.SH", "300750.SZ"}, codes)
}

func fundIDs(funds []core.Fund) []string {
	out := make([]string, 0, len(funds))
	for _, f := range funds {
		out = append(out, f.ID)
	}
	return out
}

func stockCodes(stocks []core.Stock) []string {
	out := make([]string, 0, len(stocks))
	for _, s := range stocks {
		out = append(out, s.Code)
	}
	return out
}

func TestRunErrors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0o600))

	var out bytes.Buffer
	assert.ErrorContains(t, run(context.Background(), config.New(), bad, false, false, &out), "decode request")
	assert.ErrorContains(t, run(context.Background(), config.New(), filepath.Join(dir, "none.json"), false, false, &out), "read request")
	assert.Empty(t, out.String())
}
