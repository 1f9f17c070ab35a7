package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rushteam/finreckit/core"
	"github.com/rushteam/finreckit/store"
)

func TestRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(store.NewMemoryStore(), "finrec:catalog")

	_, err := repo.Load(ctx)
	require.Error(t, err)
	assert.True(t, core.IsNotFound(err))

	assert.True(t, core.IsInvalidInput(repo.Save(ctx, nil, 0)))

	star := 4
	want := &core.Catalog{
		Insurance: []core.Insurance{{ID: "i1", Name: "意外险", Category: "意外险", BasePremium: "100元"}},
		Funds:     []core.Fund{{ID: "f1", Name: "债券B", FundType: "债券型", StarCount: &star}},
		Stocks:    []core.Stock{{Code: "600000.SH", Name: "浦发银行", Industry: "银行", ChangeRate: -0.5}},
	}
	require.NoError(t, repo.Save(ctx, want, 60))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestParsePercent(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"+1.23%", 1.23, false},
		{"-0.5%", -0.5, false},
		{" 2 ", 2, false},
		{"0%", 0, false},
		{"--", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePercent(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, core.IsMalformedNumeric(err))
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestParseYiYuan(t *testing.T) {
	got, err := ParseYiYuan("1234.5亿元")
	require.NoError(t, err)
	assert.InDelta(t, 1234.5e8, got, 1)

	_, err = ParseYiYuan("未知")
	assert.True(t, core.IsMalformedNumeric(err))
}

const sampleJSON = `{
  "insurance": [
    {"id": 1, "name": "综合意外险", "type": "意外险", "subtype": "综合意外", "suitable_ages": "18-60",
     "premium": "100元/年", "coverage": "意外身故", "tags": ["意外", "低保费"]},
    {"id": "2", "name": "百万医疗", "type": "医疗险", "premium": "300元/年", "tags": "医疗"}
  ],
  "funds": [
    {"code": "000001", "name": "华夏成长", "type": "混合型", "net_value": 1.23,
     "daily_change": "+1.20%", "week_change": "-0.3%", "month_change": "--", "star_count": 4, "fee": 1.5},
    {"code": "000002", "name": "停牌基金", "type": "股票型", "daily_change": "--"}
  ],
  "stocks": [
    {"code": "600519", "name": "贵州茅台", "industry": "白酒", "current_price": 1680.0,
     "change_rate": "+2.30%", "market_cap": "21000亿元", "pe_ratio": 30.5, "dividend_yield": "1.5%"},
    {"code": "000000", "name": "坏数据", "industry": "未知", "change_rate": "N/A"}
  ]
}`

func TestSampleBuild(t *testing.T) {
	sample, err := DecodeSample([]byte(sampleJSON))
	require.NoError(t, err)

	c := sample.Build(context.Background())
	require.Len(t, c.Insurance, 2)
	assert.Equal(t, "1", c.Insurance[0].ID)
	assert.Equal(t, "意外,低保费", c.Insurance[0].Tags)
	assert.Equal(t, "2", c.Insurance[1].ID)
	assert.Equal(t, "医疗", c.Insurance[1].Tags)

	require.Len(t, c.Funds, 1)
	f := c.Funds[0]
	assert.Equal(t, "000001", f.ID)
	require.NotNil(t, f.DailyChange)
	assert.InDelta(t, 1.2, *f.DailyChange, 1e-9)
	require.NotNil(t, f.WeekChange)
	assert.Nil(t, f.MonthChange)

	require.Len(t, c.Stocks, 1)
	s := c.Stocks[0]
	assert.InDelta(t, 2.3, s.ChangeRate, 1e-9)
	require.NotNil(t, s.MarketCap)
	assert.InDelta(t, 2.1e12, *s.MarketCap, 1)
	require.NotNil(t, s.DividendYield)

	_, err = DecodeSample([]byte("{"))
	assert.Error(t, err)
}

func TestJoinStocks(t *testing.T) {
	infos := []StockInfo{
		{TSCode: "600000.SH", Symbol: "600000", Name: "浦发银行", Industry: "银行"},
		{TSCode: "000001.SZ", Symbol: "000001", Name: "平安银行", Industry: "银行"},
		{TSCode: "600519.SH", Symbol: "600519", Name: "贵州茅台", Industry: "白酒"},
		{TSCode: "600000.SH", Symbol: "600000", Name: "重复", Industry: "银行"},
	}
	dailies := []StockDaily{
		{TSCode: "600000.SH", TradeDate: "20240102", Close: 7.1, PctChg: 0.5},
		{TSCode: "600000.SH", TradeDate: "2024-01-03", Close: 7.2, PctChg: 1.4},
		{TSCode: "600519.SH", TradeDate: "20240103", Close: 1680, PctChg: -0.2},
		{TSCode: "300750.SZ", TradeDate: "20240103", Close: 190, PctChg: 3},
	}

	got := JoinStocks(infos, dailies)
	require.Len(t, got, 2)
	assert.Equal(t, "600000.SH", got[0].Code)
	assert.Equal(t, "浦发银行", got[0].Name)
	assert.Equal(t, 7.2, got[0].CurrentPrice)
	assert.Equal(t, "2024-01-03", got[0].TradeDate)
	assert.Equal(t, "600519.SH", got[1].Code)

	assert.Equal(t, []string{"白酒", "银行"}, SortedIndustries(Industries(got)))
	assert.Empty(t, JoinStocks(infos, nil))
}
