package recall

import (
	"context"
	"math"
	"math/rand"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/rushteam/finreckit/core"
	"github.com/rushteam/finreckit/feature"
	"github.com/rushteam/finreckit/model"
)

// StockScoring 是行业相关性召回的趋势项来源。
type StockScoring string

const (
	// StockScoringMomentum 趋势项取 clamp(|涨跌幅|/10, 0.1, 1)，行业项同时参考持仓行业
	StockScoringMomentum StockScoring = "momentum"
	// StockScoringStatic 只有静态行业数据：不看持仓行业，趋势项为 [0.5, 0.9] 的随机值
	StockScoringStatic StockScoring = "static"
)

// ParseStockScoring 解析配置值，无法识别时返回 StockScoringMomentum。
func ParseStockScoring(s string) StockScoring {
	if StockScoring(strings.ToLower(strings.TrimSpace(s))) == StockScoringStatic {
		return StockScoringStatic
	}
	return StockScoringMomentum
}

// 特征名，对应 LinearModel 的权重 key
const (
	FeatureIndustryAffinity = "industry_affinity"
	FeatureTrend            = "trend"
)

// DefaultStockModel 行业项权重 0.6，趋势项权重 0.4。
func DefaultStockModel() *model.LinearModel {
	return &model.LinearModel{Weights: map[string]float64{
		FeatureIndustryAffinity: 0.6,
		FeatureTrend:            0.4,
	}}
}

// StockIndustry 是行业相关性股票召回：每只股票取最近交易日一行，
// 行业项与趋势项线性加权后降序取 Limit 个。
type StockIndustry struct {
	Mode      StockScoring
	Preferred map[core.RiskTier][]string // 为空时使用 feature.DefaultPreferredIndustries
	Model     model.RankModel            // 为空时使用 DefaultStockModel
}

func (r *StockIndustry) Name() string { return "recall.stock_industry" }

func (r *StockIndustry) Recall(ctx context.Context, rctx *core.RecommendContext) ([]*core.Item, error) {
	if rctx == nil || rctx.Catalog == nil || len(rctx.Catalog.Stocks) == 0 {
		return nil, nil
	}
	m := r.Model
	if m == nil {
		m = DefaultStockModel()
	}
	preferredTable := r.Preferred
	if preferredTable == nil {
		preferredTable = feature.DefaultPreferredIndustries
	}
	preferred := preferredTable[rctx.User.Tier()]

	held := rctx.HeldIndustries
	var rnd *rand.Rand
	if r.Mode == StockScoringStatic {
		held = nil
		rnd = rctx.Rand
		if rnd == nil {
			zerolog.Ctx(ctx).Warn().Msg("no random source in context, using fixed seed")
			rnd = rand.New(rand.NewSource(0))
		}
	}

	stocks := LatestByCode(rctx.Catalog.Stocks)
	out := make([]*core.Item, 0, len(stocks))
	for _, s := range stocks {
		trend := feature.MagnitudeTrend(s.ChangeRate)
		if rnd != nil {
			trend = 0.5 + rnd.Float64()*0.4
		}
		score, err := m.Predict(map[string]float64{
			FeatureIndustryAffinity: feature.IndustryAffinity(s.Industry, held, preferred),
			FeatureTrend:            trend,
		})
		if err != nil {
			return nil, err
		}
		out = append(out, core.NewItem(s, score, AlgorithmIndustry))
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out[:limitOf(rctx, len(out))], nil
}

// StockTrend 是趋势召回：每只股票取最近交易日的涨跌幅，按幅度降序取 Limit 个，
// 分数为 clamp(涨跌幅/10 + 0.5, 0.1, 1)。
type StockTrend struct{}

func (r *StockTrend) Name() string { return "recall.stock_trend" }

func (r *StockTrend) Recall(_ context.Context, rctx *core.RecommendContext) ([]*core.Item, error) {
	if rctx == nil || rctx.Catalog == nil || len(rctx.Catalog.Stocks) == 0 {
		return nil, nil
	}
	latest := LatestByCode(rctx.Catalog.Stocks)
	sort.SliceStable(latest, func(i, j int) bool {
		return math.Abs(latest[i].ChangeRate) > math.Abs(latest[j].ChangeRate)
	})

	n := limitOf(rctx, len(latest))
	out := make([]*core.Item, 0, n)
	for _, s := range latest[:n] {
		out = append(out, core.NewItem(s, feature.MomentumTrend(s.ChangeRate), AlgorithmTrend))
	}
	return out, nil
}

// LatestByCode 同一代码出现多次时只保留交易日最新的一条，保持首次出现的位置。
func LatestByCode(stocks []core.Stock) []core.Stock {
	index := make(map[string]int, len(stocks))
	out := make([]core.Stock, 0, len(stocks))
	for _, s := range stocks {
		key := s.Key()
		if i, ok := index[key]; ok {
			if core.TradeDateKey(s.TradeDate) > core.TradeDateKey(out[i].TradeDate) {
				out[i] = s
			}
			continue
		}
		index[key] = len(out)
		out = append(out, s)
	}
	return out
}
