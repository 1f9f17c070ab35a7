package catalog

import (
	"sort"

	"github.com/rushteam/finreckit/core"
)

// StockInfo 是股票主数据。
type StockInfo struct {
	TSCode   string `json:"ts_code"`
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Area     string `json:"area"`
	Industry string `json:"industry"`
}

// StockDaily 是股票日线。
type StockDaily struct {
	TSCode    string  `json:"ts_code"`
	TradeDate string  `json:"trade_date"` // YYYYMMDD 或 YYYY-MM-DD
	Close     float64 `json:"close"`
	PctChg    float64 `json:"pct_chg"`
}

// JoinStocks 用每只股票最近交易日的日线补全主数据，得到股票候选集。
// 没有日线的主数据、没有主数据的日线都被跳过，不报错。
// 输出按 infos 的顺序。
func JoinStocks(infos []StockInfo, dailies []StockDaily) []core.Stock {
	latest := make(map[string]StockDaily, len(dailies))
	for _, d := range dailies {
		cur, ok := latest[d.TSCode]
		if !ok || core.TradeDateKey(d.TradeDate) > core.TradeDateKey(cur.TradeDate) {
			latest[d.TSCode] = d
		}
	}

	out := make([]core.Stock, 0, len(infos))
	seen := make(map[string]struct{}, len(infos))
	for _, info := range infos {
		if _, dup := seen[info.TSCode]; dup {
			continue
		}
		d, ok := latest[info.TSCode]
		if !ok {
			continue
		}
		seen[info.TSCode] = struct{}{}
		out = append(out, core.Stock{
			Code:         info.TSCode,
			Symbol:       info.Symbol,
			Name:         info.Name,
			Area:         info.Area,
			Industry:     info.Industry,
			CurrentPrice: d.Close,
			ChangeRate:   d.PctChg,
			TradeDate:    d.TradeDate,
		})
	}
	return out
}

// Industries 返回股票所属行业的集合，用于构造持仓行业。
func Industries(stocks []core.Stock) map[string]struct{} {
	out := make(map[string]struct{}, len(stocks))
	for _, s := range stocks {
		if s.Industry != "" {
			out[s.Industry] = struct{}{}
		}
	}
	return out
}

// SortedIndustries 返回排序后的行业列表，便于日志与输出。
func SortedIndustries(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
