package catalog

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/rushteam/finreckit/core"
)

// InsuranceRecord 是样例数据中的保险记录。
type InsuranceRecord struct {
	ID           json.Number `json:"id"`
	Name         string      `json:"name"`
	Type         string      `json:"type"`
	Subtype      string      `json:"subtype"`
	SuitableAges string      `json:"suitable_ages"`
	Premium      string      `json:"premium"`
	Coverage     string      `json:"coverage"`
	Tags         any         `json:"tags"` // 字符串或字符串数组
}

// FundRecord 是样例数据中的基金记录，涨跌幅为 "+1.23%" 形式的字符串。
type FundRecord struct {
	Code        string   `json:"code"`
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	NetValue    float64  `json:"net_value"`
	DailyChange string   `json:"daily_change"`
	WeekChange  string   `json:"week_change"`
	MonthChange string   `json:"month_change"`
	StarCount   *int     `json:"star_count,omitempty"`
	Fee         *float64 `json:"fee,omitempty"`
}

// StockRecord 是样例数据中的股票记录，市值为 "1234.5亿元" 形式的字符串。
type StockRecord struct {
	Code          string   `json:"code"`
	Name          string   `json:"name"`
	Industry      string   `json:"industry"`
	CurrentPrice  float64  `json:"current_price"`
	ChangeRate    string   `json:"change_rate"`
	MarketCap     string   `json:"market_cap"`
	PE            *float64 `json:"pe_ratio,omitempty"`
	PB            *float64 `json:"pb_ratio,omitempty"`
	DividendYield string   `json:"dividend_yield"`
}

// Sample 是样例数据文件的整体结构。
type Sample struct {
	Insurance []InsuranceRecord `json:"insurance"`
	Funds     []FundRecord      `json:"funds"`
	Stocks    []StockRecord     `json:"stocks"`
}

func malformed(field, raw string) error {
	return core.NewDomainError(core.ModuleCatalog, core.ErrorCodeMalformedNumeric,
		fmt.Sprintf("catalog: %s %q is not a number", field, raw))
}

// ParsePercent 解析 "+1.23%"、"-0.5%"、"2" 这类百分数文本，返回百分数值（1.23）。
func ParsePercent(s string) (float64, error) {
	raw := s
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "%")
	s = strings.TrimPrefix(s, "+")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, malformed("percent", raw)
	}
	return v, nil
}

// ParseYiYuan 解析 "1234.5亿元" 形式的金额，返回以元为单位的数值。
func ParseYiYuan(s string) (float64, error) {
	raw := s
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "亿元"))
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, malformed("amount", raw)
	}
	return v * 1e8, nil
}

func tagsText(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []any:
		parts := make([]string, 0, len(t))
		for _, e := range t {
			if s, ok := e.(string); ok {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ",")
	default:
		return ""
	}
}

// Insurance 转换为候选产品。保费保留原文，由特征编码时解析。
func (r InsuranceRecord) Insurance() core.Insurance {
	return core.Insurance{
		ID:           r.ID.String(),
		Name:         r.Name,
		Category:     r.Type,
		Subcategory:  r.Subtype,
		BasePremium:  r.Premium,
		Tags:         tagsText(r.Tags),
		SuitableAges: r.SuitableAges,
		Coverage:     r.Coverage,
	}
}

// Fund 转换为候选产品，日涨跌幅无法解析时返回 MALFORMED_NUMERIC。
// 周/月涨跌幅是展示字段，无法解析时置空。
func (r FundRecord) Fund() (core.Fund, error) {
	daily, err := ParsePercent(r.DailyChange)
	if err != nil {
		return core.Fund{}, err
	}
	f := core.Fund{
		ID:          r.Code,
		Code:        r.Code,
		Name:        r.Name,
		FundType:    r.Type,
		NetValue:    r.NetValue,
		StarCount:   r.StarCount,
		Fee:         r.Fee,
		DailyChange: &daily,
	}
	if v, err := ParsePercent(r.WeekChange); err == nil {
		f.WeekChange = &v
	}
	if v, err := ParsePercent(r.MonthChange); err == nil {
		f.MonthChange = &v
	}
	return f, nil
}

// Stock 转换为候选产品，涨跌幅无法解析时返回 MALFORMED_NUMERIC。
func (r StockRecord) Stock() (core.Stock, error) {
	change, err := ParsePercent(r.ChangeRate)
	if err != nil {
		return core.Stock{}, err
	}
	s := core.Stock{
		Code:         r.Code,
		Symbol:       r.Code,
		Name:         r.Name,
		Industry:     r.Industry,
		CurrentPrice: r.CurrentPrice,
		ChangeRate:   change,
		PE:           r.PE,
		PB:           r.PB,
	}
	if v, err := ParseYiYuan(r.MarketCap); err == nil {
		s.MarketCap = &v
	}
	if r.DividendYield != "" {
		if v, err := ParsePercent(r.DividendYield); err == nil {
			s.DividendYield = &v
		}
	}
	return s, nil
}

// Build 把样例数据转换为 Catalog；数值无法解析的记录被跳过并记录 debug 日志。
func (s Sample) Build(ctx context.Context) *core.Catalog {
	log := zerolog.Ctx(ctx)
	c := &core.Catalog{
		Insurance: make([]core.Insurance, 0, len(s.Insurance)),
		Funds:     make([]core.Fund, 0, len(s.Funds)),
		Stocks:    make([]core.Stock, 0, len(s.Stocks)),
	}
	for _, r := range s.Insurance {
		c.Insurance = append(c.Insurance, r.Insurance())
	}
	for _, r := range s.Funds {
		f, err := r.Fund()
		if err != nil {
			log.Debug().Err(err).Str("code", r.Code).Msg("fund record skipped")
			continue
		}
		c.Funds = append(c.Funds, f)
	}
	for _, r := range s.Stocks {
		st, err := r.Stock()
		if err != nil {
			log.Debug().Err(err).Str("code", r.Code).Msg("stock record skipped")
			continue
		}
		c.Stocks = append(c.Stocks, st)
	}
	return c
}

// DecodeSample 解析样例数据 JSON。
func DecodeSample(data []byte) (Sample, error) {
	var s Sample
	if err := json.Unmarshal(data, &s); err != nil {
		return Sample{}, fmt.Errorf("catalog: decode sample: %w", err)
	}
	return s, nil
}
