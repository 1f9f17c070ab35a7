package core

import "strings"

// AssetClass 标识候选产品所属的资产大类。
type AssetClass string

const (
	AssetInsurance AssetClass = "insurance"
	AssetFund      AssetClass = "fund"
	AssetStock     AssetClass = "stock"
)

// AssetClasses 是固定的资产大类顺序，再平衡建议按此顺序输出。
var AssetClasses = []AssetClass{AssetFund, AssetInsurance, AssetStock}

// Product 是候选产品的封闭和类型：只有 Insurance / Fund / Stock 实现它。
type Product interface {
	// Key 返回去重使用的身份标识（保险/基金为 ID，股票为代码）
	Key() string
	AssetClass() AssetClass
	DisplayName() string

	isProduct()
}

// Insurance 是保险候选产品。
type Insurance struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`    // 险种大类：意外险/医疗险/寿险/重疾险/养老险/财产险
	Subcategory string `json:"subcategory"` // 具体险种
	BasePremium string `json:"base_premium"`
	Tags        string `json:"tags"`
	// SuitableAges 形如 "18-60"，为空表示未声明
	SuitableAges string `json:"suitable_ages,omitempty"`
	Coverage     string `json:"coverage_summary,omitempty"`
}

func (p Insurance) Key() string            { return p.ID }
func (p Insurance) AssetClass() AssetClass { return AssetInsurance }
func (p Insurance) DisplayName() string    { return p.Name }
func (Insurance) isProduct()               {}

// Fund 是基金候选产品。涨跌幅均为百分数（1.5 表示 1.5%）。
type Fund struct {
	ID       string  `json:"id"`
	Code     string  `json:"code"`
	Name     string  `json:"name"`
	FundType string  `json:"fund_type"` // 货币型/债券型/混合型/股票型
	NetValue float64 `json:"net_value,omitempty"`

	StarCount *int     `json:"star_count,omitempty"` // 0-5
	Fee       *float64 `json:"fee,omitempty"`

	DailyChange *float64 `json:"daily_change,omitempty"`
	WeekChange  *float64 `json:"week_change,omitempty"`
	MonthChange *float64 `json:"month_change,omitempty"`
}

func (p Fund) Key() string            { return p.ID }
func (p Fund) AssetClass() AssetClass { return AssetFund }
func (p Fund) DisplayName() string    { return p.Name }
func (Fund) isProduct()               {}

// HasMarketData 表示基金是否带有日涨跌幅行情。
func (p Fund) HasMarketData() bool { return p.DailyChange != nil }

// Stars 返回星级，缺失时 ok=false。
func (p Fund) Stars() (int, bool) {
	if p.StarCount == nil {
		return 0, false
	}
	return *p.StarCount, true
}

// Stock 是股票候选产品，ChangeRate 取最近交易日的涨跌幅（百分数）。
type Stock struct {
	Code         string  `json:"code"` // ts_code，例如 600000.SH
	Symbol       string  `json:"symbol"`
	Name         string  `json:"name"`
	Area         string  `json:"area,omitempty"`
	Industry     string  `json:"industry"`
	CurrentPrice float64 `json:"current_price"`
	ChangeRate   float64 `json:"change_rate"`
	TradeDate    string  `json:"trade_date,omitempty"`

	MarketCap     *float64 `json:"market_cap,omitempty"`
	PE            *float64 `json:"pe,omitempty"`
	PB            *float64 `json:"pb,omitempty"`
	DividendYield *float64 `json:"dividend_yield,omitempty"`
}

// Key 优先使用 ts_code，缺失时退化为 symbol。
func (p Stock) Key() string {
	if p.Code != "" {
		return p.Code
	}
	return p.Symbol
}
func (p Stock) AssetClass() AssetClass { return AssetStock }

// TradeDateKey 返回可按字符串比较的交易日（兼容 YYYYMMDD 与 YYYY-MM-DD）。
func TradeDateKey(d string) string {
	return strings.ReplaceAll(d, "-", "")
}

func (p Stock) DisplayName() string    { return p.Name }
func (Stock) isProduct()               {}

// Catalog 是一次请求内的候选集快照。
type Catalog struct {
	Insurance []Insurance `json:"insurance,omitempty"`
	Funds     []Fund      `json:"funds,omitempty"`
	Stocks    []Stock     `json:"stocks,omitempty"`
}

// FindFund 按 ID 查找基金。
func (c *Catalog) FindFund(id string) (Fund, bool) {
	if c == nil || id == "" {
		return Fund{}, false
	}
	for _, f := range c.Funds {
		if f.ID == id {
			return f, true
		}
	}
	return Fund{}, false
}

var (
	_ Product = Insurance{}
	_ Product = Fund{}
	_ Product = Stock{}
)
