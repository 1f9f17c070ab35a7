package feature

import (
	"math"
	"strings"

	"github.com/rushteam/finreckit/core"
)

// FundCategory 是基金类型归一后的四类。
type FundCategory string

const (
	FundMoney   FundCategory = "money"
	FundBond    FundCategory = "bond"
	FundMixed   FundCategory = "mixed"
	FundEquity  FundCategory = "equity"
	FundUnknown FundCategory = ""
)

// ClassifyFund 把数据源中的基金类型文本（如 "混合型-偏股"、"债券型"）归为四类之一。
func ClassifyFund(fundType string) FundCategory {
	t := strings.ToLower(fundType)
	switch {
	case strings.Contains(t, "货币") || strings.Contains(t, "money"):
		return FundMoney
	case strings.Contains(t, "混合") || strings.Contains(t, "mixed"):
		return FundMixed
	case strings.Contains(t, "债") || strings.Contains(t, "bond"):
		return FundBond
	case strings.Contains(t, "股票") || strings.Contains(t, "指数") || strings.Contains(t, "equity"):
		return FundEquity
	default:
		return FundUnknown
	}
}

var fundTypeRisk = map[FundCategory]float64{
	FundMoney:  0.2,
	FundBond:   0.4,
	FundMixed:  0.6,
	FundEquity: 0.8,
}

// FundTypeRisk 返回基金类型的风险编码，未知类型为 0.5。
func FundTypeRisk(fundType string) float64 {
	if s, ok := fundTypeRisk[ClassifyFund(fundType)]; ok {
		return s
	}
	return 0.5
}

// FundEncoding 选择基金向量的编码方式。
// 两种编码的分值尺度不可比较，一次请求内只使用一种。
type FundEncoding string

const (
	// FundEncodingAuto 当所有基金都带日涨跌幅时用 Market，否则用 Rating
	FundEncodingAuto FundEncoding = "auto"
	// FundEncodingMarket [类型风险, |日涨跌幅|/10, 费率/3]
	FundEncodingMarket FundEncoding = "market"
	// FundEncodingRating [类型风险, 星级/5, 费率/3]
	FundEncodingRating FundEncoding = "rating"
)

// ParseFundEncoding 解析配置值，无法识别时返回 FundEncodingAuto。
func ParseFundEncoding(s string) FundEncoding {
	switch FundEncoding(strings.ToLower(strings.TrimSpace(s))) {
	case FundEncodingMarket:
		return FundEncodingMarket
	case FundEncodingRating:
		return FundEncodingRating
	default:
		return FundEncodingAuto
	}
}

// Resolve 针对一份候选集确定实际使用的编码（结果只会是 Market 或 Rating）。
func (e FundEncoding) Resolve(funds []core.Fund) FundEncoding {
	switch e {
	case FundEncodingMarket, FundEncodingRating:
		return e
	}
	if len(funds) == 0 {
		return FundEncodingRating
	}
	for _, f := range funds {
		if !f.HasMarketData() {
			return FundEncodingRating
		}
	}
	return FundEncodingMarket
}

const (
	changeCap  = 10.0
	feeCap     = 3.0
	starCap    = 5.0
	missingDim = 0.5
)

// FundVector 按指定编码构建基金特征向量。encoding 应已 Resolve。
func FundVector(f core.Fund, encoding FundEncoding) []float64 {
	fee := missingDim
	if f.Fee != nil {
		fee = CapRatio(*f.Fee, feeCap)
	}
	second := missingDim
	switch encoding {
	case FundEncodingMarket:
		if f.DailyChange != nil {
			second = CapRatio(math.Abs(*f.DailyChange), changeCap)
		}
	default:
		if stars, ok := f.Stars(); ok {
			second = CapRatio(float64(stars), starCap)
		}
	}
	return ClampVector([]float64{FundTypeRisk(f.FundType), second, fee})
}

// FundPopularity 返回风险偏好召回的排序键：
// Market 编码用 |日涨跌幅|，Rating 编码用星级；缺失为 -1，排在最后。
func FundPopularity(f core.Fund, encoding FundEncoding) float64 {
	if encoding == FundEncodingMarket {
		if f.DailyChange == nil {
			return -1
		}
		return math.Abs(*f.DailyChange)
	}
	return starKey(f)
}

// FundHeat 返回热度兜底的排序键：
// Market 编码直接用日涨跌幅（带符号，大跌的基金排在后面），Rating 编码用星级。
// 缺失时为 -Inf，排在最后。
func FundHeat(f core.Fund, encoding FundEncoding) float64 {
	if encoding == FundEncodingMarket {
		if f.DailyChange == nil {
			return math.Inf(-1)
		}
		return *f.DailyChange
	}
	return starKey(f)
}

func starKey(f core.Fund) float64 {
	if stars, ok := f.Stars(); ok {
		return float64(stars)
	}
	return -1
}

// AllowedFundCategories 返回风险等级允许的基金类型。
func AllowedFundCategories(tier core.RiskTier) map[FundCategory]struct{} {
	allowed := map[FundCategory]struct{}{FundMoney: {}, FundBond: {}}
	switch tier.Normalize() {
	case core.RiskMedium:
		allowed[FundMixed] = struct{}{}
	case core.RiskHigh:
		allowed[FundMixed] = struct{}{}
		allowed[FundEquity] = struct{}{}
	}
	return allowed
}
