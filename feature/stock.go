package feature

import (
	"math"

	"github.com/rushteam/finreckit/core"
)

const (
	industryMatch   = 1.0
	industryNoMatch = 0.3

	trendFloor = 0.1
	trendCeil  = 1.0
)

// DefaultPreferredIndustries 是风险等级到偏好行业的默认表（Tushare 行业口径）。
var DefaultPreferredIndustries = map[core.RiskTier][]string{
	core.RiskLow:    {"银行", "电力", "水务", "路桥", "供气供热"},
	core.RiskMedium: {"白酒", "食品", "家用电器", "化学制药", "中成药", "保险"},
	core.RiskHigh:   {"半导体", "软件服务", "通信设备", "电气设备", "元器件", "互联网"},
}

// IndustryAffinity 行业命中用户持仓行业或风险等级偏好行业时为 1.0，否则 0.3。
func IndustryAffinity(industry string, held map[string]struct{}, preferred []string) float64 {
	if industry == "" {
		return industryNoMatch
	}
	if _, ok := held[industry]; ok {
		return industryMatch
	}
	for _, p := range preferred {
		if p == industry {
			return industryMatch
		}
	}
	return industryNoMatch
}

// MagnitudeTrend 按涨跌幅绝对值计算趋势分：clamp(|rate|/10, 0.1, 1.0)。
func MagnitudeTrend(changeRate float64) float64 {
	return Clamp(math.Abs(changeRate)/10.0, trendFloor, trendCeil)
}

// MomentumTrend 按涨跌幅方向计算动量分：clamp(rate/10 + 0.5, 0.1, 1.0)。
func MomentumTrend(changeRate float64) float64 {
	return Clamp(changeRate/10.0+0.5, trendFloor, trendCeil)
}
