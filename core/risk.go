package core

import "strings"

// RiskTier 是用户的风险承受等级，驱动可选产品类型与目标资产配置。
type RiskTier string

const (
	RiskLow    RiskTier = "low"
	RiskMedium RiskTier = "medium"
	RiskHigh   RiskTier = "high"
)

// ParseRiskTier 把外部输入解析为 RiskTier。
// 支持英文（low/medium/high）与中文（保守/稳健/激进）两种写法，
// 无法识别或为空时返回 RiskMedium。
func ParseRiskTier(s string) RiskTier {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low", "conservative", "保守", "低":
		return RiskLow
	case "high", "aggressive", "激进", "高":
		return RiskHigh
	default:
		return RiskMedium
	}
}

// Normalize 保证 tier 总是三档之一。
func (t RiskTier) Normalize() RiskTier {
	return ParseRiskTier(string(t))
}

// Score 返回风险等级在特征向量中的编码值。
func (t RiskTier) Score() float64 {
	switch t.Normalize() {
	case RiskLow:
		return 0.2
	case RiskHigh:
		return 0.8
	default:
		return 0.5
	}
}

func (t RiskTier) String() string { return string(t.Normalize()) }
