package core

import "github.com/shopspring/decimal"

// DefaultAge 是缺失年龄时用于特征构建的默认值。
const DefaultAge = 25

// UserProfile 是用户画像。
//
// 所有字段都有文档化的降级默认值：
//   - Age 为空时按 DefaultAge 处理
//   - RiskTolerance 无法识别时按 RiskMedium 处理
//   - TotalAssets 为零值时按 0 处理
type UserProfile struct {
	UserID        string          `json:"user_id"`
	Age           *int            `json:"age,omitempty"`
	RiskTolerance RiskTier        `json:"risk_tolerance"`
	TotalAssets   decimal.Decimal `json:"total_assets"`
}

// NewUserProfile 创建用户画像，age <= 0 视为缺失。
func NewUserProfile(userID string, age int, risk string, totalAssets decimal.Decimal) UserProfile {
	p := UserProfile{
		UserID:        userID,
		RiskTolerance: ParseRiskTier(risk),
		TotalAssets:   totalAssets,
	}
	if age > 0 {
		p.Age = &age
	}
	return p
}

// EffectiveAge 返回用于特征构建的年龄。
func (p UserProfile) EffectiveAge() int {
	if p.Age == nil || *p.Age <= 0 {
		return DefaultAge
	}
	return *p.Age
}

// Tier 返回归一化后的风险等级。
func (p UserProfile) Tier() RiskTier {
	return p.RiskTolerance.Normalize()
}
