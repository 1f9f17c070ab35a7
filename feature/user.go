package feature

import "github.com/rushteam/finreckit/core"

const (
	ageCap    = 80.0
	assetsCap = 10_000_000.0
)

// UserVector 构建用户特征向量：[年龄/80, 风险编码, 总资产/1000万]，每维封顶 1。
func UserVector(p core.UserProfile) []float64 {
	assets, _ := p.TotalAssets.Float64()
	return ClampVector([]float64{
		CapRatio(float64(p.EffectiveAge()), ageCap),
		p.Tier().Score(),
		CapRatio(assets, assetsCap),
	})
}
