package feature

import "math"

// Clamp 把 v 限制在 [lo, hi]；NaN 视为 lo。
func Clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Unit 把 v 限制在 [0, 1]。
func Unit(v float64) float64 { return Clamp(v, 0, 1) }

// CapRatio 计算 v/max 并封顶到 1（下限 0），max <= 0 时返回 0。
func CapRatio(v, max float64) float64 {
	if max <= 0 {
		return 0
	}
	return Unit(v / max)
}

// ClampVector 原地把向量每个分量限制到 [0,1] 并返回它。
func ClampVector(vec []float64) []float64 {
	for i, v := range vec {
		vec[i] = Unit(v)
	}
	return vec
}
