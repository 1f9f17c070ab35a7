package feature

// OneHotEncoder One-Hot 编码（独热编码）
// 将类别特征转换为定长向量，每个类别对应一个维度。
// 未登记的类别按 Fallback 填满所有维度（Fallback 为 0 时得到全零向量）。
type OneHotEncoder struct {
	Categories []string
	Fallback   float64
}

// NewOneHotEncoder 创建 One-Hot 编码器
func NewOneHotEncoder(categories []string, fallback float64) *OneHotEncoder {
	return &OneHotEncoder{Categories: categories, Fallback: fallback}
}

// Dim 返回向量维度
func (e *OneHotEncoder) Dim() int { return len(e.Categories) }

// Encode 编码单个类别值
func (e *OneHotEncoder) Encode(value string) []float64 {
	out := make([]float64, len(e.Categories))
	for i, cat := range e.Categories {
		if cat == value {
			out[i] = 1.0
			return out
		}
	}
	for i := range out {
		out[i] = e.Fallback
	}
	return out
}

// LookupEncoder 把类别映射为单个分值（类似 LabelEncoder，但输出是 [0,1] 的分值），
// 未登记的类别返回 Default。
type LookupEncoder struct {
	Scores  map[string]float64
	Default float64
}

// Encode 编码单个类别值
func (e *LookupEncoder) Encode(value string) float64 {
	if s, ok := e.Scores[value]; ok {
		return s
	}
	return e.Default
}

// Has 判断类别是否已登记
func (e *LookupEncoder) Has(value string) bool {
	_, ok := e.Scores[value]
	return ok
}
