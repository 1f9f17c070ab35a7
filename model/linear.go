package model

import (
	"fmt"
	"sort"
)

// LinearModel 是线性加权打分：score = Bias + Σ Weight_i * Feature_i。
// 与 LR 不同，这里不做 Sigmoid 变换，权重之和为 1 时分数仍落在 [0,1]。
type LinearModel struct {
	Bias    float64
	Weights map[string]float64
}

// NewLinearModel 创建线性模型，weights 为空时报错。
func NewLinearModel(bias float64, weights map[string]float64) (*LinearModel, error) {
	if len(weights) == 0 {
		return nil, fmt.Errorf("linear model: weights are required")
	}
	return &LinearModel{Bias: bias, Weights: weights}, nil
}

func (m *LinearModel) Name() string { return "linear" }

// Predict 按特征名排序后累加，保证浮点结果与 map 遍历顺序无关。
func (m *LinearModel) Predict(features map[string]float64) (float64, error) {
	keys := make([]string, 0, len(features))
	for k := range features {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	score := m.Bias
	for _, k := range keys {
		if w, ok := m.Weights[k]; ok {
			score += w * features[k]
		}
	}
	return score, nil
}
