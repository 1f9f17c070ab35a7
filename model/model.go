// Package model 提供召回策略内部使用的打分模型。
package model

// RankModel 把一组具名特征合成一个分数，分数只在同一策略内可比较。
type RankModel interface {
	Name() string
	Predict(features map[string]float64) (float64, error)
}
