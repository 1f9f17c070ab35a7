// Package vector 提供向量相似度与近邻检索原语（欧氏 KNN、余弦相似度）。
// 所有函数都是纯函数：相同输入总是得到相同的顺序与分数。
package vector

import (
	"sort"

	"gonum.org/v1/gonum/floats"
)

// Epsilon 避免精确命中（距离为 0）时出现除零。
const Epsilon = 1e-6

// Neighbor 是一次检索命中：候选在输入切片中的下标、距离与分数。
type Neighbor struct {
	Index    int
	Distance float64
	Score    float64
}

// Euclidean 计算欧氏距离，维度不一致时 ok=false。
func Euclidean(a, b []float64) (float64, bool) {
	if len(a) != len(b) || len(a) == 0 {
		return 0, false
	}
	return floats.Distance(a, b, 2), true
}

// Cosine 计算余弦相似度。任一向量为零向量或维度不一致时返回 0。
func Cosine(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	na, nb := floats.Norm(a, 2), floats.Norm(b, 2)
	if na == 0 || nb == 0 {
		return 0
	}
	return floats.Dot(a, b) / (na * nb)
}

// DistanceScore 把距离转换为分数：1 / (d + 1e-6)，距离越小分数越高。
func DistanceScore(d float64) float64 {
	return 1.0 / (d + Epsilon)
}

// KNN 在 candidates 中找出与 query 欧氏距离最近的 min(k, N) 个候选，按距离升序返回。
//
// 候选数少于 2 时不做检索（返回 nil），由其它策略兜底。
// 距离相同的候选保持输入顺序；维度与 query 不一致的候选被忽略。
func KNN(query []float64, candidates [][]float64, k int) []Neighbor {
	if len(candidates) < 2 || k <= 0 {
		return nil
	}
	hits := make([]Neighbor, 0, len(candidates))
	for i, c := range candidates {
		d, ok := Euclidean(query, c)
		if !ok {
			continue
		}
		hits = append(hits, Neighbor{Index: i, Distance: d, Score: DistanceScore(d)})
	}
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Distance < hits[j].Distance
	})
	if k < len(hits) {
		hits = hits[:k]
	}
	return hits
}

// RankCosine 计算 query 与每个候选的余弦相似度，按相似度降序返回全部候选（稳定排序）。
func RankCosine(query []float64, candidates [][]float64) []Neighbor {
	if len(candidates) == 0 {
		return nil
	}
	hits := make([]Neighbor, 0, len(candidates))
	for i, c := range candidates {
		hits = append(hits, Neighbor{Index: i, Score: Cosine(query, c)})
	}
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})
	return hits
}
