package core

import "github.com/rushteam/finreckit/pkg/utils"

// Item 是推荐链路中的统一承载结构（即对外的打分结果）。
// Product 保留候选产品的全部展示字段；Score 与 Algorithm 说明由哪个策略给出了多少分；
// Labels 用于解释与观测。
type Item struct {
	Product   Product                `json:"product"`
	Score     float64                `json:"score"`
	Algorithm string                 `json:"algorithm"`
	Labels    map[string]utils.Label `json:"labels,omitempty"`
}

func NewItem(p Product, score float64, algorithm string) *Item {
	return &Item{
		Product:   p,
		Score:     score,
		Algorithm: algorithm,
		Labels:    make(map[string]utils.Label),
	}
}

// Key 返回去重使用的身份标识。
func (it *Item) Key() string {
	if it == nil || it.Product == nil {
		return ""
	}
	return it.Product.Key()
}

// PutLabel 写入 Label；若已存在同名 key，则按默认 Merge 规则累积。
func (it *Item) PutLabel(key string, lbl utils.Label) {
	if it.Labels == nil {
		it.Labels = make(map[string]utils.Label)
	}
	if old, ok := it.Labels[key]; ok {
		it.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	it.Labels[key] = lbl
}

// Insurance 返回保险负载，非保险时 ok=false。
func (it *Item) Insurance() (Insurance, bool) {
	p, ok := it.Product.(Insurance)
	return p, ok
}

// Fund 返回基金负载。
func (it *Item) Fund() (Fund, bool) {
	p, ok := it.Product.(Fund)
	return p, ok
}

// Stock 返回股票负载。
func (it *Item) Stock() (Stock, bool) {
	p, ok := it.Product.(Stock)
	return p, ok
}
