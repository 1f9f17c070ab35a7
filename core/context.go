package core

import (
	"math/rand"
	"sync"

	"github.com/google/uuid"

	"github.com/rushteam/finreckit/pkg/utils"
)

// RecommendContext 承载一次推荐请求的用户、候选集与请求级参数，贯穿整个 Pipeline 透传。
// 每个请求独立构造，节点之间不共享可变状态。
type RecommendContext struct {
	RequestID string

	User    UserProfile
	Catalog *Catalog

	// ClickedFundID 是用户最近点击的基金，为空或不在候选集中时相似基金策略跳过
	ClickedFundID string

	// HeldIndustries 是用户当前持仓股票所属行业
	HeldIndustries map[string]struct{}

	// Rand 是请求级随机源，仅股票静态行业打分使用；测试中传入固定种子
	Rand *rand.Rand

	// Limit 是本次请求返回结果数上限；0 表示返回空列表，负数表示不截断
	Limit int

	// Labels 是请求级标签，例如 fund_encoding / strategy_skipped
	Labels map[string]utils.Label
	mu     sync.Mutex
}

// DefaultLimit 是未指定时的返回结果数上限。
const DefaultLimit = 5

// NewRecommendContext 创建请求上下文并分配 RequestID。
func NewRecommendContext(user UserProfile, catalog *Catalog) *RecommendContext {
	if catalog == nil {
		catalog = &Catalog{}
	}
	return &RecommendContext{
		RequestID: uuid.NewString(),
		User:      user,
		Catalog:   catalog,
		Limit:     DefaultLimit,
		Labels:    make(map[string]utils.Label),
	}
}

// HoldsIndustry 判断用户是否持有该行业的股票。
func (rctx *RecommendContext) HoldsIndustry(industry string) bool {
	if rctx == nil || len(rctx.HeldIndustries) == 0 {
		return false
	}
	_, ok := rctx.HeldIndustries[industry]
	return ok
}

// PutLabel 写入请求级 Label；召回源可能并发执行，这里加锁。
func (rctx *RecommendContext) PutLabel(key string, lbl utils.Label) {
	rctx.mu.Lock()
	defer rctx.mu.Unlock()
	if rctx.Labels == nil {
		rctx.Labels = make(map[string]utils.Label)
	}
	if old, ok := rctx.Labels[key]; ok {
		rctx.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	rctx.Labels[key] = lbl
}

// GetLabel 获取请求级 Label。
func (rctx *RecommendContext) GetLabel(key string) (utils.Label, bool) {
	rctx.mu.Lock()
	defer rctx.mu.Unlock()
	if rctx.Labels == nil {
		return utils.Label{}, false
	}
	lbl, ok := rctx.Labels[key]
	return lbl, ok
}
