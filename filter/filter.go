// Package filter 在召回之后剔除不该推荐给用户的产品。
package filter

import (
	"context"

	"github.com/rushteam/finreckit/core"
)

// Filter 对单个结果做判定：返回 true 表示剔除。
// 返回错误时 FilterNode 记录日志并保留该结果。
type Filter interface {
	Name() string
	ShouldFilter(ctx context.Context, rctx *core.RecommendContext, item *core.Item) (bool, error)
}
