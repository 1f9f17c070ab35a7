package filter

import (
	"context"

	"github.com/rushteam/finreckit/core"
	"github.com/rushteam/finreckit/pkg/dsl"
)

// ExprFilter 是基于 CEL 规则的过滤器：表达式为 true 的产品被保留，为 false 的被过滤。
// 例如 `item.fee < 1.5` 只保留费率低于 1.5% 的基金。
type ExprFilter struct {
	prg *dsl.Program
}

// NewExprFilter 编译规则表达式。
func NewExprFilter(expr string) (*ExprFilter, error) {
	prg, err := dsl.Compile(expr)
	if err != nil {
		return nil, err
	}
	return &ExprFilter{prg: prg}, nil
}

func (f *ExprFilter) Name() string {
	return "filter.expr"
}

// ShouldFilter 求值出错（例如字段不存在）时返回错误，FilterNode 会忽略错误并保留该产品。
func (f *ExprFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}
	keep, err := f.prg.Evaluate(item, rctx)
	if err != nil {
		return false, err
	}
	return !keep, nil
}
