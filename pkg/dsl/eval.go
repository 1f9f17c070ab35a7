package dsl

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/rushteam/finreckit/core"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvErr  error
	celEnvOnce sync.Once
)

// getCELEnv 获取或创建 CEL 环境
func getCELEnv() (*cel.Env, error) {
	celEnvOnce.Do(func() {
		celEnv, celEnvErr = cel.NewEnv(
			cel.Variable("item", cel.DynType),
			cel.Variable("label", cel.DynType),
			cel.Variable("rctx", cel.DynType),
		)
	})
	return celEnv, celEnvErr
}

// Program 是编译好的规则表达式，使用 CEL (Common Expression Language) 语法，可并发复用。
//
// 可用变量：
//   - item.key / item.name / item.asset_class / item.score / item.algorithm
//   - item.category / item.fund_type / item.industry / item.change_rate / item.star_count / item.fee
//   - label.recall_source 等（值为 Label.Value）
//   - rctx.risk_tolerance / rctx.age / rctx.total_assets
//
// 示例：
//   - `item.score > 0.5`
//   - `item.asset_class == "fund" && item.fee < 1.5`
//   - `rctx.risk_tolerance == "low" && item.industry != "半导体"`
type Program struct {
	expr string
	prg  cel.Program
}

// Compile 编译表达式，表达式必须返回布尔值。
func Compile(expr string) (*Program, error) {
	env, err := getCELEnv()
	if err != nil {
		return nil, fmt.Errorf("cel env: %w", err)
	}
	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile %q: %w", expr, issues.Err())
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program %q: %w", expr, err)
	}
	return &Program{expr: expr, prg: prg}, nil
}

// String 返回原始表达式
func (p *Program) String() string { return p.expr }

// Evaluate 对单个 Item 求值。
// 访问不存在的 key 会报错，存在性检查请用 `"key" in item`。
func (p *Program) Evaluate(item *core.Item, rctx *core.RecommendContext) (bool, error) {
	out, _, err := p.prg.Eval(buildInput(item, rctx))
	if err != nil {
		return false, fmt.Errorf("eval %q: %w", p.expr, err)
	}
	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("expression %q must return boolean, got %T", p.expr, out.Value())
	}
	return result, nil
}

// buildInput 构建 CEL 表达式的输入数据
func buildInput(item *core.Item, rctx *core.RecommendContext) map[string]any {
	it := map[string]any{
		"key":       item.Key(),
		"score":     item.Score,
		"algorithm": item.Algorithm,
	}
	if item.Product != nil {
		it["name"] = item.Product.DisplayName()
		it["asset_class"] = string(item.Product.AssetClass())
	}
	switch p := item.Product.(type) {
	case core.Insurance:
		it["category"] = p.Category
		it["tags"] = p.Tags
	case core.Fund:
		it["fund_type"] = p.FundType
		if p.StarCount != nil {
			it["star_count"] = int64(*p.StarCount)
		}
		if p.Fee != nil {
			it["fee"] = *p.Fee
		}
		if p.DailyChange != nil {
			it["daily_change"] = *p.DailyChange
		}
	case core.Stock:
		it["industry"] = p.Industry
		it["change_rate"] = p.ChangeRate
		it["current_price"] = p.CurrentPrice
	}

	labels := make(map[string]any, len(item.Labels))
	for k, v := range item.Labels {
		labels[k] = v.Value
	}

	rc := map[string]any{}
	if rctx != nil {
		assets, _ := rctx.User.TotalAssets.Float64()
		rc["request_id"] = rctx.RequestID
		rc["risk_tolerance"] = string(rctx.User.Tier())
		rc["age"] = int64(rctx.User.EffectiveAge())
		rc["total_assets"] = assets
	}

	return map[string]any{
		"item":  it,
		"label": labels,
		"rctx":  rc,
	}
}
