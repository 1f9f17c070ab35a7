// Package rebalance 计算资产配置现状与目标配置之间的差距，并给出加仓/减仓建议。
//
// 这是一个固定目标表的差值计算（MPT 建议的近似），不做任何均值-方差优化：
// 单次遍历、结果确定。
package rebalance

import (
	"github.com/shopspring/decimal"

	"github.com/rushteam/finreckit/core"
)

// Action 是调仓方向
type Action string

const (
	ActionIncrease Action = "increase"
	ActionDecrease Action = "decrease"
)

// Transaction 是一条历史交易记录（只关心资产大类与金额）。
type Transaction struct {
	AssetClass core.AssetClass `json:"asset_class"`
	Amount     decimal.Decimal `json:"amount"`
}

// Suggestion 是单个资产大类的调仓建议。
type Suggestion struct {
	AssetClass core.AssetClass `json:"asset_class"`
	Action     Action          `json:"action"`
	Amount     decimal.Decimal `json:"amount"`     // 调仓金额，保留 2 位小数
	Percentage float64         `json:"percentage"` // 百分点差距，保留 1 位小数
}

// gapThreshold 以内（含）的差距不给建议，单位为百分点
var gapThreshold = decimal.RequireFromString("0.01")

var hundred = decimal.NewFromInt(100)

// targets 是按风险等级的目标配置（百分比）
var targets = map[core.RiskTier]map[core.AssetClass]int64{
	core.RiskLow:    {core.AssetFund: 50, core.AssetInsurance: 30, core.AssetStock: 20},
	core.RiskMedium: {core.AssetFund: 40, core.AssetInsurance: 30, core.AssetStock: 30},
	core.RiskHigh:   {core.AssetFund: 30, core.AssetInsurance: 20, core.AssetStock: 50},
}

// TargetAllocation 返回风险等级对应的目标配置百分比，未知等级按 medium。
func TargetAllocation(tier core.RiskTier) map[core.AssetClass]decimal.Decimal {
	row := targets[tier.Normalize()]
	out := make(map[core.AssetClass]decimal.Decimal, len(row))
	for class, pct := range row {
		out[class] = decimal.NewFromInt(pct)
	}
	return out
}

// Snapshot 是当前资产配置快照。
type Snapshot struct {
	Amounts     map[core.AssetClass]decimal.Decimal `json:"amounts"`
	Total       decimal.Decimal                     `json:"total_amount"`
	Percentages map[core.AssetClass]decimal.Decimal `json:"percentages"`
}

// NewSnapshot 按资产大类汇总交易金额。
// 三个大类之外的记录不计入汇总；总额不大于 0 时百分比为空。
func NewSnapshot(history []Transaction) Snapshot {
	s := Snapshot{
		Amounts:     make(map[core.AssetClass]decimal.Decimal, len(core.AssetClasses)),
		Percentages: make(map[core.AssetClass]decimal.Decimal, len(core.AssetClasses)),
	}
	for _, class := range core.AssetClasses {
		s.Amounts[class] = decimal.Zero
	}
	for _, tx := range history {
		cur, ok := s.Amounts[tx.AssetClass]
		if !ok {
			continue
		}
		s.Amounts[tx.AssetClass] = cur.Add(tx.Amount)
		s.Total = s.Total.Add(tx.Amount)
	}
	if !s.Total.IsPositive() {
		return s
	}
	for class, amount := range s.Amounts {
		s.Percentages[class] = amount.Div(s.Total).Mul(hundred)
	}
	return s
}

// Advise 对比当前配置与目标配置，按 fund / insurance / stock 顺序给出调仓建议。
// 尚无任何配置（总额为 0）时返回空列表。
func Advise(history []Transaction, tier core.RiskTier) []Suggestion {
	return AdviseSnapshot(NewSnapshot(history), tier)
}

// AdviseSnapshot 基于已有快照给出调仓建议。
func AdviseSnapshot(s Snapshot, tier core.RiskTier) []Suggestion {
	out := make([]Suggestion, 0, len(core.AssetClasses))
	if !s.Total.IsPositive() {
		return out
	}
	target := TargetAllocation(tier)
	for _, class := range core.AssetClasses {
		gap := target[class].Sub(s.Percentages[class])
		abs := gap.Abs()
		if abs.LessThanOrEqual(gapThreshold) {
			continue
		}
		action := ActionIncrease
		if gap.IsNegative() {
			action = ActionDecrease
		}
		out = append(out, Suggestion{
			AssetClass: class,
			Action:     action,
			Amount:     s.Total.Mul(abs).Div(hundred).Round(2),
			Percentage: abs.Round(1).InexactFloat64(),
		})
	}
	return out
}
