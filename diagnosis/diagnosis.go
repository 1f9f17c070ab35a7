// Package diagnosis 提供简单的个人财务诊断：储蓄率、支出率与按风险等级的配置方向。
package diagnosis

import (
	"github.com/shopspring/decimal"

	"github.com/rushteam/finreckit/core"
)

// 健康度取值
const (
	HealthGood         = "良好"
	HealthNeedsImprove = "需要改善"
	HealthNeedsControl = "需要控制"
)

var (
	minSavingsRatio = decimal.RequireFromString("0.2")
	maxExpenseRatio = decimal.RequireFromString("0.6")
)

// Input 是诊断输入，金额均为同一周期（例如月度）。
type Input struct {
	UserID         string          `json:"user_id"`
	Income         decimal.Decimal `json:"income"`
	Expenses       decimal.Decimal `json:"expenses"`
	Savings        decimal.Decimal `json:"savings"`
	RiskTolerance  string          `json:"risk_tolerance"`
	InvestmentGoal string          `json:"investment_goal"`
}

// Result 是诊断结果。
type Result struct {
	SavingsRatio          decimal.Decimal `json:"savings_ratio"`
	ExpenseRatio          decimal.Decimal `json:"expense_ratio"`
	SavingsHealth         string          `json:"savings_health"`
	ExpenseControl        string          `json:"expense_control"`
	RecommendedActions    []string        `json:"recommended_actions"`
	RiskAssessment        core.RiskTier   `json:"risk_assessment"`
	InvestmentSuggestions []string        `json:"investment_suggestions"`
}

// Validate 检查必填字段：user_id、risk_tolerance、investment_goal 不能为空，收入与储蓄不能为负。
func (in Input) Validate() error {
	switch {
	case in.UserID == "":
		return invalid("diagnosis: user_id is required")
	case in.RiskTolerance == "":
		return invalid("diagnosis: risk_tolerance is required")
	case in.InvestmentGoal == "":
		return invalid("diagnosis: investment_goal is required")
	case in.Income.IsNegative() || in.Expenses.IsNegative() || in.Savings.IsNegative():
		return invalid("diagnosis: amounts must not be negative")
	}
	return nil
}

func invalid(msg string) error {
	return core.NewDomainError(core.ModuleDiagnosis, core.ErrorCodeInvalidInput, msg)
}

// Diagnose 给出财务诊断。收入不大于 0 时两项比率都按 0 计算。
func Diagnose(in Input) (Result, error) {
	if err := in.Validate(); err != nil {
		return Result{}, err
	}

	res := Result{
		SavingsRatio:          decimal.Zero,
		ExpenseRatio:          decimal.Zero,
		RecommendedActions:    []string{},
		RiskAssessment:        core.ParseRiskTier(in.RiskTolerance),
		InvestmentSuggestions: []string{},
	}
	// 阈值比较用未舍入的比率，输出字段保留 4 位小数
	savings, expense := decimal.Zero, decimal.Zero
	if in.Income.IsPositive() {
		savings = in.Savings.Div(in.Income)
		expense = in.Expenses.Div(in.Income)
		res.SavingsRatio = savings.Round(4)
		res.ExpenseRatio = expense.Round(4)
	}

	res.SavingsHealth = HealthGood
	if savings.LessThan(minSavingsRatio) {
		res.SavingsHealth = HealthNeedsImprove
		res.RecommendedActions = append(res.RecommendedActions, "建议增加储蓄比例至收入的20%以上")
	}
	res.ExpenseControl = HealthGood
	if expense.GreaterThan(maxExpenseRatio) {
		res.ExpenseControl = HealthNeedsControl
		res.RecommendedActions = append(res.RecommendedActions, "建议控制支出在收入的60%以内")
	}

	switch res.RiskAssessment {
	case core.RiskLow:
		res.InvestmentSuggestions = append(res.InvestmentSuggestions, "建议配置货币基金、定期存款等低风险产品")
	case core.RiskMedium:
		res.InvestmentSuggestions = append(res.InvestmentSuggestions, "建议配置债券基金、混合基金等中等风险产品")
	default:
		res.InvestmentSuggestions = append(res.InvestmentSuggestions, "建议配置股票基金、指数基金等高风险高收益产品")
	}
	return res, nil
}
