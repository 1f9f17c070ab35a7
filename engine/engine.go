// Package engine 组装三条资产大类推荐链路，并对外提供推荐、再平衡与财务诊断操作。
package engine

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/rushteam/finreckit/config"
	"github.com/rushteam/finreckit/core"
	"github.com/rushteam/finreckit/diagnosis"
	"github.com/rushteam/finreckit/metrics"
	"github.com/rushteam/finreckit/pipeline"
	"github.com/rushteam/finreckit/rebalance"
	"github.com/rushteam/finreckit/recall"
)

// Engine 是无状态的推荐引擎：构建后只读，可被多个 goroutine 并发使用。
type Engine struct {
	cfg       config.EngineConfig
	log       zerolog.Logger
	metrics   *metrics.Recorder
	newRand   func() *rand.Rand
	pipelines map[core.AssetClass]*pipeline.Pipeline
}

// Option 配置 Engine
type Option func(*Engine)

// WithLogger 设置日志，默认 zerolog.Nop()
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithMetrics 设置指标记录器，默认不记录
func WithMetrics(r *metrics.Recorder) Option {
	return func(e *Engine) { e.metrics = r }
}

// WithRand 设置每个请求的随机源构造函数，默认用 cfg.Seed 构造固定种子随机源。
func WithRand(f func() *rand.Rand) Option {
	return func(e *Engine) { e.newRand = f }
}

// New 按配置构建三条推荐链路。
func New(cfg config.EngineConfig, opts ...Option) (*Engine, error) {
	e := &Engine{
		cfg:       cfg,
		log:       zerolog.Nop(),
		pipelines: make(map[core.AssetClass]*pipeline.Pipeline, len(core.AssetClasses)),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.newRand == nil {
		seed := cfg.Seed
		e.newRand = func() *rand.Rand { return rand.New(rand.NewSource(seed)) }
	}
	for _, class := range core.AssetClasses {
		p, err := buildPipeline(class, cfg)
		if err != nil {
			return nil, fmt.Errorf("build %s pipeline: %w", class, err)
		}
		e.pipelines[class] = p
	}
	return e, nil
}

// RecommendInsurance 推荐保险。limit 为 0 时返回空列表，为负数时使用配置的默认值。
func (e *Engine) RecommendInsurance(
	ctx context.Context,
	profile core.UserProfile,
	candidates []core.Insurance,
	limit int,
) ([]*core.Item, error) {
	rctx := e.newContext(profile, &core.Catalog{Insurance: candidates}, limit)
	return e.run(ctx, core.AssetInsurance, rctx, len(candidates))
}

// RecommendFund 推荐基金。clickedID 是最近点击的基金，可为空。
func (e *Engine) RecommendFund(
	ctx context.Context,
	profile core.UserProfile,
	candidates []core.Fund,
	clickedID string,
	limit int,
) ([]*core.Item, error) {
	rctx := e.newContext(profile, &core.Catalog{Funds: candidates}, limit)
	rctx.ClickedFundID = clickedID
	return e.run(ctx, core.AssetFund, rctx, len(candidates))
}

// RecommendStock 推荐股票。heldIndustries 是当前持仓股票所属行业。
func (e *Engine) RecommendStock(
	ctx context.Context,
	profile core.UserProfile,
	candidates []core.Stock,
	heldIndustries map[string]struct{},
	limit int,
) ([]*core.Item, error) {
	rctx := e.newContext(profile, &core.Catalog{Stocks: candidates}, limit)
	rctx.HeldIndustries = heldIndustries
	return e.run(ctx, core.AssetStock, rctx, len(candidates))
}

// RebalanceSuggestions 根据历史交易与风险等级给出调仓建议。
func (e *Engine) RebalanceSuggestions(
	ctx context.Context,
	history []rebalance.Transaction,
	tier core.RiskTier,
) []rebalance.Suggestion {
	snap := rebalance.NewSnapshot(history)
	out := rebalance.AdviseSnapshot(snap, tier)

	actions := make([]string, 0, len(out))
	for _, s := range out {
		actions = append(actions, string(s.Action))
	}
	e.metrics.ObserveRebalance(actions)
	e.logger(ctx).Debug().
		Str("risk_tolerance", tier.String()).
		Str("total", snap.Total.String()).
		Int("suggestions", len(out)).
		Msg("rebalance advised")
	return out
}

// Diagnose 执行财务诊断。
func (e *Engine) Diagnose(ctx context.Context, in diagnosis.Input) (diagnosis.Result, error) {
	res, err := diagnosis.Diagnose(in)
	if err != nil {
		e.logger(ctx).Debug().Err(err).Str("user_id", in.UserID).Msg("diagnosis rejected")
		return diagnosis.Result{}, err
	}
	e.logger(ctx).Debug().
		Str("user_id", in.UserID).
		Str("savings_health", res.SavingsHealth).
		Str("expense_control", res.ExpenseControl).
		Msg("diagnosis done")
	return res, nil
}

func (e *Engine) newContext(profile core.UserProfile, catalog *core.Catalog, limit int) *core.RecommendContext {
	rctx := core.NewRecommendContext(profile, catalog)
	if limit < 0 {
		limit = e.cfg.DefaultLimit
	}
	rctx.Limit = limit
	rctx.Rand = e.newRand()
	return rctx
}

// logger 优先使用 ctx 上挂载的 logger。
func (e *Engine) logger(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &e.log
}

func (e *Engine) run(
	ctx context.Context,
	class core.AssetClass,
	rctx *core.RecommendContext,
	candidates int,
) ([]*core.Item, error) {
	if rctx.Limit == 0 || candidates == 0 {
		return []*core.Item{}, nil
	}
	p, ok := e.pipelines[class]
	if !ok {
		return nil, core.NewDomainError(core.ModuleRecall, core.ErrorCodeNotSupported,
			fmt.Sprintf("engine: no pipeline for %s", class))
	}

	log := e.logger(ctx).With().
		Str("request_id", rctx.RequestID).
		Str("asset_class", string(class)).
		Logger()
	ctx = log.WithContext(ctx)

	start := time.Now()
	items, err := p.Run(ctx, rctx, nil)
	if err != nil {
		return nil, fmt.Errorf("recommend %s: %w", class, err)
	}
	if items == nil {
		items = []*core.Item{}
	}
	elapsed := time.Since(start)

	algorithms := make([]string, 0, len(items))
	for _, it := range items {
		algorithms = append(algorithms, it.Algorithm)
	}
	if lbl, ok := rctx.GetLabel(recall.LabelStrategySkipped); ok {
		for _, strategy := range lbl.Values() {
			e.metrics.StrategySkipped(strategy)
		}
	}
	e.metrics.ObserveRecommendation(string(class), algorithms, elapsed)

	log.Debug().
		Int("candidates", candidates).
		Int("results", len(items)).
		Int("limit", rctx.Limit).
		Dur("elapsed", elapsed).
		Msg("recommend done")
	return items, nil
}
