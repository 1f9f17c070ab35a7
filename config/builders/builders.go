// Package builders 在 init 中把内置 Node 注册到 config 注册表。
package builders

import (
	"fmt"
	"sort"
	"time"

	"github.com/rushteam/finreckit/config"
	"github.com/rushteam/finreckit/feature"
	"github.com/rushteam/finreckit/filter"
	"github.com/rushteam/finreckit/model"
	"github.com/rushteam/finreckit/pipeline"
	"github.com/rushteam/finreckit/pkg/conv"
	"github.com/rushteam/finreckit/recall"
	"github.com/rushteam/finreckit/rerank"
)

func init() {
	config.Register("recall.fanout", BuildFanoutNode)
	config.Register("recall.fallback", BuildFallbackNode)
	config.Register("filter.expr", BuildExprFilterNode)
	config.Register("filter.blacklist", BuildBlacklistFilterNode)
	config.Register("filter.risk_tier", BuildRiskTierFilterNode)
	config.Register("rerank.dedup", BuildDedupNode)
	config.Register("rerank.topn", BuildTopNNode)
}

// SourceBuilder 根据配置构建召回策略。
type SourceBuilder func(map[string]any) (recall.Source, error)

var sourceBuilders = map[string]SourceBuilder{
	"insurance.knn":    func(map[string]any) (recall.Source, error) { return &recall.InsuranceKNN{}, nil },
	"insurance.cosine": func(map[string]any) (recall.Source, error) { return &recall.InsuranceCosine{}, nil },
	"fund.similar": func(cfg map[string]any) (recall.Source, error) {
		return &recall.FundSimilar{Encoding: feature.ParseFundEncoding(conv.ConfigGet(cfg, "encoding", ""))}, nil
	},
	"fund.risk_tier": func(cfg map[string]any) (recall.Source, error) {
		return &recall.FundRiskTier{Encoding: feature.ParseFundEncoding(conv.ConfigGet(cfg, "encoding", ""))}, nil
	},
	"fund.popular": func(cfg map[string]any) (recall.Source, error) {
		return &recall.FundPopular{Encoding: feature.ParseFundEncoding(conv.ConfigGet(cfg, "encoding", ""))}, nil
	},
	"stock.industry": BuildStockIndustrySource,
	"stock.trend":    func(map[string]any) (recall.Source, error) { return &recall.StockTrend{}, nil },
}

// SourceTypes 返回支持的召回策略类型（排序）。
func SourceTypes() []string {
	types := make([]string, 0, len(sourceBuilders))
	for t := range sourceBuilders {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// BuildSource 按 type 字段构建一个召回策略。
func BuildSource(cfg map[string]any) (recall.Source, error) {
	typ := conv.ConfigGet(cfg, "type", "")
	b, ok := sourceBuilders[typ]
	if !ok {
		return nil, fmt.Errorf("unknown source type %q (supported: %v)", typ, SourceTypes())
	}
	return b(cfg)
}

func buildSources(v any) ([]recall.Source, error) {
	specs := conv.SliceAnyToMaps(v)
	if len(specs) == 0 {
		return nil, fmt.Errorf("sources not found or invalid")
	}
	sources := make([]recall.Source, 0, len(specs))
	for _, spec := range specs {
		src, err := BuildSource(spec)
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}
	return sources, nil
}

// BuildStockIndustrySource 可选配置 mode（momentum/static）与 weights（industry_affinity/trend）。
func BuildStockIndustrySource(cfg map[string]any) (recall.Source, error) {
	src := &recall.StockIndustry{Mode: recall.ParseStockScoring(conv.ConfigGet(cfg, "mode", ""))}
	if w, ok := cfg["weights"].(map[string]any); ok {
		m, err := model.NewLinearModel(conv.ConfigGet(cfg, "bias", 0.0), conv.MapToFloat64(w))
		if err != nil {
			return nil, err
		}
		src.Model = m
	}
	return src, nil
}

func BuildFanoutNode(cfg map[string]any) (pipeline.Node, error) {
	sources, err := buildSources(cfg["sources"])
	if err != nil {
		return nil, err
	}
	fanout := &recall.Fanout{
		Sources:       sources,
		MaxConcurrent: int(conv.ConfigGetInt64(cfg, "max_concurrent", 1)),
		MergeStrategy: conv.ConfigGet(cfg, "merge_strategy", recall.MergeFirst),
	}
	if ms := conv.ConfigGetInt64(cfg, "timeout_ms", 0); ms > 0 {
		fanout.Timeout = time.Duration(ms) * time.Millisecond
	}
	switch fanout.MergeStrategy {
	case recall.MergeFirst, recall.MergeUnion:
	default:
		return nil, fmt.Errorf("unknown merge_strategy %q", fanout.MergeStrategy)
	}
	return fanout, nil
}

// BuildFallbackNode 的 primary 是一个 fanout 配置（sources / max_concurrent），backup 是单个策略。
func BuildFallbackNode(cfg map[string]any) (pipeline.Node, error) {
	primaryCfg, ok := cfg["primary"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("primary not found or invalid")
	}
	primary, err := BuildFanoutNode(primaryCfg)
	if err != nil {
		return nil, fmt.Errorf("primary: %w", err)
	}
	node := &recall.Fallback{Primary: primary}
	if backupCfg, ok := cfg["backup"].(map[string]any); ok {
		if node.Backup, err = BuildSource(backupCfg); err != nil {
			return nil, fmt.Errorf("backup: %w", err)
		}
	}
	return node, nil
}

func BuildExprFilterNode(cfg map[string]any) (pipeline.Node, error) {
	expr := conv.ConfigGet(cfg, "expr", "")
	if expr == "" {
		return nil, fmt.Errorf("expr not found")
	}
	f, err := filter.NewExprFilter(expr)
	if err != nil {
		return nil, err
	}
	return &filter.FilterNode{Filters: []filter.Filter{f}}, nil
}

func BuildBlacklistFilterNode(cfg map[string]any) (pipeline.Node, error) {
	keys := conv.SliceAnyToString(cfg["keys"])
	return &filter.FilterNode{Filters: []filter.Filter{filter.NewBlacklistFilter(keys)}}, nil
}

func BuildRiskTierFilterNode(map[string]any) (pipeline.Node, error) {
	return &filter.FilterNode{Filters: []filter.Filter{&filter.RiskTierFilter{}}}, nil
}

func BuildDedupNode(map[string]any) (pipeline.Node, error) {
	return &rerank.DedupNode{}, nil
}

func BuildTopNNode(cfg map[string]any) (pipeline.Node, error) {
	return &rerank.TopNNode{N: int(conv.ConfigGetInt64(cfg, "n", 0))}, nil
}
