package engine

import (
	"fmt"

	"github.com/rushteam/finreckit/config"
	"github.com/rushteam/finreckit/core"
	"github.com/rushteam/finreckit/pipeline"

	// 注册内置 Node 类型
	_ "github.com/rushteam/finreckit/config/builders"
)

// DefaultPipelineConfig 返回资产大类的内置链路：
//
//	insurance: fanout(knn, cosine) → 过滤 → dedup → topn
//	fund:      fallback(primary: fanout(similar, risk_tier), backup: popular) → 过滤 → dedup → topn
//	stock:     fanout(industry, trend) → 过滤 → dedup → topn
//
// 过滤节点仅在配置了黑名单或规则时出现。
func DefaultPipelineConfig(class core.AssetClass, cfg config.EngineConfig) (*pipeline.Config, error) {
	var recallNode pipeline.NodeConfig
	switch class {
	case core.AssetInsurance:
		recallNode = fanoutNode(cfg, source("insurance.knn"), source("insurance.cosine"))
	case core.AssetFund:
		enc := map[string]any{"encoding": cfg.FundEncoding}
		recallNode = pipeline.NodeConfig{
			Type: "recall.fallback",
			Config: map[string]any{
				"primary": fanoutNode(cfg, source("fund.similar", enc), source("fund.risk_tier", enc)).Config,
				"backup":  source("fund.popular", enc),
			},
		}
	case core.AssetStock:
		recallNode = fanoutNode(cfg,
			source("stock.industry", map[string]any{"mode": cfg.StockScoring}),
			source("stock.trend"),
		)
	default:
		return nil, fmt.Errorf("unknown asset class %q", class)
	}

	pc := &pipeline.Config{}
	pc.Pipeline.Name = string(class)
	pc.Pipeline.Nodes = append(pc.Pipeline.Nodes, recallNode)
	if len(cfg.Blacklist) > 0 {
		keys := make([]any, 0, len(cfg.Blacklist))
		for _, k := range cfg.Blacklist {
			keys = append(keys, k)
		}
		pc.Pipeline.Nodes = append(pc.Pipeline.Nodes, pipeline.NodeConfig{
			Type:   "filter.blacklist",
			Config: map[string]any{"keys": keys},
		})
	}
	if expr := cfg.Rules[string(class)]; expr != "" {
		pc.Pipeline.Nodes = append(pc.Pipeline.Nodes, pipeline.NodeConfig{
			Type:   "filter.expr",
			Config: map[string]any{"expr": expr},
		})
	}
	pc.Pipeline.Nodes = append(pc.Pipeline.Nodes,
		pipeline.NodeConfig{Type: "rerank.dedup"},
		pipeline.NodeConfig{Type: "rerank.topn"},
	)
	return pc, nil
}

func source(typ string, extra ...map[string]any) map[string]any {
	m := map[string]any{"type": typ}
	for _, e := range extra {
		for k, v := range e {
			m[k] = v
		}
	}
	return m
}

func fanoutNode(cfg config.EngineConfig, sources ...map[string]any) pipeline.NodeConfig {
	list := make([]any, 0, len(sources))
	for _, s := range sources {
		list = append(list, s)
	}
	return pipeline.NodeConfig{
		Type: "recall.fanout",
		Config: map[string]any{
			"sources":        list,
			"max_concurrent": cfg.MaxConcurrent,
		},
	}
}

// buildPipeline 优先使用 cfg.Pipelines 指定的 YAML 文件，否则使用内置链路。
func buildPipeline(class core.AssetClass, cfg config.EngineConfig) (*pipeline.Pipeline, error) {
	var (
		pc  *pipeline.Config
		err error
	)
	if path := cfg.Pipelines[string(class)]; path != "" {
		pc, err = pipeline.LoadFromYAML(path)
	} else {
		pc, err = DefaultPipelineConfig(class, cfg)
	}
	if err != nil {
		return nil, err
	}
	if err := config.ValidatePipelineConfig(pc); err != nil {
		return nil, err
	}
	return pc.BuildPipeline(config.DefaultFactory())
}
