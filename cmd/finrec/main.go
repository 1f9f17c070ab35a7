// Command finrec 读取一份 JSON 请求（画像、候选集、持仓、交易历史），
// 执行保险/基金/股票推荐、再平衡建议与可选的财务诊断，并把结果以 JSON 输出到 stdout。
//
// 用法：
//
//	finrec -config finrec.yaml -request req.json
//	cat req.json | finrec
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/rushteam/finreckit/catalog"
	"github.com/rushteam/finreckit/config"
	"github.com/rushteam/finreckit/core"
	"github.com/rushteam/finreckit/diagnosis"
	"github.com/rushteam/finreckit/engine"
	"github.com/rushteam/finreckit/feast"
	"github.com/rushteam/finreckit/metrics"
	"github.com/rushteam/finreckit/pkg/logger"
	"github.com/rushteam/finreckit/rebalance"
	"github.com/rushteam/finreckit/store"
)

// Profile 是请求中的用户画像。
type Profile struct {
	UserID        string          `json:"user_id"`
	Age           int             `json:"age"`
	RiskTolerance string          `json:"risk_tolerance"`
	TotalAssets   decimal.Decimal `json:"total_assets"`
}

// Request 是一次命令行调用的输入。
// 候选集可以直接给出（catalog），也可以是样例数据原文（sample）
// 或股票主数据加日线（stock_info + stock_daily），三者合并使用。
// 持仓行业 = held_industries ∪ held_stocks 对应股票的行业。
type Request struct {
	Profile        Profile                 `json:"profile"`
	Catalog        *core.Catalog           `json:"catalog,omitempty"`
	Sample         json.RawMessage         `json:"sample,omitempty"`
	StockInfo      []catalog.StockInfo     `json:"stock_info,omitempty"`
	StockDaily     []catalog.StockDaily    `json:"stock_daily,omitempty"`
	ClickedFundID  string                  `json:"clicked_fund_id,omitempty"`
	HeldIndustries []string                `json:"held_industries,omitempty"`
	HeldStocks     []string                `json:"held_stocks,omitempty"`
	History        []rebalance.Transaction `json:"history,omitempty"`
	Limit          *int                    `json:"limit,omitempty"`
	Diagnosis      *diagnosis.Input        `json:"diagnosis,omitempty"`
}

// Response 是输出。
type Response struct {
	Insurance []*core.Item           `json:"insurance"`
	Funds     []*core.Item           `json:"funds"`
	Stocks    []*core.Item           `json:"stocks"`
	Rebalance []rebalance.Suggestion `json:"rebalance"`
	Diagnosis *diagnosis.Result      `json:"diagnosis,omitempty"`
}

func main() {
	var (
		configPath  = flag.String("config", "", "config file (YAML); defaults to $FINREC_CONFIG")
		requestPath = flag.String("request", "-", "request JSON file, - for stdin")
		fromRedis   = flag.Bool("catalog-from-redis", false, "load the catalog snapshot from redis instead of the request")
		fromFeast   = flag.Bool("profile-from-feast", false, "load the user profile from the feast online store")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "finrec: %v\n", err)
		os.Exit(2)
	}
	log := logger.New(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = log.WithContext(ctx)

	if err := run(ctx, cfg, *requestPath, *fromRedis, *fromFeast, os.Stdout); err != nil {
		log.Error().Err(err).Msg("finrec failed")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, requestPath string, fromRedis, fromFeast bool, out io.Writer) error {
	log := zerolog.Ctx(ctx)

	req, err := readRequest(requestPath)
	if err != nil {
		return err
	}

	var opts []engine.Option
	opts = append(opts, engine.WithLogger(*log))
	if cfg.Metrics.Enabled {
		opts = append(opts, engine.WithMetrics(metrics.NewRecorder(
			metrics.WithNamespace(cfg.Metrics.Namespace),
			metrics.WithRegistry(prometheus.NewRegistry()),
		)))
	}
	eng, err := engine.New(cfg.Engine, opts...)
	if err != nil {
		return err
	}

	profile := core.NewUserProfile(req.Profile.UserID, req.Profile.Age, req.Profile.RiskTolerance, req.Profile.TotalAssets)
	if fromFeast {
		client, err := feast.NewGrpcClient(cfg.Feast.Host, cfg.Feast.Port, cfg.Feast.Project)
		if err != nil {
			return err
		}
		defer client.Close()
		if profile, err = feast.NewProfileLoader(client, cfg.Feast.FeatureView).Load(ctx, req.Profile.UserID); err != nil {
			return err
		}
	}

	var cat *core.Catalog
	if fromRedis {
		rs, err := store.NewRedisStore(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return err
		}
		defer rs.Close()
		if cat, err = catalog.NewRepository(rs, cfg.Redis.CatalogKey).Load(ctx); err != nil {
			return err
		}
	} else if cat, err = buildCatalog(ctx, req); err != nil {
		return err
	}

	limit := -1
	if req.Limit != nil {
		limit = *req.Limit
	}
	held := heldIndustries(req, cat.Stocks)
	log.Debug().Strs("held_industries", catalog.SortedIndustries(held)).
		Int("insurance", len(cat.Insurance)).Int("funds", len(cat.Funds)).Int("stocks", len(cat.Stocks)).
		Msg("request prepared")

	var resp Response
	if resp.Insurance, err = eng.RecommendInsurance(ctx, profile, cat.Insurance, limit); err != nil {
		return err
	}
	if resp.Funds, err = eng.RecommendFund(ctx, profile, cat.Funds, req.ClickedFundID, limit); err != nil {
		return err
	}
	if resp.Stocks, err = eng.RecommendStock(ctx, profile, cat.Stocks, held, limit); err != nil {
		return err
	}
	resp.Rebalance = eng.RebalanceSuggestions(ctx, req.History, profile.Tier())
	if req.Diagnosis != nil {
		res, err := eng.Diagnose(ctx, *req.Diagnosis)
		if err != nil {
			return err
		}
		resp.Diagnosis = &res
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}

// buildCatalog 合并请求中的三种候选来源。
func buildCatalog(ctx context.Context, req *Request) (*core.Catalog, error) {
	cat := &core.Catalog{}
	if req.Catalog != nil {
		cat.Insurance = append(cat.Insurance, req.Catalog.Insurance...)
		cat.Funds = append(cat.Funds, req.Catalog.Funds...)
		cat.Stocks = append(cat.Stocks, req.Catalog.Stocks...)
	}
	if len(req.Sample) > 0 {
		sample, err := catalog.DecodeSample(req.Sample)
		if err != nil {
			return nil, err
		}
		built := sample.Build(ctx)
		cat.Insurance = append(cat.Insurance, built.Insurance...)
		cat.Funds = append(cat.Funds, built.Funds...)
		cat.Stocks = append(cat.Stocks, built.Stocks...)
	}
	if len(req.StockInfo) > 0 {
		cat.Stocks = append(cat.Stocks, catalog.JoinStocks(req.StockInfo, req.StockDaily)...)
	}
	return cat, nil
}

// heldIndustries 返回持仓行业集合。held_stocks 中在候选集里找不到的代码被忽略。
func heldIndustries(req *Request, stocks []core.Stock) map[string]struct{} {
	codes := make(map[string]struct{}, len(req.HeldStocks))
	for _, c := range req.HeldStocks {
		codes[c] = struct{}{}
	}
	var heldStocks []core.Stock
	for _, s := range stocks {
		if _, ok := codes[s.Code]; ok {
			heldStocks = append(heldStocks, s)
		}
	}
	held := catalog.Industries(heldStocks)
	for _, ind := range req.HeldIndustries {
		held[ind] = struct{}{}
	}
	return held
}

func readRequest(path string) (*Request, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" || path == "" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read request: %w", err)
	}
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("decode request: %w", err)
	}
	return &req, nil
}
