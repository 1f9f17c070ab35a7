// Package config 定义引擎配置，以及按类型名构建 pipeline Node 的注册表。
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/rushteam/finreckit/core"
	"github.com/rushteam/finreckit/pkg/logger"
)

// EnvPrefix 是环境变量前缀，嵌套字段用双下划线分隔，例如 FINREC_ENGINE__DEFAULT_LIMIT。
const EnvPrefix = "FINREC_"

// Config 是进程级配置。
type Config struct {
	Log     logger.Config `koanf:"log"`
	Engine  EngineConfig  `koanf:"engine"`
	Metrics MetricsConfig `koanf:"metrics"`
	Redis   RedisConfig   `koanf:"redis"`
	Feast   FeastConfig   `koanf:"feast"`
}

// EngineConfig 控制推荐链路。
type EngineConfig struct {
	// DefaultLimit 是调用方未指定 limit 时的截断数量
	DefaultLimit int `koanf:"default_limit"`
	// MaxConcurrent 是 Fanout 同时执行的策略数，1 表示顺序执行
	MaxConcurrent int `koanf:"max_concurrent"`
	// FundEncoding: auto / market / rating
	FundEncoding string `koanf:"fund_encoding"`
	// StockScoring: momentum / static
	StockScoring string `koanf:"stock_scoring"`
	// Seed 是 static 模式下随机趋势项的种子
	Seed int64 `koanf:"seed"`
	// Rules 按资产大类配置 CEL 过滤规则，例如 fund: "item.fee < 1.5"
	Rules map[string]string `koanf:"rules"`
	// Blacklist 中的产品（ID 或股票代码）不会被推荐
	Blacklist []string `koanf:"blacklist"`
	// Pipelines 按资产大类指定 pipeline YAML 文件，覆盖内置链路
	Pipelines map[string]string `koanf:"pipelines"`
}

type MetricsConfig struct {
	Enabled   bool   `koanf:"enabled"`
	Namespace string `koanf:"namespace"`
}

type RedisConfig struct {
	Addr     string `koanf:"addr"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db"`
	// CatalogKey 是候选集快照的存储 key
	CatalogKey string `koanf:"catalog_key"`
}

type FeastConfig struct {
	Host    string `koanf:"host"`
	Port    int    `koanf:"port"`
	Project string `koanf:"project"`
	// FeatureView 是用户画像特征所在的 feature view
	FeatureView string `koanf:"feature_view"`
}

// New 返回带默认值的配置。
func New() *Config {
	return &Config{
		Log: logger.Config{Level: "info"},
		Engine: EngineConfig{
			DefaultLimit:  core.DefaultLimit,
			MaxConcurrent: 1,
			FundEncoding:  "auto",
			StockScoring:  "momentum",
			Seed:          1,
		},
		Metrics: MetricsConfig{Enabled: true, Namespace: "finrec"},
		Redis:   RedisConfig{CatalogKey: "finrec:catalog"},
		Feast:   FeastConfig{Port: 6566, FeatureView: "user_profile"},
	}
}

// Load 依次叠加：默认值 → YAML 文件（path 为空时取 FINREC_CONFIG）→ FINREC_ 环境变量。
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path == "" {
		path = os.Getenv(EnvPrefix + "CONFIG")
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(s, EnvPrefix)
		return strings.ReplaceAll(strings.ToLower(s), "__", ".")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := New()
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate 校验配置取值。
func (c *Config) Validate() error {
	var errs []error
	if c.Engine.DefaultLimit < 0 {
		errs = append(errs, fmt.Errorf("engine.default_limit must be >= 0, got %d", c.Engine.DefaultLimit))
	}
	if c.Engine.MaxConcurrent < 1 {
		errs = append(errs, fmt.Errorf("engine.max_concurrent must be >= 1, got %d", c.Engine.MaxConcurrent))
	}
	switch strings.ToLower(c.Engine.FundEncoding) {
	case "", "auto", "market", "rating":
	default:
		errs = append(errs, fmt.Errorf("engine.fund_encoding %q not in auto|market|rating", c.Engine.FundEncoding))
	}
	switch strings.ToLower(c.Engine.StockScoring) {
	case "", "momentum", "static":
	default:
		errs = append(errs, fmt.Errorf("engine.stock_scoring %q not in momentum|static", c.Engine.StockScoring))
	}
	for class := range c.Engine.Rules {
		if !knownClass(class) {
			errs = append(errs, fmt.Errorf("engine.rules: unknown asset class %q", class))
		}
	}
	for class := range c.Engine.Pipelines {
		if !knownClass(class) {
			errs = append(errs, fmt.Errorf("engine.pipelines: unknown asset class %q", class))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return core.NewDomainError(core.ModuleConfig, core.ErrorCodeInvalidInput, err.Error())
	}
	return nil
}

func knownClass(s string) bool {
	for _, c := range core.AssetClasses {
		if string(c) == s {
			return true
		}
	}
	return false
}
