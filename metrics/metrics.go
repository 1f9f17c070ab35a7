// Package metrics 提供推荐与再平衡的 Prometheus 指标。
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder 记录推荐链路指标。nil *Recorder 的所有方法都是空操作。
type Recorder struct {
	recommendations  *prometheus.CounterVec
	results          *prometheus.CounterVec
	strategySkipped  *prometheus.CounterVec
	duration         *prometheus.HistogramVec
	rebalanceActions *prometheus.CounterVec
}

// Option 配置 Recorder
type Option func(*options)

type options struct {
	namespace string
	registry  prometheus.Registerer
	buckets   []float64
}

// WithNamespace 设置指标命名空间，默认 "finrec"
func WithNamespace(ns string) Option {
	return func(o *options) { o.namespace = ns }
}

// WithRegistry 设置注册表，默认 prometheus.DefaultRegisterer
func WithRegistry(r prometheus.Registerer) Option {
	return func(o *options) { o.registry = r }
}

// WithBuckets 设置耗时直方图的桶
func WithBuckets(b []float64) Option {
	return func(o *options) { o.buckets = b }
}

// NewRecorder 创建并注册全部指标。
func NewRecorder(opts ...Option) *Recorder {
	o := &options{
		namespace: "finrec",
		registry:  prometheus.DefaultRegisterer,
		buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1},
	}
	for _, opt := range opts {
		opt(o)
	}
	auto := promauto.With(o.registry)

	return &Recorder{
		recommendations: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: o.namespace,
			Subsystem: "engine",
			Name:      "recommendations_total",
			Help:      "Total number of recommendation calls by asset class",
		}, []string{"asset_class"}),
		results: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: o.namespace,
			Subsystem: "engine",
			Name:      "results_total",
			Help:      "Total number of returned results by asset class and algorithm",
		}, []string{"asset_class", "algorithm"}),
		strategySkipped: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: o.namespace,
			Subsystem: "engine",
			Name:      "strategy_skipped_total",
			Help:      "Strategies skipped because of unknown references",
		}, []string{"strategy"}),
		duration: auto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: o.namespace,
			Subsystem: "engine",
			Name:      "recommend_duration_seconds",
			Help:      "Recommendation pipeline latency",
			Buckets:   o.buckets,
		}, []string{"asset_class"}),
		rebalanceActions: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: o.namespace,
			Subsystem: "rebalance",
			Name:      "suggestions_total",
			Help:      "Total number of rebalance suggestions by action",
		}, []string{"action"}),
	}
}

// ObserveRecommendation 记录一次推荐调用。
func (r *Recorder) ObserveRecommendation(assetClass string, algorithms []string, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.recommendations.WithLabelValues(assetClass).Inc()
	r.duration.WithLabelValues(assetClass).Observe(elapsed.Seconds())
	for _, alg := range algorithms {
		r.results.WithLabelValues(assetClass, alg).Inc()
	}
}

// StrategySkipped 记录一次策略跳过。
func (r *Recorder) StrategySkipped(strategy string) {
	if r == nil {
		return
	}
	r.strategySkipped.WithLabelValues(strategy).Inc()
}

// ObserveRebalance 记录再平衡建议。
func (r *Recorder) ObserveRebalance(actions []string) {
	if r == nil {
		return
	}
	for _, a := range actions {
		r.rebalanceActions.WithLabelValues(a).Inc()
	}
}
