package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewRecorder(WithRegistry(reg), WithNamespace("test"))

	r.ObserveRecommendation("fund", []string{"Risk-Based", "Risk-Based", "Popularity"}, 2*time.Millisecond)
	r.ObserveRecommendation("fund", nil, time.Millisecond)
	r.StrategySkipped("recall.fund_similar")
	r.ObserveRebalance([]string{"increase", "decrease", "increase"})

	assert.Equal(t, 2.0, testutil.ToFloat64(r.recommendations.WithLabelValues("fund")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.results.WithLabelValues("fund", "Risk-Based")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.results.WithLabelValues("fund", "Popularity")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.strategySkipped.WithLabelValues("recall.fund_similar")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.rebalanceActions.WithLabelValues("increase")))
	assert.Equal(t, 1, testutil.CollectAndCount(r.duration))

	families, err := reg.Gather()
	assert.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, mf := range families {
		names = append(names, mf.GetName())
	}
	assert.Contains(t, names, "test_engine_recommendations_total")
	assert.Contains(t, names, "test_rebalance_suggestions_total")
}

func TestNilRecorder(t *testing.T) {
	var r *Recorder
	assert.NotPanics(t, func() {
		r.ObserveRecommendation("stock", []string{"Trend Analysis"}, time.Second)
		r.StrategySkipped("x")
		r.ObserveRebalance([]string{"increase"})
	})
}

func TestDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewRecorder(WithRegistry(reg))
	assert.Panics(t, func() { NewRecorder(WithRegistry(reg)) })
}
