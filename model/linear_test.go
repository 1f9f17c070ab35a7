package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinearModel(t *testing.T) {
	_, err := NewLinearModel(0, nil)
	assert.Error(t, err)

	m, err := NewLinearModel(0.1, map[string]float64{"trend": 0.5, "held": 0.25})
	require.NoError(t, err)
	assert.Equal(t, "linear", m.Name())

	var _ RankModel = m

	tests := []struct {
		name     string
		features map[string]float64
		want     float64
	}{
		{"bias only", nil, 0.1},
		{"all features", map[string]float64{"trend": 1, "held": 1}, 0.85},
		{"unknown feature ignored", map[string]float64{"trend": 0.5, "pe": 30}, 0.35},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := m.Predict(tt.features)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}
