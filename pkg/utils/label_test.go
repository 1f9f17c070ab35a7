package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergeLabel(t *testing.T) {
	tests := []struct {
		name     string
		existing Label
		incoming Label
		want     Label
	}{
		{"empty existing", Label{}, Label{Value: "a", Source: "recall"}, Label{Value: "a", Source: "recall"}},
		{"empty incoming", Label{Value: "a", Source: "recall"}, Label{}, Label{Value: "a", Source: "recall"}},
		{"accumulate", Label{Value: "a", Source: "recall"}, Label{Value: "b", Source: "fallback"},
			Label{Value: "a|b", Source: "recall,fallback"}},
		{"same source", Label{Value: "a", Source: "recall"}, Label{Value: "b", Source: "recall"},
			Label{Value: "a|b", Source: "recall"}},
		{"repeated value", Label{Value: "a|b", Source: "recall"}, Label{Value: "b", Source: "recall"},
			Label{Value: "a|b", Source: "recall"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MergeLabel(tt.existing, tt.incoming))
		})
	}
}

func TestLabelValues(t *testing.T) {
	assert.Nil(t, Label{}.Values())
	assert.Equal(t, []string{"recall.fund_similar"}, Label{Value: "recall.fund_similar"}.Values())
	assert.Equal(t, []string{"a", "b"}, Label{Value: "a|b"}.Values())
}
