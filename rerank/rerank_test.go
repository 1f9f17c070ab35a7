package rerank

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rushteam/finreckit/core"
)

func items(ids ...string) []*core.Item {
	out := make([]*core.Item, 0, len(ids))
	for _, id := range ids {
		out = append(out, core.NewItem(core.Fund{ID: id}, 1, "test"))
	}
	return out
}

func TestTopNNode(t *testing.T) {
	tests := []struct {
		name  string
		n     int
		limit int
		in    int
		want  int
	}{
		{name: "limit truncates", limit: 2, in: 5, want: 2},
		{name: "limit zero returns empty", limit: 0, in: 5, want: 0},
		{name: "negative limit keeps all", limit: -1, in: 5, want: 5},
		{name: "fewer than limit", limit: 10, in: 3, want: 3},
		{name: "n caps limit", n: 2, limit: 4, in: 5, want: 2},
		{name: "n does not raise limit", n: 4, limit: 1, in: 5, want: 1},
		{name: "n caps unlimited", n: 3, limit: -1, in: 5, want: 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rctx := &core.RecommendContext{Limit: tt.limit}
			in := items("a", "b", "c", "d", "e")[:tt.in]
			out, err := (&TopNNode{N: tt.n}).Process(context.Background(), rctx, in)
			require.NoError(t, err)
			assert.Len(t, out, tt.want)
		})
	}
}

func TestDedupNode(t *testing.T) {
	out, err := (&DedupNode{}).Process(context.Background(), nil, items("a", "b", "a", "c", "b"))
	require.NoError(t, err)
	got := make([]string, 0, len(out))
	for _, it := range out {
		got = append(got, it.Key())
	}
	assert.Equal(t, []string{"a", "b", "c"}, got)

	out, err = (&DedupNode{}).Process(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Empty(t, out)
}
