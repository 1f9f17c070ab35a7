package feast

import (
	"context"
	"errors"
	"testing"

	feastsdk "github.com/feast-dev/feast/sdk/go"
	"github.com/feast-dev/feast/sdk/go/protos/feast/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rushteam/finreckit/core"
)

type fakeClient struct {
	resp *GetOnlineFeaturesResponse
	err  error
	last *GetOnlineFeaturesRequest
}

func (f *fakeClient) GetOnlineFeatures(_ context.Context, req *GetOnlineFeaturesRequest) (*GetOnlineFeaturesResponse, error) {
	f.last = req
	return f.resp, f.err
}

func (f *fakeClient) Close() error { return nil }

func vector(values map[string]any) *GetOnlineFeaturesResponse {
	return &GetOnlineFeaturesResponse{FeatureVectors: []FeatureVector{{Values: values}}}
}

func TestProfileLoader(t *testing.T) {
	ctx := context.Background()

	t.Run("full profile", func(t *testing.T) {
		c := &fakeClient{resp: vector(map[string]any{
			"user_profile:age":            42.0,
			"user_profile:risk_tolerance": "激进",
			"user_profile:total_assets":   1_500_000.0,
		})}
		p, err := NewProfileLoader(c, "user_profile").Load(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, "u1", p.UserID)
		assert.Equal(t, 42, p.EffectiveAge())
		assert.Equal(t, core.RiskHigh, p.Tier())
		assert.Equal(t, "1500000", p.TotalAssets.String())

		assert.Equal(t, []map[string]any{{"user_id": "u1"}}, c.last.EntityRows)
		assert.Equal(t, []string{
			"user_profile:age", "user_profile:risk_tolerance", "user_profile:total_assets",
		}, c.last.Features)
	})

	t.Run("missing features use defaults", func(t *testing.T) {
		c := &fakeClient{resp: vector(map[string]any{"user_profile:age": -1.0})}
		p, err := NewProfileLoader(c, "user_profile").Load(ctx, "u2")
		require.NoError(t, err)
		assert.Nil(t, p.Age)
		assert.Equal(t, core.DefaultAge, p.EffectiveAge())
		assert.Equal(t, core.RiskMedium, p.Tier())
		assert.True(t, p.TotalAssets.IsZero())
	})

	t.Run("no rows", func(t *testing.T) {
		c := &fakeClient{resp: &GetOnlineFeaturesResponse{}}
		p, err := NewProfileLoader(c, "user_profile").Load(ctx, "u3")
		require.NoError(t, err)
		assert.Equal(t, "u3", p.UserID)
		assert.Equal(t, core.RiskMedium, p.Tier())
	})

	t.Run("client error", func(t *testing.T) {
		boom := errors.New("unavailable")
		c := &fakeClient{err: boom}
		_, err := NewProfileLoader(c, "user_profile").Load(ctx, "u4")
		assert.ErrorIs(t, err, boom)
	})

	t.Run("empty user id", func(t *testing.T) {
		_, err := NewProfileLoader(&fakeClient{}, "user_profile").Load(ctx, "")
		assert.True(t, core.IsInvalidInput(err))
	})
}

func TestFromSDKValue(t *testing.T) {
	tests := []struct {
		name string
		in   *types.Value
		want any
		ok   bool
	}{
		{"string", feastsdk.StrVal("high"), "high", true},
		{"int64", feastsdk.Int64Val(30), 30.0, true},
		{"double", feastsdk.DoubleVal(1.5), 1.5, true},
		{"float", feastsdk.FloatVal(0.5), 0.5, true},
		{"bool", feastsdk.BoolVal(true), 1.0, true},
		{"nil", nil, nil, false},
		{"empty", &types.Value{}, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := fromSDKValue(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToSDKValue(t *testing.T) {
	assert.Equal(t, "u1", toSDKValue("u1").GetStringVal())
	assert.Equal(t, int64(7), toSDKValue(7).GetInt64Val())
	assert.Equal(t, int64(7), toSDKValue(int32(7)).GetInt64Val())
	assert.Equal(t, 2.5, toSDKValue(2.5).GetDoubleVal())
	assert.True(t, toSDKValue(true).GetBoolVal())
	assert.Equal(t, "[1 2]", toSDKValue([]int{1, 2}).GetStringVal())
}

func TestGrpcClientValidation(t *testing.T) {
	c := &GrpcClient{project: "finrec", endpoint: "localhost:6566"}
	ctx := context.Background()

	_, err := c.GetOnlineFeatures(ctx, &GetOnlineFeaturesRequest{EntityRows: []map[string]any{{"user_id": "u1"}}})
	assert.ErrorContains(t, err, "features are required")

	_, err = c.GetOnlineFeatures(ctx, &GetOnlineFeaturesRequest{Features: []string{"user_profile:age"}})
	assert.ErrorContains(t, err, "entity rows are required")

	assert.NoError(t, c.Close())
}
