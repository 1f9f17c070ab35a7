package feast

import (
	"context"
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/rushteam/finreckit/core"
)

// 画像特征名（feature view 内）
const (
	FeatureAge           = "age"
	FeatureRiskTolerance = "risk_tolerance"
	FeatureTotalAssets   = "total_assets"
)

// ProfileLoader 从在线特征库组装 UserProfile，缺失的特征按画像默认值降级。
type ProfileLoader struct {
	client      Client
	featureView string
	entityKey   string
}

// NewProfileLoader 创建画像加载器，实体键为 user_id。
func NewProfileLoader(client Client, featureView string) *ProfileLoader {
	return &ProfileLoader{client: client, featureView: featureView, entityKey: "user_id"}
}

func (l *ProfileLoader) ref(name string) string {
	return l.featureView + ":" + name
}

// Load 读取一个用户的画像。
func (l *ProfileLoader) Load(ctx context.Context, userID string) (core.UserProfile, error) {
	if userID == "" {
		return core.UserProfile{}, core.NewDomainError(core.ModuleProfile, core.ErrorCodeInvalidInput, "profile: empty user id")
	}
	resp, err := l.client.GetOnlineFeatures(ctx, &GetOnlineFeaturesRequest{
		Features:   []string{l.ref(FeatureAge), l.ref(FeatureRiskTolerance), l.ref(FeatureTotalAssets)},
		EntityRows: []map[string]any{{l.entityKey: userID}},
	})
	if err != nil {
		return core.UserProfile{}, fmt.Errorf("profile: load %s: %w", userID, err)
	}
	if len(resp.FeatureVectors) == 0 {
		return core.NewUserProfile(userID, 0, "", decimal.Zero), nil
	}
	values := resp.FeatureVectors[0].Values

	age := 0
	if v, ok := values[l.ref(FeatureAge)].(float64); ok && v > 0 && !math.IsNaN(v) {
		age = int(v)
	}
	risk, _ := values[l.ref(FeatureRiskTolerance)].(string)
	assets := decimal.Zero
	if v, ok := values[l.ref(FeatureTotalAssets)].(float64); ok && v > 0 && !math.IsInf(v, 0) {
		assets = decimal.NewFromFloat(v)
	}
	return core.NewUserProfile(userID, age, risk, assets), nil
}
