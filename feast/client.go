// Package feast 从 Feast 在线特征库读取用户画像。
package feast

import (
	"context"
	"time"
)

// Client 是 Feast 在线特征读取的最小接口，GrpcClient 为官方 SDK 实现，测试中可替换。
type Client interface {
	// GetOnlineFeatures 按实体行读取在线特征，返回的 FeatureVectors 与 EntityRows 一一对应
	GetOnlineFeatures(ctx context.Context, req *GetOnlineFeaturesRequest) (*GetOnlineFeaturesResponse, error)

	Close() error
}

// GetOnlineFeaturesRequest 获取在线特征请求
type GetOnlineFeaturesRequest struct {
	// Features 特征引用，例如 ["user_profile:age", "user_profile:risk_tolerance"]
	Features []string

	// EntityRows 实体行，例如 [{"user_id": "u1"}]
	EntityRows []map[string]any

	// Project 为空时使用客户端的默认项目
	Project string
}

// GetOnlineFeaturesResponse 获取在线特征响应
type GetOnlineFeaturesResponse struct {
	FeatureVectors []FeatureVector
}

// FeatureVector 是一个实体行的特征值，缺失的特征不出现在 Values 中。
// 数值统一为 float64，字符串保持 string。
type FeatureVector struct {
	Values    map[string]any
	EntityRow map[string]any
}

// ClientOption 配置客户端
type ClientOption func(*ClientConfig)

// ClientConfig 客户端配置
type ClientConfig struct {
	Timeout time.Duration
	// Token 非空时使用静态 Token 认证
	Token string
}

// WithTimeout 设置单次请求超时
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *ClientConfig) { c.Timeout = timeout }
}

// WithToken 设置静态 Token
func WithToken(token string) ClientOption {
	return func(c *ClientConfig) { c.Token = token }
}
