package feast

import (
	"context"
	"fmt"
	"time"

	feastsdk "github.com/feast-dev/feast/sdk/go"
	"github.com/feast-dev/feast/sdk/go/protos/feast/types"
)

// GrpcClient 是基于官方 Feast Go SDK 的 gRPC 客户端实现。
type GrpcClient struct {
	client   *feastsdk.GrpcClient
	project  string
	endpoint string
	timeout  time.Duration
}

// NewGrpcClient 创建 gRPC 客户端，port 为 0 时使用 6566。
func NewGrpcClient(host string, port int, project string, opts ...ClientOption) (*GrpcClient, error) {
	if port == 0 {
		port = 6566
	}
	cfg := &ClientConfig{Timeout: 3 * time.Second}
	for _, opt := range opts {
		opt(cfg)
	}

	var (
		client *feastsdk.GrpcClient
		err    error
	)
	if cfg.Token != "" {
		client, err = feastsdk.NewSecureGrpcClient(host, port, feastsdk.SecurityConfig{
			Credential: feastsdk.NewStaticCredential(cfg.Token),
		})
	} else {
		client, err = feastsdk.NewGrpcClient(host, port)
	}
	if err != nil {
		return nil, fmt.Errorf("feast: dial %s:%d: %w", host, port, err)
	}

	return &GrpcClient{
		client:   client,
		project:  project,
		endpoint: fmt.Sprintf("%s:%d", host, port),
		timeout:  cfg.Timeout,
	}, nil
}

func (c *GrpcClient) GetOnlineFeatures(ctx context.Context, req *GetOnlineFeaturesRequest) (*GetOnlineFeaturesResponse, error) {
	if len(req.Features) == 0 {
		return nil, fmt.Errorf("feast: features are required")
	}
	if len(req.EntityRows) == 0 {
		return nil, fmt.Errorf("feast: entity rows are required")
	}
	project := req.Project
	if project == "" {
		project = c.project
	}

	entities := make([]feastsdk.Row, len(req.EntityRows))
	for i, row := range req.EntityRows {
		r := make(feastsdk.Row, len(row))
		for k, v := range row {
			r[k] = toSDKValue(v)
		}
		entities[i] = r
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	resp, err := c.client.GetOnlineFeatures(ctx, &feastsdk.OnlineFeaturesRequest{
		Features: req.Features,
		Entities: entities,
		Project:  project,
	})
	if err != nil {
		return nil, fmt.Errorf("feast: get online features from %s: %w", c.endpoint, err)
	}

	rows := resp.Rows()
	if len(rows) != len(req.EntityRows) {
		return nil, fmt.Errorf("feast: response row count mismatch: expected %d, got %d", len(req.EntityRows), len(rows))
	}
	vectors := make([]FeatureVector, len(rows))
	for i, row := range rows {
		values := make(map[string]any, len(req.Features))
		for _, name := range req.Features {
			if v, ok := fromSDKValue(row[name]); ok {
				values[name] = v
			}
		}
		vectors[i] = FeatureVector{Values: values, EntityRow: req.EntityRows[i]}
	}
	return &GetOnlineFeaturesResponse{FeatureVectors: vectors}, nil
}

// Close 官方 SDK 的连接由 gRPC 管理，这里只释放引用。
func (c *GrpcClient) Close() error {
	c.client = nil
	return nil
}

func toSDKValue(v any) *types.Value {
	switch val := v.(type) {
	case string:
		return feastsdk.StrVal(val)
	case int:
		return feastsdk.Int64Val(int64(val))
	case int64:
		return feastsdk.Int64Val(val)
	case int32:
		return feastsdk.Int64Val(int64(val))
	case float64:
		return feastsdk.DoubleVal(val)
	case float32:
		return feastsdk.FloatVal(val)
	case bool:
		return feastsdk.BoolVal(val)
	default:
		return feastsdk.StrVal(fmt.Sprintf("%v", val))
	}
}

// fromSDKValue 把 SDK 值转换为 float64 或 string；空值（特征缺失）返回 false。
func fromSDKValue(v *types.Value) (any, bool) {
	if v == nil {
		return nil, false
	}
	switch val := v.GetVal().(type) {
	case *types.Value_StringVal:
		return val.StringVal, true
	case *types.Value_Int64Val:
		return float64(val.Int64Val), true
	case *types.Value_Int32Val:
		return float64(val.Int32Val), true
	case *types.Value_DoubleVal:
		return val.DoubleVal, true
	case *types.Value_FloatVal:
		return float64(val.FloatVal), true
	case *types.Value_BoolVal:
		if val.BoolVal {
			return 1.0, true
		}
		return 0.0, true
	default:
		return nil, false
	}
}

var _ Client = (*GrpcClient)(nil)
