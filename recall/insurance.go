package recall

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/rushteam/finreckit/core"
	"github.com/rushteam/finreckit/feature"
	"github.com/rushteam/finreckit/vector"
)

// InsuranceKNN 基于用户画像的 KNN 保险召回。
//
// 用户向量 [年龄, 风险, 资产] 与保险向量 [保费, 年龄匹配, 险种] 做欧氏距离，
// 取最近的 min(Limit, N) 个，分数为 1/(d+1e-6)。候选少于 2 个时不召回。
type InsuranceKNN struct{}

func (r *InsuranceKNN) Name() string { return "recall.insurance_knn" }

func (r *InsuranceKNN) Recall(ctx context.Context, rctx *core.RecommendContext) ([]*core.Item, error) {
	if rctx == nil || rctx.Catalog == nil || len(rctx.Catalog.Insurance) == 0 {
		return nil, nil
	}
	all := rctx.Catalog.Insurance
	log := zerolog.Ctx(ctx)

	vecs := make([][]float64, len(all))
	for i, ins := range all {
		vec, err := feature.InsuranceVector(ins, rctx.User)
		if err != nil {
			// 保费文本无法解析时已用默认值替代，仅记录
			log.Debug().Err(err).Str("insurance_id", ins.ID).Msg("premium defaulted")
		}
		vecs[i] = vec
	}

	hits := vector.KNN(feature.UserVector(rctx.User), vecs, limitOf(rctx, len(all)))
	out := make([]*core.Item, 0, len(hits))
	for _, h := range hits {
		out = append(out, core.NewItem(all[h.Index], h.Score, AlgorithmKNN))
	}
	return out, nil
}

// InsuranceCosine 基于年龄段偏好向量的余弦相似度保险召回。
type InsuranceCosine struct{}

func (r *InsuranceCosine) Name() string { return "recall.insurance_cosine" }

func (r *InsuranceCosine) Recall(_ context.Context, rctx *core.RecommendContext) ([]*core.Item, error) {
	if rctx == nil || rctx.Catalog == nil || len(rctx.Catalog.Insurance) == 0 {
		return nil, nil
	}
	all := rctx.Catalog.Insurance

	vecs := make([][]float64, len(all))
	for i, ins := range all {
		vecs[i] = feature.CategoryVector(ins)
	}

	hits := vector.RankCosine(feature.PreferenceVector(rctx.User), vecs)
	n := limitOf(rctx, len(hits))
	out := make([]*core.Item, 0, n)
	for _, h := range hits[:n] {
		out = append(out, core.NewItem(all[h.Index], h.Score, AlgorithmCosine))
	}
	return out, nil
}
