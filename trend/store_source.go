package trend

import (
	"context"
	"strings"

	"github.com/rushteam/dinekit/core"
)

// StoreSource 是 KeyValueStore 支撑的趋势源：离线任务把城市级关键词
// 榜单写入有序集合（member 为关键词，score 为热度分），在线侧按
// ZRange 读取 TopN。
//
// 典型部署：离线作业每小时计算一次本地热词写入 Redis，
// StoreSource 排在 feed 源之后、联想源之前参与合并。
type StoreSource struct {
	Store core.KeyValueStore

	// KeyPrefix 榜单 key 前缀，完整 key 为 KeyPrefix + 小写城市名，
	// 例如 "trends:local:shanghai"。默认 "trends:local:"。
	KeyPrefix string

	// Limit 读取条数上限，默认 50。
	Limit int64
}

func (s *StoreSource) Name() string { return "trend.store" }

func (s *StoreSource) Fetch(ctx context.Context, req *core.TrendRequest) ([]core.TrendSignal, error) {
	if s.Store == nil {
		return nil, core.NewDomainError(core.ModuleTrend, core.ErrorCodeConfigMissing,
			"trend: store source has no backing store")
	}

	prefix := s.KeyPrefix
	if prefix == "" {
		prefix = "trends:local:"
	}
	limit := s.Limit
	if limit <= 0 {
		limit = 50
	}

	key := prefix + strings.ToLower(strings.TrimSpace(req.Location.City))
	members, err := s.Store.ZRange(ctx, key, 0, limit-1)
	if err != nil {
		return nil, core.NewDomainError(core.ModuleTrend, core.ErrorCodeSourceUnavailable,
			"trend: store source read failed: "+err.Error())
	}

	out := make([]core.TrendSignal, 0, len(members))
	for _, kw := range members {
		score, err := s.Store.ZScore(ctx, key, kw)
		if err != nil {
			// 榜单在读取间隙被重写属正常情况，跳过该词即可
			continue
		}
		out = append(out, core.TrendSignal{
			Keyword:   kw,
			Interest:  clamp(score, 0, 100),
			Direction: core.TrendStable,
			Source:    SourceStore,
		})
	}
	return out, nil
}
