package trend

import (
	"context"

	"github.com/rushteam/dinekit/core"
)

// Source 表示一个可复用的趋势信号源（热搜榜/搜索联想/离线榜单/...）。
// 你可以把它理解为"可并发 fan-out 的策略单元"：
// Aggregator 会并发调用所有 Source，单个 Source 的失败不影响其他源。
type Source interface {
	Name() string
	Fetch(ctx context.Context, req *core.TrendRequest) ([]core.TrendSignal, error)
}

// 内置来源标识，写入 TrendSignal.Source 供解释/观测使用。
const (
	SourceFeed     = "feed"     // 热搜 feed 源
	SourceSuggest  = "suggest"  // 搜索联想源
	SourceStore    = "store"    // 离线榜单（KeyValueStore）
	SourceFallback = "fallback" // 算法降级生成
)
