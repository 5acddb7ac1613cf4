package trend

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/rushteam/dinekit/core"
)

// Aggregator 聚合多个趋势源，产出一份有界、有序、可解释的信号列表。
//
// 算法：
//  1. 命中缓存（TTL 内）直接返回，不发起任何网络请求
//  2. 未命中则并发 fan-out 所有源；单个源的失败/超时只打日志，
//     不中断、不延误其他源（settle-all，而非 fail-fast）
//  3. 合并：按源的声明顺序拼接，关键词大小写不敏感去重（先见者保留），
//     再按热度稳定降序排序（同分保持先见顺序）
//  4. 合并结果为空时，用 FallbackGenerator 纯算法合成一份
//  5. 无论哪条路径产出，写回缓存后返回前 TopN 条
//
// 因此对调用方而言它永远不会因为外部故障而"无结果"。
type Aggregator struct {
	sources  []Source
	cache    *SignalCache
	fallback *FallbackGenerator
	timeout  time.Duration // 单个源的超时
	topN     int
	logger   zerolog.Logger
	now      func() time.Time
}

const (
	// DefaultSourceTimeout 是单个趋势源的默认超时。
	DefaultSourceTimeout = 10 * time.Second

	// DefaultTopN 是单次聚合返回的信号条数上限。
	DefaultTopN = 10
)

// AggregatorOption 配置 Aggregator。
type AggregatorOption func(*Aggregator)

// WithSourceTimeout 设置单个源的超时时间。
func WithSourceTimeout(d time.Duration) AggregatorOption {
	return func(a *Aggregator) {
		if d > 0 {
			a.timeout = d
		}
	}
}

// WithTopN 设置返回条数上限。
func WithTopN(n int) AggregatorOption {
	return func(a *Aggregator) {
		if n > 0 {
			a.topN = n
		}
	}
}

// WithLogger 注入日志器（默认丢弃）。
func WithLogger(logger zerolog.Logger) AggregatorOption {
	return func(a *Aggregator) { a.logger = logger }
}

// WithClock 注入时钟，测试中用于固定降级生成器的输入。
func WithClock(now func() time.Time) AggregatorOption {
	return func(a *Aggregator) {
		if now != nil {
			a.now = now
		}
	}
}

// NewAggregator 创建聚合器。sources 的顺序即去重时的优先级顺序
// （排前面的源先见即保留）。cache 为 nil 时自动创建默认缓存。
func NewAggregator(sources []Source, cache *SignalCache, opts ...AggregatorOption) *Aggregator {
	if cache == nil {
		cache = NewSignalCache(DefaultCacheTTL, DefaultCacheMaxEntries)
	}
	a := &Aggregator{
		sources:  sources,
		cache:    cache,
		fallback: &FallbackGenerator{},
		timeout:  DefaultSourceTimeout,
		topN:     DefaultTopN,
		logger:   zerolog.Nop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// GetTrendingFood 返回与请求关键词/位置相关的餐饮趋势信号。
func (a *Aggregator) GetTrendingFood(ctx context.Context, req *core.TrendRequest) ([]core.TrendSignal, error) {
	if req == nil {
		req = &core.TrendRequest{}
	}
	return a.aggregate(ctx, req)
}

// GetLocalTrends 返回某个位置的本地餐饮趋势（不带关键词过滤）。
func (a *Aggregator) GetLocalTrends(ctx context.Context, loc core.Location) ([]core.TrendSignal, error) {
	return a.aggregate(ctx, &core.TrendRequest{Location: loc, TimeRange: "1d"})
}

func (a *Aggregator) aggregate(ctx context.Context, req *core.TrendRequest) ([]core.TrendSignal, error) {
	key := req.CacheKey()
	if cached, ok := a.cache.Get(key); ok {
		return cached, nil
	}

	merged := a.merge(a.fanOut(ctx, req))
	if len(merged) == 0 {
		// 所有源失败或全部为空：纯算法合成，保证有结果且可复现
		merged = a.fallback.Generate(a.now(), req.Location)
		a.logger.Info().Str("cache_key", key).Msg("trend: all sources empty, served fallback")
	}

	if len(merged) > a.topN {
		merged = merged[:a.topN]
	}
	// 截断后再写缓存，保证 TTL 窗口内命中与首次返回逐字节一致
	a.cache.Set(key, merged)
	return merged, nil
}

// fanOut 并发调用所有源，按源的声明顺序返回各自的结果切片。
// 每个源独立超时；失败的源产出 nil，绝不向上传播错误。
// 结果按源索引写入各自槽位，合并顺序与并发调度无关。
func (a *Aggregator) fanOut(ctx context.Context, req *core.TrendRequest) [][]core.TrendSignal {
	results := make([][]core.TrendSignal, len(a.sources))
	if len(a.sources) == 0 {
		return results
	}

	var eg errgroup.Group
	for i, src := range a.sources {
		i, src := i, src
		eg.Go(func() error {
			fetchCtx := ctx
			if a.timeout > 0 {
				var cancel context.CancelFunc
				fetchCtx, cancel = context.WithTimeout(ctx, a.timeout)
				defer cancel()
			}

			signals, err := src.Fetch(fetchCtx, req)
			if err != nil {
				// 超时或错误时返回空结果，不中断其他源
				a.logger.Warn().Err(err).Str("source", src.Name()).Msg("trend: source fetch failed")
				return nil
			}
			results[i] = signals
			return nil
		})
	}
	_ = eg.Wait()
	return results
}

// merge 按源优先级顺序拼接结果，大小写不敏感去重（先见者保留其原始
// 大小写与热度），最后按热度稳定降序。
func (a *Aggregator) merge(results [][]core.TrendSignal) []core.TrendSignal {
	seen := make(map[string]struct{}, 32)
	out := make([]core.TrendSignal, 0, 32)
	for _, signals := range results {
		for _, sig := range signals {
			kw := strings.ToLower(strings.TrimSpace(sig.Keyword))
			if kw == "" {
				continue
			}
			if _, ok := seen[kw]; ok {
				continue
			}
			seen[kw] = struct{}{}
			out = append(out, sig)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Interest > out[j].Interest
	})
	return out
}
