// Package compose 是推荐链路的顶层入口：把候选餐厅、趋势信号、
// 人群调整项、算法权重与外部 AI 建议合成为一份有界、可解释、
// 带置信度的推荐列表。
package compose

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/rushteam/dinekit/core"
	"github.com/rushteam/dinekit/filter"
	"github.com/rushteam/dinekit/pkg/utils"
)

// MaxRecommendations 是单次合成返回的推荐条数上限。
const MaxRecommendations = 3

// Composer 是推荐合成器。
//
// 失败语义：上游数据质量问题（AI 建议缺失/畸形/引用未知候选）一律
// 走降级路径，绝不抛给调用方；只要候选列表非空，就返回 1~3 条推荐。
// 候选列表为空时返回空推荐加说明文本，同样不是错误。
type Composer struct {
	filters *filter.Chain
	tracker core.UsageTracker
	logger  zerolog.Logger
	now     func() time.Time
}

// Option 配置 Composer。
type Option func(*Composer)

// WithFilters 设置候选前置过滤器。
func WithFilters(filters ...filter.Filter) Option {
	return func(c *Composer) { c.filters = &filter.Chain{Filters: filters} }
}

// WithTracker 注入用量上报器（fire-and-forget）。
func WithTracker(tracker core.UsageTracker) Option {
	return func(c *Composer) { c.tracker = tracker }
}

// WithLogger 注入日志器（默认丢弃）。
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Composer) { c.logger = logger }
}

// NewComposer 创建合成器。
func NewComposer(opts ...Option) *Composer {
	c := &Composer{
		filters: &filter.Chain{},
		logger:  zerolog.Nop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compose 合成最终推荐。
//
// 算法：
//  1. 前置过滤候选（饮食禁忌/规则）
//  2. AI 建议存在时逐条校验：restaurantId 必须在候选集中、置信度在
//     [0,100]；丢弃非法项，按 AI 自身排序截取前 3
//  3. 校验后一条可用项都没有（AI 缺失/畸形/全部非法）时降级：
//     候选按评分降序取前 3，置信度按排位取 max(60, 90-10*index)，
//     匹配因子用固定基线，说明文本按评分与用餐模式模板生成
//  4. 两条路径都会附上 overallReasoning / additionalTips（AI 合法时
//     用 AI 的，否则用固定通用文案），并把排序路径写入 Labels
//
// 权重向量用于计算每条推荐的混合分（写入 blend_score label，
// 供观测与离线调参对比），不改变既定排序。
func (c *Composer) Compose(ctx context.Context, req *core.ComposeRequest) (*core.ComposeResult, error) {
	if req == nil {
		req = &core.ComposeRequest{}
	}

	candidates := c.filters.Apply(ctx, &req.Context, req.Candidates)
	if len(candidates) == 0 {
		c.track(req, "empty")
		return &core.ComposeResult{
			Recommendations:  []core.Recommendation{},
			OverallReasoning: emptyReasoning(len(req.Candidates) > 0),
			AdditionalTips:   genericTips(),
		}, nil
	}

	recs := c.validateAISuggestion(req.AI, candidates)
	path := "ai"
	if len(recs) == 0 {
		recs = c.fallbackRanking(candidates, req)
		path = "rating"
	}

	for i := range recs {
		recs[i].PutLabel("ranker", utils.Label{Value: path, Source: "compose"})
		recs[i].PutLabel("blend_score", utils.Label{
			Value:  formatScore(blendScore(recs[i].MatchFactors, req.Trends, req.Weights)),
			Source: "compose",
		})
	}

	result := &core.ComposeResult{
		Recommendations:  recs,
		OverallReasoning: genericOverallReasoning(req.Context.Mode),
		AdditionalTips:   genericTips(),
	}
	if path == "ai" && req.AI != nil {
		if req.AI.OverallReasoning != "" {
			result.OverallReasoning = req.AI.OverallReasoning
		}
		if len(req.AI.AdditionalTips) > 0 {
			result.AdditionalTips = req.AI.AdditionalTips
		}
	}

	c.track(req, path)
	return result, nil
}

// validateAISuggestion 逐条校验 AI 建议，返回可用项（保持 AI 排序，
// 至多 MaxRecommendations 条）。建议缺失或全部非法时返回空。
func (c *Composer) validateAISuggestion(ai *core.AISuggestion, candidates []core.Candidate) []core.Recommendation {
	if ai == nil || len(ai.Recommendations) == 0 {
		return nil
	}

	byID := make(map[string]*core.Candidate, len(candidates))
	for i := range candidates {
		byID[candidates[i].ID] = &candidates[i]
	}

	out := make([]core.Recommendation, 0, MaxRecommendations)
	for _, rec := range ai.Recommendations {
		cand, known := byID[rec.RestaurantID]
		if !known {
			c.logger.Debug().Str("restaurant_id", rec.RestaurantID).Msg("compose: ai item references unknown candidate, dropped")
			continue
		}
		if rec.ConfidenceScore < 0 || rec.ConfidenceScore > 100 {
			c.logger.Debug().Str("restaurant_id", rec.RestaurantID).Float64("confidence", rec.ConfidenceScore).
				Msg("compose: ai item confidence out of range, dropped")
			continue
		}
		// 名称以候选列表为准，AI 返回的名称仅作参考
		rec.RestaurantName = cand.Name
		out = append(out, rec)
		if len(out) == MaxRecommendations {
			break
		}
	}
	return out
}

// fallbackRanking 评分降序的降级排序：取前 3，置信度按排位递减。
func (c *Composer) fallbackRanking(candidates []core.Candidate, req *core.ComposeRequest) []core.Recommendation {
	ranked := append([]core.Candidate(nil), candidates...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Rating > ranked[j].Rating
	})
	if len(ranked) > MaxRecommendations {
		ranked = ranked[:MaxRecommendations]
	}

	out := make([]core.Recommendation, 0, len(ranked))
	for i, cand := range ranked {
		confidence := 90 - 10*float64(i)
		if confidence < 60 {
			confidence = 60
		}
		out = append(out, core.Recommendation{
			RestaurantID:    cand.ID,
			RestaurantName:  cand.Name,
			ConfidenceScore: confidence,
			Reasoning:       fallbackReasoning(cand, req.Context.Mode),
			MatchFactors:    baselineMatchFactors(),
			SuggestedDishes: suggestedDishes(cand, req.Trends),
		})
	}
	return out
}

// track 异步上报一次合成事件。上报失败只打日志，绝不影响主操作。
func (c *Composer) track(req *core.ComposeRequest, path string) {
	if c.tracker == nil {
		return
	}
	ev := core.UsageEvent{
		UserID:    req.UserID,
		Operation: "compose",
		City:      req.Context.Location.City,
		Timestamp: c.now(),
		Payload: map[string]any{
			"path":       path,
			"candidates": len(req.Candidates),
		},
	}
	go func() {
		trackCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := c.tracker.Track(trackCtx, ev); err != nil {
			c.logger.Warn().Err(err).Msg("compose: usage tracking failed")
		}
	}()
}
