package core

import "github.com/rushteam/dinekit/pkg/utils"

// Candidate 是候选餐厅，由外部候选源（CandidateProvider）提供。
type Candidate struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Rating       float64  `json:"rating,omitempty"`      // 外部评分，常见区间 [0, 5]
	PriceLevel   int      `json:"price_level,omitempty"` // [1, 4]，0 表示未知
	CuisineTypes []string `json:"cuisine_types,omitempty"`
}

// MatchFactors 是一条推荐在四个维度上的匹配度，范围均为 [0, 100]。
type MatchFactors struct {
	PersonalMatch float64 `json:"personal_match"`
	SocialTrends  float64 `json:"social_trends"`
	ContextualFit float64 `json:"contextual_fit"`
	Accessibility float64 `json:"accessibility"`
}

// Recommendation 是最终输出的单条推荐。
// 按请求实时合成，本层不做持久化。
// Labels 用于解释与观测（例如由哪条排序路径产出），全链路可透传。
type Recommendation struct {
	RestaurantID    string                 `json:"restaurant_id"`
	RestaurantName  string                 `json:"restaurant_name"`
	ConfidenceScore float64                `json:"confidence_score"` // [0, 100]
	Reasoning       string                 `json:"reasoning"`
	MatchFactors    MatchFactors           `json:"match_factors"`
	SuggestedDishes []string               `json:"suggested_dishes,omitempty"`
	Labels          map[string]utils.Label `json:"labels,omitempty"`
}

// PutLabel 写入 Label；若已存在同名 key，则按默认 Merge 规则累积。
func (r *Recommendation) PutLabel(key string, lbl utils.Label) {
	if r.Labels == nil {
		r.Labels = make(map[string]utils.Label)
	}
	if old, ok := r.Labels[key]; ok {
		r.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	r.Labels[key] = lbl
}

// AISuggestion 是外部 AI 服务给出的候选排序建议。
// 视为不可信输入：合成器会逐条校验后才采纳。
type AISuggestion struct {
	Recommendations  []Recommendation `json:"recommendations"`
	OverallReasoning string           `json:"overall_reasoning"`
	AdditionalTips   []string         `json:"additional_tips,omitempty"`
}

// ComposeRequest 是一次推荐合成请求，打包了合成所需的全部上游信号。
//
// 各信号的来源：
//   - Candidates 来自外部候选源
//   - Trends 来自 trend.Aggregator（可能是缓存/实时/降级结果）
//   - Adjustments 来自 similarity.Engine
//   - Weights 来自 weights.Store
//   - AI 来自外部 AI 服务，可为 nil（缺失时走评分降级排序）
type ComposeRequest struct {
	UserID      string
	Candidates  []Candidate
	Trends      []TrendSignal
	Adjustments Adjustments
	Weights     AlgorithmWeights
	Context     DiningContext
	AI          *AISuggestion
}

// ComposeResult 是推荐合成结果：至多 3 条推荐加整体说明。
type ComposeResult struct {
	Recommendations  []Recommendation `json:"recommendations"`
	OverallReasoning string           `json:"overall_reasoning"`
	AdditionalTips   []string         `json:"additional_tips,omitempty"`
}
