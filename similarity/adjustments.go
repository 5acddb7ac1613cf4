package similarity

import (
	"strings"

	"github.com/rushteam/dinekit/core"
)

// 本文件是"画像 → 推荐调整项"的固定查表推导。
// 调整项只依赖被服务一方（比较中的 A 方）的画像，不具有对称性。

// cuisineByBackground 是文化背景到加权菜系的固定映射表。
// key 统一小写；查不到时不做任何菜系加权。
var cuisineByBackground = map[string][]string{
	"chinese":        {"chinese", "sichuan", "cantonese", "hotpot"},
	"japanese":       {"japanese", "sushi", "ramen"},
	"korean":         {"korean", "korean bbq"},
	"indian":         {"indian", "curry", "south indian"},
	"thai":           {"thai"},
	"vietnamese":     {"vietnamese", "pho"},
	"italian":        {"italian", "pizza", "pasta"},
	"french":         {"french", "bistro"},
	"mexican":        {"mexican", "tacos"},
	"middle_eastern": {"middle eastern", "lebanese", "turkish"},
	"american":       {"american", "burgers", "bbq"},
}

// priceByIncome 是收入档位到价格偏移的固定映射表，范围 [-0.3, 0.3]。
var priceByIncome = map[string]float64{
	"low":          -0.3,
	"lower_middle": -0.15,
	"middle":       0,
	"upper_middle": 0.15,
	"high":         0.3,
}

const (
	defaultAuthenticityFactor = 0.5 // 未填写地道程度偏好时的中性系数
	defaultSpiceLevel         = 5   // 未填写辣度耐受时的中档辣度
)

// DeriveAdjustments 从单个画像推导推荐调整项。
// p 为 nil 时返回全默认值（无菜系加权、价格不偏移、中性系数）。
func DeriveAdjustments(p *core.DemographicProfile) core.Adjustments {
	adj := core.Adjustments{
		CuisineBoost:         []string{},
		AuthenticityFactor:   defaultAuthenticityFactor,
		SpiceLevelAdjustment: defaultSpiceLevel,
	}
	if p == nil {
		return adj
	}

	if bg := strings.ToLower(strings.TrimSpace(p.CulturalBackground)); bg != "" {
		if cuisines, ok := cuisineByBackground[bg]; ok {
			adj.CuisineBoost = append([]string(nil), cuisines...)
		}
	}
	if offset, ok := priceByIncome[strings.ToLower(strings.TrimSpace(p.IncomeBracket))]; ok {
		adj.PriceAdjustment = offset
	}
	if p.AuthenticityPreference != 0 {
		adj.AuthenticityFactor = float64(p.AuthenticityPreference) / 10
	}
	if p.SpiceToleranceLevel != 0 {
		adj.SpiceLevelAdjustment = p.SpiceToleranceLevel
	}
	return adj
}
