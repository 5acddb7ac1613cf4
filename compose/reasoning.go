package compose

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rushteam/dinekit/core"
)

// 本文件集中放降级路径的文案模板与基线数值，便于产品侧统一调整。

// baselineMatchFactors 是降级排序时的固定基线匹配因子。
func baselineMatchFactors() core.MatchFactors {
	return core.MatchFactors{
		PersonalMatch: 70,
		SocialTrends:  65,
		ContextualFit: 60,
		Accessibility: 75,
	}
}

// modeLabels 用餐模式的展示文案。
var modeLabels = map[core.DiningMode]string{
	core.ModeSolo:     "a solo meal",
	core.ModeCouple:   "a date night",
	core.ModeFamily:   "a family meal",
	core.ModeFriends:  "dining with friends",
	core.ModeBusiness: "a business dinner",
}

func modeLabel(mode core.DiningMode) string {
	if label, ok := modeLabels[mode]; ok {
		return label
	}
	return "your meal"
}

// fallbackReasoning 生成降级路径的单条说明：引用评分与用餐模式。
func fallbackReasoning(cand core.Candidate, mode core.DiningMode) string {
	if cand.Rating > 0 {
		return fmt.Sprintf("%s holds a %.1f rating among nearby options, a solid pick for %s.",
			cand.Name, cand.Rating, modeLabel(mode))
	}
	return fmt.Sprintf("%s is a nearby option worth trying for %s.", cand.Name, modeLabel(mode))
}

// genericOverallReasoning 是 AI 建议不可用时的整体说明。
func genericOverallReasoning(mode core.DiningMode) string {
	return fmt.Sprintf("Ranked nearby restaurants by rating for %s. Personalized ranking was unavailable, so these lean on overall popularity.", modeLabel(mode))
}

// emptyReasoning 是空结果的说明。filtered 表示候选本来存在、
// 被硬约束过滤后清空。
func emptyReasoning(filtered bool) string {
	if filtered {
		return "All nearby candidates were excluded by your dietary or scene constraints. Try relaxing the filters or widening the search area."
	}
	return "No nearby restaurants were found for this location. Try widening the search area."
}

// genericTips 是通用补充建议。
func genericTips() []string {
	return []string{
		"Ratings shift with the crowd: check recent reviews before heading out.",
		"Popular spots fill up fast at peak hours, consider booking ahead.",
	}
}

// suggestedDishes 从趋势信号里挑与候选菜系相关的关键词作为推荐菜。
// 纯启发式：趋势关键词与菜系互为子串即视为相关，至多取 2 个。
func suggestedDishes(cand core.Candidate, trends []core.TrendSignal) []string {
	var out []string
	for _, sig := range trends {
		kw := strings.ToLower(sig.Keyword)
		for _, cuisine := range cand.CuisineTypes {
			cz := strings.ToLower(cuisine)
			if strings.Contains(kw, cz) || strings.Contains(cz, kw) {
				out = append(out, sig.Keyword)
				break
			}
		}
		if len(out) == 2 {
			break
		}
	}
	return out
}

// blendScore 按算法权重混合匹配因子与趋势热度，得到 [0,100] 的
// 观测用混合分。不参与排序，只写入 label 供解释与离线调参。
func blendScore(f core.MatchFactors, trends []core.TrendSignal, w core.AlgorithmWeights) float64 {
	trendAvg := 0.0
	if len(trends) > 0 {
		for _, sig := range trends {
			trendAvg += sig.Interest
		}
		trendAvg /= float64(len(trends))
	}
	return f.SocialTrends*w.SocialWeight +
		f.PersonalMatch*w.PersonalWeight +
		f.ContextualFit*w.ContextualWeight +
		trendAvg*w.TrendsWeight
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}
