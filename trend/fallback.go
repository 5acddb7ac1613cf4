package trend

import (
	"sort"
	"time"

	"github.com/rushteam/dinekit/core"
)

// FallbackGenerator 是趋势信号的算法降级生成器。
//
// 当所有外部源都失败或返回空时，Aggregator 用它合成一份确定性的
// 趋势列表：固定候选关键词集合，按请求时刻做餐段/周末/季节加减权。
// 纯函数，无 I/O，相同的 (now, location) 必然产出相同结果。
type FallbackGenerator struct{}

// 加减权幅度。数值本身是产品层面的经验值，不是可证明的常量。
const (
	mealBoost     = 15.0
	weekendBoost  = 8.0
	seasonBoost   = 12.0
	seasonPenalty = -10.0
)

// 餐段：breakfast / lunch / dinner / late（宵夜）
const (
	mealBreakfast = "breakfast"
	mealLunch     = "lunch"
	mealDinner    = "dinner"
	mealLate      = "late"
)

// 季节
const (
	seasonSpring = "spring"
	seasonSummer = "summer"
	seasonAutumn = "autumn"
	seasonWinter = "winter"
)

type fallbackCandidate struct {
	keyword    string
	base       float64
	meals      []string // 命中这些餐段时加权
	seasons    []string // 命中这些季节时加权
	offSeasons []string // 命中这些季节时减权
	weekend    bool     // 周末加权
	related    []string
}

// 固定候选集。顺序即同分时的展示顺序（稳定排序保证）。
var fallbackCandidates = []fallbackCandidate{
	{keyword: "coffee", base: 60, meals: []string{mealBreakfast}, related: []string{"coffee shop near me", "latte"}},
	{keyword: "brunch", base: 52, meals: []string{mealBreakfast, mealLunch}, weekend: true, related: []string{"brunch spots", "pancakes"}},
	{keyword: "ramen", base: 58, meals: []string{mealLunch, mealDinner, mealLate}, seasons: []string{seasonAutumn, seasonWinter}, offSeasons: []string{seasonSummer}},
	{keyword: "sushi", base: 57, meals: []string{mealLunch, mealDinner}, related: []string{"omakase", "sushi near me"}},
	{keyword: "pizza", base: 61, meals: []string{mealDinner, mealLate}, weekend: true, related: []string{"pizza delivery"}},
	{keyword: "hotpot", base: 50, meals: []string{mealDinner}, seasons: []string{seasonWinter}, offSeasons: []string{seasonSummer}, weekend: true},
	{keyword: "bbq", base: 53, meals: []string{mealDinner}, seasons: []string{seasonSummer}, weekend: true, related: []string{"korean bbq"}},
	{keyword: "salad", base: 45, meals: []string{mealLunch}, seasons: []string{seasonSummer}, offSeasons: []string{seasonWinter}},
	{keyword: "ice cream", base: 42, seasons: []string{seasonSummer}, offSeasons: []string{seasonWinter}, related: []string{"gelato"}},
	{keyword: "tacos", base: 51, meals: []string{mealLunch, mealLate}},
	{keyword: "burgers", base: 55, meals: []string{mealLunch, mealDinner}, weekend: true},
	{keyword: "dumplings", base: 48, meals: []string{mealLunch, mealDinner}, seasons: []string{seasonWinter}},
	{keyword: "curry", base: 47, meals: []string{mealDinner}, seasons: []string{seasonAutumn, seasonWinter}},
	{keyword: "seafood", base: 49, meals: []string{mealDinner}, seasons: []string{seasonSummer}},
	{keyword: "fried chicken", base: 54, meals: []string{mealDinner, mealLate}, weekend: true},
	{keyword: "pho", base: 46, meals: []string{mealLunch}, seasons: []string{seasonWinter}, offSeasons: []string{seasonSummer}},
}

// Generate 从 (now, location) 合成确定性趋势列表，按热度降序。
// location 暂时只参与透传（不同城市共享同一候选集），保留参数是为了
// 未来接入城市级候选集时不破坏调用方。
func (g *FallbackGenerator) Generate(now time.Time, _ core.Location) []core.TrendSignal {
	meal := mealOf(now.Hour())
	season := seasonOf(now.Month())
	weekend := isWeekend(now.Weekday())

	out := make([]core.TrendSignal, 0, len(fallbackCandidates))
	for _, c := range fallbackCandidates {
		boost := 0.0
		if meal != "" && contains(c.meals, meal) {
			boost += mealBoost
		}
		if weekend && c.weekend {
			boost += weekendBoost
		}
		if contains(c.seasons, season) {
			boost += seasonBoost
		}
		if contains(c.offSeasons, season) {
			boost += seasonPenalty
		}

		interest := clamp(c.base+boost, 0, 100)
		out = append(out, core.TrendSignal{
			Keyword:        c.keyword,
			Interest:       interest,
			Direction:      directionOf(boost),
			RelatedQueries: c.related,
			Source:         SourceFallback,
		})
	}

	// 稳定排序：同分保持候选集顺序
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Interest > out[j].Interest
	})
	return out
}

// mealOf 返回小时所属餐段，非用餐时段返回 ""。
func mealOf(hour int) string {
	switch {
	case hour >= 6 && hour <= 10:
		return mealBreakfast
	case hour >= 11 && hour <= 14:
		return mealLunch
	case hour >= 17 && hour <= 21:
		return mealDinner
	case hour >= 22 || hour <= 1:
		return mealLate
	default:
		return ""
	}
}

// seasonOf 按月份返回季节（北半球划分）。
func seasonOf(m time.Month) string {
	switch m {
	case time.March, time.April, time.May:
		return seasonSpring
	case time.June, time.July, time.August:
		return seasonSummer
	case time.September, time.October, time.November:
		return seasonAutumn
	default:
		return seasonWinter
	}
}

func isWeekend(d time.Weekday) bool {
	return d == time.Saturday || d == time.Sunday
}

// directionOf 按净加权推断方向：加权为正视为上升，为负视为下降。
func directionOf(boost float64) core.TrendDirection {
	switch {
	case boost > 0:
		return core.TrendRising
	case boost < 0:
		return core.TrendFalling
	default:
		return core.TrendStable
	}
}

func contains(s []string, v string) bool {
	for _, e := range s {
		if e == v {
			return true
		}
	}
	return false
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
