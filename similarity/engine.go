// Package similarity 计算两个人群画像之间的加权多类别相似度，
// 并从单个画像推导推荐调整项。
package similarity

import (
	"fmt"
	"math"
	"strings"

	"github.com/rushteam/dinekit/core"
)

// CategoryWeights 是四个比较类别的权重。
// 默认值是产品层面的经验值而非数据推导结果，因此做成可配置项。
type CategoryWeights struct {
	Cultural    float64 `yaml:"cultural" json:"cultural"`
	Dietary     float64 `yaml:"dietary" json:"dietary"`
	Lifestyle   float64 `yaml:"lifestyle" json:"lifestyle"`
	Preferences float64 `yaml:"preferences" json:"preferences"`
}

// DefaultCategoryWeights 返回默认类别权重。
func DefaultCategoryWeights() CategoryWeights {
	return CategoryWeights{
		Cultural:    0.30,
		Dietary:     0.25,
		Lifestyle:   0.25,
		Preferences: 0.20,
	}
}

// Validate 校验类别权重归一化，不满足时返回 INVALID_INPUT。
func (w CategoryWeights) Validate() error {
	sum := w.Cultural + w.Dietary + w.Lifestyle + w.Preferences
	if math.Abs(sum-1.0) > core.WeightSumTolerance {
		return core.NewDomainError(core.ModuleSimilarity, core.ErrorCodeInvalidInput,
			fmt.Sprintf("similarity: category weights must sum to 1.0, got %.9f", sum))
	}
	return nil
}

// neutralScore 是类别内无任何可比较字段时的中性得分。
const neutralScore = 0.5

// Engine 是人群相似度引擎。无状态、并发安全。
type Engine struct {
	weights CategoryWeights
}

// NewEngine 创建引擎，weights 为零值时使用默认类别权重。
func NewEngine(weights CategoryWeights) *Engine {
	if weights == (CategoryWeights{}) {
		weights = DefaultCategoryWeights()
	}
	return &Engine{weights: weights}
}

// CalculateSimilarityScore 计算两个画像的相似度。
//
// 规则：
//   - 每个类别独立计分；类别内某字段只有在双方都填写时才参与比较，
//     缺失的字段直接退出比较，而不是按 0 分惩罚
//   - 类别内没有任何可比较字段时，该类别取中性分 0.5
//   - 等值比较类字段对调参数对称；数值接近度按绝对差计算，天然对称
//   - Adjustments 只由 profileA 推导，有意不对称（A 是被服务的一方）
//
// 画像数值字段越界返回 INVALID_INPUT，这是本方法唯一的错误路径。
func (e *Engine) CalculateSimilarityScore(a, b *core.DemographicProfile) (*core.SimilarityScore, error) {
	if a == nil {
		a = &core.DemographicProfile{}
	}
	if b == nil {
		b = &core.DemographicProfile{}
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}

	cs := core.CategoryScores{
		Cultural:    culturalScore(a, b),
		Dietary:     dietaryScore(a, b),
		Lifestyle:   lifestyleScore(a, b),
		Preferences: preferencesScore(a, b),
	}

	overall := cs.Cultural*e.weights.Cultural +
		cs.Dietary*e.weights.Dietary +
		cs.Lifestyle*e.weights.Lifestyle +
		cs.Preferences*e.weights.Preferences

	return &core.SimilarityScore{
		OverallScore:    overall,
		CategoryScores:  cs,
		MatchingFactors: matchingFactors(a, b),
		Adjustments:     DeriveAdjustments(a),
	}, nil
}

// culturalScore 文化类别：国籍、文化背景、语言偏好的等值比较，
// 每个双方都填写的字段贡献 1 或 0，取贡献字段的均值。
func culturalScore(a, b *core.DemographicProfile) float64 {
	var terms []float64
	if a.Nationality != "" && b.Nationality != "" {
		terms = append(terms, equalTerm(a.Nationality, b.Nationality))
	}
	if a.CulturalBackground != "" && b.CulturalBackground != "" {
		terms = append(terms, equalTerm(a.CulturalBackground, b.CulturalBackground))
	}
	if a.LanguagePreference != "" && b.LanguagePreference != "" {
		terms = append(terms, equalTerm(a.LanguagePreference, b.LanguagePreference))
	}
	return mean(terms)
}

// dietaryScore 饮食类别：辣度耐受的数值接近度 + 宗教饮食要求的集合重合度。
func dietaryScore(a, b *core.DemographicProfile) float64 {
	var terms []float64
	if a.SpiceToleranceLevel != 0 && b.SpiceToleranceLevel != 0 {
		terms = append(terms, closeness(a.SpiceToleranceLevel, b.SpiceToleranceLevel))
	}
	if len(a.ReligiousDietaryRequirements) > 0 || len(b.ReligiousDietaryRequirements) > 0 {
		terms = append(terms, jaccard(a.ReligiousDietaryRequirements, b.ReligiousDietaryRequirements))
	}
	return mean(terms)
}

// lifestyleScore 生活方式类别。等值失配不一律清零：
// 年龄段失配给 0.5 的部分分，收入档位失配给 0.3。
func lifestyleScore(a, b *core.DemographicProfile) float64 {
	var terms []float64
	if a.AgeGroup != "" && b.AgeGroup != "" {
		if a.AgeGroup == b.AgeGroup {
			terms = append(terms, 1)
		} else {
			terms = append(terms, 0.5)
		}
	}
	if a.FamilyStructure != "" && b.FamilyStructure != "" {
		terms = append(terms, equalTerm(a.FamilyStructure, b.FamilyStructure))
	}
	if a.IncomeBracket != "" && b.IncomeBracket != "" {
		if a.IncomeBracket == b.IncomeBracket {
			terms = append(terms, 1)
		} else {
			terms = append(terms, 0.3)
		}
	}
	if a.LivingArea != "" && b.LivingArea != "" {
		terms = append(terms, equalTerm(a.LivingArea, b.LivingArea))
	}
	return mean(terms)
}

// preferencesScore 偏好类别：地道程度偏好的数值接近度，公式同辣度耐受。
func preferencesScore(a, b *core.DemographicProfile) float64 {
	if a.AuthenticityPreference != 0 && b.AuthenticityPreference != 0 {
		return closeness(a.AuthenticityPreference, b.AuthenticityPreference)
	}
	return neutralScore
}

// matchingFactors 列出双方取值完全一致的字段（字段名为 snake_case）。
func matchingFactors(a, b *core.DemographicProfile) []string {
	var out []string
	add := func(name string, ok bool) {
		if ok {
			out = append(out, name)
		}
	}
	add("nationality", a.Nationality != "" && a.Nationality == b.Nationality)
	add("age_group", a.AgeGroup != "" && a.AgeGroup == b.AgeGroup)
	add("gender", a.Gender != "" && a.Gender == b.Gender)
	add("cultural_background", a.CulturalBackground != "" && a.CulturalBackground == b.CulturalBackground)
	add("spice_tolerance_level", a.SpiceToleranceLevel != 0 && a.SpiceToleranceLevel == b.SpiceToleranceLevel)
	add("authenticity_preference", a.AuthenticityPreference != 0 && a.AuthenticityPreference == b.AuthenticityPreference)
	add("language_preference", a.LanguagePreference != "" && a.LanguagePreference == b.LanguagePreference)
	add("income_bracket", a.IncomeBracket != "" && a.IncomeBracket == b.IncomeBracket)
	add("religious_dietary_requirements",
		len(a.ReligiousDietaryRequirements) > 0 && sameSet(a.ReligiousDietaryRequirements, b.ReligiousDietaryRequirements))
	add("family_structure", a.FamilyStructure != "" && a.FamilyStructure == b.FamilyStructure)
	add("occupation_category", a.OccupationCategory != "" && a.OccupationCategory == b.OccupationCategory)
	add("living_area", a.LivingArea != "" && a.LivingArea == b.LivingArea)
	return out
}

func equalTerm(a, b string) float64 {
	if a == b {
		return 1
	}
	return 0
}

// closeness 把 [1,10] 区间上两个取值的绝对差映射为 [0,1] 接近度。
func closeness(a, b int) float64 {
	return 1 - math.Abs(float64(a-b))/10
}

// jaccard 计算集合重合度 |交|/|并|；双方都为空时定义为 1。
// 比较忽略大小写与首尾空白。
func jaccard(a, b []string) float64 {
	setA := normalizeSet(a)
	setB := normalizeSet(b)
	if len(setA) == 0 && len(setB) == 0 {
		return 1
	}

	union := make(map[string]struct{}, len(setA)+len(setB))
	inter := 0
	for k := range setA {
		union[k] = struct{}{}
	}
	for k := range setB {
		if _, ok := setA[k]; ok {
			inter++
		}
		union[k] = struct{}{}
	}
	return float64(inter) / float64(len(union))
}

func normalizeSet(s []string) map[string]struct{} {
	out := make(map[string]struct{}, len(s))
	for _, v := range s {
		v = strings.ToLower(strings.TrimSpace(v))
		if v != "" {
			out[v] = struct{}{}
		}
	}
	return out
}

func sameSet(a, b []string) bool {
	sa := normalizeSet(a)
	sb := normalizeSet(b)
	if len(sa) != len(sb) {
		return false
	}
	for k := range sa {
		if _, ok := sb[k]; !ok {
			return false
		}
	}
	return true
}

func mean(terms []float64) float64 {
	if len(terms) == 0 {
		return neutralScore
	}
	sum := 0.0
	for _, t := range terms {
		sum += t
	}
	return sum / float64(len(terms))
}
