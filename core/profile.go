package core

import "fmt"

// DemographicProfile 是用户自述的人群画像。
//
// 所有字段均为可选：某个字段缺失时，它不参与对应类别的比较，
// 而不是按惩罚项处理。数值字段用 0 表示未填写（合法取值从 1 开始）。
type DemographicProfile struct {
	Nationality        string `json:"nationality,omitempty"`
	AgeGroup           string `json:"age_group,omitempty"` // 例如 "18-24" / "25-34"
	Gender             string `json:"gender,omitempty"`
	CulturalBackground string `json:"cultural_background,omitempty"`

	SpiceToleranceLevel    int `json:"spice_tolerance_level,omitempty"`    // [1, 10]，0 表示未填写
	AuthenticityPreference int `json:"authenticity_preference,omitempty"` // [1, 10]，0 表示未填写

	LanguagePreference           string   `json:"language_preference,omitempty"`
	IncomeBracket                string   `json:"income_bracket,omitempty"` // low / lower_middle / middle / upper_middle / high
	ReligiousDietaryRequirements []string `json:"religious_dietary_requirements,omitempty"`
	FamilyStructure              string   `json:"family_structure,omitempty"`
	OccupationCategory           string   `json:"occupation_category,omitempty"`
	LivingArea                   string   `json:"living_area,omitempty"`
}

// Validate 校验数值字段取值范围，越界返回 INVALID_INPUT。
func (p *DemographicProfile) Validate() error {
	if p.SpiceToleranceLevel != 0 && (p.SpiceToleranceLevel < 1 || p.SpiceToleranceLevel > 10) {
		return NewDomainError(ModuleSimilarity, ErrorCodeInvalidInput,
			fmt.Sprintf("similarity: spice_tolerance_level must be in [1,10], got %d", p.SpiceToleranceLevel))
	}
	if p.AuthenticityPreference != 0 && (p.AuthenticityPreference < 1 || p.AuthenticityPreference > 10) {
		return NewDomainError(ModuleSimilarity, ErrorCodeInvalidInput,
			fmt.Sprintf("similarity: authenticity_preference must be in [1,10], got %d", p.AuthenticityPreference))
	}
	return nil
}

// CategoryScores 是四个比较类别的得分，范围均为 [0, 1]。
type CategoryScores struct {
	Cultural    float64 `json:"cultural"`
	Dietary     float64 `json:"dietary"`
	Lifestyle   float64 `json:"lifestyle"`
	Preferences float64 `json:"preferences"`
}

// Adjustments 是由单个画像（比较中的 A 方）推导出的推荐调整项。
// 注意：它只依赖 A 方画像，不具有对称性。
type Adjustments struct {
	CuisineBoost         []string `json:"cuisine_boost"`          // 按文化背景加权的菜系
	PriceAdjustment      float64  `json:"price_adjustment"`       // [-0.3, 0.3]，按收入档位
	AuthenticityFactor   float64  `json:"authenticity_factor"`    // [0, 1]
	SpiceLevelAdjustment int      `json:"spice_level_adjustment"` // [1, 10]
}

// SimilarityScore 是两个画像的相似度比较结果。
// 纯派生值，不做持久化，每次比较重新计算。
type SimilarityScore struct {
	OverallScore    float64        `json:"overall_score"` // [0, 1]，类别得分的加权和
	CategoryScores  CategoryScores `json:"category_scores"`
	MatchingFactors []string       `json:"matching_factors"` // 双方取值完全一致的字段名
	Adjustments     Adjustments    `json:"adjustments"`
}
