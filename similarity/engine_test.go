package similarity

import (
	"math"
	"testing"

	"github.com/rushteam/dinekit/core"
)

func TestEngine_Symmetry(t *testing.T) {
	a := &core.DemographicProfile{
		Nationality:                  "CN",
		CulturalBackground:           "chinese",
		SpiceToleranceLevel:          7,
		AuthenticityPreference:       8,
		IncomeBracket:                "middle",
		AgeGroup:                     "25-34",
		ReligiousDietaryRequirements: []string{"halal"},
	}
	b := &core.DemographicProfile{
		Nationality:                  "JP",
		CulturalBackground:           "japanese",
		SpiceToleranceLevel:          3,
		AuthenticityPreference:       5,
		IncomeBracket:                "high",
		AgeGroup:                     "25-34",
		ReligiousDietaryRequirements: []string{"vegetarian"},
	}

	e := NewEngine(CategoryWeights{})
	ab, err := e.CalculateSimilarityScore(a, b)
	if err != nil {
		t.Fatalf("计算失败: %v", err)
	}
	ba, err := e.CalculateSimilarityScore(b, a)
	if err != nil {
		t.Fatalf("计算失败: %v", err)
	}

	if ab.OverallScore != ba.OverallScore {
		t.Errorf("总分应对称: %v vs %v", ab.OverallScore, ba.OverallScore)
	}
	if ab.CategoryScores != ba.CategoryScores {
		t.Errorf("类别得分应对称: %+v vs %+v", ab.CategoryScores, ba.CategoryScores)
	}
}

func TestEngine_SpiceCloseness(t *testing.T) {
	// 辣度 9 vs 1：|9-1|/10 => 接近度 0.2；无其他饮食字段时即为饮食类别得分
	a := &core.DemographicProfile{SpiceToleranceLevel: 9}
	b := &core.DemographicProfile{SpiceToleranceLevel: 1}

	got, err := NewEngine(CategoryWeights{}).CalculateSimilarityScore(a, b)
	if err != nil {
		t.Fatalf("计算失败: %v", err)
	}
	if math.Abs(got.CategoryScores.Dietary-0.2) > 1e-9 {
		t.Errorf("期望饮食得分 0.2，实际 %v", got.CategoryScores.Dietary)
	}
}

func TestEngine_IdenticalProfiles(t *testing.T) {
	p := &core.DemographicProfile{
		Nationality:            "CN",
		CulturalBackground:     "chinese",
		LanguagePreference:     "zh",
		SpiceToleranceLevel:    6,
		AuthenticityPreference: 7,
		AgeGroup:               "25-34",
		IncomeBracket:          "middle",
		FamilyStructure:        "couple",
		LivingArea:             "urban",
	}

	got, err := NewEngine(CategoryWeights{}).CalculateSimilarityScore(p, p)
	if err != nil {
		t.Fatalf("计算失败: %v", err)
	}
	if got.OverallScore != 1.0 {
		t.Errorf("完全相同的画像总分应为 1.0，实际 %v", got.OverallScore)
	}
	if len(got.MatchingFactors) == 0 {
		t.Error("完全相同的画像应列出匹配字段")
	}
}

func TestEngine_EmptyProfilesNeutral(t *testing.T) {
	got, err := NewEngine(CategoryWeights{}).CalculateSimilarityScore(nil, nil)
	if err != nil {
		t.Fatalf("空画像不应报错: %v", err)
	}
	// 所有类别都无可比较字段：各取中性分 0.5，总分也是 0.5
	want := core.CategoryScores{Cultural: 0.5, Dietary: 0.5, Lifestyle: 0.5, Preferences: 0.5}
	if got.CategoryScores != want {
		t.Errorf("期望全类别中性分 %+v，实际 %+v", want, got.CategoryScores)
	}
	if math.Abs(got.OverallScore-0.5) > 1e-9 {
		t.Errorf("期望总分 0.5，实际 %v", got.OverallScore)
	}
}

func TestEngine_MissingFieldSkipped(t *testing.T) {
	// 一方缺失的字段不参与比较，而不是按 0 分惩罚
	a := &core.DemographicProfile{Nationality: "CN", CulturalBackground: "chinese"}
	b := &core.DemographicProfile{Nationality: "CN"}

	got, err := NewEngine(CategoryWeights{}).CalculateSimilarityScore(a, b)
	if err != nil {
		t.Fatalf("计算失败: %v", err)
	}
	if got.CategoryScores.Cultural != 1.0 {
		t.Errorf("只有国籍可比较且相等，文化得分应为 1.0，实际 %v", got.CategoryScores.Cultural)
	}
}

func TestEngine_InvalidProfile(t *testing.T) {
	tests := []struct {
		name    string
		profile *core.DemographicProfile
	}{
		{"辣度越界", &core.DemographicProfile{SpiceToleranceLevel: 11}},
		{"辣度为负", &core.DemographicProfile{SpiceToleranceLevel: -1}},
		{"地道偏好越界", &core.DemographicProfile{AuthenticityPreference: 12}},
	}
	e := NewEngine(CategoryWeights{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.CalculateSimilarityScore(tt.profile, nil)
			if !core.IsInvalidInput(err) {
				t.Errorf("期望 INVALID_INPUT，实际 %v", err)
			}
		})
	}
}

func TestJaccard(t *testing.T) {
	tests := []struct {
		name string
		a, b []string
		want float64
	}{
		{"双方为空", nil, nil, 1},
		{"一方为空", []string{"halal"}, nil, 0},
		{"完全重合（忽略大小写）", []string{"Halal"}, []string{"halal "}, 1},
		{"部分重合", []string{"halal", "vegetarian"}, []string{"halal"}, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := jaccard(tt.a, tt.b); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("jaccard(%v, %v) = %v，期望 %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestCategoryWeights_Validate(t *testing.T) {
	if err := DefaultCategoryWeights().Validate(); err != nil {
		t.Errorf("默认类别权重应合法: %v", err)
	}
	bad := CategoryWeights{Cultural: 0.5, Dietary: 0.5, Lifestyle: 0.5, Preferences: 0.5}
	if err := bad.Validate(); !core.IsInvalidInput(err) {
		t.Errorf("不归一的权重应返回 INVALID_INPUT，实际 %v", err)
	}
}
