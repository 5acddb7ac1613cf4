package similarity

import (
	"math"
	"reflect"
	"testing"

	"github.com/rushteam/dinekit/core"
)

func TestDeriveAdjustments(t *testing.T) {
	tests := []struct {
		name    string
		profile *core.DemographicProfile
		want    core.Adjustments
	}{
		{
			"nil 画像返回全默认值",
			nil,
			core.Adjustments{CuisineBoost: []string{}, AuthenticityFactor: 0.5, SpiceLevelAdjustment: 5},
		},
		{
			"文化背景映射菜系加权（忽略大小写）",
			&core.DemographicProfile{CulturalBackground: " Chinese "},
			core.Adjustments{CuisineBoost: []string{"chinese", "sichuan", "cantonese", "hotpot"}, AuthenticityFactor: 0.5, SpiceLevelAdjustment: 5},
		},
		{
			"未知文化背景不做菜系加权",
			&core.DemographicProfile{CulturalBackground: "martian"},
			core.Adjustments{CuisineBoost: []string{}, AuthenticityFactor: 0.5, SpiceLevelAdjustment: 5},
		},
		{
			"收入档位映射价格偏移",
			&core.DemographicProfile{IncomeBracket: "high"},
			core.Adjustments{CuisineBoost: []string{}, PriceAdjustment: 0.3, AuthenticityFactor: 0.5, SpiceLevelAdjustment: 5},
		},
		{
			"低收入负向偏移",
			&core.DemographicProfile{IncomeBracket: "low"},
			core.Adjustments{CuisineBoost: []string{}, PriceAdjustment: -0.3, AuthenticityFactor: 0.5, SpiceLevelAdjustment: 5},
		},
		{
			"地道偏好与辣度直接透传",
			&core.DemographicProfile{AuthenticityPreference: 8, SpiceToleranceLevel: 9},
			core.Adjustments{CuisineBoost: []string{}, AuthenticityFactor: 0.8, SpiceLevelAdjustment: 9},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveAdjustments(tt.profile)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("DeriveAdjustments() = %+v，期望 %+v", got, tt.want)
			}
		})
	}
}

func TestDeriveAdjustments_PriceRange(t *testing.T) {
	// 价格偏移表的取值必须在 [-0.3, 0.3] 之内
	for bracket, offset := range priceByIncome {
		if math.Abs(offset) > 0.3 {
			t.Errorf("收入档位 %q 的价格偏移 %v 超出 [-0.3, 0.3]", bracket, offset)
		}
	}
}
