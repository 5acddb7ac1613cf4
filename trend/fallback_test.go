package trend

import (
	"reflect"
	"testing"
	"time"

	"github.com/rushteam/dinekit/core"
)

func TestFallbackGenerator_Deterministic(t *testing.T) {
	g := &FallbackGenerator{}
	now := time.Date(2026, 7, 11, 12, 30, 0, 0, time.UTC) // 周六午餐、夏季
	loc := core.Location{City: "shanghai"}

	a := g.Generate(now, loc)
	b := g.Generate(now, loc)
	if !reflect.DeepEqual(a, b) {
		t.Error("相同输入的两次生成结果应完全一致")
	}
	if len(a) == 0 {
		t.Fatal("生成结果不应为空")
	}
}

func TestFallbackGenerator_Boosts(t *testing.T) {
	g := &FallbackGenerator{}
	// 2026-01-14 是周三，19 点 => 晚餐时段、冬季、非周末
	now := time.Date(2026, 1, 14, 19, 0, 0, 0, time.UTC)
	out := g.Generate(now, core.Location{})

	byKeyword := make(map[string]core.TrendSignal, len(out))
	for _, sig := range out {
		byKeyword[sig.Keyword] = sig
	}

	tests := []struct {
		keyword   string
		interest  float64
		direction core.TrendDirection
	}{
		{"ramen", 58 + mealBoost + seasonBoost, core.TrendRising},   // 晚餐 + 冬季
		{"hotpot", 50 + mealBoost + seasonBoost, core.TrendRising},  // 晚餐 + 冬季（周三无周末加权）
		{"ice cream", 42 + seasonPenalty, core.TrendFalling},        // 冬季减权
		{"coffee", 60, core.TrendStable},                            // 早餐关键词在晚间无加减权
	}
	for _, tt := range tests {
		sig, ok := byKeyword[tt.keyword]
		if !ok {
			t.Fatalf("候选集中缺少 %q", tt.keyword)
		}
		if sig.Interest != tt.interest {
			t.Errorf("%s: 期望热度 %v，实际 %v", tt.keyword, tt.interest, sig.Interest)
		}
		if sig.Direction != tt.direction {
			t.Errorf("%s: 期望方向 %s，实际 %s", tt.keyword, tt.direction, sig.Direction)
		}
		if sig.Source != SourceFallback {
			t.Errorf("%s: 来源应为 %q，实际 %q", tt.keyword, SourceFallback, sig.Source)
		}
	}
}

func TestFallbackGenerator_SortedDescending(t *testing.T) {
	g := &FallbackGenerator{}
	out := g.Generate(time.Date(2026, 4, 3, 8, 0, 0, 0, time.UTC), core.Location{})
	for i := 1; i < len(out); i++ {
		if out[i-1].Interest < out[i].Interest {
			t.Fatalf("结果未按热度降序: 第 %d 项 %v < 第 %d 项 %v", i-1, out[i-1].Interest, i, out[i].Interest)
		}
	}
}

func TestMealOf(t *testing.T) {
	tests := []struct {
		hour int
		want string
	}{
		{6, mealBreakfast},
		{10, mealBreakfast},
		{11, mealLunch},
		{14, mealLunch},
		{15, ""},
		{17, mealDinner},
		{21, mealDinner},
		{23, mealLate},
		{1, mealLate},
		{3, ""},
	}
	for _, tt := range tests {
		if got := mealOf(tt.hour); got != tt.want {
			t.Errorf("mealOf(%d) = %q，期望 %q", tt.hour, got, tt.want)
		}
	}
}

func TestSeasonOf(t *testing.T) {
	tests := []struct {
		month time.Month
		want  string
	}{
		{time.March, seasonSpring},
		{time.July, seasonSummer},
		{time.October, seasonAutumn},
		{time.December, seasonWinter},
		{time.February, seasonWinter},
	}
	for _, tt := range tests {
		if got := seasonOf(tt.month); got != tt.want {
			t.Errorf("seasonOf(%v) = %q，期望 %q", tt.month, got, tt.want)
		}
	}
}
