package trend

import (
	"testing"
	"time"

	"github.com/rushteam/dinekit/core"
)

func TestSignalCache_TTLBoundary(t *testing.T) {
	c := NewSignalCache(100*time.Millisecond, 0)
	defer c.Close()

	t0 := time.Date(2026, 1, 14, 12, 0, 0, 0, time.UTC)
	signals := []core.TrendSignal{{Keyword: "ramen", Interest: 80}}
	c.setAt("k", signals, t0)

	tests := []struct {
		name string
		at   time.Time
		hit  bool
	}{
		{"TTL 到期前 1ms 命中", t0.Add(99 * time.Millisecond), true},
		{"恰好到期不命中", t0.Add(100 * time.Millisecond), false},
		{"到期后 1ms 不命中", t0.Add(101 * time.Millisecond), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := c.getAt("k", tt.at)
			if ok != tt.hit {
				t.Fatalf("期望命中=%v，实际=%v", tt.hit, ok)
			}
			if tt.hit && got[0].Keyword != "ramen" {
				t.Errorf("命中内容不符: %+v", got)
			}
		})
	}
}

func TestSignalCache_OverwriteRefreshes(t *testing.T) {
	c := NewSignalCache(time.Minute, 0)
	defer c.Close()

	t0 := time.Date(2026, 1, 14, 12, 0, 0, 0, time.UTC)
	c.setAt("k", []core.TrendSignal{{Keyword: "old"}}, t0)
	// 59 秒后覆盖写，storedAt 随之刷新
	c.setAt("k", []core.TrendSignal{{Keyword: "new"}}, t0.Add(59*time.Second))

	got, ok := c.getAt("k", t0.Add(90*time.Second))
	if !ok {
		t.Fatal("覆盖写后 storedAt 应被刷新，90 秒时仍应命中")
	}
	if got[0].Keyword != "new" {
		t.Errorf("期望返回覆盖后的内容，实际 %q", got[0].Keyword)
	}
}

func TestSignalCache_MissingKey(t *testing.T) {
	c := NewSignalCache(time.Minute, 0)
	defer c.Close()

	if _, ok := c.Get("nope"); ok {
		t.Error("不存在的 key 不应命中")
	}
}

func TestSignalCache_EvictOldest(t *testing.T) {
	c := NewSignalCache(time.Hour, 2)
	defer c.Close()

	t0 := time.Date(2026, 1, 14, 12, 0, 0, 0, time.UTC)
	c.setAt("a", []core.TrendSignal{{Keyword: "a"}}, t0)
	c.setAt("b", []core.TrendSignal{{Keyword: "b"}}, t0.Add(time.Second))
	c.setAt("c", []core.TrendSignal{{Keyword: "c"}}, t0.Add(2*time.Second))

	if c.Len() != 2 {
		t.Fatalf("期望条目数 2，实际 %d", c.Len())
	}
	if _, ok := c.getAt("a", t0.Add(3*time.Second)); ok {
		t.Error("最旧的条目 a 应被淘汰")
	}
	if _, ok := c.getAt("c", t0.Add(3*time.Second)); !ok {
		t.Error("最新写入的条目 c 应保留")
	}
}

func TestSignalCache_Defaults(t *testing.T) {
	c := NewSignalCache(0, 0)
	defer c.Close()

	if c.TTL() != DefaultCacheTTL {
		t.Errorf("期望默认 TTL %v，实际 %v", DefaultCacheTTL, c.TTL())
	}
}
