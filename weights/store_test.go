package weights

import (
	"context"
	"testing"
	"time"

	"github.com/rushteam/dinekit/core"
	"github.com/rushteam/dinekit/store"
)

func TestStore_DefaultsWithoutBackend(t *testing.T) {
	s := NewStore(nil)

	got, err := s.GetWeights(context.Background())
	if err != nil {
		t.Fatalf("读取失败: %v", err)
	}
	if got != core.DefaultAlgorithmWeights() {
		t.Errorf("无后端时应返回种子默认值，实际 %+v", got)
	}
}

func TestStore_SetThenGet(t *testing.T) {
	s := NewStore(nil)
	ctx := context.Background()

	w := core.AlgorithmWeights{SocialWeight: 0.25, PersonalWeight: 0.25, ContextualWeight: 0.25, TrendsWeight: 0.25}
	updated, err := s.SetWeights(ctx, w, "ops@example.com")
	if err != nil {
		t.Fatalf("更新失败: %v", err)
	}
	if updated.UpdatedBy != "ops@example.com" {
		t.Errorf("期望 UpdatedBy 被写入，实际 %q", updated.UpdatedBy)
	}
	if updated.UpdatedAt.IsZero() {
		t.Error("期望 UpdatedAt 被写入")
	}

	got, _ := s.GetWeights(ctx)
	if got.SocialWeight != 0.25 || got.TrendsWeight != 0.25 {
		t.Errorf("读取应返回更新后的向量，实际 %+v", got)
	}
}

func TestStore_RejectInvalidWeights(t *testing.T) {
	s := NewStore(nil)
	ctx := context.Background()

	bad := core.AlgorithmWeights{SocialWeight: 0.9, PersonalWeight: 0.9, ContextualWeight: 0, TrendsWeight: 0}
	if _, err := s.SetWeights(ctx, bad, "ops"); !core.IsInvalidInput(err) {
		t.Fatalf("不归一的向量应返回 INVALID_INPUT，实际 %v", err)
	}

	// 非法更新不得污染当前值
	got, _ := s.GetWeights(ctx)
	if got != core.DefaultAlgorithmWeights() {
		t.Errorf("非法更新后当前值应保持默认，实际 %+v", got)
	}
}

func TestStore_PersistAcrossInstances(t *testing.T) {
	backend := store.NewMemoryStore()
	defer backend.Close()
	ctx := context.Background()

	fixed := time.Date(2026, 1, 14, 12, 0, 0, 0, time.UTC)
	s1 := NewStore(backend, WithClock(func() time.Time { return fixed }))
	w := core.AlgorithmWeights{SocialWeight: 0.1, PersonalWeight: 0.2, ContextualWeight: 0.3, TrendsWeight: 0.4}
	if _, err := s1.SetWeights(ctx, w, "ops"); err != nil {
		t.Fatalf("更新失败: %v", err)
	}

	// 新实例从同一后端加载，应看到持久化后的向量
	s2 := NewStore(backend)
	got, err := s2.GetWeights(ctx)
	if err != nil {
		t.Fatalf("读取失败: %v", err)
	}
	if got.SocialWeight != 0.1 || got.TrendsWeight != 0.4 || got.UpdatedBy != "ops" {
		t.Errorf("期望跨实例读到持久化向量，实际 %+v", got)
	}
}

func TestStore_CorruptPersistedFallsBackToDefaults(t *testing.T) {
	backend := store.NewMemoryStore()
	defer backend.Close()
	ctx := context.Background()

	if err := backend.Set(ctx, DefaultKey, []byte("not json")); err != nil {
		t.Fatal(err)
	}

	s := NewStore(backend)
	got, err := s.GetWeights(ctx)
	if err != nil {
		t.Fatalf("损坏的持久化记录不应让读取报错: %v", err)
	}
	if got != core.DefaultAlgorithmWeights() {
		t.Errorf("损坏记录应回退到默认值，实际 %+v", got)
	}
}

func TestStore_History(t *testing.T) {
	backend := store.NewMemoryStore()
	defer backend.Close()
	ctx := context.Background()

	clock := time.Date(2026, 1, 14, 12, 0, 0, 0, time.UTC)
	s := NewStore(backend, WithClock(func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}))

	first := core.AlgorithmWeights{SocialWeight: 0.25, PersonalWeight: 0.25, ContextualWeight: 0.25, TrendsWeight: 0.25}
	second := core.AlgorithmWeights{SocialWeight: 0.4, PersonalWeight: 0.3, ContextualWeight: 0.2, TrendsWeight: 0.1}
	if _, err := s.SetWeights(ctx, first, "a"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.SetWeights(ctx, second, "b"); err != nil {
		t.Fatal(err)
	}

	history, err := s.History(ctx)
	if err != nil {
		t.Fatalf("读取审计流水失败: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("期望 2 条审计记录，实际 %d 条", len(history))
	}
	for ts, w := range history {
		if w.UpdatedBy != "a" && w.UpdatedBy != "b" {
			t.Errorf("审计记录 %s 的 UpdatedBy 异常: %+v", ts, w)
		}
	}
}
