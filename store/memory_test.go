package store

import (
	"context"
	"reflect"
	"testing"

	"github.com/rushteam/dinekit/core"
)

func TestMemoryStore_GetSet(t *testing.T) {
	m := NewMemoryStore()
	defer m.Close()
	ctx := context.Background()

	if _, err := m.Get(ctx, "missing"); !core.IsStoreNotFound(err) {
		t.Errorf("不存在的 key 应返回 ErrStoreNotFound，实际 %v", err)
	}

	if err := m.Set(ctx, "k", []byte("v")); err != nil {
		t.Fatal(err)
	}
	got, err := m.Get(ctx, "k")
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "v" {
		t.Errorf("期望 v，实际 %q", got)
	}

	if err := m.Delete(ctx, "k"); err != nil {
		t.Fatal(err)
	}
	if _, err := m.Get(ctx, "k"); !core.IsStoreNotFound(err) {
		t.Errorf("删除后应返回 ErrStoreNotFound，实际 %v", err)
	}
}

func TestMemoryStore_ZSet(t *testing.T) {
	m := NewMemoryStore()
	defer m.Close()
	ctx := context.Background()

	pairs := map[string]float64{"ramen": 80, "sushi": 95, "pizza": 60}
	for member, score := range pairs {
		if err := m.ZAdd(ctx, "trends", score, member); err != nil {
			t.Fatal(err)
		}
	}

	got, err := m.ZRange(ctx, "trends", 0, -1)
	if err != nil {
		t.Fatal(err)
	}
	// 按 score 降序
	want := []string{"sushi", "ramen", "pizza"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("期望 %v，实际 %v", want, got)
	}

	top2, _ := m.ZRange(ctx, "trends", 0, 1)
	if !reflect.DeepEqual(top2, []string{"sushi", "ramen"}) {
		t.Errorf("范围截取异常: %v", top2)
	}

	score, err := m.ZScore(ctx, "trends", "ramen")
	if err != nil || score != 80 {
		t.Errorf("期望 ramen 的分数 80，实际 %v / %v", score, err)
	}
	if _, err := m.ZScore(ctx, "trends", "ghost"); !core.IsStoreNotFound(err) {
		t.Errorf("不存在的成员应返回 ErrStoreNotFound，实际 %v", err)
	}
}

func TestMemoryStore_Hash(t *testing.T) {
	m := NewMemoryStore()
	defer m.Close()
	ctx := context.Background()

	if err := m.HSet(ctx, "audit", "t1", []byte("a")); err != nil {
		t.Fatal(err)
	}
	if err := m.HSet(ctx, "audit", "t2", []byte("b")); err != nil {
		t.Fatal(err)
	}

	got, err := m.HGetAll(ctx, "audit")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || string(got["t1"]) != "a" || string(got["t2"]) != "b" {
		t.Errorf("Hash 内容异常: %+v", got)
	}

	other, _ := m.HGetAll(ctx, "other")
	if len(other) != 0 {
		t.Errorf("其他 Hash key 不应有内容: %+v", other)
	}
}
