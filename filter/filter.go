// Package filter 提供候选餐厅的前置过滤：在排序/合成之前剔除
// 不符合硬约束（饮食禁忌、价位、场景规则）的候选。
package filter

import (
	"context"

	"github.com/rushteam/dinekit/core"
)

// Filter 是过滤器的抽象接口，用于判断一个候选是否应该被过滤掉。
// 返回 true 表示应该过滤（移除），false 表示保留。
type Filter interface {
	// Name 返回过滤器名称
	Name() string

	// ShouldFilter 判断候选是否应该被过滤
	ShouldFilter(ctx context.Context, dctx *core.DiningContext, c *core.Candidate) (bool, error)
}

// Chain 组合多个过滤器。任何一个过滤器返回 true，该候选就会被移除。
// 过滤器自身出错时跳过该过滤器（宁可放过，不可误杀），绝不让
// 过滤环节使整个请求失败。
type Chain struct {
	Filters []Filter
}

// Apply 返回通过全部过滤器的候选子集。输入顺序保持不变。
func (c *Chain) Apply(ctx context.Context, dctx *core.DiningContext, candidates []core.Candidate) []core.Candidate {
	if len(c.Filters) == 0 || len(candidates) == 0 {
		return candidates
	}

	out := make([]core.Candidate, 0, len(candidates))
	for i := range candidates {
		cand := &candidates[i]
		drop := false
		for _, f := range c.Filters {
			ok, err := f.ShouldFilter(ctx, dctx, cand)
			if err != nil {
				continue
			}
			if ok {
				drop = true
				break
			}
		}
		if !drop {
			out = append(out, *cand)
		}
	}
	return out
}
