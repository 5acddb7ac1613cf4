package filter

import (
	"context"
	"strings"

	"github.com/rushteam/dinekit/core"
)

// defaultExclusions 是"宗教/饮食要求 → 需要排除的菜系关键词"的默认表。
// 这张表是产品侧维护的配置，这里只提供保守的内置默认：
// 只排除明确冲突的菜系，拿不准的交给用户自己判断。
var defaultExclusions = map[string][]string{
	"vegetarian": {"steakhouse", "bbq", "korean bbq"},
	"vegan":      {"steakhouse", "bbq", "korean bbq", "seafood"},
	"halal":      {"steakhouse", "izakaya"},
	"kosher":     {"seafood", "steakhouse"},
}

// DietaryFilter 按宗教/饮食要求过滤候选：候选的任一菜系命中
// 排除表即被移除。要求与菜系的比较均忽略大小写。
type DietaryFilter struct {
	// Requirements 本次请求生效的饮食要求（通常来自用户画像）。
	Requirements []string

	// Exclusions 自定义排除表；为 nil 时使用内置默认表。
	Exclusions map[string][]string
}

func (f *DietaryFilter) Name() string { return "filter.dietary" }

func (f *DietaryFilter) ShouldFilter(_ context.Context, _ *core.DiningContext, c *core.Candidate) (bool, error) {
	if len(f.Requirements) == 0 || c == nil {
		return false, nil
	}
	exclusions := f.Exclusions
	if exclusions == nil {
		exclusions = defaultExclusions
	}

	for _, req := range f.Requirements {
		excluded, ok := exclusions[strings.ToLower(strings.TrimSpace(req))]
		if !ok {
			continue
		}
		for _, cuisine := range c.CuisineTypes {
			cuisine = strings.ToLower(strings.TrimSpace(cuisine))
			for _, ex := range excluded {
				if cuisine == ex {
					return true, nil
				}
			}
		}
	}
	return false, nil
}
