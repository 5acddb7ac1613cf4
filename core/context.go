package core

import "time"

// DiningMode 表示本次用餐的场景模式。
type DiningMode string

const (
	ModeSolo     DiningMode = "solo"     // 一人食
	ModeCouple   DiningMode = "couple"   // 约会
	ModeFamily   DiningMode = "family"   // 家庭聚餐
	ModeFriends  DiningMode = "friends"  // 朋友聚会
	ModeBusiness DiningMode = "business" // 商务宴请
)

// DiningContext 承载一次推荐请求的场景信息，贯穿聚合与合成全链路透传。
//
// Time 是唯一的时间来源：趋势降级生成器、缓存 key 的时间窗桶都从它推导，
// 保证同一请求的各个环节对"现在"的理解一致，也便于测试固定时间。
type DiningContext struct {
	Time     time.Time  // 请求时间（零值表示由实现方取 time.Now()）
	Weather  string     // 天气描述，例如 "sunny" / "rainy" / "cold"
	Mode     DiningMode // 用餐模式
	Location Location   // 地理位置

	// Params 请求级扩展参数：预算、人数、是否需要包间等，
	// 供过滤规则（filter.RuleFilter）和外部 AI 服务使用。
	Params map[string]any
}

// Now 返回请求时间，零值时回退到当前时间。
func (c *DiningContext) Now() time.Time {
	if c.Time.IsZero() {
		return time.Now()
	}
	return c.Time
}
