package core

import (
	"sort"
	"strings"
)

// TrendDirection 表示关键词热度的变化方向。
type TrendDirection string

const (
	TrendRising  TrendDirection = "rising"  // 上升
	TrendStable  TrendDirection = "stable"  // 平稳
	TrendFalling TrendDirection = "falling" // 下降
)

// TrendSignal 是一个餐饮关键词的热度信号。
// 由 trend.Aggregator 产出，按请求实时计算或命中缓存返回，不做持久化。
type TrendSignal struct {
	Keyword        string         `json:"keyword"`
	Interest       float64        `json:"interest"` // 归一化热度，范围 [0, 100]
	Direction      TrendDirection `json:"direction"`
	RelatedQueries []string       `json:"related_queries,omitempty"`
	Source         string         `json:"source,omitempty"` // 来源：feed / suggest / store / fallback
}

// Location 是请求级的地理位置信息。
// City 作为缓存 key 与榜单 key 的身份标识；经纬度供候选检索方使用。
type Location struct {
	City      string  `json:"city"`
	Latitude  float64 `json:"latitude,omitempty"`
	Longitude float64 `json:"longitude,omitempty"`
}

// TrendRequest 是趋势查询请求。
// 语义相同的两个请求（忽略关键词顺序与大小写）必须产生相同的缓存 key。
type TrendRequest struct {
	Keywords  []string `json:"keywords,omitempty"`
	Location  Location `json:"location"`
	TimeRange string   `json:"time_range,omitempty"` // 时间窗桶，例如 "1d" / "7d"
}

// CacheKey 基于语义相关字段生成确定性缓存 key。
// 关键词统一小写并排序，避免顺序/大小写差异导致缓存碎片化。
func (r *TrendRequest) CacheKey() string {
	kws := make([]string, 0, len(r.Keywords))
	for _, kw := range r.Keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			kws = append(kws, kw)
		}
	}
	sort.Strings(kws)

	var b strings.Builder
	b.WriteString("trend:")
	b.WriteString(strings.ToLower(strings.TrimSpace(r.Location.City)))
	b.WriteString(":")
	b.WriteString(r.TimeRange)
	b.WriteString(":")
	b.WriteString(strings.Join(kws, ","))
	return b.String()
}
