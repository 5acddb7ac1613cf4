package core

import (
	"context"
	"time"
)

// CandidateProvider 是附近候选餐厅的领域接口。
//
// 设计原则：
//   - 定义在领域层（core），由基础设施层实现（地图/点评类 SDK 封装）
//   - 检索条件（半径、菜系、营业状态等）通过 filters 透传，本层不关心其语义
type CandidateProvider interface {
	// Nearby 按位置检索候选餐厅
	Nearby(ctx context.Context, loc Location, filters map[string]any) ([]Candidate, error)
}

// AIService 是外部 AI 推荐服务的领域接口。
//
// 实现：
//   - service.AIClient（REST）实现此接口
//   - 其他模型服务也可以实现此接口
//
// 调用失败/超时等同于建议缺失，由合成器降级处理，错误不向上传播。
type AIService interface {
	// Suggest 请求 AI 对候选做排序建议
	Suggest(ctx context.Context, req *ComposeRequest) (*AISuggestion, error)

	// Health 健康检查
	Health(ctx context.Context) error

	// Close 关闭连接
	Close() error
}

// UsageEvent 是一次操作的用量上报事件。
type UsageEvent struct {
	UserID    string         `json:"user_id,omitempty"`
	Operation string         `json:"operation"` // compose / trending_food / local_trends ...
	City      string         `json:"city,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
	Payload   map[string]any `json:"payload,omitempty"`
}

// UsageTracker 是用量上报的领域接口。
//
// 上报是 fire-and-forget 副作用：实现与调用方都必须保证
// 上报失败不影响主操作（最多打日志）。
//
// 实现：
//   - track.KafkaTracker 实现此接口
//   - track.MemoryTracker 实现此接口（测试/原型用）
type UsageTracker interface {
	// Track 上报单个事件
	Track(ctx context.Context, ev UsageEvent) error

	// Close 关闭连接/释放资源
	Close() error
}
