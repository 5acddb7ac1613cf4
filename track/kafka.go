// Package track 提供用量上报的实现，接口定义在 core 包。
// 上报是 fire-and-forget 副作用：失败最多打日志，绝不影响主操作。
package track

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"

	"github.com/rushteam/dinekit/core"
)

// KafkaTracker 把用量事件发往 Kafka，供离线侧做趋势榜单与调权分析。
type KafkaTracker struct {
	writer *kafka.Writer
}

// NewKafkaTracker 创建 Kafka 上报器。
func NewKafkaTracker(brokers []string, topic string) *KafkaTracker {
	return &KafkaTracker{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
			// 上报是旁路流量，异步发送换吞吐，丢一条无伤大雅
			Async: true,
		},
	}
}

func (t *KafkaTracker) Track(ctx context.Context, ev core.UsageEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return core.NewDomainError(core.ModuleTrack, core.ErrorCodeInternalError,
			"track: marshal usage event: "+err.Error())
	}
	return t.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(ev.UserID),
		Value: payload,
	})
}

func (t *KafkaTracker) Close() error {
	return t.writer.Close()
}

var _ core.UsageTracker = (*KafkaTracker)(nil)
