package track

import (
	"context"
	"sync"

	"github.com/rushteam/dinekit/core"
)

// MemoryTracker 是内存实现的上报器，用于测试/开发/原型。
type MemoryTracker struct {
	mu     sync.Mutex
	events []core.UsageEvent
}

func NewMemoryTracker() *MemoryTracker {
	return &MemoryTracker{}
}

func (t *MemoryTracker) Track(_ context.Context, ev core.UsageEvent) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.events = append(t.events, ev)
	return nil
}

// Events 返回已记录事件的副本。
func (t *MemoryTracker) Events() []core.UsageEvent {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]core.UsageEvent(nil), t.events...)
}

func (t *MemoryTracker) Close() error { return nil }

var _ core.UsageTracker = (*MemoryTracker)(nil)
