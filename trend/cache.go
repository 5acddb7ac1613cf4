package trend

import (
	"sync"
	"time"

	"github.com/rushteam/dinekit/core"
)

// SignalCache 是趋势信号的进程内缓存。
//
// 语义：
//   - 读时惰性判断过期：now - storedAt >= ttl 视为 miss
//   - 写入总是覆盖旧条目并刷新 storedAt
//   - TTL 窗口内重复请求命中同一条目，避免推荐结果"抖动"
//
// 容量控制：读路径只靠惰性过期即可保证正确性；为避免关键词/城市组合
// 无界增长吃掉内存，另外有两道闸门——写入时超过 maxEntries 淘汰最旧
// 条目，后台 janitor 周期性清掉已过期条目。
type SignalCache struct {
	mu         sync.RWMutex
	data       map[string]*cacheEntry
	ttl        time.Duration
	maxEntries int
	janitor    *time.Ticker
	stop       chan struct{}
}

type cacheEntry struct {
	signals  []core.TrendSignal
	storedAt time.Time
}

const (
	// DefaultCacheTTL 是趋势数据的默认缓存时长。
	DefaultCacheTTL = 5 * time.Minute

	// DefaultCacheMaxEntries 是缓存条目数上限。
	DefaultCacheMaxEntries = 1024
)

// NewSignalCache 创建信号缓存。ttl <= 0 时使用 DefaultCacheTTL，
// maxEntries <= 0 时使用 DefaultCacheMaxEntries。
func NewSignalCache(ttl time.Duration, maxEntries int) *SignalCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if maxEntries <= 0 {
		maxEntries = DefaultCacheMaxEntries
	}
	c := &SignalCache{
		data:       make(map[string]*cacheEntry),
		ttl:        ttl,
		maxEntries: maxEntries,
		janitor:    time.NewTicker(time.Minute),
		stop:       make(chan struct{}),
	}
	go c.cleanup()
	return c
}

// TTL 返回缓存时长。
func (c *SignalCache) TTL() time.Duration { return c.ttl }

// Get 按 key 读取缓存；条目不存在或已过期返回 (nil, false)。
func (c *SignalCache) Get(key string) ([]core.TrendSignal, bool) {
	return c.getAt(key, time.Now())
}

// getAt 以指定时间判断过期，便于测试边界。
func (c *SignalCache) getAt(key string, now time.Time) ([]core.TrendSignal, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.data[key]
	if !ok {
		return nil, false
	}
	if now.Sub(e.storedAt) >= c.ttl {
		return nil, false
	}
	return e.signals, true
}

// Set 写入缓存，覆盖同名 key 并刷新写入时间。
func (c *SignalCache) Set(key string, signals []core.TrendSignal) {
	c.setAt(key, signals, time.Now())
}

func (c *SignalCache) setAt(key string, signals []core.TrendSignal, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.data[key]; !exists && len(c.data) >= c.maxEntries {
		c.evictOldest()
	}
	c.data[key] = &cacheEntry{signals: signals, storedAt: now}
}

// Len 返回当前条目数（含未被清理的过期条目）。
func (c *SignalCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}

// Close 停止后台清理协程。
func (c *SignalCache) Close() {
	c.janitor.Stop()
	close(c.stop)
}

// evictOldest 淘汰 storedAt 最早的条目。调用方需持有写锁。
func (c *SignalCache) evictOldest() {
	var oldestKey string
	var oldestAt time.Time
	first := true
	for k, e := range c.data {
		if first || e.storedAt.Before(oldestAt) {
			oldestKey = k
			oldestAt = e.storedAt
			first = false
		}
	}
	if !first {
		delete(c.data, oldestKey)
	}
}

func (c *SignalCache) cleanup() {
	for {
		select {
		case <-c.janitor.C:
			now := time.Now()
			c.mu.Lock()
			for k, e := range c.data {
				if now.Sub(e.storedAt) >= c.ttl {
					delete(c.data, k)
				}
			}
			c.mu.Unlock()
		case <-c.stop:
			return
		}
	}
}
