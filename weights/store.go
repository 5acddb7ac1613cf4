// Package weights 管理算法混合权重：带种子默认值的读取、
// 归一化校验的管理端更新、以及跨进程持久化。
package weights

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/rushteam/dinekit/core"
)

const (
	// DefaultKey 是权重向量在持久化后端中的 key。
	DefaultKey = "algorithm:weights"

	// DefaultHistoryKey 是权重变更审计流水的 Hash key。
	DefaultHistoryKey = "algorithm:weights:history"
)

// Store 持有当前生效的权重向量。
//
// 并发语义：当前值整体替换、读写互斥，读方永远不会观察到
// 写了一半的向量。持久化后端是可选的：
//   - 读取时后端无记录（或后端不可用）则回退到种子默认值
//   - 更新时持久化失败只打日志，不影响进程内生效——对调用方而言
//     SetWeights 只会因归一化校验失败而报错
type Store struct {
	mu      sync.RWMutex
	current *core.AlgorithmWeights

	backend    core.Store // 可为 nil（纯内存模式）
	key        string
	historyKey string
	logger     zerolog.Logger
	now        func() time.Time
}

// Option 配置 Store。
type Option func(*Store)

// WithKey 自定义持久化 key。
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithLogger 注入日志器（默认丢弃）。
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// WithClock 注入时钟，测试用。
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// NewStore 创建权重存储。backend 为 nil 时工作在纯内存模式。
func NewStore(backend core.Store, opts ...Option) *Store {
	s := &Store{
		backend:    backend,
		key:        DefaultKey,
		historyKey: DefaultHistoryKey,
		logger:     zerolog.Nop(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetWeights 返回当前生效的权重向量。
// 进程内尚未加载时尝试从后端读取；无记录或后端不可用则落到种子默认值。
func (s *Store) GetWeights(ctx context.Context) (core.AlgorithmWeights, error) {
	s.mu.RLock()
	if s.current != nil {
		w := *s.current
		s.mu.RUnlock()
		return w, nil
	}
	s.mu.RUnlock()

	w := s.load(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		s.current = &w
	}
	return *s.current, nil
}

// SetWeights 校验并更新权重向量，返回更新后的值。
// 归一化校验失败返回 INVALID_INPUT，这是唯一的错误路径。
func (s *Store) SetWeights(ctx context.Context, w core.AlgorithmWeights, updatedBy string) (core.AlgorithmWeights, error) {
	if err := w.Validate(); err != nil {
		return core.AlgorithmWeights{}, err
	}
	w.UpdatedBy = updatedBy
	w.UpdatedAt = s.now()

	s.persist(ctx, w)

	s.mu.Lock()
	s.current = &w
	s.mu.Unlock()
	return w, nil
}

func (s *Store) load(ctx context.Context) core.AlgorithmWeights {
	if s.backend == nil {
		return core.DefaultAlgorithmWeights()
	}
	data, err := s.backend.Get(ctx, s.key)
	if err != nil {
		if !core.IsStoreNotFound(err) {
			s.logger.Warn().Err(err).Str("backend", s.backend.Name()).Msg("weights: load failed, using defaults")
		}
		return core.DefaultAlgorithmWeights()
	}
	var w core.AlgorithmWeights
	if err := json.Unmarshal(data, &w); err != nil {
		s.logger.Warn().Err(err).Msg("weights: corrupt persisted vector, using defaults")
		return core.DefaultAlgorithmWeights()
	}
	if err := w.Validate(); err != nil {
		s.logger.Warn().Err(err).Msg("weights: persisted vector no longer valid, using defaults")
		return core.DefaultAlgorithmWeights()
	}
	return w
}

// persist 写入后端并追加审计流水。两步都是尽力而为：
// 失败只打日志，不阻断更新在进程内生效。
func (s *Store) persist(ctx context.Context, w core.AlgorithmWeights) {
	if s.backend == nil {
		return
	}
	data, err := json.Marshal(w)
	if err != nil {
		s.logger.Error().Err(err).Msg("weights: marshal failed")
		return
	}
	if err := s.backend.Set(ctx, s.key, data); err != nil {
		s.logger.Warn().Err(err).Str("backend", s.backend.Name()).Msg("weights: persist failed")
	}
	if kv, ok := s.backend.(core.KeyValueStore); ok {
		field := w.UpdatedAt.UTC().Format(time.RFC3339Nano)
		if err := kv.HSet(ctx, s.historyKey, field, data); err != nil {
			s.logger.Warn().Err(err).Msg("weights: audit write failed")
		}
	}
}

// History 返回权重变更审计流水（时间戳 → 当时的向量）。
// 后端不支持 Hash 或为 nil 时返回空 map。
func (s *Store) History(ctx context.Context) (map[string]core.AlgorithmWeights, error) {
	out := make(map[string]core.AlgorithmWeights)
	kv, ok := s.backend.(core.KeyValueStore)
	if !ok {
		return out, nil
	}
	entries, err := kv.HGetAll(ctx, s.historyKey)
	if err != nil {
		return nil, err
	}
	for ts, data := range entries {
		var w core.AlgorithmWeights
		if json.Unmarshal(data, &w) == nil {
			out[ts] = w
		}
	}
	return out, nil
}
