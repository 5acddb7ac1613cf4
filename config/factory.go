package config

import (
	"fmt"
	"time"

	"github.com/rushteam/dinekit/compose"
	"github.com/rushteam/dinekit/core"
	"github.com/rushteam/dinekit/filter"
	"github.com/rushteam/dinekit/pkg/conv"
	"github.com/rushteam/dinekit/service"
	"github.com/rushteam/dinekit/similarity"
	"github.com/rushteam/dinekit/store"
	"github.com/rushteam/dinekit/track"
	"github.com/rushteam/dinekit/trend"
	"github.com/rushteam/dinekit/weights"
)

// SourceFactory 用于根据配置构建趋势信号源实例。
type SourceFactory struct {
	builders map[string]func(map[string]interface{}) (trend.Source, error)
}

func NewSourceFactory() *SourceFactory {
	return &SourceFactory{
		builders: make(map[string]func(map[string]interface{}) (trend.Source, error)),
	}
}

// Register 注册信号源构建器。
func (f *SourceFactory) Register(sourceType string, builder func(map[string]interface{}) (trend.Source, error)) {
	f.builders[sourceType] = builder
}

// Build 根据类型和配置构建信号源。
func (f *SourceFactory) Build(sourceType string, config map[string]interface{}) (trend.Source, error) {
	builder, ok := f.builders[sourceType]
	if !ok {
		return nil, fmt.Errorf("unknown source type: %s", sourceType)
	}
	return builder(config)
}

// DefaultFactory 返回一个包含所有内置信号源构建器的默认工厂。
// kv 供 store 类型的信号源读取本地热词，可以为 nil（此时配置
// store 源会报错）。
func DefaultFactory(kv core.KeyValueStore) *SourceFactory {
	factory := NewSourceFactory()

	factory.Register(trend.SourceFeed, buildFeedSource)
	factory.Register(trend.SourceSuggest, buildSuggestSource)
	factory.Register(trend.SourceStore, func(config map[string]interface{}) (trend.Source, error) {
		return buildStoreSource(kv, config)
	})

	return factory
}

func buildFeedSource(config map[string]interface{}) (trend.Source, error) {
	endpoint := conv.ConfigGet[string](config, "endpoint", "")
	if endpoint == "" {
		return nil, fmt.Errorf("endpoint not found")
	}
	opts := []trend.FeedOption{}
	if key := conv.ConfigGet[string](config, "api_key", ""); key != "" {
		opts = append(opts, trend.WithFeedAPIKey(key))
	}
	if sec := conv.ConfigGetInt64(config, "timeout", 0); sec > 0 {
		opts = append(opts, trend.WithFeedTimeout(time.Duration(sec)*time.Second))
	}
	return trend.NewFeedSource(endpoint, opts...), nil
}

func buildSuggestSource(config map[string]interface{}) (trend.Source, error) {
	endpoint := conv.ConfigGet[string](config, "endpoint", "")
	if endpoint == "" {
		return nil, fmt.Errorf("endpoint not found")
	}
	timeout := time.Duration(conv.ConfigGetInt64(config, "timeout", 0)) * time.Second
	return trend.NewSuggestSource(endpoint, timeout), nil
}

func buildStoreSource(kv core.KeyValueStore, config map[string]interface{}) (trend.Source, error) {
	if kv == nil {
		return nil, fmt.Errorf("store source requires a key-value store backend")
	}
	src := &trend.StoreSource{
		Store:     kv,
		KeyPrefix: conv.ConfigGet[string](config, "key_prefix", ""),
	}
	if n := conv.ConfigGetInt64(config, "limit", 0); n > 0 {
		src.Limit = n
	}
	return src, nil
}

// BuildStore 根据配置构建存储后端。
func (c *Config) BuildStore() (core.KeyValueStore, error) {
	switch c.Store.Type {
	case "", "memory":
		return store.NewMemoryStore(), nil
	case "redis":
		return store.NewRedisStore(c.Store.Addr, c.Store.DB)
	default:
		return nil, fmt.Errorf("unknown store type: %s", c.Store.Type)
	}
}

// BuildAggregator 根据配置构建趋势聚合器。
func (c *Config) BuildAggregator(factory *SourceFactory) (*trend.Aggregator, error) {
	sources := make([]trend.Source, 0, len(c.Trend.Sources))
	for _, sc := range c.Trend.Sources {
		src, err := factory.Build(sc.Type, sc.Config)
		if err != nil {
			return nil, fmt.Errorf("build source %s: %w", sc.Type, err)
		}
		sources = append(sources, src)
	}

	cache := trend.NewSignalCache(
		time.Duration(c.Trend.CacheTTL)*time.Second,
		c.Trend.CacheMaxEntries,
	)

	opts := []trend.AggregatorOption{}
	if c.Trend.SourceTimeout > 0 {
		opts = append(opts, trend.WithSourceTimeout(time.Duration(c.Trend.SourceTimeout)*time.Second))
	}
	if c.Trend.TopN > 0 {
		opts = append(opts, trend.WithTopN(c.Trend.TopN))
	}
	return trend.NewAggregator(sources, cache, opts...), nil
}

// BuildEngine 根据配置构建相似度引擎。
func (c *Config) BuildEngine() (*similarity.Engine, error) {
	if c.Similarity != (similarity.CategoryWeights{}) {
		if err := c.Similarity.Validate(); err != nil {
			return nil, err
		}
	}
	return similarity.NewEngine(c.Similarity), nil
}

// BuildWeightsStore 根据配置构建算法权重存储。
func (c *Config) BuildWeightsStore(backend core.Store) *weights.Store {
	opts := []weights.Option{}
	if c.Weights.Key != "" {
		opts = append(opts, weights.WithKey(c.Weights.Key))
	}
	return weights.NewStore(backend, opts...)
}

// BuildTracker 根据配置构建使用上报器。未配置时返回 nil。
func (c *Config) BuildTracker() (core.UsageTracker, error) {
	switch c.Track.Type {
	case "":
		return nil, nil
	case "memory":
		return track.NewMemoryTracker(), nil
	case "kafka":
		if len(c.Track.Brokers) == 0 || c.Track.Topic == "" {
			return nil, fmt.Errorf("kafka tracker requires brokers and topic")
		}
		return track.NewKafkaTracker(c.Track.Brokers, c.Track.Topic), nil
	default:
		return nil, fmt.Errorf("unknown tracker type: %s", c.Track.Type)
	}
}

// BuildComposer 根据配置构建推荐合成器。
func (c *Config) BuildComposer(tracker core.UsageTracker) (*compose.Composer, error) {
	filters := make([]filter.Filter, 0, len(c.Compose.Filters))
	for _, fc := range c.Compose.Filters {
		f, err := buildFilter(fc)
		if err != nil {
			return nil, fmt.Errorf("build filter %s: %w", fc.Type, err)
		}
		filters = append(filters, f)
	}

	opts := []compose.Option{compose.WithFilters(filters...)}
	if tracker != nil {
		opts = append(opts, compose.WithTracker(tracker))
	}
	return compose.NewComposer(opts...), nil
}

func buildFilter(fc FilterConfig) (filter.Filter, error) {
	switch fc.Type {
	case "dietary":
		reqs := conv.SliceAnyToString(fc.Config["requirements"])
		if reqs == nil {
			reqs = []string{}
		}
		return &filter.DietaryFilter{Requirements: reqs}, nil
	case "rule":
		expr := conv.ConfigGet[string](fc.Config, "expr", "")
		if expr == "" {
			return nil, fmt.Errorf("expr not found")
		}
		return filter.NewRuleFilter(expr)
	default:
		return nil, fmt.Errorf("unknown filter type: %s", fc.Type)
	}
}

// BuildAIClient 根据配置构建 AI 服务客户端。未配置 endpoint 时返回 nil。
func (c *Config) BuildAIClient() core.AIService {
	if c.AI.Endpoint == "" {
		return nil
	}
	opts := []service.AIOption{}
	if c.AI.APIKey != "" {
		opts = append(opts, service.WithAIKey(c.AI.APIKey))
	}
	if c.AI.Timeout > 0 {
		opts = append(opts, service.WithAITimeout(time.Duration(c.AI.Timeout)*time.Second))
	}
	return service.NewAIClient(c.AI.Endpoint, opts...)
}
