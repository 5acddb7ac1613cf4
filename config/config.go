package config

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rushteam/dinekit/similarity"
)

// Config 是推荐核心的配置结构（支持 YAML/JSON）。
type Config struct {
	Trend      TrendConfig                `yaml:"trend" json:"trend"`
	Similarity similarity.CategoryWeights `yaml:"similarity" json:"similarity"`
	Weights    WeightsConfig              `yaml:"weights" json:"weights"`
	Compose    ComposeConfig              `yaml:"compose" json:"compose"`
	AI         AIConfig                   `yaml:"ai" json:"ai"`
	Track      TrackConfig                `yaml:"track" json:"track"`
	Store      StoreConfig                `yaml:"store" json:"store"`
}

// TrendConfig 是趋势聚合的配置。
type TrendConfig struct {
	// CacheTTL 缓存有效期（秒），0 使用默认值。
	CacheTTL int `yaml:"cache_ttl" json:"cache_ttl"`
	// CacheMaxEntries 缓存条目上限，0 使用默认值。
	CacheMaxEntries int `yaml:"cache_max_entries" json:"cache_max_entries"`
	// SourceTimeout 单个信号源的超时（秒），0 使用默认值。
	SourceTimeout int `yaml:"source_timeout" json:"source_timeout"`
	// TopN 返回的趋势条数，0 使用默认值。
	TopN int `yaml:"top_n" json:"top_n"`
	// Sources 信号源列表，按声明顺序决定合并优先级。
	Sources []SourceConfig `yaml:"sources" json:"sources"`
}

// SourceConfig 是单个趋势信号源的配置。
type SourceConfig struct {
	Type   string                 `yaml:"type" json:"type"`     // feed / suggest / store 等
	Config map[string]interface{} `yaml:"config" json:"config"` // 信号源特定配置
}

// WeightsConfig 是算法权重存储的配置。
type WeightsConfig struct {
	Key string `yaml:"key" json:"key"` // 持久化键名，空值使用默认键
}

// ComposeConfig 是推荐合成的配置。
type ComposeConfig struct {
	Filters []FilterConfig `yaml:"filters" json:"filters"`
}

// FilterConfig 是单个候选过滤器的配置。
type FilterConfig struct {
	Type   string                 `yaml:"type" json:"type"` // dietary / rule
	Config map[string]interface{} `yaml:"config" json:"config"`
}

// AIConfig 是 AI 服务客户端的配置。
type AIConfig struct {
	Endpoint string `yaml:"endpoint" json:"endpoint"`
	APIKey   string `yaml:"api_key" json:"api_key"`
	Timeout  int    `yaml:"timeout" json:"timeout"` // 秒
}

// TrackConfig 是使用上报的配置。
type TrackConfig struct {
	Type    string   `yaml:"type" json:"type"` // kafka / memory，空值不上报
	Brokers []string `yaml:"brokers" json:"brokers"`
	Topic   string   `yaml:"topic" json:"topic"`
}

// StoreConfig 是存储后端的配置。
type StoreConfig struct {
	Type string `yaml:"type" json:"type"` // memory / redis
	Addr string `yaml:"addr" json:"addr"`
	DB   int    `yaml:"db" json:"db"`
}

// LoadFromYAML 从 YAML 文件加载配置。
func LoadFromYAML(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	return &cfg, nil
}

// LoadFromJSON 从 JSON 文件加载配置。
func LoadFromJSON(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}

	return &cfg, nil
}
