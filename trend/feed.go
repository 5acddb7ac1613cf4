package trend

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rushteam/dinekit/core"
)

// FeedSource 是热搜 feed 的 REST 客户端实现。
//
// 上游返回 JSON：
//
//	{"trends": [{"keyword": "...", "interest": 80, "direction": "rising", "related_queries": ["..."]}]}
//
// 解析采取"显式校验，产出类型化结果"的策略：形状不合法返回
// INVALID_UPSTREAM，调用方（Aggregator）把它当作一次普通的源失败降级。
// 未配置 APIKey 时直接返回 CONFIG_MISSING，该源在进程内视为永久不可用，
// 不会造成重试风暴。
type FeedSource struct {
	Endpoint string
	APIKey   string
	Timeout  time.Duration

	httpClient *http.Client
}

// FeedOption 配置 FeedSource。
type FeedOption func(*FeedSource)

// WithFeedAPIKey 设置上游凭证。
func WithFeedAPIKey(key string) FeedOption {
	return func(s *FeedSource) { s.APIKey = key }
}

// WithFeedTimeout 设置 HTTP 超时。
func WithFeedTimeout(d time.Duration) FeedOption {
	return func(s *FeedSource) {
		if d > 0 {
			s.Timeout = d
		}
	}
}

// NewFeedSource 创建热搜 feed 源。
func NewFeedSource(endpoint string, opts ...FeedOption) *FeedSource {
	s := &FeedSource{
		Endpoint: endpoint,
		Timeout:  10 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.httpClient = &http.Client{Timeout: s.Timeout}
	return s
}

func (s *FeedSource) Name() string { return "trend.feed" }

// feedResponse 是上游响应的类型化形状。
type feedResponse struct {
	Trends []struct {
		Keyword        string   `json:"keyword"`
		Interest       float64  `json:"interest"`
		Direction      string   `json:"direction"`
		RelatedQueries []string `json:"related_queries"`
	} `json:"trends"`
}

func (s *FeedSource) Fetch(ctx context.Context, req *core.TrendRequest) ([]core.TrendSignal, error) {
	if s.APIKey == "" {
		return nil, core.NewDomainError(core.ModuleTrend, core.ErrorCodeConfigMissing,
			"trend: feed source has no api key configured")
	}

	q := url.Values{}
	if len(req.Keywords) > 0 {
		q.Set("keywords", strings.Join(req.Keywords, ","))
	}
	if req.Location.City != "" {
		q.Set("geo", req.Location.City)
	}
	if req.TimeRange != "" {
		q.Set("range", req.TimeRange)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, s.Endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, core.NewDomainError(core.ModuleTrend, core.ErrorCodeInternalError,
			fmt.Sprintf("trend: build feed request: %v", err))
	}
	httpReq.Header.Set("Authorization", "Bearer "+s.APIKey)

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return nil, core.NewDomainError(core.ModuleTrend, core.ErrorCodeSourceUnavailable,
			fmt.Sprintf("trend: feed request failed: %v", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, core.NewDomainError(core.ModuleTrend, core.ErrorCodeSourceUnavailable,
			fmt.Sprintf("trend: feed returned status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, core.NewDomainError(core.ModuleTrend, core.ErrorCodeSourceUnavailable,
			fmt.Sprintf("trend: read feed response: %v", err))
	}

	var parsed feedResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, core.NewDomainError(core.ModuleTrend, core.ErrorCodeInvalidUpstream,
			fmt.Sprintf("trend: malformed feed response: %v", err))
	}

	out := make([]core.TrendSignal, 0, len(parsed.Trends))
	for _, t := range parsed.Trends {
		if strings.TrimSpace(t.Keyword) == "" {
			continue
		}
		out = append(out, core.TrendSignal{
			Keyword:        t.Keyword,
			Interest:       clamp(t.Interest, 0, 100),
			Direction:      parseDirection(t.Direction),
			RelatedQueries: t.RelatedQueries,
			Source:         SourceFeed,
		})
	}
	return out, nil
}

// parseDirection 解析方向枚举，未知取值归为 stable。
func parseDirection(s string) core.TrendDirection {
	switch core.TrendDirection(s) {
	case core.TrendRising:
		return core.TrendRising
	case core.TrendFalling:
		return core.TrendFalling
	default:
		return core.TrendStable
	}
}
