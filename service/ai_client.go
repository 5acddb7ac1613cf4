// Package service 提供外部服务的客户端实现，接口定义在 core 包。
package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rushteam/dinekit/core"
)

// AIClient 是外部 AI 推荐服务的 REST 客户端实现。
//
// 请求：POST {endpoint}/suggest，JSON 载荷包含候选、趋势与调整项。
// 响应是类型化解析的：形状不合法返回 INVALID_UPSTREAM，网络失败/非 200
// 返回 SOURCE_UNAVAILABLE——两者对合成器都等同于"建议缺失"，
// 由评分降级路径兜底，错误不会继续向上传播。
//
// 使用示例：
//
//	client := service.NewAIClient("http://ai.internal:8080", service.WithAIKey(key))
//	suggestion, err := client.Suggest(ctx, req)
type AIClient struct {
	// Endpoint 服务端点，例如 "http://ai.internal:8080"
	Endpoint string

	// APIKey 上游凭证；为空时该服务在进程内视为永久不可用
	APIKey string

	// Timeout 单次调用超时
	Timeout time.Duration

	httpClient *http.Client
}

// AIOption 配置 AIClient。
type AIOption func(*AIClient)

// WithAIKey 设置上游凭证。
func WithAIKey(key string) AIOption {
	return func(c *AIClient) { c.APIKey = key }
}

// WithAITimeout 设置调用超时。
func WithAITimeout(d time.Duration) AIOption {
	return func(c *AIClient) {
		if d > 0 {
			c.Timeout = d
		}
	}
}

// NewAIClient 创建 AI 服务客户端。
func NewAIClient(endpoint string, opts ...AIOption) *AIClient {
	c := &AIClient{
		Endpoint: endpoint,
		Timeout:  15 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.httpClient = &http.Client{Timeout: c.Timeout}
	return c
}

// suggestPayload 是发给上游的请求载荷。
type suggestPayload struct {
	UserID      string             `json:"user_id,omitempty"`
	City        string             `json:"city,omitempty"`
	Mode        string             `json:"mode,omitempty"`
	Weather     string             `json:"weather,omitempty"`
	Candidates  []core.Candidate   `json:"candidates"`
	Trends      []core.TrendSignal `json:"trends,omitempty"`
	Adjustments core.Adjustments   `json:"adjustments"`
}

func (c *AIClient) Suggest(ctx context.Context, req *core.ComposeRequest) (*core.AISuggestion, error) {
	if c.APIKey == "" {
		return nil, core.NewDomainError(core.ModuleService, core.ErrorCodeConfigMissing,
			"service: ai client has no api key configured")
	}
	if req == nil {
		return nil, core.NewDomainError(core.ModuleService, core.ErrorCodeInvalidInput,
			"service: nil compose request")
	}

	payload := suggestPayload{
		UserID:      req.UserID,
		City:        req.Context.Location.City,
		Mode:        string(req.Context.Mode),
		Weather:     req.Context.Weather,
		Candidates:  req.Candidates,
		Trends:      req.Trends,
		Adjustments: req.Adjustments,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, core.NewDomainError(core.ModuleService, core.ErrorCodeInternalError,
			fmt.Sprintf("service: marshal suggest payload: %v", err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint+"/suggest", bytes.NewReader(body))
	if err != nil {
		return nil, core.NewDomainError(core.ModuleService, core.ErrorCodeInternalError,
			fmt.Sprintf("service: build suggest request: %v", err))
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, core.NewDomainError(core.ModuleService, core.ErrorCodeSourceUnavailable,
			fmt.Sprintf("service: suggest request failed: %v", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, core.NewDomainError(core.ModuleService, core.ErrorCodeSourceUnavailable,
			fmt.Sprintf("service: ai service returned status %d", resp.StatusCode))
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, core.NewDomainError(core.ModuleService, core.ErrorCodeSourceUnavailable,
			fmt.Sprintf("service: read suggest response: %v", err))
	}

	var suggestion core.AISuggestion
	if err := json.Unmarshal(respBody, &suggestion); err != nil {
		return nil, core.NewDomainError(core.ModuleService, core.ErrorCodeInvalidUpstream,
			fmt.Sprintf("service: malformed ai response: %v", err))
	}
	// 逐条业务校验（候选归属、置信度范围）由合成器负责，
	// 这里只保证结构合法
	return &suggestion, nil
}

func (c *AIClient) Health(ctx context.Context) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Endpoint+"/healthz", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return core.NewDomainError(core.ModuleService, core.ErrorCodeSourceUnavailable,
			fmt.Sprintf("service: health check failed: %v", err))
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return core.NewDomainError(core.ModuleService, core.ErrorCodeSourceUnavailable,
			fmt.Sprintf("service: health check returned status %d", resp.StatusCode))
	}
	return nil
}

func (c *AIClient) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

// 确保 AIClient 实现了 core.AIService 接口
var _ core.AIService = (*AIClient)(nil)
