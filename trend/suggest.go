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

// SuggestSource 是搜索联想接口的 REST 客户端实现，作为次级趋势源。
//
// 上游返回 JSON：
//
//	{"suggestions": ["spicy hotpot", "ramen near me", ...]}
//
// 联想结果没有热度值，这里按排位合成：首位 90 分，逐位递减 5 分，
// 下限 40 分。确定性的合成规则保证同一响应产出同一信号列表。
type SuggestSource struct {
	Endpoint string
	Timeout  time.Duration

	httpClient *http.Client
}

// NewSuggestSource 创建搜索联想源。
func NewSuggestSource(endpoint string, timeout time.Duration) *SuggestSource {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &SuggestSource{
		Endpoint:   endpoint,
		Timeout:    timeout,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (s *SuggestSource) Name() string { return "trend.suggest" }

type suggestResponse struct {
	Suggestions []string `json:"suggestions"`
}

const (
	suggestTopInterest  = 90.0
	suggestInterestStep = 5.0
	suggestMinInterest  = 40.0
)

func (s *SuggestSource) Fetch(ctx context.Context, req *core.TrendRequest) ([]core.TrendSignal, error) {
	q := url.Values{}
	seed := "food"
	if len(req.Keywords) > 0 {
		seed = req.Keywords[0]
	}
	q.Set("q", seed)
	if req.Location.City != "" {
		q.Set("geo", req.Location.City)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, s.Endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, core.NewDomainError(core.ModuleTrend, core.ErrorCodeInternalError,
			fmt.Sprintf("trend: build suggest request: %v", err))
	}

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return nil, core.NewDomainError(core.ModuleTrend, core.ErrorCodeSourceUnavailable,
			fmt.Sprintf("trend: suggest request failed: %v", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, core.NewDomainError(core.ModuleTrend, core.ErrorCodeSourceUnavailable,
			fmt.Sprintf("trend: suggest returned status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, core.NewDomainError(core.ModuleTrend, core.ErrorCodeSourceUnavailable,
			fmt.Sprintf("trend: read suggest response: %v", err))
	}

	var parsed suggestResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, core.NewDomainError(core.ModuleTrend, core.ErrorCodeInvalidUpstream,
			fmt.Sprintf("trend: malformed suggest response: %v", err))
	}

	out := make([]core.TrendSignal, 0, len(parsed.Suggestions))
	for i, kw := range parsed.Suggestions {
		if strings.TrimSpace(kw) == "" {
			continue
		}
		interest := suggestTopInterest - float64(i)*suggestInterestStep
		if interest < suggestMinInterest {
			interest = suggestMinInterest
		}
		out = append(out, core.TrendSignal{
			Keyword:   kw,
			Interest:  interest,
			Direction: core.TrendRising, // 出现在联想里本身即是热度上升的信号
			Source:    SourceSuggest,
		})
	}
	return out, nil
}
