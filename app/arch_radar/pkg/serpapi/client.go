package serpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/iWorld-y/arch_radar/app/arch_radar/pkg/keys"
	"github.com/iWorld-y/arch_radar/app/arch_radar/pkg/model"
	"github.com/iWorld-y/arch_radar/app/arch_radar/pkg/search"
)

const defaultBaseURL = "https://serpapi.com/search.json"

// Client SerpAPI Google News 客户端，多个 Key 轮换使用
type Client struct {
	baseURL string
	rotator *keys.Rotator
	client  *http.Client
}

// NewClient 创建一个新的 SerpAPI 客户端
func NewClient(rotator *keys.Rotator, baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		rotator: rotator,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Ensure Client implements search.NewsSearcher
var _ search.NewsSearcher = (*Client)(nil)

// SearchResponse SerpAPI 响应
type SearchResponse struct {
	Error       string       `json:"error"`
	NewsResults []NewsResult `json:"news_results"`
}

// NewsResult 单条新闻
type NewsResult struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Source  any    `json:"source"` // 旧版为字符串，新版为 {"name": ...}
	Snippet string `json:"snippet"`
	Date    string `json:"date"`
}

// SearchNews 按日期排序搜索新闻
func (c *Client) SearchNews(ctx context.Context, req *search.NewsRequest) ([]model.NewsResult, error) {
	q := url.Values{}
	q.Set("q", req.Query)
	q.Set("tbm", "nws")
	q.Set("api_key", c.rotator.Next())
	q.Set("sort", "date")
	if req.MaxResults > 0 {
		q.Set("num", strconv.Itoa(req.MaxResults))
	}
	if code := req.Window.SerpCode(); code != "" {
		q.Set("tbs", "qdr:"+code)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}

	res, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read body failed: %w", err)
	}
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("serpapi error (status %d): %s", res.StatusCode, string(body))
	}

	var searchResp SearchResponse
	if err := json.Unmarshal(body, &searchResp); err != nil {
		return nil, fmt.Errorf("unmarshal response failed: %w", err)
	}
	if searchResp.Error != "" && !strings.Contains(searchResp.Error, "hasn't returned any results") {
		return nil, fmt.Errorf("serpapi error: %s", searchResp.Error)
	}

	results := make([]model.NewsResult, 0, len(searchResp.NewsResults))
	for _, r := range searchResp.NewsResults {
		results = append(results, model.NewsResult{
			Link:    r.Link,
			Title:   r.Title,
			Source:  sourceName(r.Source),
			Snippet: r.Snippet,
			Content: r.Snippet,
			Date:    r.Date,
		})
	}
	return results, nil
}

func sourceName(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case map[string]any:
		if name, ok := s["name"].(string); ok {
			return name
		}
	}
	return ""
}
