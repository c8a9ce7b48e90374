package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/iWorld-y/arch_radar/app/arch_radar/pkg/keys"
	"github.com/iWorld-y/arch_radar/app/arch_radar/pkg/logger"
	"github.com/iWorld-y/arch_radar/app/arch_radar/pkg/model"
	"github.com/iWorld-y/arch_radar/app/arch_radar/pkg/search"
)

const (
	defaultBaseURL = "https://www.googleapis.com/youtube/v3"
	// maxPageSize search 接口单页 maxResults 上限
	maxPageSize = 50
)

// ErrQuotaExceeded 当前 Key 配额耗尽或被限流
var ErrQuotaExceeded = errors.New("youtube quota exceeded")

// Client YouTube Data API v3 客户端，每次请求从轮转器取 Key
type Client struct {
	baseURL string
	rotator *keys.Rotator
	client  *http.Client
}

// Option 客户端选项
type Option func(*Client)

// WithBaseURL 替换 API 地址
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = u
		}
	}
}

// WithHTTPClient 替换 HTTP 客户端
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

// NewClient 创建 YouTube 客户端
func NewClient(rotator *keys.Rotator, opts ...Option) *Client {
	c := &Client{
		baseURL: defaultBaseURL,
		rotator: rotator,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Ensure Client implements search.VideoSearcher
var _ search.VideoSearcher = (*Client)(nil)

type searchResponse struct {
	NextPageToken string `json:"nextPageToken"`
	PageInfo      struct {
		TotalResults int `json:"totalResults"`
	} `json:"pageInfo"`
	Items []searchItem `json:"items"`
}

type searchItem struct {
	ID struct {
		VideoID string `json:"videoId"`
	} `json:"id"`
	Snippet snippet `json:"snippet"`
}

type snippet struct {
	PublishedAt  string `json:"publishedAt"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	ChannelTitle string `json:"channelTitle"`
	Thumbnails   map[string]struct {
		URL string `json:"url"`
	} `json:"thumbnails"`
}

type videosResponse struct {
	Items []struct {
		Snippet snippet `json:"snippet"`
	} `json:"items"`
}

type commentThreadsResponse struct {
	Items []struct {
		Snippet struct {
			TopLevelComment struct {
				Snippet struct {
					TextDisplay string `json:"textDisplay"`
				} `json:"snippet"`
			} `json:"topLevelComment"`
		} `json:"snippet"`
	} `json:"items"`
}

type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Errors  []struct {
			Reason string `json:"reason"`
		} `json:"errors"`
	} `json:"error"`
}

// SearchVideos 按相关度搜索视频；结果数超过单页上限时按 pageToken 翻页直到凑满
func (c *Client) SearchVideos(ctx context.Context, req *search.VideoRequest) (*search.VideoPage, error) {
	params := url.Values{}
	params.Set("part", "id,snippet")
	params.Set("q", req.Query)
	params.Set("type", "video")
	params.Set("order", "relevance")
	if req.PublishedAfter != nil {
		params.Set("publishedAfter", req.PublishedAfter.UTC().Format(time.RFC3339))
	}

	page := &search.VideoPage{}
	for first := true; ; first = false {
		if req.MaxResults > 0 {
			params.Set("maxResults", strconv.Itoa(min(req.MaxResults-len(page.Videos), maxPageSize)))
		}

		var resp searchResponse
		if err := c.getJSON(ctx, "/search", params, &resp); err != nil {
			return nil, fmt.Errorf("youtube search: %w", err)
		}
		if first {
			page.TotalResults = resp.PageInfo.TotalResults
		}
		page.Videos = append(page.Videos, toVideos(resp.Items)...)

		if req.MaxResults <= 0 || len(page.Videos) >= req.MaxResults ||
			resp.NextPageToken == "" || len(resp.Items) == 0 {
			break
		}
		params.Set("pageToken", resp.NextPageToken)
	}
	return page, nil
}

func toVideos(items []searchItem) []model.VideoResult {
	videos := make([]model.VideoResult, 0, len(items))
	for _, item := range items {
		if item.ID.VideoID == "" {
			continue
		}
		v := model.VideoResult{
			ID:          item.ID.VideoID,
			Title:       item.Snippet.Title,
			Channel:     item.Snippet.ChannelTitle,
			Thumbnail:   item.Snippet.thumbnail(),
			Description: item.Snippet.Description,
		}
		if t, err := time.Parse(time.RFC3339, item.Snippet.PublishedAt); err == nil {
			v.PublishedAt = t
		}
		videos = append(videos, v)
	}
	return videos
}

// VideoInfo 视频简介与置顶评论
type VideoInfo struct {
	Description string
	Comments    []string
}

// VideoInfo 获取视频简介与最多 30 条顶层评论，任一请求失败即返回错误
func (c *Client) VideoInfo(ctx context.Context, videoID string) (*VideoInfo, error) {
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("id", videoID)

	var videos videosResponse
	if err := c.getJSON(ctx, "/videos", params, &videos); err != nil {
		return nil, fmt.Errorf("youtube videos: %w", err)
	}

	info := &VideoInfo{}
	if len(videos.Items) > 0 {
		info.Description = videos.Items[0].Snippet.Description
	}

	params = url.Values{}
	params.Set("part", "snippet")
	params.Set("videoId", videoID)
	params.Set("textFormat", "plainText")
	params.Set("maxResults", strconv.Itoa(model.MaxComments))

	var threads commentThreadsResponse
	if err := c.getJSON(ctx, "/commentThreads", params, &threads); err != nil {
		return nil, fmt.Errorf("youtube comments: %w", err)
	}
	for _, item := range threads.Items {
		if len(info.Comments) >= model.MaxComments {
			break
		}
		info.Comments = append(info.Comments, item.Snippet.TopLevelComment.Snippet.TextDisplay)
	}

	return info, nil
}

// getJSON 发起 GET 请求；配额错误时换下一个 Key 重试，最多尝试池大小次
func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	var lastErr error
	for attempt := 0; attempt < c.rotator.Size(); attempt++ {
		err := c.doGet(ctx, path, params, c.rotator.Next(), out)
		if err == nil {
			return nil
		}
		lastErr = err
		if !errors.Is(err, ErrQuotaExceeded) {
			return err
		}
		logger.Log.Warnf("YouTube API Key 配额不足，尝试下一个 Key: %v", err)
	}
	return lastErr
}

func (c *Client) doGet(ctx context.Context, path string, params url.Values, apiKey string, out any) error {
	q := url.Values{}
	for k, v := range params {
		q[k] = v
	}
	q.Set("key", apiKey)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return fmt.Errorf("create request failed: %w", err)
	}

	res, err := c.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		return classifyError(res.StatusCode, body)
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response failed: %w", err)
	}
	return nil
}

func classifyError(status int, body []byte) error {
	var apiErr errorResponse
	_ = json.Unmarshal(body, &apiErr)

	if status == http.StatusTooManyRequests {
		return fmt.Errorf("%w: status %d", ErrQuotaExceeded, status)
	}
	for _, e := range apiErr.Error.Errors {
		switch e.Reason {
		case "quotaExceeded", "dailyLimitExceeded", "rateLimitExceeded", "userRateLimitExceeded":
			return fmt.Errorf("%w: %s", ErrQuotaExceeded, e.Reason)
		}
	}
	if apiErr.Error.Message != "" {
		return fmt.Errorf("youtube api error (status %d): %s", status, apiErr.Error.Message)
	}
	return fmt.Errorf("youtube api error (status %d): %s", status, string(body))
}

// thumbnail 优先取高清缩略图
func (s snippet) thumbnail() string {
	for _, size := range []string{"high", "medium", "default"} {
		if t, ok := s.Thumbnails[size]; ok && t.URL != "" {
			return t.URL
		}
	}
	return ""
}
