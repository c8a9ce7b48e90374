// Package apify 通过 Apify 字幕抓取 Actor 获取视频字幕，作为备用字幕来源。
package apify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/iWorld-y/arch_radar/app/arch_radar/pkg/transcript"
)

const (
	defaultBaseURL = "https://api.apify.com"
	defaultActor   = "topaz_sharingan/Youtube-Transcript-Scraper-1"
)

// Client Apify API 客户端，同步运行 Actor 并读取数据集
type Client struct {
	token   string
	actor   string
	baseURL string
	client  *http.Client
}

// NewClient 创建一个新的 Apify 客户端，timeout 单位为秒
func NewClient(token, actor, baseURL string, timeout int) *Client {
	if actor == "" {
		actor = defaultActor
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	t := time.Duration(timeout) * time.Second
	if t == 0 {
		t = 120 * time.Second
	}
	return &Client{
		token:   token,
		actor:   actor,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: t},
	}
}

// Ensure Client implements transcript.FallbackProvider
var _ transcript.FallbackProvider = (*Client)(nil)

// RunInput Actor 输入
type RunInput struct {
	StartURLs []string `json:"startUrls"`
}

// Item 数据集条目，transcript 可能是字符串或分段列表
type Item struct {
	URL        string          `json:"url"`
	Transcript json.RawMessage `json:"transcript"`
}

type segment struct {
	Text string `json:"text"`
}

// Fetch 对公开视频地址运行 Actor，返回第一个带非空字幕的条目
func (c *Client) Fetch(ctx context.Context, videoURL string) transcript.Attempt {
	items, err := c.run(ctx, RunInput{StartURLs: []string{videoURL}})
	if err != nil {
		return transcript.Failed(transcript.StatusUnavailable, err)
	}

	for _, item := range items {
		if text := item.text(); text != "" {
			return transcript.Found(text, "")
		}
	}
	return transcript.Failed(transcript.StatusNotFound, errors.New("actor returned no transcript"))
}

func (c *Client) run(ctx context.Context, input RunInput) ([]Item, error) {
	payload, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("marshal request failed: %w", err)
	}

	// Actor ID 中的 "/" 在路径中写作 "~"
	actorID := strings.ReplaceAll(c.actor, "/", "~")
	endpoint := fmt.Sprintf("%s/v2/acts/%s/run-sync-get-dataset-items?token=%s",
		c.baseURL, url.PathEscape(actorID), url.QueryEscape(c.token))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}
	httpReq.Header.Add("Content-Type", "application/json")

	res, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read body failed: %w", err)
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, fmt.Errorf("apify api error (status %d): %s", res.StatusCode, string(body))
	}

	var items []Item
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("unmarshal response failed: %w", err)
	}
	return items, nil
}

func (it Item) text() string {
	if len(it.Transcript) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(it.Transcript, &s); err == nil {
		return strings.TrimSpace(s)
	}

	var segs []segment
	if err := json.Unmarshal(it.Transcript, &segs); err == nil {
		parts := make([]string, 0, len(segs))
		for _, seg := range segs {
			if t := strings.TrimSpace(seg.Text); t != "" {
				parts = append(parts, t)
			}
		}
		return strings.Join(parts, " ")
	}
	return ""
}
