// Package googlenews 通过 Google News RSS 搜索新闻，无需 API Key。
package googlenews

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	"github.com/iWorld-y/arch_radar/app/arch_radar/pkg/model"
	"github.com/iWorld-y/arch_radar/app/arch_radar/pkg/search"
)

const defaultBaseURL = "https://news.google.com/rss/search"

// Client Google News RSS 客户端
type Client struct {
	baseURL  string
	language string
	region   string
	parser   *gofeed.Parser
}

// NewClient 创建客户端，language/region 默认 ko/KR
func NewClient(baseURL, language, region string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if language == "" {
		language = "ko"
	}
	if region == "" {
		region = "KR"
	}
	parser := gofeed.NewParser()
	parser.UserAgent = "Mozilla/5.0 (compatible; arch_radar)"
	return &Client{baseURL: baseURL, language: language, region: region, parser: parser}
}

// Ensure Client implements search.NewsSearcher
var _ search.NewsSearcher = (*Client)(nil)

// SearchNews 使用 when: 运算符限定时间窗口，并按截止时间再次过滤
func (c *Client) SearchNews(ctx context.Context, req *search.NewsRequest) ([]model.NewsResult, error) {
	feed, err := c.parser.ParseURLWithContext(c.feedURL(req), ctx)
	if err != nil {
		return nil, fmt.Errorf("parse google news RSS: %w", err)
	}

	results := make([]model.NewsResult, 0, len(feed.Items))
	for _, item := range feed.Items {
		if req.Since != nil && item.PublishedParsed != nil && item.PublishedParsed.Before(*req.Since) {
			continue
		}
		title, source := splitSource(item.Title)
		snippet := cleanHTML(item.Description)
		n := model.NewsResult{
			Link:    item.Link,
			Title:   title,
			Source:  source,
			Snippet: snippet,
			Content: snippet,
		}
		if item.PublishedParsed != nil {
			n.Date = item.PublishedParsed.Format(time.RFC3339)
		}
		results = append(results, n)
		if req.MaxResults > 0 && len(results) >= req.MaxResults {
			break
		}
	}
	return results, nil
}

func (c *Client) feedURL(req *search.NewsRequest) string {
	q := req.Query
	if when := req.Window.RSSWhen(); when != "" {
		q += " when:" + when
	}
	v := url.Values{}
	v.Set("q", q)
	v.Set("hl", c.language)
	v.Set("gl", c.region)
	v.Set("ceid", c.region+":"+c.language)
	return c.baseURL + "?" + v.Encode()
}

// splitSource 标题格式为 "标题 - 媒体名"
func splitSource(title string) (string, string) {
	idx := strings.LastIndex(title, " - ")
	if idx <= 0 {
		return title, ""
	}
	return strings.TrimSpace(title[:idx]), strings.TrimSpace(title[idx+3:])
}

// cleanHTML 去除 RSS 描述中的 HTML 标签
func cleanHTML(s string) string {
	if s == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<body>" + s + "</body>"))
	if err != nil {
		return s
	}
	return strings.TrimSpace(doc.Text())
}
