package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// MaxComments 聚合内容中保留的评论上限
const MaxComments = 30

// Domain 领域及其关键词同义词集合
type Domain struct {
	Name     string   `yaml:"name" json:"name"`
	Keywords []string `yaml:"keywords" json:"keywords"`
}

// Validate 关键词集合必须非空且不重复
func (d Domain) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return errors.New("domain name is empty")
	}
	if len(d.Keywords) == 0 {
		return fmt.Errorf("domain %q has no keywords", d.Name)
	}
	seen := make(map[string]struct{}, len(d.Keywords))
	for _, kw := range d.Keywords {
		if strings.TrimSpace(kw) == "" {
			return fmt.Errorf("domain %q has an empty keyword", d.Name)
		}
		if _, ok := seen[kw]; ok {
			return fmt.Errorf("domain %q has duplicate keyword %q", d.Name, kw)
		}
		seen[kw] = struct{}{}
	}
	return nil
}

// Result 搜索结果，Key 为去重键
type Result interface {
	Key() string
}

// VideoResult 视频搜索结果
type VideoResult struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Channel     string    `json:"channel"`
	Thumbnail   string    `json:"thumbnail"`
	Description string    `json:"description"`
	PublishedAt time.Time `json:"published_at,omitempty"`
}

// Key 视频按 ID 去重
func (v VideoResult) Key() string { return v.ID }

// URL 视频公开地址
func (v VideoResult) URL() string { return WatchURL(v.ID) }

// WatchURL 根据视频 ID 拼接公开观看地址
func WatchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}

// NewsResult 新闻搜索结果
type NewsResult struct {
	Link    string `json:"link"`
	Title   string `json:"title"`
	Source  string `json:"source"`
	Snippet string `json:"snippet"`
	Content string `json:"content"` // 默认等于 Snippet，开启全文抓取后替换为正文
	Date    string `json:"date,omitempty"`
}

// Key 新闻按链接去重
func (n NewsResult) Key() string { return n.Link }

// TranscriptStage 字幕来源阶段
type TranscriptStage string

const (
	StagePrimary  TranscriptStage = "primary"
	StageFallback TranscriptStage = "fallback"
)

// Transcript 视频字幕，nil 表示未解析到
type Transcript struct {
	Text     string          `json:"text"`
	Stage    TranscriptStage `json:"stage"`
	Language string          `json:"language,omitempty"`
}

// AggregatedContent 单个视频的聚合内容。
// nil 指针即"空"标记：字幕、简介、评论全部缺失，不可用于摘要。
type AggregatedContent struct {
	Transcript  *Transcript
	Description string
	Comments    []string
}

// IsEmpty 三者全部缺失
func (c *AggregatedContent) IsEmpty() bool {
	return c == nil || (c.Transcript == nil && c.Description == "" && len(c.Comments) == 0)
}

// ReportKind 报告类型
type ReportKind string

const (
	KindVideoSummary ReportKind = "video-summary"
	KindNewsAnalysis ReportKind = "news-analysis"
)

// Report 摘要报告；Diagnostic 为 true 时 Text 是错误说明而非摘要
type Report struct {
	Kind        ReportKind `json:"kind"`
	Text        string     `json:"text"`
	Diagnostic  bool       `json:"diagnostic"`
	GeneratedAt time.Time  `json:"generated_at"`
}
