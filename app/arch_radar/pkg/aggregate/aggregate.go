// Package aggregate 汇总单个视频的字幕与元数据，以及一批新闻的正文。
package aggregate

import (
	"context"
	"time"
	"unicode/utf8"

	"github.com/go-shiori/go-readability"
	"golang.org/x/sync/errgroup"

	"github.com/iWorld-y/arch_radar/app/arch_radar/pkg/logger"
	"github.com/iWorld-y/arch_radar/app/arch_radar/pkg/metrics"
	"github.com/iWorld-y/arch_radar/app/arch_radar/pkg/model"
	"github.com/iWorld-y/arch_radar/app/arch_radar/pkg/youtube"
)

const (
	// MaxContentChars 新闻正文截断长度（字符）
	MaxContentChars = 5000
	// shortSnippetChars 摘要短于该长度时才抓取正文
	shortSnippetChars = 500
)

// TranscriptResolver 字幕解析
type TranscriptResolver interface {
	Resolve(ctx context.Context, videoID string) *model.Transcript
}

// MetadataSource 视频简介与评论
type MetadataSource interface {
	VideoInfo(ctx context.Context, videoID string) (*youtube.VideoInfo, error)
}

// ArticleFetcher 抓取新闻正文
type ArticleFetcher func(ctx context.Context, link string) (string, error)

// Aggregator 内容聚合器
type Aggregator struct {
	transcripts TranscriptResolver
	metadata    MetadataSource
	fetch       ArticleFetcher
	workers     int
	metrics     *metrics.Metrics
}

// Option 聚合器选项
type Option func(*Aggregator)

// WithArticleFetcher 开启新闻正文抓取
func WithArticleFetcher(fetch ArticleFetcher, workers int) Option {
	return func(a *Aggregator) {
		a.fetch = fetch
		if workers > 0 {
			a.workers = workers
		}
	}
}

// WithMetrics 设置指标
func WithMetrics(m *metrics.Metrics) Option {
	return func(a *Aggregator) {
		if m != nil {
			a.metrics = m
		}
	}
}

// New 创建聚合器
func New(transcripts TranscriptResolver, metadata MetadataSource, opts ...Option) *Aggregator {
	a := &Aggregator{
		transcripts: transcripts,
		metadata:    metadata,
		workers:     4,
		metrics:     metrics.Nop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Video 并发获取字幕与元数据；三者全部缺失时返回 nil（空标记）
func (a *Aggregator) Video(ctx context.Context, videoID string) *model.AggregatedContent {
	var (
		tr   *model.Transcript
		info *youtube.VideoInfo
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		tr = a.transcripts.Resolve(gctx, videoID)
		return nil
	})
	g.Go(func() error {
		start := time.Now()
		i, err := a.metadata.VideoInfo(gctx, videoID)
		a.metrics.ObserveProvider("video_info", start, err)
		if err != nil {
			logger.Log.Warnf("获取视频信息失败 [%s]: %v", videoID, err)
			return nil
		}
		info = i
		return nil
	})
	_ = g.Wait()

	content := &model.AggregatedContent{Transcript: tr}
	if info != nil {
		content.Description = info.Description
		content.Comments = info.Comments
		if len(content.Comments) > model.MaxComments {
			content.Comments = content.Comments[:model.MaxComments]
		}
	}
	if content.IsEmpty() {
		logger.Log.Infof("视频 [%s] 无可用内容", videoID)
		return nil
	}
	return content
}

// News 返回新闻批次；开启正文抓取时用更长的正文替换过短的摘要，顺序不变，失败保留摘要
func (a *Aggregator) News(ctx context.Context, items []model.NewsResult) []model.NewsResult {
	out := make([]model.NewsResult, len(items))
	copy(out, items)
	for i := range out {
		if out[i].Content == "" {
			out[i].Content = out[i].Snippet
		}
	}

	if a.fetch != nil {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(a.workers)
		for i := range out {
			if utf8.RuneCountInString(out[i].Content) >= shortSnippetChars {
				continue
			}
			g.Go(func() error {
				start := time.Now()
				text, err := a.fetch(gctx, out[i].Link)
				a.metrics.ObserveProvider("readability", start, err)
				if err != nil {
					logger.Log.Debugf("正文抓取失败 [%s]: %v", out[i].Link, err)
					return nil
				}
				if utf8.RuneCountInString(text) > utf8.RuneCountInString(out[i].Content) {
					out[i].Content = text
				}
				return nil
			})
		}
		_ = g.Wait()
	}

	for i := range out {
		out[i].Content = truncate(out[i].Content, MaxContentChars)
	}
	return out
}

// ReadabilityFetcher 使用 go-readability 提取正文
func ReadabilityFetcher(timeout time.Duration) ArticleFetcher {
	return func(ctx context.Context, link string) (string, error) {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		article, err := readability.FromURL(link, timeout)
		if err != nil {
			return "", err
		}
		return article.TextContent, nil
	}
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
