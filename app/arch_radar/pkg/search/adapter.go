package search

import (
	"context"
	"time"

	"github.com/iWorld-y/arch_radar/app/arch_radar/pkg/logger"
	"github.com/iWorld-y/arch_radar/app/arch_radar/pkg/metrics"
	"github.com/iWorld-y/arch_radar/app/arch_radar/pkg/model"
	"github.com/iWorld-y/arch_radar/app/arch_radar/pkg/query"
)

// Adapter 统一执行两类搜索，归一化并去重结果。
// 提供方失败时返回空结果，不向上传递错误。
type Adapter struct {
	videos  VideoSearcher
	news    NewsSearcher
	metrics *metrics.Metrics
}

// NewAdapter 创建搜索适配器
func NewAdapter(videos VideoSearcher, news NewsSearcher, m *metrics.Metrics) *Adapter {
	if m == nil {
		m = metrics.Nop()
	}
	return &Adapter{videos: videos, news: news, metrics: m}
}

// Videos 搜索视频，返回去重截断后的结果与提供方总匹配数
func (a *Adapter) Videos(ctx context.Context, q query.Query, limit int) ([]model.VideoResult, int) {
	start := time.Now()
	page, err := a.videos.SearchVideos(ctx, &VideoRequest{
		Query:          q.Text,
		PublishedAfter: q.Since,
		MaxResults:     limit,
	})
	a.metrics.ObserveProvider("video_search", start, err)
	if err != nil {
		logger.Log.Errorf("YouTube 搜索失败 [%s]: %v", q.Text, err)
		return []model.VideoResult{}, 0
	}
	if page == nil {
		return []model.VideoResult{}, 0
	}

	videos := Dedup(page.Videos, limit)
	logger.Log.Debugf("YouTube 搜索 [%s] 返回 %d 条, 总数 %d", q.Text, len(videos), page.TotalResults)
	return videos, page.TotalResults
}

// News 搜索新闻，按链接去重（先出现者保留），达到上限即停止
func (a *Adapter) News(ctx context.Context, q query.Query, limit int) []model.NewsResult {
	start := time.Now()
	items, err := a.news.SearchNews(ctx, &NewsRequest{
		Query:      q.Text,
		Window:     q.Window,
		Since:      q.Since,
		MaxResults: limit,
	})
	a.metrics.ObserveProvider("news_search", start, err)
	if err != nil {
		logger.Log.Errorf("新闻搜索失败 [%s]: %v", q.Text, err)
		return []model.NewsResult{}
	}

	articles := Dedup(items, limit)
	logger.Log.Debugf("新闻搜索 [%s] 返回 %d 条", q.Text, len(articles))
	return articles
}

// Dedup 按 Key 去重并保持出现顺序，limit <= 0 表示不截断
func Dedup[T model.Result](items []T, limit int) []T {
	out := make([]T, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, it := range items {
		if limit > 0 && len(out) >= limit {
			break
		}
		k := it.Key()
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, it)
	}
	return out
}
