package repo

import (
	"context"

	"github.com/iWorld-y/arch_radar/app/display/internal/domain"
)

// RadarRepo 检索与摘要流水线
type RadarRepo interface {
	// Catalog 领域、主要项目与时间窗口
	Catalog(ctx context.Context) *domain.Catalog
	// SearchVideos 搜索视频，未知领域返回错误
	SearchVideos(ctx context.Context, p *domain.SearchParams) (*domain.SearchResult, error)
	// SearchNews 搜索新闻，未知领域返回错误
	SearchNews(ctx context.Context, p *domain.SearchParams) (*domain.SearchResult, error)
	// SummarizeVideo 生成视频摘要，失败以诊断报告表示
	SummarizeVideo(ctx context.Context, videoID, title string) *domain.Report
	// AnalyzeNews 综合分析新闻，失败以诊断报告表示
	AnalyzeNews(ctx context.Context, articles []*domain.Article) *domain.Report
}
