package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/arch_radar/app/arch_radar/pkg/model"
	"github.com/iWorld-y/arch_radar/app/arch_radar/pkg/query"
	"github.com/iWorld-y/arch_radar/app/arch_radar/pkg/report"
	"github.com/iWorld-y/arch_radar/app/display/internal/conf"
	"github.com/iWorld-y/arch_radar/app/display/internal/domain"
	"github.com/iWorld-y/arch_radar/app/display/internal/repo"
)

var (
	// ErrInvalidSource 检索来源只能是 youtube 或 news
	ErrInvalidSource = errors.New("source must be youtube or news")
	// ErrMissingDomain 未指定领域
	ErrMissingDomain = errors.New("domain is required")
	// ErrMissingVideo 未指定视频
	ErrMissingVideo = errors.New("video id is required")
	// ErrEmptyReport 下载内容为空
	ErrEmptyReport = errors.New("report text is empty")
)

const defaultMaxResults = 50

// RadarUseCase 检索与摘要业务逻辑
type RadarUseCase struct {
	repo       repo.RadarRepo
	maxResults int
	log        *log.Helper
}

// NewRadarUseCase 创建业务逻辑实例
func NewRadarUseCase(c *conf.Radar, repo repo.RadarRepo, logger log.Logger) *RadarUseCase {
	maxResults := defaultMaxResults
	if c != nil && c.MaxResults > 0 {
		maxResults = int(c.MaxResults)
	}
	return &RadarUseCase{repo: repo, maxResults: maxResults, log: log.NewHelper(logger)}
}

// Catalog 页面选项
func (uc *RadarUseCase) Catalog(ctx context.Context) *domain.Catalog {
	return uc.repo.Catalog(ctx)
}

// Search 校验参数后按来源检索
func (uc *RadarUseCase) Search(ctx context.Context, p *domain.SearchParams) (*domain.SearchResult, error) {
	if strings.TrimSpace(p.Domain) == "" {
		return nil, ErrMissingDomain
	}
	if p.MaxResults < 0 || p.MaxResults > uc.maxResults {
		p.MaxResults = uc.maxResults
	}
	p.Window = string(query.ParseWindow(p.Window))

	switch p.Source {
	case "", "youtube":
		return uc.repo.SearchVideos(ctx, p)
	case "news":
		return uc.repo.SearchNews(ctx, p)
	default:
		return nil, ErrInvalidSource
	}
}

// SummarizeVideo 生成视频摘要
func (uc *RadarUseCase) SummarizeVideo(ctx context.Context, videoID, title string) (*domain.Report, error) {
	if strings.TrimSpace(videoID) == "" {
		return nil, ErrMissingVideo
	}
	r := uc.repo.SummarizeVideo(ctx, videoID, title)
	if r.Diagnostic {
		uc.log.Warnf("video %s summary is diagnostic: %s", videoID, r.Text)
	}
	return r, nil
}

// AnalyzeNews 综合分析新闻，空批次交给流水线生成固定的诊断报告
func (uc *RadarUseCase) AnalyzeNews(ctx context.Context, articles []*domain.Article) *domain.Report {
	r := uc.repo.AnalyzeNews(ctx, articles)
	if r.Diagnostic {
		uc.log.Warnf("news analysis is diagnostic: %s", r.Text)
	}
	return r
}

// Download 下载内容
type Download struct {
	FileName    string
	ContentType string
	Body        []byte
}

// DownloadParams 下载参数，报告内容由页面回传
type DownloadParams struct {
	Format  string
	Kind    string
	Title   string
	Window  string
	Text    string
	Sources []*domain.Article
}

// RenderDownload 渲染可下载的报告文件
func (uc *RadarUseCase) RenderDownload(p *DownloadParams) (*Download, error) {
	if strings.TrimSpace(p.Text) == "" {
		return nil, ErrEmptyReport
	}

	kind := model.KindVideoSummary
	if p.Kind == string(model.KindNewsAnalysis) {
		kind = model.KindNewsAnalysis
	}
	format := report.ParseFormat(p.Format)

	doc := report.Document{
		Title:  p.Title,
		Window: p.Window,
		Report: &model.Report{Kind: kind, Text: p.Text},
	}
	for _, s := range p.Sources {
		doc.Sources = append(doc.Sources, report.Source{Title: s.Title, Link: s.Link, Source: s.Source})
	}

	var buf bytes.Buffer
	if err := report.Render(&buf, format, doc); err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}
	return &Download{
		FileName:    format.FileName(kind),
		ContentType: format.ContentType(),
		Body:        buf.Bytes(),
	}, nil
}
