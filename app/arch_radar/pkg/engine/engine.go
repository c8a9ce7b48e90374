package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/iWorld-y/arch_radar/app/arch_radar/pkg/aggregate"
	"github.com/iWorld-y/arch_radar/app/arch_radar/pkg/apify"
	"github.com/iWorld-y/arch_radar/app/arch_radar/pkg/config"
	"github.com/iWorld-y/arch_radar/app/arch_radar/pkg/domain"
	"github.com/iWorld-y/arch_radar/app/arch_radar/pkg/llm"
	"github.com/iWorld-y/arch_radar/app/arch_radar/pkg/logger"
	"github.com/iWorld-y/arch_radar/app/arch_radar/pkg/metrics"
	"github.com/iWorld-y/arch_radar/app/arch_radar/pkg/model"
	"github.com/iWorld-y/arch_radar/app/arch_radar/pkg/query"
	"github.com/iWorld-y/arch_radar/app/arch_radar/pkg/search"
	"github.com/iWorld-y/arch_radar/app/arch_radar/pkg/search/factory"
	"github.com/iWorld-y/arch_radar/app/arch_radar/pkg/summarize"
	"github.com/iWorld-y/arch_radar/app/arch_radar/pkg/transcript"
	"github.com/iWorld-y/arch_radar/app/arch_radar/pkg/youtube"
)

// Engine 检索与摘要流水线
type Engine struct {
	registry   *domain.Registry
	projects   []string
	searcher   *search.Adapter
	aggregator *aggregate.Aggregator
	summarizer *summarize.Summarizer
	maxResults int
	now        func() time.Time
}

// New 由已构造的组件组装引擎
func New(registry *domain.Registry, projects []string, searcher *search.Adapter,
	aggregator *aggregate.Aggregator, summarizer *summarize.Summarizer, maxResults int) *Engine {
	if len(projects) == 0 {
		projects = domain.DefaultProjects
	}
	if maxResults <= 0 {
		maxResults = 10
	}
	return &Engine{
		registry:   registry,
		projects:   projects,
		searcher:   searcher,
		aggregator: aggregator,
		summarizer: summarizer,
		maxResults: maxResults,
		now:        time.Now,
	}
}

// NewEngine 根据配置创建引擎实例，reg 为 nil 时指标不对外暴露
func NewEngine(ctx context.Context, cfg *config.Config, reg prometheus.Registerer) (*Engine, error) {
	m := metrics.Nop()
	if reg != nil {
		m = metrics.New(reg)
	}

	registry, err := domain.NewRegistry(cfg.Domains)
	if err != nil {
		return nil, fmt.Errorf("领域配置无效: %w", err)
	}

	gen, err := llm.New(ctx, cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("LLM 初始化失败: %w", err)
	}

	yt, err := factory.NewYouTubeClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("YouTube 客户端初始化失败: %w", err)
	}
	news, err := factory.NewNewsSearcher(cfg)
	if err != nil {
		return nil, fmt.Errorf("搜索客户端初始化失败: %w", err)
	}

	var fallback transcript.FallbackProvider
	if cfg.Apify.Token != "" {
		fallback = apify.NewClient(cfg.Apify.Token, cfg.Apify.Actor, cfg.Apify.BaseURL, cfg.Apify.Timeout)
	} else {
		logger.Log.Warn("未配置 Apify Token，备用字幕来源不可用")
	}
	resolver := transcript.NewResolver(youtube.NewCaptionFetcher(), fallback, cfg.YouTube.Languages, m)

	opts := []aggregate.Option{aggregate.WithMetrics(m)}
	if cfg.News.FetchFullText {
		opts = append(opts, aggregate.WithArticleFetcher(aggregate.ReadabilityFetcher(30*time.Second), cfg.Concurrency.Workers))
	}

	return New(
		registry,
		cfg.Projects,
		search.NewAdapter(yt, news, m),
		aggregate.New(resolver, yt, opts...),
		summarize.New(gen, summarize.NewLimiter(cfg.Concurrency.RPM, cfg.Concurrency.QPS), m),
		cfg.MaxResults,
	), nil
}

// SearchRequest 一次检索的参数
type SearchRequest struct {
	Domain     string
	Clause     string // 附加检索词，可为空
	Window     query.Window
	MaxResults int
}

// VideoSearchResult 视频检索结果
type VideoSearchResult struct {
	Query  query.Query
	Videos []model.VideoResult
	Total  int
}

// NewsSearchResult 新闻检索结果
type NewsSearchResult struct {
	Query    query.Query
	Articles []model.NewsResult
}

// VideoRef 待摘要的视频
type VideoRef struct {
	ID    string
	Title string
}

// Domains 全部领域，顺序稳定
func (e *Engine) Domains() []model.Domain { return e.registry.All() }

// Projects 主要项目列表
func (e *Engine) Projects() []string { return e.projects }

// SearchVideos 构造检索式并搜索视频；未知领域是唯一的错误
func (e *Engine) SearchVideos(ctx context.Context, req SearchRequest) (*VideoSearchResult, error) {
	q, limit, err := e.build(req)
	if err != nil {
		return nil, err
	}
	log := logger.Log.WithField("run_id", uuid.NewString())
	log.Infof("开始搜索视频 [%s] 窗口 %s", req.Domain, q.Window)

	videos, total := e.searcher.Videos(ctx, q, limit)
	log.Infof("视频搜索完成，返回 %d 条，总数 %d", len(videos), total)
	return &VideoSearchResult{Query: q, Videos: videos, Total: total}, nil
}

// SearchNews 构造检索式并搜索新闻
func (e *Engine) SearchNews(ctx context.Context, req SearchRequest) (*NewsSearchResult, error) {
	q, limit, err := e.build(req)
	if err != nil {
		return nil, err
	}
	log := logger.Log.WithField("run_id", uuid.NewString())
	log.Infof("开始搜索新闻 [%s] 窗口 %s", req.Domain, q.Window)

	articles := e.searcher.News(ctx, q, limit)
	log.Infof("新闻搜索完成，返回 %d 条", len(articles))
	return &NewsSearchResult{Query: q, Articles: articles}, nil
}

// SummarizeVideo 聚合视频内容并生成摘要
func (e *Engine) SummarizeVideo(ctx context.Context, v VideoRef) *model.Report {
	log := logger.Log.WithField("run_id", uuid.NewString())
	log.Infof("开始生成视频摘要 [%s] %s", v.ID, v.Title)

	content := e.aggregator.Video(ctx, v.ID)
	if content != nil && content.Transcript != nil {
		log.Infof("字幕来源: %s", content.Transcript.Stage)
	}
	report := e.summarizer.SummarizeVideo(ctx, v.Title, content)
	log.Infof("视频摘要结束，diagnostic=%v", report.Diagnostic)
	return report
}

// AnalyzeNews 对已检索的新闻做综合分析
func (e *Engine) AnalyzeNews(ctx context.Context, articles []model.NewsResult) *model.Report {
	log := logger.Log.WithField("run_id", uuid.NewString())
	log.Infof("开始分析 %d 条新闻", len(articles))

	report := e.summarizer.AnalyzeNews(ctx, e.aggregator.News(ctx, articles))
	log.Infof("新闻分析结束，diagnostic=%v", report.Diagnostic)
	return report
}

func (e *Engine) build(req SearchRequest) (query.Query, int, error) {
	d, ok := e.registry.Lookup(req.Domain)
	if !ok {
		return query.Query{}, 0, fmt.Errorf("%w: %s", domain.ErrUnknownDomain, req.Domain)
	}
	limit := req.MaxResults
	if limit <= 0 {
		limit = e.maxResults
	}
	return query.Build(d, req.Clause, req.Window, e.now()), limit, nil
}
