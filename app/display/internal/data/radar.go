package data

import (
	"context"
	"errors"
	"time"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/arch_radar/app/arch_radar/pkg/engine"
	"github.com/iWorld-y/arch_radar/app/arch_radar/pkg/model"
	"github.com/iWorld-y/arch_radar/app/arch_radar/pkg/query"
	"github.com/iWorld-y/arch_radar/app/display/internal/domain"
	"github.com/iWorld-y/arch_radar/app/display/internal/repo"
)

// ErrEngineUnavailable 未配置检索引擎
var ErrEngineUnavailable = errors.New("radar engine is not configured")

// MsgEngineUnavailable 未配置引擎时返回给页面的诊断说明
const MsgEngineUnavailable = "검색 엔진이 설정되지 않았습니다."

type radarRepo struct {
	eng *engine.Engine
	log *log.Helper
}

// NewRadarRepo 基于 arch_radar 引擎实现 RadarRepo
func NewRadarRepo(eng *engine.Engine, logger log.Logger) repo.RadarRepo {
	return &radarRepo{eng: eng, log: log.NewHelper(logger)}
}

func (r *radarRepo) Catalog(ctx context.Context) *domain.Catalog {
	c := &domain.Catalog{Windows: windows()}
	if r.eng == nil {
		return c
	}
	for _, d := range r.eng.Domains() {
		c.Domains = append(c.Domains, &domain.Domain{Name: d.Name, Keywords: d.Keywords})
	}
	c.Projects = r.eng.Projects()
	return c
}

func (r *radarRepo) SearchVideos(ctx context.Context, p *domain.SearchParams) (*domain.SearchResult, error) {
	if r.eng == nil {
		return nil, ErrEngineUnavailable
	}
	res, err := r.eng.SearchVideos(ctx, toRequest(p))
	if err != nil {
		return nil, err
	}

	out := &domain.SearchResult{
		Source: "youtube",
		Query:  res.Query.Text,
		Window: toWindow(res.Query.Window),
		Total:  res.Total,
		Videos: make([]*domain.Video, 0, len(res.Videos)),
	}
	for _, v := range res.Videos {
		dv := &domain.Video{
			ID:          v.ID,
			Title:       v.Title,
			Channel:     v.Channel,
			Thumbnail:   v.Thumbnail,
			Description: v.Description,
			URL:         v.URL(),
		}
		if !v.PublishedAt.IsZero() {
			dv.PublishedAt = v.PublishedAt.In(query.KST).Format(time.DateOnly)
		}
		out.Videos = append(out.Videos, dv)
	}
	return out, nil
}

func (r *radarRepo) SearchNews(ctx context.Context, p *domain.SearchParams) (*domain.SearchResult, error) {
	if r.eng == nil {
		return nil, ErrEngineUnavailable
	}
	res, err := r.eng.SearchNews(ctx, toRequest(p))
	if err != nil {
		return nil, err
	}

	out := &domain.SearchResult{
		Source:   "news",
		Query:    res.Query.Text,
		Window:   toWindow(res.Query.Window),
		Total:    len(res.Articles),
		Articles: make([]*domain.Article, 0, len(res.Articles)),
	}
	for _, a := range res.Articles {
		out.Articles = append(out.Articles, &domain.Article{
			Title:   a.Title,
			Link:    a.Link,
			Source:  a.Source,
			Snippet: a.Snippet,
			Date:    a.Date,
		})
	}
	return out, nil
}

func (r *radarRepo) SummarizeVideo(ctx context.Context, videoID, title string) *domain.Report {
	if r.eng == nil {
		return unavailable(model.KindVideoSummary)
	}
	return toReport(r.eng.SummarizeVideo(ctx, engine.VideoRef{ID: videoID, Title: title}))
}

func (r *radarRepo) AnalyzeNews(ctx context.Context, articles []*domain.Article) *domain.Report {
	if r.eng == nil {
		return unavailable(model.KindNewsAnalysis)
	}
	items := make([]model.NewsResult, 0, len(articles))
	for _, a := range articles {
		items = append(items, model.NewsResult{
			Link:    a.Link,
			Title:   a.Title,
			Source:  a.Source,
			Snippet: a.Snippet,
			Content: a.Snippet,
			Date:    a.Date,
		})
	}
	return toReport(r.eng.AnalyzeNews(ctx, items))
}

func toRequest(p *domain.SearchParams) engine.SearchRequest {
	return engine.SearchRequest{
		Domain:     p.Domain,
		Clause:     p.Query,
		Window:     query.ParseWindow(p.Window),
		MaxResults: p.MaxResults,
	}
}

func windows() []*domain.Window {
	out := make([]*domain.Window, 0, len(query.Windows))
	for _, w := range query.Windows {
		out = append(out, toWindow(w))
	}
	return out
}

func toWindow(w query.Window) *domain.Window {
	return &domain.Window{ID: string(w), Label: w.Label()}
}

func toReport(r *model.Report) *domain.Report {
	return &domain.Report{
		Kind:        string(r.Kind),
		Text:        r.Text,
		Diagnostic:  r.Diagnostic,
		GeneratedAt: r.GeneratedAt.In(query.KST).Format(time.DateTime),
	}
}

func unavailable(kind model.ReportKind) *domain.Report {
	return &domain.Report{
		Kind:        string(kind),
		Text:        MsgEngineUnavailable,
		Diagnostic:  true,
		GeneratedAt: time.Now().In(query.KST).Format(time.DateTime),
	}
}
