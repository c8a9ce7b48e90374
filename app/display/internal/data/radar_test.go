package data

import (
	"context"
	"testing"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/arch_radar/app/arch_radar/pkg/aggregate"
	radardomain "github.com/iWorld-y/arch_radar/app/arch_radar/pkg/domain"
	"github.com/iWorld-y/arch_radar/app/arch_radar/pkg/engine"
	"github.com/iWorld-y/arch_radar/app/arch_radar/pkg/llm"
	"github.com/iWorld-y/arch_radar/app/arch_radar/pkg/model"
	"github.com/iWorld-y/arch_radar/app/arch_radar/pkg/search"
	"github.com/iWorld-y/arch_radar/app/arch_radar/pkg/summarize"
	"github.com/iWorld-y/arch_radar/app/arch_radar/pkg/youtube"
	"github.com/iWorld-y/arch_radar/app/display/internal/domain"
)

type stubVideos struct{}

func (stubVideos) SearchVideos(context.Context, *search.VideoRequest) (*search.VideoPage, error) {
	return &search.VideoPage{
		Videos: []model.VideoResult{{
			ID:          "v1",
			Title:       "모듈러 건축",
			Channel:     "건축TV",
			PublishedAt: time.Date(2024, 3, 14, 20, 0, 0, 0, time.UTC),
		}},
		TotalResults: 42,
	}, nil
}

type stubNews struct{}

func (stubNews) SearchNews(context.Context, *search.NewsRequest) ([]model.NewsResult, error) {
	return []model.NewsResult{{Link: "https://n.example/1", Title: "녹색건축", Source: "건설일보", Snippet: "s"}}, nil
}

type stubResolver struct{}

func (stubResolver) Resolve(context.Context, string) *model.Transcript {
	return &model.Transcript{Text: "자막", Stage: model.StagePrimary}
}

type stubMetadata struct{}

func (stubMetadata) VideoInfo(context.Context, string) (*youtube.VideoInfo, error) {
	return &youtube.VideoInfo{Description: "설명"}, nil
}

type stubGenerator struct{ prompts []string }

func (g *stubGenerator) Generate(_ context.Context, prompt string) (*llm.Generation, error) {
	g.prompts = append(g.prompts, prompt)
	return &llm.Generation{Text: "## 보고서"}, nil
}

func newTestEngine(t *testing.T, gen *stubGenerator) *engine.Engine {
	t.Helper()
	registry, err := radardomain.NewRegistry(nil)
	require.NoError(t, err)
	return engine.New(
		registry,
		nil,
		search.NewAdapter(stubVideos{}, stubNews{}, nil),
		aggregate.New(stubResolver{}, stubMetadata{}),
		summarize.New(gen, nil, nil),
		10,
	)
}

func TestRadarRepo_NilEngine(t *testing.T) {
	r := NewRadarRepo(nil, log.DefaultLogger)

	c := r.Catalog(context.Background())
	require.Empty(t, c.Domains)
	require.Len(t, c.Windows, 7)
	require.Equal(t, "none", c.Windows[0].ID)
	require.Equal(t, "전체", c.Windows[0].Label)

	_, err := r.SearchVideos(context.Background(), &domain.SearchParams{Domain: "건축계획"})
	require.ErrorIs(t, err, ErrEngineUnavailable)
	_, err = r.SearchNews(context.Background(), &domain.SearchParams{Domain: "건축계획"})
	require.ErrorIs(t, err, ErrEngineUnavailable)

	rep := r.SummarizeVideo(context.Background(), "v1", "t")
	require.True(t, rep.Diagnostic)
	require.Equal(t, "video-summary", rep.Kind)
	require.Equal(t, "검색 엔진이 설정되지 않았습니다.", rep.Text)

	rep = r.AnalyzeNews(context.Background(), nil)
	require.True(t, rep.Diagnostic)
	require.Equal(t, "news-analysis", rep.Kind)
	require.Equal(t, MsgEngineUnavailable, rep.Text)
}

func TestRadarRepo_Catalog(t *testing.T) {
	r := NewRadarRepo(newTestEngine(t, &stubGenerator{}), log.DefaultLogger)

	c := r.Catalog(context.Background())
	require.Len(t, c.Domains, len(radardomain.Defaults))
	require.Equal(t, "건축계획", c.Domains[0].Name)
	require.Equal(t, radardomain.DefaultProjects, c.Projects)
}

func TestRadarRepo_SearchVideos(t *testing.T) {
	r := NewRadarRepo(newTestEngine(t, &stubGenerator{}), log.DefaultLogger)

	res, err := r.SearchVideos(context.Background(), &domain.SearchParams{Domain: "건설기술", Window: "1-week"})
	require.NoError(t, err)
	require.Equal(t, "youtube", res.Source)
	require.Equal(t, 42, res.Total)
	require.Equal(t, "1-week", res.Window.ID)
	require.Equal(t, "최근 1주일", res.Window.Label)
	require.Contains(t, res.Query, "BIM")
	require.Len(t, res.Videos, 1)
	require.Equal(t, "https://www.youtube.com/watch?v=v1", res.Videos[0].URL)
	// 20:00 UTC 对应 KST 次日
	require.Equal(t, "2024-03-15", res.Videos[0].PublishedAt)

	_, err = r.SearchVideos(context.Background(), &domain.SearchParams{Domain: "없는분야"})
	require.ErrorIs(t, err, radardomain.ErrUnknownDomain)
}

func TestRadarRepo_SearchNews(t *testing.T) {
	r := NewRadarRepo(newTestEngine(t, &stubGenerator{}), log.DefaultLogger)

	res, err := r.SearchNews(context.Background(), &domain.SearchParams{Domain: "건축정책"})
	require.NoError(t, err)
	require.Equal(t, "news", res.Source)
	require.Equal(t, 1, res.Total)
	require.Equal(t, "건설일보", res.Articles[0].Source)
	require.Equal(t, "none", res.Window.ID)
}

func TestRadarRepo_Reports(t *testing.T) {
	gen := &stubGenerator{}
	r := NewRadarRepo(newTestEngine(t, gen), log.DefaultLogger)

	rep := r.SummarizeVideo(context.Background(), "v1", "모듈러 건축")
	require.False(t, rep.Diagnostic)
	require.Equal(t, "## 보고서", rep.Text)
	require.NotEmpty(t, rep.GeneratedAt)

	rep = r.AnalyzeNews(context.Background(), []*domain.Article{{Title: "녹색건축", Link: "https://n.example/1", Snippet: "인증제 개편"}})
	require.False(t, rep.Diagnostic)
	require.Len(t, gen.prompts, 2)
	require.Contains(t, gen.prompts[1], "인증제 개편")

	rep = r.AnalyzeNews(context.Background(), nil)
	require.True(t, rep.Diagnostic)
	require.Len(t, gen.prompts, 2)
}
