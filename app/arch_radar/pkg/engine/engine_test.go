package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/arch_radar/app/arch_radar/pkg/aggregate"
	"github.com/iWorld-y/arch_radar/app/arch_radar/pkg/config"
	"github.com/iWorld-y/arch_radar/app/arch_radar/pkg/domain"
	"github.com/iWorld-y/arch_radar/app/arch_radar/pkg/llm"
	"github.com/iWorld-y/arch_radar/app/arch_radar/pkg/model"
	"github.com/iWorld-y/arch_radar/app/arch_radar/pkg/query"
	"github.com/iWorld-y/arch_radar/app/arch_radar/pkg/search"
	"github.com/iWorld-y/arch_radar/app/arch_radar/pkg/summarize"
	"github.com/iWorld-y/arch_radar/app/arch_radar/pkg/youtube"
)

type fakeVideos struct {
	req  *search.VideoRequest
	page *search.VideoPage
	err  error
}

func (f *fakeVideos) SearchVideos(_ context.Context, req *search.VideoRequest) (*search.VideoPage, error) {
	f.req = req
	return f.page, f.err
}

type fakeNews struct {
	req   *search.NewsRequest
	items []model.NewsResult
	err   error
}

func (f *fakeNews) SearchNews(_ context.Context, req *search.NewsRequest) ([]model.NewsResult, error) {
	f.req = req
	return f.items, f.err
}

type fakeResolver struct{ tr *model.Transcript }

func (f fakeResolver) Resolve(context.Context, string) *model.Transcript { return f.tr }

type fakeMetadata struct {
	info *youtube.VideoInfo
	err  error
}

func (f fakeMetadata) VideoInfo(context.Context, string) (*youtube.VideoInfo, error) {
	return f.info, f.err
}

type fakeGenerator struct {
	calls   int
	prompts []string
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string) (*llm.Generation, error) {
	f.calls++
	f.prompts = append(f.prompts, prompt)
	return &llm.Generation{Text: "report"}, nil
}

type fixture struct {
	engine *Engine
	videos *fakeVideos
	news   *fakeNews
	gen    *fakeGenerator
}

func newFixture(t *testing.T, tr *model.Transcript, meta fakeMetadata) *fixture {
	t.Helper()
	registry, err := domain.NewRegistry(nil)
	require.NoError(t, err)

	f := &fixture{videos: &fakeVideos{}, news: &fakeNews{}, gen: &fakeGenerator{}}
	f.engine = New(
		registry,
		nil,
		search.NewAdapter(f.videos, f.news, nil),
		aggregate.New(fakeResolver{tr: tr}, meta),
		summarize.New(f.gen, nil, nil),
		10,
	)
	f.engine.now = func() time.Time { return time.Date(2024, 3, 15, 12, 0, 0, 0, query.KST) }
	return f
}

func TestSearchVideos(t *testing.T) {
	f := newFixture(t, nil, fakeMetadata{})
	f.videos.page = &search.VideoPage{
		Videos:       []model.VideoResult{{ID: "a"}, {ID: "b"}, {ID: "a"}},
		TotalResults: 1200,
	}

	res, err := f.engine.SearchVideos(context.Background(), SearchRequest{
		Domain: "건축정책", Clause: "세운재정비촉진지구", Window: query.WindowWeek, MaxResults: 5,
	})
	require.NoError(t, err)
	require.Equal(t, "(건축법 OR 건축 규제 OR 건설안전 OR 에너지 인증제 OR 녹색건축) AND (세운재정비촉진지구)", f.videos.req.Query)
	require.Equal(t, 5, f.videos.req.MaxResults)
	require.Equal(t, time.Date(2024, 3, 8, 12, 0, 0, 0, query.KST), *f.videos.req.PublishedAfter)
	require.Len(t, res.Videos, 2)
	require.Equal(t, 1200, res.Total)
}

func TestSearchVideosProviderFailure(t *testing.T) {
	f := newFixture(t, nil, fakeMetadata{})
	f.videos.err = errors.New("quota")

	res, err := f.engine.SearchVideos(context.Background(), SearchRequest{Domain: "건설기술"})
	require.NoError(t, err)
	require.Empty(t, res.Videos)
	require.Zero(t, res.Total)
	require.Equal(t, 10, f.videos.req.MaxResults)
	require.Nil(t, f.videos.req.PublishedAfter)
}

func TestUnknownDomain(t *testing.T) {
	f := newFixture(t, nil, fakeMetadata{})

	_, err := f.engine.SearchVideos(context.Background(), SearchRequest{Domain: "우주건축"})
	require.ErrorIs(t, err, domain.ErrUnknownDomain)
	_, err = f.engine.SearchNews(context.Background(), SearchRequest{Domain: "우주건축"})
	require.ErrorIs(t, err, domain.ErrUnknownDomain)
	require.Nil(t, f.videos.req)
	require.Nil(t, f.news.req)
}

func TestSearchNews(t *testing.T) {
	f := newFixture(t, nil, fakeMetadata{})
	f.news.items = []model.NewsResult{{Link: "x", Title: "1"}, {Link: "x", Title: "2"}, {Link: "y", Title: "3"}}

	res, err := f.engine.SearchNews(context.Background(), SearchRequest{Domain: "도시재생", Window: query.WindowMonth})
	require.NoError(t, err)
	require.Equal(t, query.WindowMonth, f.news.req.Window)
	require.Len(t, res.Articles, 2)
	require.Equal(t, "1", res.Articles[0].Title)
}

func TestSummarizeVideoFallbackTranscript(t *testing.T) {
	tr := &model.Transcript{Text: "Hello world", Stage: model.StageFallback}
	f := newFixture(t, tr, fakeMetadata{err: errors.New("comments disabled")})

	r := f.engine.SummarizeVideo(context.Background(), VideoRef{ID: "abc", Title: "영상"})
	require.False(t, r.Diagnostic)
	require.Equal(t, 1, f.gen.calls)
	require.Contains(t, f.gen.prompts[0], "Hello world")
}

func TestSummarizeVideoNothingAvailable(t *testing.T) {
	f := newFixture(t, nil, fakeMetadata{err: errors.New("quota")})

	r := f.engine.SummarizeVideo(context.Background(), VideoRef{ID: "abc", Title: "영상"})
	require.True(t, r.Diagnostic)
	require.Equal(t, summarize.MsgNoVideoInfo, r.Text)
	require.Zero(t, f.gen.calls)
}

func TestAnalyzeNews(t *testing.T) {
	f := newFixture(t, nil, fakeMetadata{})
	r := f.engine.AnalyzeNews(context.Background(), []model.NewsResult{{Title: "A", Snippet: "a"}})
	require.False(t, r.Diagnostic)
	require.Contains(t, f.gen.prompts[0], "제목: A\n내용: a")
}

func TestDomainsAndProjects(t *testing.T) {
	f := newFixture(t, nil, fakeMetadata{})
	require.Len(t, f.engine.Domains(), len(domain.Defaults))
	require.Equal(t, domain.DefaultProjects, f.engine.Projects())
}

func TestNewEngine(t *testing.T) {
	cfg, err := config.Parse([]byte(`
llm:
  api_key: k
youtube:
  api_keys: [y1, y2]
news:
  provider: googlenews
`))
	require.NoError(t, err)

	e, err := NewEngine(context.Background(), cfg, nil)
	require.NoError(t, err)
	require.Equal(t, 10, e.maxResults)

	cfg.News.Provider = "serpapi"
	_, err = NewEngine(context.Background(), cfg, nil)
	require.Error(t, err)
}
