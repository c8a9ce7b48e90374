package summarize

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/arch_radar/app/arch_radar/pkg/llm"
	"github.com/iWorld-y/arch_radar/app/arch_radar/pkg/model"
)

type fakeGenerator struct {
	gen     *llm.Generation
	err     error
	calls   int
	prompts []string
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string) (*llm.Generation, error) {
	f.calls++
	f.prompts = append(f.prompts, prompt)
	return f.gen, f.err
}

func TestSummarizeVideoEmptyMarker(t *testing.T) {
	g := &fakeGenerator{gen: &llm.Generation{Text: "x"}}
	s := New(g, nil, nil)

	r := s.SummarizeVideo(context.Background(), "제목", nil)
	require.True(t, r.Diagnostic)
	require.Equal(t, MsgNoVideoInfo, r.Text)
	require.Equal(t, model.KindVideoSummary, r.Kind)
	require.Zero(t, g.calls)
}

func TestSummarizeVideo(t *testing.T) {
	g := &fakeGenerator{gen: &llm.Generation{Text: "## 영상 개요\n..."}}
	s := New(g, nil, nil)

	content := &model.AggregatedContent{
		Transcript:  &model.Transcript{Text: "Hello world", Stage: model.StageFallback},
		Description: "설명",
		Comments:    []string{"좋아요", "최고"},
	}
	r := s.SummarizeVideo(context.Background(), "스마트건설", content)
	require.False(t, r.Diagnostic)
	require.Equal(t, "## 영상 개요\n...", r.Text)
	require.Equal(t, 1, g.calls)

	p := g.prompts[0]
	require.Contains(t, p, "제목: 스마트건설")
	require.Contains(t, p, "자막 내용:\nHello world")
	require.Contains(t, p, "비디오 설명:\n설명")
	require.Contains(t, p, "- 좋아요\n- 최고\n")
	for _, section := range []string{"영상 개요", "주요 내용", "시청자 반응 (댓글 기반)", "결론 및 시사점"} {
		require.Contains(t, p, section)
	}
	require.Less(t, strings.Index(p, "자막 내용:\n"), strings.Index(p, "비디오 설명:\n"))
}

func TestSummarizeVideoWithoutTranscript(t *testing.T) {
	g := &fakeGenerator{gen: &llm.Generation{Text: "ok"}}
	New(g, nil, nil).SummarizeVideo(context.Background(), "t", &model.AggregatedContent{Description: "d"})
	p := g.prompts[0]
	require.NotContains(t, p, "자막 내용:\n")
	require.NotContains(t, p, "주요 댓글:\n")
	require.Contains(t, p, "비디오 설명:\nd")
}

func TestSummarizeVideoBlocked(t *testing.T) {
	g := &fakeGenerator{gen: &llm.Generation{Feedback: "block_reason: SAFETY"}}
	r := New(g, nil, nil).SummarizeVideo(context.Background(), "t", &model.AggregatedContent{Description: "d"})
	require.True(t, r.Diagnostic)
	require.Equal(t, "요약 중 오류가 발생했습니다: block_reason: SAFETY", r.Text)
	require.Equal(t, 1, g.calls)
}

func TestSummarizeVideoError(t *testing.T) {
	g := &fakeGenerator{err: errors.New("deadline exceeded")}
	r := New(g, nil, nil).SummarizeVideo(context.Background(), "t", &model.AggregatedContent{Comments: []string{"c"}})
	require.True(t, r.Diagnostic)
	require.Equal(t, "요약 중 오류가 발생했습니다: deadline exceeded", r.Text)
	require.Equal(t, 1, g.calls)
}

func TestAnalyzeNews(t *testing.T) {
	g := &fakeGenerator{gen: &llm.Generation{Text: "분석"}}
	s := New(g, nil, nil)

	r := s.AnalyzeNews(context.Background(), []model.NewsResult{
		{Title: "A", Content: "a 내용"},
		{Title: "B", Content: "b 내용"},
	})
	require.False(t, r.Diagnostic)
	require.Equal(t, model.KindNewsAnalysis, r.Kind)
	require.Contains(t, g.prompts[0], "제목: A\n내용: a 내용\n\n제목: B\n내용: b 내용")
	for _, section := range []string{"주요 이슈 요약", "상세 분석", "다양한 관점", "시사점 및 향후 전망"} {
		require.Contains(t, g.prompts[0], section)
	}
}

func TestAnalyzeNewsEmptyBatch(t *testing.T) {
	g := &fakeGenerator{}
	r := New(g, nil, nil).AnalyzeNews(context.Background(), nil)
	require.True(t, r.Diagnostic)
	require.Equal(t, MsgNoArticles, r.Text)
	require.Zero(t, g.calls)
}

func TestAnalyzeNewsFailure(t *testing.T) {
	g := &fakeGenerator{gen: &llm.Generation{}}
	r := New(g, nil, nil).AnalyzeNews(context.Background(), []model.NewsResult{{Title: "A"}})
	require.True(t, r.Diagnostic)
	require.Equal(t, "분석 중 오류가 발생했습니다: No response received.", r.Text)
}

func TestLimiterCancelled(t *testing.T) {
	g := &fakeGenerator{gen: &llm.Generation{Text: "x"}}
	lim := NewLimiter(1, 1)
	require.True(t, lim.Allow())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := New(g, lim, nil).AnalyzeNews(ctx, []model.NewsResult{{Title: "A"}})
	require.True(t, r.Diagnostic)
	require.Zero(t, g.calls)
}
