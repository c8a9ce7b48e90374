// Package summarize 将聚合内容交给生成式模型，产出韩语报告。
package summarize

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/iWorld-y/arch_radar/app/arch_radar/pkg/llm"
	"github.com/iWorld-y/arch_radar/app/arch_radar/pkg/logger"
	"github.com/iWorld-y/arch_radar/app/arch_radar/pkg/metrics"
	"github.com/iWorld-y/arch_radar/app/arch_radar/pkg/model"
)

// 固定的诊断文本
const (
	MsgNoVideoInfo   = "비디오 정보를 가져올 수 없어 요약할 수 없습니다."
	MsgNoArticles    = "분석할 뉴스 기사가 없습니다."
	videoErrorPrefix = "요약 중 오류가 발생했습니다: "
	newsErrorPrefix  = "분석 중 오류가 발생했습니다: "
)

// Summarizer 每次调用最多触发一次模型请求，从不返回错误，失败以诊断报告表示
type Summarizer struct {
	gen     llm.Generator
	limiter *rate.Limiter
	metrics *metrics.Metrics
	now     func() time.Time
}

// New 创建摘要器；limiter 为 nil 时不限流
func New(gen llm.Generator, limiter *rate.Limiter, m *metrics.Metrics) *Summarizer {
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Inf, 1)
	}
	if m == nil {
		m = metrics.Nop()
	}
	return &Summarizer{gen: gen, limiter: limiter, metrics: m, now: time.Now}
}

// NewLimiter 按每分钟请求数与突发数创建共享限流器
func NewLimiter(rpm, burst int) *rate.Limiter {
	if burst <= 0 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(float64(rpm)/60.0), burst)
}

// SummarizeVideo 生成视频摘要；content 为空标记时不调用模型
func (s *Summarizer) SummarizeVideo(ctx context.Context, title string, content *model.AggregatedContent) *model.Report {
	if content.IsEmpty() {
		return s.report(model.KindVideoSummary, MsgNoVideoInfo, true)
	}
	return s.run(ctx, model.KindVideoSummary, videoPrompt(title, content), videoErrorPrefix)
}

// AnalyzeNews 对一批新闻做综合分析
func (s *Summarizer) AnalyzeNews(ctx context.Context, articles []model.NewsResult) *model.Report {
	if len(articles) == 0 {
		return s.report(model.KindNewsAnalysis, MsgNoArticles, true)
	}
	return s.run(ctx, model.KindNewsAnalysis, newsPrompt(articles), newsErrorPrefix)
}

func (s *Summarizer) run(ctx context.Context, kind model.ReportKind, prompt, errPrefix string) *model.Report {
	if err := s.limiter.Wait(ctx); err != nil {
		logger.Log.Errorf("限流等待失败: %v", err)
		return s.report(kind, errPrefix+err.Error(), true)
	}

	start := time.Now()
	gen, err := s.gen.Generate(ctx, prompt)
	if err != nil {
		s.metrics.ObserveLLM(start, "error")
		logger.Log.Errorf("模型调用失败 [%s]: %v", kind, err)
		return s.report(kind, errPrefix+err.Error(), true)
	}
	if gen == nil || gen.Text == "" {
		s.metrics.ObserveLLM(start, "empty")
		feedback := "No response received."
		if gen != nil && gen.Feedback != "" {
			feedback = gen.Feedback
		}
		logger.Log.Warnf("模型未返回内容 [%s]: %s", kind, feedback)
		return s.report(kind, errPrefix+feedback, true)
	}

	s.metrics.ObserveLLM(start, "ok")
	logger.Log.Infof("报告生成完成 [%s]，长度 %d", kind, len(gen.Text))
	return s.report(kind, gen.Text, false)
}

func (s *Summarizer) report(kind model.ReportKind, text string, diagnostic bool) *model.Report {
	s.metrics.IncReport(string(kind), diagnostic)
	return &model.Report{Kind: kind, Text: text, Diagnostic: diagnostic, GeneratedAt: s.now()}
}
