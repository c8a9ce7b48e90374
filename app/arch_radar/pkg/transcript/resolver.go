package transcript

import (
	"context"

	"github.com/iWorld-y/arch_radar/app/arch_radar/pkg/logger"
	"github.com/iWorld-y/arch_radar/app/arch_radar/pkg/metrics"
	"github.com/iWorld-y/arch_radar/app/arch_radar/pkg/model"
)

// PrimaryProvider 主字幕来源，按视频 ID 与语言偏好获取
type PrimaryProvider interface {
	Fetch(ctx context.Context, videoID string, langs []string) Attempt
}

// FallbackProvider 备用字幕来源，按公开视频地址获取
type FallbackProvider interface {
	Fetch(ctx context.Context, videoURL string) Attempt
}

// Resolver 两阶段字幕解析：主来源 → 备用来源 → 未解析
type Resolver struct {
	primary  PrimaryProvider
	fallback FallbackProvider
	langs    []string
	metrics  *metrics.Metrics
}

// NewResolver 创建解析器；fallback 可为 nil
func NewResolver(primary PrimaryProvider, fallback FallbackProvider, langs []string, m *metrics.Metrics) *Resolver {
	if len(langs) == 0 {
		langs = []string{"ko", "en"}
	}
	if m == nil {
		m = metrics.Nop()
	}
	return &Resolver{primary: primary, fallback: fallback, langs: langs, metrics: m}
}

// Resolve 解析视频字幕，失败返回 nil，从不返回错误。
// 仅当主来源明确报告字幕关闭或未找到时才调用备用来源，每个阶段最多调用一次。
func (r *Resolver) Resolve(ctx context.Context, videoID string) *model.Transcript {
	first := r.primary.Fetch(ctx, videoID, r.langs)
	if first.Status == StatusFound && first.Text != "" {
		r.metrics.IncTranscript(string(model.StagePrimary))
		return &model.Transcript{Text: first.Text, Stage: model.StagePrimary, Language: first.Language}
	}

	if first.Status != StatusDisabled && first.Status != StatusNotFound {
		logger.Log.Warnf("主字幕来源失败 [%s] (%s): %v", videoID, first.Status, first.Err)
		r.metrics.IncTranscript("unresolved")
		return nil
	}
	if r.fallback == nil {
		logger.Log.Infof("视频 [%s] 无可用字幕 (%s)，未配置备用来源", videoID, first.Status)
		r.metrics.IncTranscript("unresolved")
		return nil
	}

	logger.Log.Infof("视频 [%s] 主字幕来源 %s，尝试备用来源", videoID, first.Status)
	second := r.fallback.Fetch(ctx, model.WatchURL(videoID))
	if second.Status == StatusFound && second.Text != "" {
		r.metrics.IncTranscript(string(model.StageFallback))
		return &model.Transcript{Text: second.Text, Stage: model.StageFallback, Language: second.Language}
	}

	logger.Log.Warnf("备用字幕来源失败 [%s] (%s): %v", videoID, second.Status, second.Err)
	r.metrics.IncTranscript("unresolved")
	return nil
}
