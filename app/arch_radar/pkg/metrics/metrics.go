package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics 流水线指标
type Metrics struct {
	ProviderRequestsTotal   *prometheus.CounterVec
	ProviderRequestDuration *prometheus.HistogramVec

	TranscriptsTotal *prometheus.CounterVec

	LLMRequestsTotal   *prometheus.CounterVec
	LLMRequestDuration prometheus.Histogram

	ReportsTotal *prometheus.CounterVec
}

// New 在给定 registerer 上注册全部指标
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		ProviderRequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "arch_radar_provider_requests_total",
				Help: "Total number of external provider requests",
			},
			[]string{"provider", "status"},
		),
		ProviderRequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "arch_radar_provider_request_duration_seconds",
				Help:    "External provider request duration in seconds",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
			},
			[]string{"provider"},
		),
		TranscriptsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "arch_radar_transcripts_total",
				Help: "Transcript resolutions by terminal stage",
			},
			[]string{"stage"},
		),
		LLMRequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "arch_radar_llm_requests_total",
				Help: "Total number of generative model calls",
			},
			[]string{"status"},
		),
		LLMRequestDuration: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "arch_radar_llm_request_duration_seconds",
				Help:    "Generative model call duration in seconds",
				Buckets: []float64{0.5, 1, 2, 5, 10, 30, 60, 120},
			},
		),
		ReportsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "arch_radar_reports_total",
				Help: "Reports produced by kind and outcome",
			},
			[]string{"kind", "outcome"},
		),
	}
}

// Nop 不注册到全局 registry 的指标，用于测试与 CLI
func Nop() *Metrics {
	return New(prometheus.NewRegistry())
}

// ObserveProvider 记录一次外部调用
func (m *Metrics) ObserveProvider(provider string, start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.ProviderRequestsTotal.WithLabelValues(provider, status).Inc()
	m.ProviderRequestDuration.WithLabelValues(provider).Observe(time.Since(start).Seconds())
}

// ObserveLLM 记录一次模型调用
func (m *Metrics) ObserveLLM(start time.Time, status string) {
	m.LLMRequestsTotal.WithLabelValues(status).Inc()
	m.LLMRequestDuration.Observe(time.Since(start).Seconds())
}

// IncReport 记录报告产出
func (m *Metrics) IncReport(kind string, diagnostic bool) {
	outcome := "summary"
	if diagnostic {
		outcome = "diagnostic"
	}
	m.ReportsTotal.WithLabelValues(kind, outcome).Inc()
}

// IncTranscript 记录字幕解析的终止阶段
func (m *Metrics) IncTranscript(stage string) {
	m.TranscriptsTotal.WithLabelValues(stage).Inc()
}
