package server

import (
	"context"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/iWorld-y/arch_radar/app/arch_radar/pkg/config"
	"github.com/iWorld-y/arch_radar/app/arch_radar/pkg/engine"
	arLogger "github.com/iWorld-y/arch_radar/app/arch_radar/pkg/logger"
	"github.com/iWorld-y/arch_radar/app/display/internal/conf"
)

// NewRegistry 服务级指标注册表，包含 Go 运行时与进程指标
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// NewRadarEngine 初始化 arch_radar 引擎；未配置时返回 nil，接口以 503 响应
func NewRadarEngine(c *conf.Radar, reg *prometheus.Registry, logger log.Logger) (*engine.Engine, func(), error) {
	helper := log.NewHelper(logger)
	if c == nil || c.ConfigPath == "" {
		helper.Warn("radar config_path is empty, pipeline endpoints are disabled")
		return nil, func() {}, nil
	}

	cfg, err := config.LoadConfig(c.ConfigPath)
	if err != nil {
		helper.Errorf("Failed to load radar config: %v", err)
		return nil, nil, err
	}

	// 初始化日志
	if err := arLogger.InitLogger(cfg.Log.Level, cfg.Log.File); err != nil {
		helper.Errorf("Failed to init arch_radar logger: %v", err)
		_ = arLogger.InitLogger("info", "") // 降级处理
	}

	eng, err := engine.NewEngine(context.Background(), cfg, reg)
	if err != nil {
		helper.Errorf("Failed to init engine: %v", err)
		return nil, nil, err
	}

	cleanup := func() {
		helper.Info("Cleaning up arch_radar engine")
	}
	return eng, cleanup, nil
}
