package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/go-kratos/kratos/v2"
	"github.com/go-kratos/kratos/v2/config"
	"github.com/go-kratos/kratos/v2/config/file"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/transport/http"

	"github.com/iWorld-y/arch_radar/app/display/internal/conf"
)

// go build -ldflags "-X main.Version=x.y.z"
var (
	Name    = "arch_radar.display"
	Version string

	flagconf  string
	flagradar string
	flaglevel string

	id, _ = os.Hostname()
)

func init() {
	flag.StringVar(&flagconf, "conf", "app/display/configs/config.yaml", "config path, eg: -conf config.yaml")
	flag.StringVar(&flagradar, "radar", "", "override radar.config_path")
	flag.StringVar(&flaglevel, "level", "info", "log level: debug, info, warn, error")
}

func newApp(logger log.Logger, hs *http.Server) *kratos.App {
	return kratos.New(
		kratos.ID(id),
		kratos.Name(Name),
		kratos.Version(Version),
		kratos.Logger(logger),
		kratos.Server(hs),
	)
}

// loadBootstrap 读取服务配置，radar 为空时保留文件中的引擎配置路径
func loadBootstrap(path, radar string) (*conf.Bootstrap, error) {
	c := config.New(config.WithSource(file.NewSource(path)))
	defer c.Close()

	if err := c.Load(); err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	var bc conf.Bootstrap
	if err := c.Scan(&bc); err != nil {
		return nil, fmt.Errorf("scan %s: %w", path, err)
	}
	if bc.Radar == nil {
		bc.Radar = &conf.Radar{}
	}
	if radar != "" {
		bc.Radar.ConfigPath = radar
	}
	return &bc, nil
}

func main() {
	flag.Parse()
	logger := log.NewFilter(
		log.With(log.NewStdLogger(os.Stdout),
			"ts", log.DefaultTimestamp,
			"caller", log.DefaultCaller,
			"service.id", id,
			"service.name", Name,
			"service.version", Version,
		),
		log.FilterLevel(log.ParseLevel(flaglevel)),
	)
	helper := log.NewHelper(logger)

	bc, err := loadBootstrap(flagconf, flagradar)
	if err != nil {
		helper.Fatalf("bootstrap: %v", err)
	}

	app, cleanup, err := initApp(bc.Server, bc.Radar, logger)
	if err != nil {
		helper.Fatalf("init app: %v", err)
	}
	defer cleanup()

	if err := app.Run(); err != nil {
		helper.Errorf("app exited: %v", err)
	}
}
