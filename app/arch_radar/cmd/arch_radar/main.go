package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/iWorld-y/arch_radar/app/arch_radar/pkg/config"
	"github.com/iWorld-y/arch_radar/app/arch_radar/pkg/engine"
	"github.com/iWorld-y/arch_radar/app/arch_radar/pkg/logger"
)

var (
	cfg *config.Config
	eng *engine.Engine
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arch_radar",
	Short: "건축/건설 분야 YouTube 영상과 뉴스를 검색하고 AI 보고서를 생성합니다",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configFile, _ := cmd.Flags().GetString("config")

		var err error
		cfg, err = config.LoadConfig(configFile)
		if err != nil {
			return fmt.Errorf("无法加载配置文件: %w", err)
		}
		if level, _ := cmd.Flags().GetString("log-level"); level != "" {
			cfg.Log.Level = level
		}
		if err := logger.InitLogger(cfg.Log.Level, cfg.Log.File); err != nil {
			return fmt.Errorf("无法初始化日志: %w", err)
		}

		eng, err = engine.NewEngine(context.Background(), cfg, nil)
		return err
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().String("config", "configs/config.yaml", "config file path")
	rootCmd.PersistentFlags().String("log-level", "", "log level override (debug, info, warn, error)")

	rootCmd.AddCommand(domainsCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(summarizeCmd)
	rootCmd.AddCommand(analyzeCmd)
}
