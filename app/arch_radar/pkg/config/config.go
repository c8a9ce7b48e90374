package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/iWorld-y/arch_radar/app/arch_radar/pkg/model"
)

// Config 项目配置结构体
type Config struct {
	LLM         LLMConfig         `yaml:"llm"`
	YouTube     YouTubeConfig     `yaml:"youtube"`
	Apify       ApifyConfig       `yaml:"apify"`
	News        NewsConfig        `yaml:"news"`
	Domains     []model.Domain    `yaml:"domains"`  // 为空时使用内置领域
	Projects    []string          `yaml:"projects"` // 为空时使用内置项目列表
	MaxResults  int               `yaml:"max_results"`
	Log         LogConfig         `yaml:"log"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
}

// LLMConfig LLM 相关配置
type LLMConfig struct {
	Provider string `yaml:"provider"` // gemini 或 openai（OpenAI 兼容协议）
	BaseURL  string `yaml:"base_url"`
	APIKey   string `yaml:"api_key"`
	Model    string `yaml:"model"`
	Timeout  int    `yaml:"timeout"` // 秒
}

// YouTubeConfig YouTube Data API 配置
type YouTubeConfig struct {
	APIKeys   []string `yaml:"api_keys"`
	BaseURL   string   `yaml:"base_url"`
	Languages []string `yaml:"languages"` // 字幕语言优先级
	Timeout   int      `yaml:"timeout"`
}

// ApifyConfig 备用字幕抓取配置
type ApifyConfig struct {
	Token   string `yaml:"token"`
	Actor   string `yaml:"actor"`
	BaseURL string `yaml:"base_url"`
	Timeout int    `yaml:"timeout"`
}

// NewsConfig 新闻搜索配置
type NewsConfig struct {
	Provider      string           `yaml:"provider"` // serpapi, tavily, searxng, googlenews
	SerpAPI       SerpAPIConfig    `yaml:"serpapi"`
	Tavily        TavilyConfig     `yaml:"tavily"`
	SearXNG       SearXNGConfig    `yaml:"searxng"`
	GoogleNews    GoogleNewsConfig `yaml:"googlenews"`
	FetchFullText bool             `yaml:"fetch_full_text"`
}

// SerpAPIConfig SerpAPI 配置，多个 Key 轮换使用
type SerpAPIConfig struct {
	APIKeys []string `yaml:"api_keys"`
	BaseURL string   `yaml:"base_url"`
}

// TavilyConfig Tavily 配置
type TavilyConfig struct {
	APIKey string `yaml:"api_key"`
}

// SearXNGConfig SearXNG 配置
type SearXNGConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout int    `yaml:"timeout"`
}

// GoogleNewsConfig Google News RSS 配置
type GoogleNewsConfig struct {
	BaseURL  string `yaml:"base_url"`
	Language string `yaml:"language"` // hl
	Region   string `yaml:"region"`   // gl
}

// LogConfig 日志相关配置
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// ConcurrencyConfig 并发控制配置
type ConcurrencyConfig struct {
	QPS     int `yaml:"qps"`
	RPM     int `yaml:"rpm"`
	Workers int `yaml:"workers"` // 新闻正文抓取并发数
}

// LoadConfig 从指定路径加载配置，支持 ${ENV} 形式引用环境变量
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse 解析 YAML 配置并填充默认值
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.LLM.Provider == "" {
		c.LLM.Provider = "gemini"
	}
	if c.LLM.Model == "" {
		c.LLM.Model = "gemini-2.0-flash"
	}
	if c.LLM.Timeout == 0 {
		c.LLM.Timeout = 120
	}
	if len(c.YouTube.Languages) == 0 {
		c.YouTube.Languages = []string{"ko", "en"}
	}
	if c.Apify.Actor == "" {
		c.Apify.Actor = "topaz_sharingan/Youtube-Transcript-Scraper-1"
	}
	if c.News.Provider == "" {
		c.News.Provider = "serpapi"
	}
	if c.MaxResults <= 0 {
		c.MaxResults = 10
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Concurrency.RPM <= 0 {
		c.Concurrency.RPM = 15
	}
	if c.Concurrency.QPS <= 0 {
		c.Concurrency.QPS = 1
	}
	if c.Concurrency.Workers <= 0 {
		c.Concurrency.Workers = 4
	}
}

// Validate 校验必须项
func (c *Config) Validate() error {
	switch c.LLM.Provider {
	case "gemini", "openai":
	default:
		return fmt.Errorf("unknown llm provider: %s", c.LLM.Provider)
	}
	if c.LLM.APIKey == "" {
		return fmt.Errorf("llm api_key is missing")
	}
	if len(c.YouTube.APIKeys) == 0 {
		return fmt.Errorf("youtube api_keys is empty")
	}
	for _, d := range c.Domains {
		if err := d.Validate(); err != nil {
			return fmt.Errorf("invalid domain config: %w", err)
		}
	}
	return nil
}
