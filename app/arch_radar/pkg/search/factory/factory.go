package factory

import (
	"fmt"

	"github.com/iWorld-y/arch_radar/app/arch_radar/pkg/config"
	"github.com/iWorld-y/arch_radar/app/arch_radar/pkg/googlenews"
	"github.com/iWorld-y/arch_radar/app/arch_radar/pkg/keys"
	"github.com/iWorld-y/arch_radar/app/arch_radar/pkg/search"
	"github.com/iWorld-y/arch_radar/app/arch_radar/pkg/searxng"
	"github.com/iWorld-y/arch_radar/app/arch_radar/pkg/serpapi"
	"github.com/iWorld-y/arch_radar/app/arch_radar/pkg/tavily"
	"github.com/iWorld-y/arch_radar/app/arch_radar/pkg/youtube"
)

// NewNewsSearcher 根据配置创建新闻搜索实例
func NewNewsSearcher(cfg *config.Config) (search.NewsSearcher, error) {
	news := cfg.News
	switch news.Provider {
	case "", "serpapi":
		rotator, err := keys.NewRotatorFromKeys(news.SerpAPI.APIKeys)
		if err != nil {
			return nil, fmt.Errorf("serpapi api_keys: %w", err)
		}
		return serpapi.NewClient(rotator, news.SerpAPI.BaseURL), nil

	case "tavily":
		if news.Tavily.APIKey == "" {
			return nil, fmt.Errorf("tavily api key is missing")
		}
		return tavily.NewClient(news.Tavily.APIKey, ""), nil

	case "searxng":
		if news.SearXNG.BaseURL == "" {
			return nil, fmt.Errorf("searxng base url is missing")
		}
		return searxng.NewClient(news.SearXNG.BaseURL, news.SearXNG.Timeout), nil

	case "googlenews":
		g := news.GoogleNews
		return googlenews.NewClient(g.BaseURL, g.Language, g.Region), nil

	default:
		return nil, fmt.Errorf("unknown news provider: %s", news.Provider)
	}
}

// NewYouTubeClient 创建 YouTube 客户端，搜索与元数据共用同一个轮转器
func NewYouTubeClient(cfg *config.Config) (*youtube.Client, error) {
	rotator, err := keys.NewRotatorFromKeys(cfg.YouTube.APIKeys)
	if err != nil {
		return nil, fmt.Errorf("youtube api_keys: %w", err)
	}
	return youtube.NewClient(rotator, youtube.WithBaseURL(cfg.YouTube.BaseURL)), nil
}
