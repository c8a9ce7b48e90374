package search

import (
	"context"
	"time"

	"github.com/iWorld-y/arch_radar/app/arch_radar/pkg/model"
	"github.com/iWorld-y/arch_radar/app/arch_radar/pkg/query"
)

// VideoSearcher 视频搜索接口
type VideoSearcher interface {
	SearchVideos(ctx context.Context, req *VideoRequest) (*VideoPage, error)
}

// NewsSearcher 新闻搜索接口
type NewsSearcher interface {
	SearchNews(ctx context.Context, req *NewsRequest) ([]model.NewsResult, error)
}

// VideoRequest 视频搜索请求
type VideoRequest struct {
	Query          string
	PublishedAfter *time.Time
	MaxResults     int
}

// VideoPage 视频搜索响应
type VideoPage struct {
	Videos       []model.VideoResult
	TotalResults int // 提供方报告的总匹配数
}

// NewsRequest 新闻搜索请求
type NewsRequest struct {
	Query      string
	Window     query.Window
	Since      *time.Time
	MaxResults int
}
