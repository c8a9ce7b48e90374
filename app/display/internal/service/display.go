package service

import (
	"errors"
	"fmt"
	nethttp "net/http"
	"net/url"
	"strconv"

	kerrors "github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/transport/http"

	radardomain "github.com/iWorld-y/arch_radar/app/arch_radar/pkg/domain"
	"github.com/iWorld-y/arch_radar/app/display/internal/data"
	"github.com/iWorld-y/arch_radar/app/display/internal/domain"
	"github.com/iWorld-y/arch_radar/app/display/internal/usecase"
)

type DisplayService struct {
	uc  *usecase.RadarUseCase
	log *log.Helper
}

func NewDisplayService(uc *usecase.RadarUseCase, logger log.Logger) *DisplayService {
	return &DisplayService{
		uc:  uc,
		log: log.NewHelper(logger),
	}
}

// SummaryVideoReq 视频摘要请求
type SummaryVideoReq struct {
	VideoID string `json:"video_id"`
	Title   string `json:"title"`
}

// SummaryNewsReq 新闻分析请求，文章为检索结果的回传
type SummaryNewsReq struct {
	Articles []*domain.Article `json:"articles"`
}

// DownloadReq 报告下载请求
type DownloadReq struct {
	Format  string            `json:"format"`
	Kind    string            `json:"kind"`
	Title   string            `json:"title"`
	Window  string            `json:"window"`
	Text    string            `json:"text"`
	Sources []*domain.Article `json:"sources"`
}

// Catalog GET /api/domains
func (s *DisplayService) Catalog(ctx http.Context) error {
	return ctx.JSON(nethttp.StatusOK, s.uc.Catalog(ctx))
}

// Search GET /api/search?source=&domain=&query=&window=&max=
func (s *DisplayService) Search(ctx http.Context) error {
	q := ctx.Query()
	params := &domain.SearchParams{
		Source: q.Get("source"),
		Domain: q.Get("domain"),
		Query:  q.Get("query"),
		Window: q.Get("window"),
	}
	if limit := q.Get("max"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil {
			return kerrors.BadRequest("INVALID_MAX", "max must be an integer")
		}
		params.MaxResults = n
	}

	res, err := s.uc.Search(ctx, params)
	if err != nil {
		return s.toError(err)
	}
	return ctx.JSON(nethttp.StatusOK, res)
}

// SummarizeVideo POST /api/summary/video
func (s *DisplayService) SummarizeVideo(ctx http.Context) error {
	var req SummaryVideoReq
	if err := ctx.Bind(&req); err != nil {
		return kerrors.BadRequest("INVALID_BODY", err.Error())
	}

	r, err := s.uc.SummarizeVideo(ctx, req.VideoID, req.Title)
	if err != nil {
		return s.toError(err)
	}
	return ctx.JSON(nethttp.StatusOK, r)
}

// AnalyzeNews POST /api/summary/news
func (s *DisplayService) AnalyzeNews(ctx http.Context) error {
	var req SummaryNewsReq
	if err := ctx.Bind(&req); err != nil {
		return kerrors.BadRequest("INVALID_BODY", err.Error())
	}
	return ctx.JSON(nethttp.StatusOK, s.uc.AnalyzeNews(ctx, req.Articles))
}

// DownloadReport POST /api/report/download
func (s *DisplayService) DownloadReport(ctx http.Context) error {
	var req DownloadReq
	if err := ctx.Bind(&req); err != nil {
		return kerrors.BadRequest("INVALID_BODY", err.Error())
	}

	d, err := s.uc.RenderDownload(&usecase.DownloadParams{
		Format:  req.Format,
		Kind:    req.Kind,
		Title:   req.Title,
		Window:  req.Window,
		Text:    req.Text,
		Sources: req.Sources,
	})
	if err != nil {
		return s.toError(err)
	}

	ctx.Response().Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q; filename*=UTF-8''%s", d.FileName, url.PathEscape(d.FileName)))
	return ctx.Blob(nethttp.StatusOK, d.ContentType, d.Body)
}

func (s *DisplayService) toError(err error) error {
	switch {
	case errors.Is(err, radardomain.ErrUnknownDomain):
		return kerrors.NotFound("UNKNOWN_DOMAIN", err.Error())
	case errors.Is(err, usecase.ErrMissingDomain),
		errors.Is(err, usecase.ErrInvalidSource),
		errors.Is(err, usecase.ErrMissingVideo),
		errors.Is(err, usecase.ErrEmptyReport):
		return kerrors.BadRequest("INVALID_ARGUMENT", err.Error())
	case errors.Is(err, data.ErrEngineUnavailable):
		return kerrors.ServiceUnavailable("ENGINE_UNAVAILABLE", err.Error())
	default:
		s.log.Errorf("request failed: %v", err)
		return kerrors.InternalServer("INTERNAL", err.Error())
	}
}
