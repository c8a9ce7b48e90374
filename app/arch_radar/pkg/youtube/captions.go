package youtube

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/iWorld-y/arch_radar/app/arch_radar/pkg/model"
	"github.com/iWorld-y/arch_radar/app/arch_radar/pkg/transcript"
)

// 观看页 HTML 中播放器响应 JSON 的起始标记
const playerResponseMarker = "ytInitialPlayerResponse = "

const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// CaptionFetcher 主字幕来源：抓取观看页中的字幕轨道并下载 timedtext
type CaptionFetcher struct {
	watchURL func(videoID string) string
	client   *http.Client
}

// CaptionOption 字幕抓取选项
type CaptionOption func(*CaptionFetcher)

// WithWatchURL 替换观看页地址生成函数
func WithWatchURL(fn func(videoID string) string) CaptionOption {
	return func(f *CaptionFetcher) { f.watchURL = fn }
}

// WithCaptionHTTPClient 替换 HTTP 客户端
func WithCaptionHTTPClient(hc *http.Client) CaptionOption {
	return func(f *CaptionFetcher) { f.client = hc }
}

// NewCaptionFetcher 创建字幕抓取器
func NewCaptionFetcher(opts ...CaptionOption) *CaptionFetcher {
	f := &CaptionFetcher{
		watchURL: model.WatchURL,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

type playerResponse struct {
	PlayabilityStatus *struct {
		Status string `json:"status"`
		Reason string `json:"reason"`
	} `json:"playabilityStatus"`
	Captions *struct {
		PlayerCaptionsTracklistRenderer struct {
			CaptionTracks []captionTrack `json:"captionTracks"`
		} `json:"playerCaptionsTracklistRenderer"`
	} `json:"captions"`
}

type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"` // asr 表示自动生成
}

// timedText 同时兼容 <transcript><text> 与 srv3 <timedtext><body><p> 两种格式
type timedText struct {
	Texts []string   `xml:"text"`
	Paras []srv3Para `xml:"body>p"`
}

// srv3Para 自动字幕的一行通常拆成多个 <s> 片段
type srv3Para struct {
	Text     string   `xml:",chardata"`
	Segments []string `xml:"s"`
}

func (p srv3Para) text() string {
	if len(p.Segments) == 0 {
		return p.Text
	}
	return strings.TrimSpace(p.Text) + strings.Join(p.Segments, "")
}

// Fetch 按语言偏好获取字幕，返回明确的阶段结果
func (f *CaptionFetcher) Fetch(ctx context.Context, videoID string, langs []string) transcript.Attempt {
	page, err := f.get(ctx, f.watchURL(videoID), 6*1024*1024)
	if err != nil {
		return transcript.Failed(transcript.StatusUnavailable, fmt.Errorf("watch page: %w", err))
	}

	player, err := parsePlayerResponse(page)
	if err != nil {
		return transcript.Failed(transcript.StatusUnavailable, err)
	}
	if ps := player.PlayabilityStatus; ps != nil && ps.Status != "" && ps.Status != "OK" {
		return transcript.Failed(transcript.StatusUnavailable, fmt.Errorf("video unplayable: %s %s", ps.Status, ps.Reason))
	}
	if player.Captions == nil || len(player.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks) == 0 {
		return transcript.Failed(transcript.StatusDisabled, errors.New("transcripts disabled"))
	}

	track, ok := pickTrack(player.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks, langs)
	if !ok {
		return transcript.Failed(transcript.StatusNotFound, fmt.Errorf("no transcript for languages %v", langs))
	}

	body, err := f.get(ctx, track.BaseURL, 2*1024*1024)
	if err != nil {
		return transcript.Failed(transcript.StatusUnavailable, fmt.Errorf("timedtext: %w", err))
	}
	text, err := parseTimedText(body)
	if err != nil {
		return transcript.Failed(transcript.StatusUnavailable, err)
	}
	if text == "" {
		return transcript.Failed(transcript.StatusNotFound, errors.New("empty transcript"))
	}
	return transcript.Found(text, track.LanguageCode)
}

func (f *CaptionFetcher) get(ctx context.Context, u string, limit int64) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept-Language", "ko-KR,ko;q=0.9,en-US;q=0.8,en;q=0.7")

	res, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d", res.StatusCode)
	}
	return io.ReadAll(io.LimitReader(res.Body, limit))
}

func parsePlayerResponse(page []byte) (*playerResponse, error) {
	idx := bytes.Index(page, []byte(playerResponseMarker))
	if idx < 0 {
		return nil, errors.New("ytInitialPlayerResponse not found in watch page")
	}
	raw := extractJSON(page[idx+len(playerResponseMarker):])
	if raw == nil {
		return nil, errors.New("failed to extract ytInitialPlayerResponse JSON")
	}
	var player playerResponse
	if err := json.Unmarshal(raw, &player); err != nil {
		return nil, fmt.Errorf("decode ytInitialPlayerResponse: %w", err)
	}
	return &player, nil
}

// extractJSON 从 b[0] == '{' 开始按括号深度截取完整 JSON 对象
func extractJSON(b []byte) []byte {
	if len(b) == 0 || b[0] != '{' {
		return nil
	}
	depth := 0
	inStr, escaped := false, false
	for i, c := range b {
		if inStr {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inStr = false
			}
			continue
		}
		switch c {
		case '"':
			inStr = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return b[:i+1]
			}
		}
	}
	return nil
}

// pickTrack 按语言优先级选择轨道，同一语言手动字幕优先于自动生成
func pickTrack(tracks []captionTrack, langs []string) (captionTrack, bool) {
	for _, lang := range langs {
		for _, t := range tracks {
			if t.LanguageCode == lang && t.Kind != "asr" {
				return t, true
			}
		}
		for _, t := range tracks {
			if t.LanguageCode == lang {
				return t, true
			}
		}
	}
	return captionTrack{}, false
}

func parseTimedText(body []byte) (string, error) {
	var tt timedText
	if err := xml.Unmarshal(body, &tt); err != nil {
		return "", fmt.Errorf("parse timedtext XML: %w", err)
	}
	lines := tt.Texts
	if len(lines) == 0 {
		for _, p := range tt.Paras {
			lines = append(lines, p.text())
		}
	}

	parts := make([]string, 0, len(lines))
	for _, line := range lines {
		text := strings.TrimSpace(html.UnescapeString(line))
		if text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " "), nil
}
