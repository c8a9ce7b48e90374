// Package query 根据领域关键词、附加检索词与时间窗口构造检索式。
package query

import (
	"strings"
	"time"

	"github.com/iWorld-y/arch_radar/app/arch_radar/pkg/model"
)

// KST 截止时间统一按 UTC+9 计算
var KST = time.FixedZone("KST", 9*60*60)

// Window 时间窗口选择项
type Window string

const (
	WindowNone     Window = "none"
	WindowDay      Window = "1-day"
	WindowWeek     Window = "1-week"
	WindowMonth    Window = "1-month"
	WindowQuarter  Window = "3-months"
	WindowHalfYear Window = "6-months"
	WindowYear     Window = "1-year"
)

// Windows 按时长递增排列
var Windows = []Window{WindowNone, WindowDay, WindowWeek, WindowMonth, WindowQuarter, WindowHalfYear, WindowYear}

type windowSpec struct {
	label    string // 界面显示文本
	duration time.Duration
	serp     string // Google tbs=qdr 取值
	rss      string // Google News RSS when: 取值
	tavily   string
	searxng  string
}

const week = 7 * 24 * time.Hour

var specs = map[Window]windowSpec{
	WindowNone:     {label: "전체"},
	WindowDay:      {label: "최근 1일", duration: 24 * time.Hour, serp: "d", rss: "1d", tavily: "day", searxng: "day"},
	WindowWeek:     {label: "최근 1주일", duration: week, serp: "w", rss: "7d", tavily: "week", searxng: "week"},
	WindowMonth:    {label: "최근 1개월", duration: 4 * week, serp: "m", rss: "1m", tavily: "month", searxng: "month"},
	WindowQuarter:  {label: "최근 3개월", duration: 12 * week, serp: "m3", rss: "3m", tavily: "year", searxng: "year"},
	WindowHalfYear: {label: "최근 6개월", duration: 24 * week, serp: "m6", rss: "6m", tavily: "year", searxng: "year"},
	WindowYear:     {label: "최근 1년", duration: 52 * week, serp: "y", rss: "1y", tavily: "year", searxng: "year"},
}

// noneAliases 表示不限时间的其他界面文本
var noneAliases = map[string]struct{}{"모두": {}}

// ParseWindow 接受规范取值或界面文本，无法识别时返回 WindowNone
func ParseWindow(s string) Window {
	s = strings.TrimSpace(s)
	if _, ok := noneAliases[s]; ok {
		return WindowNone
	}
	if _, ok := specs[Window(s)]; ok {
		return Window(s)
	}
	for w, spec := range specs {
		if spec.label == s {
			return w
		}
	}
	return WindowNone
}

// Label 界面显示文本
func (w Window) Label() string { return specs[w.normalize()].label }

// Duration 窗口时长，none 为 0
func (w Window) Duration() time.Duration { return specs[w.normalize()].duration }

// SerpCode SerpAPI tbs=qdr 时间代码，none 为空
func (w Window) SerpCode() string { return specs[w.normalize()].serp }

// RSSWhen Google News 的 when: 运算符取值
func (w Window) RSSWhen() string { return specs[w.normalize()].rss }

// TavilyRange Tavily time_range 取值
func (w Window) TavilyRange() string { return specs[w.normalize()].tavily }

// SearXNGRange SearXNG time_range 取值，仅支持 day/week/month/year，更长窗口取 year
func (w Window) SearXNGRange() string { return specs[w.normalize()].searxng }

func (w Window) normalize() Window {
	if _, ok := specs[w]; ok {
		return w
	}
	return WindowNone
}

// Cutoff 发布时间下界（含），none 返回 nil
func (w Window) Cutoff(now time.Time) *time.Time {
	d := w.Duration()
	if d == 0 {
		return nil
	}
	t := now.In(KST).Add(-d)
	return &t
}

// Query 一次检索所需的检索式与截止时间
type Query struct {
	Text   string
	Since  *time.Time
	Window Window
}

// Build 构造 "(kw1 OR kw2 ...)[ AND (clause)]" 形式的检索式
func Build(domain model.Domain, clause string, window Window, now time.Time) Query {
	window = window.normalize()

	var sb strings.Builder
	sb.WriteString("(")
	sb.WriteString(strings.Join(domain.Keywords, " OR "))
	sb.WriteString(")")
	if clause = strings.TrimSpace(clause); clause != "" {
		sb.WriteString(" AND (")
		sb.WriteString(clause)
		sb.WriteString(")")
	}

	return Query{
		Text:   sb.String(),
		Since:  window.Cutoff(now),
		Window: window,
	}
}
