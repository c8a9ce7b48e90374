// Package report 将摘要报告渲染为可下载的文本或 HTML 文件。
package report

import (
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/iWorld-y/arch_radar/app/arch_radar/pkg/model"
)

// Format 输出格式
type Format string

const (
	FormatText Format = "text"
	FormatHTML Format = "html"
)

// ParseFormat 无法识别时使用纯文本
func ParseFormat(s string) Format {
	if strings.EqualFold(strings.TrimSpace(s), string(FormatHTML)) {
		return FormatHTML
	}
	return FormatText
}

// Source 报告引用的原始内容
type Source struct {
	Title  string
	Link   string
	Source string
}

// Document 一份待渲染的报告
type Document struct {
	Title   string // 视频标题或检索领域
	Window  string // 时间窗口显示文本
	Report  *model.Report
	Sources []Source
}

// ContentType 对应格式的 MIME 类型
func (f Format) ContentType() string {
	if f == FormatHTML {
		return "text/html; charset=utf-8"
	}
	return "text/plain; charset=utf-8"
}

// FileName 下载文件名
func (f Format) FileName(kind model.ReportKind) string {
	base := "summary"
	if kind == model.KindNewsAnalysis {
		base = "news_analysis"
	}
	if f == FormatHTML {
		return base + ".html"
	}
	return base + ".txt"
}

// Render 按格式写出报告
func Render(w io.Writer, f Format, doc Document) error {
	if doc.Report == nil {
		return fmt.Errorf("report is nil")
	}
	if f == FormatHTML {
		return htmlTpl.Execute(w, htmlData{Document: doc, Date: doc.Report.GeneratedAt.Format(time.DateTime)})
	}
	_, err := io.WriteString(w, doc.Report.Text)
	return err
}

type htmlData struct {
	Document
	Date string
}

var htmlTpl = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="ko">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Searching Architecture | {{ .Title }}</title>
    <script src="https://cdn.jsdelivr.net/npm/marked/marked.min.js"></script>
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, "Apple SD Gothic Neo", sans-serif;
            background-color: #f8fafc;
            color: #1e293b;
            line-height: 1.6;
            margin: 0;
            padding: 20px;
        }
        .container { max-width: 900px; margin: 0 auto; }
        header { text-align: center; margin-bottom: 32px; }
        .date-info { color: #64748b; }
        .card { background: #fff; padding: 24px; border-radius: 12px; border: 1px solid #e2e8f0; }
        .diagnostic { border-color: #f87171; color: #b91c1c; }
        .ref-list { font-size: 0.9em; }
        .ref-list a { color: #2563eb; text-decoration: none; }
    </style>
</head>
<body>
    <div class="container">
        <header>
            <h1>🏗️ {{ .Title }}</h1>
            <div class="date-info">{{ .Date }}{{ if .Window }} • {{ .Window }}{{ end }}</div>
        </header>

        <div class="card{{ if .Report.Diagnostic }} diagnostic{{ end }}">
            <div id="report"></div>
            <div style="display:none" id="raw-report">{{ .Report.Text }}</div>
        </div>

        {{ if .Sources }}
        <div class="references">
            <h4>🔗 참고 자료</h4>
            <ul class="ref-list">
                {{ range .Sources }}
                <li><a href="{{ .Link }}" target="_blank">{{ .Title }}</a>{{ if .Source }} <span style="color:#94a3b8">({{ .Source }})</span>{{ end }}</li>
                {{ end }}
            </ul>
        </div>
        {{ end }}
    </div>

    <script>
        document.addEventListener('DOMContentLoaded', function() {
            const raw = document.getElementById('raw-report');
            document.getElementById('report').innerHTML = marked.parse(raw.textContent);
        });
    </script>
</body>
</html>
`))
