package tavily

import (
	"net/url"
	"strings"
)

// hostOf Tavily 不返回媒体名称，用站点域名代替
func hostOf(link string) string {
	u, err := url.Parse(link)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}
