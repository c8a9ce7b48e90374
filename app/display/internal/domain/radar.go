package domain

// Domain 领域及关键词
type Domain struct {
	Name     string   `json:"name"`
	Keywords []string `json:"keywords"`
}

// Window 时间窗口选项
type Window struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Catalog 页面侧边栏所需的全部选项
type Catalog struct {
	Domains  []*Domain `json:"domains"`
	Projects []string  `json:"projects"`
	Windows  []*Window `json:"windows"`
}

// SearchParams 检索参数
type SearchParams struct {
	Source     string // youtube 或 news
	Domain     string
	Query      string
	Window     string
	MaxResults int
}

// Video 视频条目
type Video struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Channel     string `json:"channel"`
	Thumbnail   string `json:"thumbnail"`
	Description string `json:"description"`
	PublishedAt string `json:"published_at"`
	URL         string `json:"url"`
}

// Article 新闻条目
type Article struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Source  string `json:"source"`
	Snippet string `json:"snippet"`
	Date    string `json:"date,omitempty"`
}

// SearchResult 检索结果
type SearchResult struct {
	Source   string     `json:"source"`
	Query    string     `json:"query"`
	Window   *Window    `json:"window"`
	Total    int        `json:"total"`
	Videos   []*Video   `json:"videos,omitempty"`
	Articles []*Article `json:"articles,omitempty"`
}

// Report 生成的报告
type Report struct {
	Kind        string `json:"kind"`
	Text        string `json:"text"`
	Diagnostic  bool   `json:"diagnostic"`
	GeneratedAt string `json:"generated_at"`
}
