package googlenews

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/arch_radar/app/arch_radar/pkg/query"
	"github.com/iWorld-y/arch_radar/app/arch_radar/pkg/search"
)

const feed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"><channel><title>Google News</title>
<item>
  <title>스마트건설 기술 확산 - 건설경제</title>
  <link>https://news.example/1</link>
  <pubDate>Sun, 10 Mar 2024 09:00:00 GMT</pubDate>
  <description>&lt;a href="https://news.example/1"&gt;스마트건설 기술 확산&lt;/a&gt;</description>
</item>
<item>
  <title>오래된 기사 - 옛날신문</title>
  <link>https://news.example/2</link>
  <pubDate>Mon, 01 Jan 2024 09:00:00 GMT</pubDate>
  <description>old</description>
</item>
<item>
  <title>BIM 의무화 - 국토일보</title>
  <link>https://news.example/3</link>
  <pubDate>Mon, 11 Mar 2024 09:00:00 GMT</pubDate>
  <description>BIM</description>
</item>
</channel></rss>`

func TestSearchNews(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		require.Equal(t, "(스마트건설 OR BIM) when:1m", q.Get("q"))
		require.Equal(t, "ko", q.Get("hl"))
		require.Equal(t, "KR", q.Get("gl"))
		require.Equal(t, "KR:ko", q.Get("ceid"))
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(feed))
	}))
	defer srv.Close()

	since := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	got, err := NewClient(srv.URL, "", "").SearchNews(context.Background(), &search.NewsRequest{
		Query: "(스마트건설 OR BIM)", Window: query.WindowMonth, Since: &since, MaxResults: 10,
	})
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "스마트건설 기술 확산", got[0].Title)
	require.Equal(t, "건설경제", got[0].Source)
	require.Equal(t, "스마트건설 기술 확산", got[0].Content)
	require.Equal(t, "https://news.example/3", got[1].Link)
}

func TestSearchNewsLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(feed))
	}))
	defer srv.Close()

	got, err := NewClient(srv.URL, "", "").SearchNews(context.Background(), &search.NewsRequest{Query: "q", MaxResults: 1})
	require.NoError(t, err)
	require.Len(t, got, 1)
}

func TestSplitSource(t *testing.T) {
	title, source := splitSource("A - B - 언론사")
	require.Equal(t, "A - B", title)
	require.Equal(t, "언론사", source)

	title, source = splitSource("no source")
	require.Equal(t, "no source", title)
	require.Empty(t, source)
}
