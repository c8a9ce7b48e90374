package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iWorld-y/arch_radar/app/arch_radar/pkg/engine"
	"github.com/iWorld-y/arch_radar/app/arch_radar/pkg/logger"
	"github.com/iWorld-y/arch_radar/app/arch_radar/pkg/model"
	"github.com/iWorld-y/arch_radar/app/arch_radar/pkg/query"
	"github.com/iWorld-y/arch_radar/app/arch_radar/pkg/report"
)

// --- Domains Command ---

var domainsCmd = &cobra.Command{
	Use:   "domains",
	Short: "List domains, keywords and major projects",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		for _, d := range eng.Domains() {
			fmt.Fprintf(out, "%s: %s\n", d.Name, strings.Join(d.Keywords, ", "))
		}
		fmt.Fprintln(out, "\n주요 프로젝트:")
		for _, p := range eng.Projects() {
			fmt.Fprintf(out, "  - %s\n", p)
		}
		fmt.Fprintln(out, "\n조회 기간:")
		for _, w := range query.Windows {
			fmt.Fprintf(out, "  %-9s %s\n", w, w.Label())
		}
	},
}

// --- Search Command ---

var searchCmd = &cobra.Command{
	Use:   "search [youtube|news]",
	Short: "Search YouTube videos or news for a domain",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req := searchRequest(cmd)
		out := cmd.OutOrStdout()

		switch args[0] {
		case "youtube":
			res, err := eng.SearchVideos(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "검색어: %s\n총 %d개의 관련 영상 중 %d개\n\n", res.Query.Text, res.Total, len(res.Videos))
			for i, v := range res.Videos {
				fmt.Fprintf(out, "%d. %s\n   %s | %s\n   %s\n", i+1, v.Title, v.Channel, v.PublishedAt.In(query.KST).Format("2006-01-02"), v.URL())
			}
		case "news":
			res, err := eng.SearchNews(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "검색어: %s\n뉴스 %d건\n\n", res.Query.Text, len(res.Articles))
			for i, a := range res.Articles {
				fmt.Fprintf(out, "%d. %s (%s)\n   %s\n", i+1, a.Title, a.Source, a.Link)
			}
		default:
			return fmt.Errorf("unknown source: %s", args[0])
		}
		return nil
	},
}

// --- Summarize Command ---

var summarizeCmd = &cobra.Command{
	Use:   "summarize [video-id]",
	Short: "Summarize a YouTube video into a Korean report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		title, _ := cmd.Flags().GetString("title")
		r := eng.SummarizeVideo(cmd.Context(), engine.VideoRef{ID: args[0], Title: title})
		return writeReport(cmd, report.Document{
			Title:   title,
			Report:  r,
			Sources: []report.Source{{Title: title, Link: model.WatchURL(args[0]), Source: "YouTube"}},
		})
	},
}

// --- Analyze Command ---

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Search news for a domain and write a combined analysis",
	RunE: func(cmd *cobra.Command, args []string) error {
		req := searchRequest(cmd)
		res, err := eng.SearchNews(cmd.Context(), req)
		if err != nil {
			return err
		}
		logger.Log.Infof("检索到 %d 条新闻，开始分析", len(res.Articles))

		sources := make([]report.Source, 0, len(res.Articles))
		for _, a := range res.Articles {
			sources = append(sources, report.Source{Title: a.Title, Link: a.Link, Source: a.Source})
		}
		return writeReport(cmd, report.Document{
			Title:   req.Domain,
			Window:  req.Window.Label(),
			Report:  eng.AnalyzeNews(cmd.Context(), res.Articles),
			Sources: sources,
		})
	},
}

func init() {
	for _, c := range []*cobra.Command{searchCmd, analyzeCmd} {
		c.Flags().StringP("domain", "d", "건축계획", "domain name")
		c.Flags().StringP("query", "q", "", "additional search terms (e.g. a project name)")
		c.Flags().StringP("window", "w", string(query.WindowMonth), "time window id or label (e.g. 1-week, 최근 1주일)")
		c.Flags().IntP("max", "n", 0, "maximum number of results (default from config)")
	}
	summarizeCmd.Flags().StringP("title", "t", "", "video title")

	for _, c := range []*cobra.Command{summarizeCmd, analyzeCmd} {
		c.Flags().StringP("out", "o", "", "write the report to a file instead of stdout")
		c.Flags().String("format", "text", "report format (text, html)")
	}
}

func searchRequest(cmd *cobra.Command) engine.SearchRequest {
	domainName, _ := cmd.Flags().GetString("domain")
	clause, _ := cmd.Flags().GetString("query")
	window, _ := cmd.Flags().GetString("window")
	limit, _ := cmd.Flags().GetInt("max")
	return engine.SearchRequest{
		Domain:     domainName,
		Clause:     clause,
		Window:     query.ParseWindow(window),
		MaxResults: limit,
	}
}

func writeReport(cmd *cobra.Command, doc report.Document) error {
	format, _ := cmd.Flags().GetString("format")
	outPath, _ := cmd.Flags().GetString("out")

	var w io.Writer = cmd.OutOrStdout()
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	if err := report.Render(w, report.ParseFormat(format), doc); err != nil {
		return err
	}
	if outPath != "" {
		logger.Log.Infof("✅ 报告已写入: %s", outPath)
	} else {
		fmt.Fprintln(w)
	}
	if doc.Report.Diagnostic {
		logger.Log.Warn("报告为诊断信息，未生成摘要")
	}
	return nil
}
