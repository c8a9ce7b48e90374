package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/arch_radar/app/arch_radar/pkg/model"
	"github.com/iWorld-y/arch_radar/app/arch_radar/pkg/query"
	"github.com/iWorld-y/arch_radar/app/arch_radar/pkg/report"
)

func newFlagCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "t"}
	cmd.Flags().StringP("domain", "d", "건축계획", "")
	cmd.Flags().StringP("query", "q", "", "")
	cmd.Flags().StringP("window", "w", string(query.WindowMonth), "")
	cmd.Flags().IntP("max", "n", 0, "")
	cmd.Flags().StringP("out", "o", "", "")
	cmd.Flags().String("format", "text", "")
	return cmd
}

func TestSearchRequest(t *testing.T) {
	cmd := newFlagCmd()
	require.NoError(t, cmd.Flags().Parse([]string{"-d", "도시재생", "-q", "세운재정비촉진지구", "-w", "최근 1주일", "-n", "5"}))

	req := searchRequest(cmd)
	require.Equal(t, "도시재생", req.Domain)
	require.Equal(t, "세운재정비촉진지구", req.Clause)
	require.Equal(t, query.WindowWeek, req.Window)
	require.Equal(t, 5, req.MaxResults)
}

func TestWriteReport(t *testing.T) {
	doc := report.Document{
		Title:  "건축정책",
		Report: &model.Report{Kind: model.KindNewsAnalysis, Text: "## 주요 이슈 요약"},
	}

	cmd := newFlagCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	require.NoError(t, writeReport(cmd, doc))
	require.Contains(t, buf.String(), "주요 이슈 요약")

	path := filepath.Join(t.TempDir(), "news_analysis.html")
	cmd = newFlagCmd()
	require.NoError(t, cmd.Flags().Parse([]string{"--out", path, "--format", "html"}))
	require.NoError(t, writeReport(cmd, doc))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "<!DOCTYPE html>")
}
