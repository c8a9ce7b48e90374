package summarize

import (
	"strings"

	"github.com/iWorld-y/arch_radar/app/arch_radar/pkg/model"
)

const videoPromptHeader = `다음 YouTube 영상의 정보를 바탕으로 가독성 있는 한 페이지의 보고서 형태로 요약하세요. 최종 결과는 한국어로 작성해주세요. 자막 내용이 메인 정보이고, 비디오 설명과 주요 댓글은 참고 정보입니다.

보고서 구조:
1. 영상 개요
2. 주요 내용
3. 시청자 반응 (댓글 기반)
4. 결론 및 시사점
영상 정보:
`

const newsPromptHeader = `
다음은 특정 주제에 관한 여러 뉴스 기사의 제목과 내용입니다. 이 기사들을 종합적으로 분석하여 가독성 있는 한 페이지의 보고서를 다음 형식을 참고하여 작성해주세요:

1. 주요 이슈 요약 (3-5개의 핵심 포인트)
2. 상세 분석 (각 주요 이슈에 대한 심층 설명)
3. 다양한 관점 (기사들에서 나타난 서로 다른 의견이나 해석)
4. 시사점 및 향후 전망

보고서는 한국어로 작성해주세요. 분석 시 객관성을 유지하고, 편향된 의견을 제시하지 않도록 주의해주세요.

기사 내용:
`

// videoPrompt 字幕为主要信息，简介与评论为参考信息
func videoPrompt(title string, c *model.AggregatedContent) string {
	var sb strings.Builder
	sb.WriteString(videoPromptHeader)
	sb.WriteString("제목: " + title + "\n\n")

	if c.Transcript != nil && c.Transcript.Text != "" {
		sb.WriteString("자막 내용:\n" + c.Transcript.Text + "\n\n")
	}
	if c.Description != "" {
		sb.WriteString("비디오 설명:\n" + c.Description + "\n\n")
	}
	if len(c.Comments) > 0 {
		sb.WriteString("주요 댓글:\n")
		for _, comment := range c.Comments {
			sb.WriteString("- " + comment + "\n")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func newsPrompt(articles []model.NewsResult) string {
	blocks := make([]string, 0, len(articles))
	for _, a := range articles {
		blocks = append(blocks, "제목: "+a.Title+"\n내용: "+a.Content)
	}
	return newsPromptHeader + strings.Join(blocks, "\n\n") + "\n"
}
