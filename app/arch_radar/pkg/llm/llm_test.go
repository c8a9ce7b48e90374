package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/arch_radar/app/arch_radar/pkg/config"
)

type fakeChatModel struct {
	resp  *schema.Message
	err   error
	input []*schema.Message
}

func (f *fakeChatModel) Generate(_ context.Context, input []*schema.Message, _ ...model.Option) (*schema.Message, error) {
	f.input = input
	return f.resp, f.err
}

func (f *fakeChatModel) Stream(context.Context, []*schema.Message, ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("not implemented")
}

func TestChatGenerator(t *testing.T) {
	cm := &fakeChatModel{resp: &schema.Message{Role: schema.Assistant, Content: "보고서"}}
	gen, err := NewChatGenerator(cm).Generate(context.Background(), "prompt")
	require.NoError(t, err)
	require.Equal(t, "보고서", gen.Text)
	require.Len(t, cm.input, 1)
	require.Equal(t, schema.User, cm.input[0].Role)
	require.Equal(t, "prompt", cm.input[0].Content)

	cm = &fakeChatModel{resp: &schema.Message{ResponseMeta: &schema.ResponseMeta{FinishReason: "content_filter"}}}
	gen, err = NewChatGenerator(cm).Generate(context.Background(), "prompt")
	require.NoError(t, err)
	require.Empty(t, gen.Text)
	require.Equal(t, "finish_reason: content_filter", gen.Feedback)

	cm = &fakeChatModel{err: errors.New("boom")}
	_, err = NewChatGenerator(cm).Generate(context.Background(), "prompt")
	require.Error(t, err)
}

func TestNew(t *testing.T) {
	_, err := New(context.Background(), config.LLMConfig{Provider: "gemini"})
	require.ErrorIs(t, err, ErrNoAPIKey)

	g, err := New(context.Background(), config.LLMConfig{Provider: "gemini", APIKey: "k"})
	require.NoError(t, err)
	require.IsType(t, &ChatGenerator{}, g)

	g, err = New(context.Background(), config.LLMConfig{Provider: "openai", APIKey: "k", Model: "gpt-4o-mini", BaseURL: "http://localhost:1234/v1"})
	require.NoError(t, err)
	require.IsType(t, &ChatGenerator{}, g)

	_, err = New(context.Background(), config.LLMConfig{Provider: "claude", APIKey: "k"})
	require.Error(t, err)
}

func TestGeminiFeedback(t *testing.T) {
	tests := []struct {
		name         string
		resp         *schema.Message
		wantText     string
		wantFeedback string
	}{
		{
			name:     "text",
			resp:     &schema.Message{Role: schema.Assistant, Content: "## 영상 개요\n내용", ResponseMeta: &schema.ResponseMeta{FinishReason: "STOP"}},
			wantText: "## 영상 개요\n내용",
		},
		{
			name:         "blocked by safety",
			resp:         &schema.Message{ResponseMeta: &schema.ResponseMeta{FinishReason: "SAFETY"}},
			wantFeedback: "block_reason: SAFETY",
		},
		{
			name:         "prohibited content",
			resp:         &schema.Message{ResponseMeta: &schema.ResponseMeta{FinishReason: "PROHIBITED_CONTENT"}},
			wantFeedback: "block_reason: PROHIBITED_CONTENT",
		},
		{
			name:         "recitation",
			resp:         &schema.Message{ResponseMeta: &schema.ResponseMeta{FinishReason: "RECITATION"}},
			wantFeedback: "finish_reason: RECITATION",
		},
		{
			name:         "no meta",
			resp:         &schema.Message{},
			wantFeedback: "No response received.",
		},
		{
			name:         "nil message",
			wantFeedback: "No response received.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cm := &fakeChatModel{resp: tt.resp}
			gen, err := NewChatGenerator(cm, WithFeedback(geminiFeedback)).Generate(context.Background(), "요약하세요")
			require.NoError(t, err)
			require.Equal(t, tt.wantText, gen.Text)
			require.Equal(t, tt.wantFeedback, gen.Feedback)
			require.Equal(t, "요약하세요", cm.input[0].Content)
		})
	}
}

func TestNewGemini(t *testing.T) {
	g, err := NewGemini(context.Background(), "key", "", "http://127.0.0.1:1", time.Second)
	require.NoError(t, err)
	require.NotNil(t, g.cm)
}
