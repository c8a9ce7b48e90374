package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

const noResponse = "No response received."

// ChatGenerator 基于 eino ChatModel 的生成器
type ChatGenerator struct {
	cm       model.BaseChatModel
	feedback func(*schema.Message) string
}

// ChatOption ChatGenerator 选项
type ChatOption func(*ChatGenerator)

// WithFeedback 自定义空回复时的反馈说明
func WithFeedback(fn func(*schema.Message) string) ChatOption {
	return func(g *ChatGenerator) {
		if fn != nil {
			g.feedback = fn
		}
	}
}

// NewChatGenerator 包装任意 eino ChatModel
func NewChatGenerator(cm model.BaseChatModel, opts ...ChatOption) *ChatGenerator {
	g := &ChatGenerator{cm: cm, feedback: finishFeedback}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// NewOpenAI 创建 OpenAI 兼容协议的生成器
func NewOpenAI(ctx context.Context, baseURL, apiKey, modelName string, timeout time.Duration) (*ChatGenerator, error) {
	chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Model:   modelName,
		Timeout: timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("LLM 初始化失败: %w", err)
	}
	return NewChatGenerator(chatModel), nil
}

// Generate 以单条用户消息调用模型
func (g *ChatGenerator) Generate(ctx context.Context, prompt string) (*Generation, error) {
	messages := []*schema.Message{
		{Role: schema.User, Content: prompt},
	}

	resp, err := g.cm.Generate(ctx, messages)
	if err != nil {
		return nil, err
	}
	if resp == nil || resp.Content == "" {
		return &Generation{Feedback: g.feedback(resp)}, nil
	}
	return &Generation{Text: resp.Content}, nil
}

func finishFeedback(msg *schema.Message) string {
	if msg == nil || msg.ResponseMeta == nil || msg.ResponseMeta.FinishReason == "" {
		return noResponse
	}
	return "finish_reason: " + msg.ResponseMeta.FinishReason
}
