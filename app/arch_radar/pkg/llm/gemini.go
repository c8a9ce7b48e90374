package llm

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/cloudwego/eino-ext/components/model/gemini"
	"github.com/cloudwego/eino/schema"
	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.0-flash"

// geminiBlockReasons 表示内容被安全策略拦截的结束原因
var geminiBlockReasons = map[string]struct{}{
	"SAFETY":             {},
	"BLOCKLIST":          {},
	"PROHIBITED_CONTENT": {},
	"SPII":               {},
}

// NewGemini 创建基于 eino Gemini ChatModel 的生成器
func NewGemini(ctx context.Context, apiKey, modelName, baseURL string, timeout time.Duration) (*ChatGenerator, error) {
	if modelName == "" {
		modelName = defaultGeminiModel
	}
	if timeout <= 0 {
		timeout = 120 * time.Second
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  &http.Client{Timeout: timeout},
		HTTPOptions: genai.HTTPOptions{BaseURL: baseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("gemini client 初始化失败: %w", err)
	}

	chatModel, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client: client,
		Model:  modelName,
	})
	if err != nil {
		return nil, fmt.Errorf("LLM 初始化失败: %w", err)
	}
	return NewChatGenerator(chatModel, WithFeedback(geminiFeedback)), nil
}

// geminiFeedback 拦截类结束原因报告为 block_reason，其余为 finish_reason
func geminiFeedback(msg *schema.Message) string {
	if msg == nil || msg.ResponseMeta == nil || msg.ResponseMeta.FinishReason == "" {
		return noResponse
	}
	reason := msg.ResponseMeta.FinishReason
	if _, ok := geminiBlockReasons[reason]; ok {
		return "block_reason: " + reason
	}
	return "finish_reason: " + reason
}
