// Package llm 封装生成式模型调用。
package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/iWorld-y/arch_radar/app/arch_radar/pkg/config"
)

// ErrNoAPIKey 未配置模型 API Key
var ErrNoAPIKey = errors.New("llm api key is missing")

// Generation 一次生成的结果。Text 为空表示模型没有给出内容，
// 此时 Feedback 携带提供方给出的原因（拦截原因、结束原因等）。
type Generation struct {
	Text     string
	Feedback string
}

// Generator 单轮文本生成
type Generator interface {
	Generate(ctx context.Context, prompt string) (*Generation, error)
}

// New 根据配置创建生成器
func New(ctx context.Context, cfg config.LLMConfig) (Generator, error) {
	if cfg.APIKey == "" {
		return nil, ErrNoAPIKey
	}
	timeout := time.Duration(cfg.Timeout) * time.Second

	switch cfg.Provider {
	case "", "gemini":
		gen, err := NewGemini(ctx, cfg.APIKey, cfg.Model, cfg.BaseURL, timeout)
		if err != nil {
			return nil, err
		}
		return gen, nil
	case "openai":
		gen, err := NewOpenAI(ctx, cfg.BaseURL, cfg.APIKey, cfg.Model, timeout)
		if err != nil {
			return nil, err
		}
		return gen, nil
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.Provider)
	}
}
