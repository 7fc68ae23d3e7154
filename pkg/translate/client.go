package translate

import (
	"context"
	"os"
)

// Translator renders English sugar-market copy into Simplified Chinese. The
// ingestion pipeline never calls it; only the on-demand translate route does.
type Translator interface {
	Translate(ctx context.Context, text string) (string, error)
	ModelName() string
}

const systemPrompt = `你是一名专业翻译。请将以下关于糖市场的新闻翻译成简体中文。保持专业术语的准确性，使翻译流畅自然。只返回翻译后的文本，不要添加任何解释或额外内容。`

// FromEnv selects a provider by configured key, DeepSeek first. Returns nil
// when no key is set; callers must treat that as "translation unavailable".
func FromEnv() Translator {
	if key := os.Getenv("DEEPSEEK_API_KEY"); key != "" {
		return NewDeepSeekClient(key)
	}
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		return NewAnthropicClient(key)
	}
	return nil
}
