package translate

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// DeepSeek exposes an OpenAI-compatible chat API, so the client is the
// OpenAI SDK pointed at their base URL.
const deepseekBaseURL = "https://api.deepseek.com/v1"

type DeepSeekClient struct {
	client    *openai.Client
	modelName string
}

func NewDeepSeekClient(apiKey string) *DeepSeekClient {
	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithBaseURL(deepseekBaseURL),
	)
	return &DeepSeekClient{
		client:    &client,
		modelName: "deepseek-chat",
	}
}

func (c *DeepSeekClient) Translate(ctx context.Context, text string) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.modelName),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(text),
		},
		// Low temperature keeps terminology consistent between articles.
		Temperature: openai.Float(0.3),
		MaxTokens:   openai.Int(2000),
	})

	if err != nil {
		return "", fmt.Errorf("deepseek API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from deepseek")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func (c *DeepSeekClient) ModelName() string {
	return c.modelName
}
