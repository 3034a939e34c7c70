// Package providers holds the concrete llm.Client implementations. Each
// provider registers itself on import; cmds pull them in with a blank import.
package providers

import (
	"context"
	"fmt"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"aria/internal/config"
	"aria/internal/llm"
	"aria/internal/proxy"
)

func init() {
	llm.Register("openai", func(cfg *config.Config) (llm.Client, error) {
		return newChatClient("openai", cfg.OpenAIKey, "", cfg.OpenAIModel, cfg)
	})
	llm.Register("gemini", func(cfg *config.Config) (llm.Client, error) {
		// Gemini speaks the OpenAI chat-completions dialect on its compat
		// endpoint, so the same SDK serves both.
		return newChatClient("gemini", cfg.GeminiKey, cfg.GeminiBaseURL, cfg.GeminiModel, cfg)
	})
}

// chatClient backs the openai and gemini providers via the official SDK.
type chatClient struct {
	name   string
	client openai.Client
	model  string

	temperature float64
	topP        float64
	maxTokens   int
}

func newChatClient(name, apiKey, baseURL, model string, cfg *config.Config) (*chatClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%s: API key not set", name)
	}

	httpClient, err := proxy.NewClient(cfg.SocksProxy, cfg.RequestTimeout)
	if err != nil {
		return nil, fmt.Errorf("%s: proxy client: %w", name, err)
	}

	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithHTTPClient(httpClient),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	return &chatClient{
		name:        name,
		client:      openai.NewClient(opts...),
		model:       model,
		temperature: cfg.Temperature,
		topP:        cfg.TopP,
		maxTokens:   cfg.MaxTokens,
	}, nil
}

func (c *chatClient) Name() string { return c.name }

func (c *chatClient) complete(ctx context.Context, messages []openai.ChatCompletionMessageParamUnion) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages:            messages,
		Model:               openai.ChatModel(c.model),
		Temperature:         openai.Float(c.temperature),
		TopP:                openai.Float(c.topP),
		MaxCompletionTokens: openai.Int(int64(c.maxTokens)),
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}
	content := resp.Choices[0].Message.Content
	if content == "" {
		return "", fmt.Errorf("empty message content")
	}
	return content, nil
}

func (c *chatClient) ParseIntents(ctx context.Context, userInput, actionsPrompt string) ([]llm.Intent, error) {
	content, err := c.complete(ctx, []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(llm.BaseParser + actionsPrompt),
		openai.UserMessage(userInput),
	})
	if err != nil {
		return nil, err
	}

	intents := llm.ExtractIntents(content)
	if intents == nil {
		// The model answered conversationally instead of emitting JSON.
		return llm.None(), nil
	}
	return intents, nil
}

func (c *chatClient) GenerateResponse(ctx context.Context, prompt string, history []llm.Turn, systemPrompt string) (string, error) {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(history)+2)
	messages = append(messages, openai.SystemMessage(systemPrompt))
	for _, turn := range history {
		if turn.Content == "" {
			continue
		}
		switch turn.Role {
		case llm.RoleAssistant:
			messages = append(messages, openai.AssistantMessage(turn.Content))
		default:
			messages = append(messages, openai.UserMessage(turn.Content))
		}
	}
	messages = append(messages, openai.UserMessage(prompt))

	return c.complete(ctx, messages)
}

var _ llm.Client = (*chatClient)(nil)
