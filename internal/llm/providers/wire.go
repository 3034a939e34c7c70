package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"aria/internal/config"
	"aria/internal/llm"
	"aria/internal/proxy"
)

func init() {
	llm.Register("novita", func(cfg *config.Config) (llm.Client, error) {
		c, err := newWireClient("novita", cfg.NovitaURL, cfg.NovitaKey, cfg.NovitaModel, cfg)
		if err != nil {
			return nil, err
		}
		// Novita accepts the extended sampling set.
		minP := cfg.MinP
		c.minP = &minP
		c.repetitionPenalty = cfg.RepetitionPenalty
		return c, nil
	})
	llm.Register("awan", func(cfg *config.Config) (llm.Client, error) {
		c, err := newWireClient("awan", cfg.AwanURL, cfg.AwanKey, cfg.AwanModel, cfg)
		if err != nil {
			return nil, err
		}
		c.repetitionPenalty = 1.1
		return c, nil
	})
}

// wireClient talks the raw OpenAI-style chat-completions wire format for
// hosts without an official Go SDK (Novita, Awan).
type wireClient struct {
	name   string
	url    string
	apiKey string
	model  string
	http   *http.Client

	temperature       float64
	topP              float64
	topK              int
	maxTokens         int
	repetitionPenalty float64
	minP              *float64
}

func newWireClient(name, url, apiKey, model string, cfg *config.Config) (*wireClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%s: API key not set", name)
	}
	httpClient, err := proxy.NewClient(cfg.SocksProxy, cfg.RequestTimeout)
	if err != nil {
		return nil, fmt.Errorf("%s: proxy client: %w", name, err)
	}
	return &wireClient{
		name:        name,
		url:         url,
		apiKey:      apiKey,
		model:       model,
		http:        httpClient,
		temperature: cfg.Temperature,
		topP:        cfg.TopP,
		topK:        cfg.TopK,
		maxTokens:   cfg.MaxTokens,
	}, nil
}

type wireMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type wireRequest struct {
	Model             string        `json:"model"`
	Messages          []wireMessage `json:"messages"`
	Temperature       float64       `json:"temperature"`
	TopP              float64       `json:"top_p"`
	TopK              int           `json:"top_k,omitempty"`
	MaxTokens         int           `json:"max_tokens"`
	Stream            bool          `json:"stream"`
	RepetitionPenalty float64       `json:"repetition_penalty,omitempty"`
	MinP              *float64      `json:"min_p,omitempty"`
}

type wireResponse struct {
	Choices []struct {
		Message wireMessage `json:"message"`
	} `json:"choices"`
}

func (c *wireClient) Name() string { return c.name }

func (c *wireClient) complete(ctx context.Context, messages []wireMessage) (string, error) {
	payload := wireRequest{
		Model:             c.model,
		Messages:          messages,
		Temperature:       c.temperature,
		TopP:              c.topP,
		TopK:              c.topK,
		MaxTokens:         c.maxTokens,
		RepetitionPenalty: c.repetitionPenalty,
		MinP:              c.minP,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%s request: %w", c.name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("%s: unexpected status %d: %s", c.name, resp.StatusCode, snippet)
	}

	var out wireResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}
	return out.Choices[0].Message.Content, nil
}

func (c *wireClient) ParseIntents(ctx context.Context, userInput, actionsPrompt string) ([]llm.Intent, error) {
	content, err := c.complete(ctx, []wireMessage{
		{Role: "system", Content: llm.BaseParser + actionsPrompt},
		{Role: "user", Content: userInput},
	})
	if err != nil {
		return nil, err
	}

	intents := llm.ExtractIntents(content)
	if intents == nil {
		return llm.None(), nil
	}
	return intents, nil
}

func (c *wireClient) GenerateResponse(ctx context.Context, prompt string, history []llm.Turn, systemPrompt string) (string, error) {
	messages := make([]wireMessage, 0, len(history)+2)
	messages = append(messages, wireMessage{Role: "system", Content: systemPrompt})
	for _, turn := range history {
		if turn.Content == "" {
			continue
		}
		messages = append(messages, wireMessage{Role: string(turn.Role), Content: turn.Content})
	}
	messages = append(messages, wireMessage{Role: "user", Content: prompt})

	return c.complete(ctx, messages)
}

var _ llm.Client = (*wireClient)(nil)
