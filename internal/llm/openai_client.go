package llm

import (
	"context"
	"errors"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIClient implements CompletionClient against the OpenAI chat API.
// It also works with OpenAI-compatible endpoints via a custom base URL.
type OpenAIClient struct {
	client *openai.Client
	opts   Options
}

func NewOpenAIClient(apiKey, baseURL string, opts Options) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, errors.New("openai API key is required")
	}

	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}

	if opts.Model == "" || opts.Model == "mistral" {
		opts.Model = openai.GPT3Dot5Turbo
	}

	return &OpenAIClient{
		client: openai.NewClientWithConfig(config),
		opts:   opts,
	}, nil
}

func (c *OpenAIClient) GenerateResponse(prompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(context.Background(), openai.ChatCompletionRequest{
		Model:       c.opts.Model,
		Temperature: float32(c.opts.Temperature),
		MaxTokens:   c.opts.MaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("no choices in OpenAI response")
	}

	return resp.Choices[0].Message.Content, nil
}
