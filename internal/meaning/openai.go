package meaning

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// OpenAIGenerator explains words using the OpenAI chat API
type OpenAIGenerator struct {
	config *Config
	client *openai.Client
}

// NewOpenAIGenerator creates a new OpenAI-backed generator
func NewOpenAIGenerator(config *Config) (*OpenAIGenerator, error) {
	return &OpenAIGenerator{
		config: config,
		client: openai.NewClient(config.OpenAIKey),
	}, nil
}

// Explain requests a contextual explanation via chat completion
func (g *OpenAIGenerator) Explain(ctx context.Context, word, sentence, source string) (string, error) {
	prompt := BuildPrompt(word, sentence, source)

	req := openai.ChatCompletionRequest{
		Model: g.config.OpenAIModel,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		MaxTokens:   200,
		Temperature: 0.2,
		TopP:        0.3,
	}

	resp, err := g.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no explanation returned")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// Name returns the provider name
func (g *OpenAIGenerator) Name() string {
	return fmt.Sprintf("OpenAI (%s)", g.config.OpenAIModel)
}

// IsAvailable checks if the provider is properly configured
func (g *OpenAIGenerator) IsAvailable() error {
	if g.config.OpenAIKey == "" {
		return fmt.Errorf("OpenAI API key not configured")
	}
	return nil
}
