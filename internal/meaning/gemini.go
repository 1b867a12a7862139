package meaning

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// GeminiGenerator explains words using the Gemini API
type GeminiGenerator struct {
	config *Config
	client *genai.Client
}

// NewGeminiGenerator creates a new Gemini-backed generator
func NewGeminiGenerator(config *Config) (*GeminiGenerator, error) {
	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  config.GeminiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiGenerator{
		config: config,
		client: client,
	}, nil
}

// Explain requests a contextual explanation from Gemini. Low
// temperature and top-p keep the output stable across retries.
func (g *GeminiGenerator) Explain(ctx context.Context, word, sentence, source string) (string, error) {
	prompt := BuildPrompt(word, sentence, source)

	resp, err := g.client.Models.GenerateContent(ctx, g.config.GeminiModel, genai.Text(prompt),
		&genai.GenerateContentConfig{
			Temperature: genai.Ptr[float32](0.2),
			TopP:        genai.Ptr[float32](0.3),
		})
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("no explanation returned")
	}

	return text, nil
}

// Name returns the provider name
func (g *GeminiGenerator) Name() string {
	return fmt.Sprintf("Gemini (%s)", g.config.GeminiModel)
}

// IsAvailable checks if the provider is properly configured
func (g *GeminiGenerator) IsAvailable() error {
	if g.config.GeminiKey == "" {
		return fmt.Errorf("Gemini API key not configured")
	}
	return nil
}
