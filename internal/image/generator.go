package image

import (
	"context"
	"fmt"
)

// Generator defines the interface for image synthesis providers
type Generator interface {
	// GenerateImage synthesizes an image for the prompt and saves it
	// to the specified file
	GenerateImage(ctx context.Context, prompt string, outputFile string) error

	// Name returns the provider name
	Name() string

	// IsAvailable checks if the provider is properly configured and available
	IsAvailable() error
}

// Config holds common configuration for image providers
type Config struct {
	Provider string // Provider name: "gemini" or "openai"

	// Cache settings shared by all providers
	CacheDir    string
	EnableCache bool

	// Gemini-specific settings
	GeminiKey   string
	GeminiModel string // e.g. "imagen-3.0-generate-001"

	// OpenAI-specific settings
	OpenAIKey   string
	OpenAIModel string // "dall-e-2" or "dall-e-3"
	OpenAISize  string // e.g. "512x512", "1024x1024"
}

// DefaultGeneratorConfig returns default configuration
func DefaultGeneratorConfig() *Config {
	return &Config{
		Provider:    "gemini",
		GeminiModel: "imagen-3.0-generate-001",
		OpenAIModel: "dall-e-3",
		OpenAISize:  "1024x1024",
	}
}

// NewGenerator creates the appropriate image provider based on configuration
func NewGenerator(config *Config) (Generator, error) {
	if config == nil {
		config = DefaultGeneratorConfig()
	}

	switch config.Provider {
	case "gemini":
		if config.GeminiKey == "" {
			return nil, fmt.Errorf("Gemini API key is required")
		}
		return NewGeminiGenerator(config)

	case "openai":
		if config.OpenAIKey == "" {
			return nil, fmt.Errorf("OpenAI API key is required")
		}
		return NewOpenAIGenerator(config)

	default:
		return nil, fmt.Errorf("unknown image provider: %s", config.Provider)
	}
}

// GenerationError represents an error from an image provider
type GenerationError struct {
	Provider string
	Code     string
	Message  string
}

func (e *GenerationError) Error() string {
	return e.Provider + ": " + e.Message
}
