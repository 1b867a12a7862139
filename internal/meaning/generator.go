package meaning

import (
	"context"
	"fmt"
)

// Generator defines the interface for explanation providers
type Generator interface {
	// Explain returns a short explanation of word as used in sentence.
	// With an empty word the whole sentence is explained. The source
	// hint is optional and may be empty.
	Explain(ctx context.Context, word, sentence, source string) (string, error)

	// Name returns the provider name
	Name() string

	// IsAvailable checks if the provider is properly configured and available
	IsAvailable() error
}

// Config holds common configuration for explanation providers
type Config struct {
	Provider string // Provider name: "gemini" or "openai"

	// Gemini-specific settings
	GeminiKey   string
	GeminiModel string // e.g. "gemini-2.5-flash"

	// OpenAI-specific settings
	OpenAIKey   string
	OpenAIModel string // e.g. "gpt-4o-mini"
}

// DefaultGeneratorConfig returns default configuration
func DefaultGeneratorConfig() *Config {
	return &Config{
		Provider:    "gemini",
		GeminiModel: "gemini-2.5-flash",
		OpenAIModel: "gpt-4o-mini",
	}
}

// NewGenerator creates the appropriate explanation provider based on configuration
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
		return nil, fmt.Errorf("unknown meaning provider: %s", config.Provider)
	}
}

// ExplanationCache stores explanations in memory for batch operations
type ExplanationCache struct {
	explanations map[string]string
}

// NewExplanationCache creates a new explanation cache
func NewExplanationCache() *ExplanationCache {
	return &ExplanationCache{
		explanations: make(map[string]string),
	}
}

func cacheKey(word, sentence string) string {
	return word + "\x00" + sentence
}

// Add adds an explanation to the cache
func (ec *ExplanationCache) Add(word, sentence, explanation string) {
	ec.explanations[cacheKey(word, sentence)] = explanation
}

// Get retrieves an explanation from the cache
func (ec *ExplanationCache) Get(word, sentence string) (string, bool) {
	explanation, ok := ec.explanations[cacheKey(word, sentence)]
	return explanation, ok
}

// Len returns the number of cached explanations
func (ec *ExplanationCache) Len() int {
	return len(ec.explanations)
}
