package image

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// GeminiGenerator implements Generator interface for Imagen
type GeminiGenerator struct {
	client *genai.Client
	config *Config
}

// NewGeminiGenerator creates a new Imagen image generator
func NewGeminiGenerator(config *Config) (Generator, error) {
	if config.GeminiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  config.GeminiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiGenerator{
		client: client,
		config: config,
	}, nil
}

// GenerateImage synthesizes one image via Imagen and writes it to outputFile
func (g *GeminiGenerator) GenerateImage(ctx context.Context, prompt string, outputFile string) error {
	resp, err := g.client.Models.GenerateImages(ctx, g.config.GeminiModel, prompt,
		&genai.GenerateImagesConfig{
			NumberOfImages: 1,
		})
	if err != nil {
		return fmt.Errorf("Imagen API error: %w", err)
	}

	if len(resp.GeneratedImages) == 0 || resp.GeneratedImages[0].Image == nil {
		return &GenerationError{Provider: "gemini", Code: "NO_IMAGE", Message: "no image returned"}
	}

	data := resp.GeneratedImages[0].Image.ImageBytes
	if len(data) == 0 {
		return &GenerationError{Provider: "gemini", Code: "NO_IMAGE", Message: "empty image payload"}
	}

	return writeImageFile(outputFile, data)
}

// Name returns the provider name
func (g *GeminiGenerator) Name() string {
	return "gemini"
}

// IsAvailable checks if the provider is properly configured
func (g *GeminiGenerator) IsAvailable() error {
	if g.config.GeminiKey == "" {
		return fmt.Errorf("Gemini API key not configured")
	}
	return nil
}
