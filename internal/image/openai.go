package image

import (
	"context"
	"crypto/md5"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sashabaranov/go-openai"
)

// OpenAIGenerator implements Generator interface for DALL-E
type OpenAIGenerator struct {
	client      *openai.Client
	config      *Config
	cacheDir    string
	enableCache bool
}

// NewOpenAIGenerator creates a new DALL-E image generator
func NewOpenAIGenerator(config *Config) (Generator, error) {
	if config.OpenAIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	generator := &OpenAIGenerator{
		client:      openai.NewClient(config.OpenAIKey),
		config:      config,
		cacheDir:    config.CacheDir,
		enableCache: config.EnableCache,
	}

	if generator.enableCache && generator.cacheDir != "" {
		if err := os.MkdirAll(generator.cacheDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create cache directory: %w", err)
		}
	}

	return generator, nil
}

// GenerateImage synthesizes one image via DALL-E and writes it as PNG
func (g *OpenAIGenerator) GenerateImage(ctx context.Context, prompt string, outputFile string) error {
	if g.config.OpenAIKey == "" {
		return &GenerationError{Provider: "openai", Code: "NO_API_KEY", Message: "API key not configured"}
	}

	// Check cache first
	if g.enableCache {
		cacheFile := g.getCacheFilePath(prompt)
		if data, err := os.ReadFile(cacheFile); err == nil {
			return writeImageFile(outputFile, data)
		}
	}

	req := openai.ImageRequest{
		Prompt:         prompt,
		Model:          g.config.OpenAIModel,
		Size:           g.config.OpenAISize,
		N:              1,
		ResponseFormat: openai.CreateImageResponseFormatB64JSON,
	}

	resp, err := g.client.CreateImage(ctx, req)
	if err != nil {
		return fmt.Errorf("DALL-E API error: %w", err)
	}

	if len(resp.Data) == 0 {
		return &GenerationError{Provider: "openai", Code: "NO_IMAGE", Message: "no image returned"}
	}

	data, err := base64.StdEncoding.DecodeString(resp.Data[0].B64JSON)
	if err != nil {
		return fmt.Errorf("failed to decode image data: %w", err)
	}

	if err := writeImageFile(outputFile, data); err != nil {
		return err
	}

	// Cache the result if caching is enabled
	if g.enableCache {
		_ = writeImageFile(g.getCacheFilePath(prompt), data) // Ignore cache errors
	}

	return nil
}

// Name returns the provider name
func (g *OpenAIGenerator) Name() string {
	return "openai"
}

// IsAvailable checks if the provider is properly configured
func (g *OpenAIGenerator) IsAvailable() error {
	if g.config.OpenAIKey == "" {
		return fmt.Errorf("OpenAI API key not configured")
	}
	return nil
}

// getCacheFilePath generates a cache file path for the given prompt
func (g *OpenAIGenerator) getCacheFilePath(prompt string) string {
	h := md5.New()
	h.Write([]byte(prompt))
	h.Write([]byte(g.config.OpenAIModel))
	h.Write([]byte(g.config.OpenAISize))
	hash := hex.EncodeToString(h.Sum(nil))

	// Use first 2 chars as subdirectory for better file system performance
	return filepath.Join(g.cacheDir, hash[:2], hash[2:]+".png")
}

// writeImageFile writes image bytes, creating the parent directory as needed
func writeImageFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write image file: %w", err)
	}

	return nil
}
