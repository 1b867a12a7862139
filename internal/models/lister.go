package models

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// Lister handles listing available OpenAI models
type Lister struct {
	apiKey string
	client *openai.Client
}

// NewLister creates a new model lister
func NewLister(apiKey string) *Lister {
	return &Lister{
		apiKey: apiKey,
		client: openai.NewClient(apiKey),
	}
}

// Categories holds model IDs grouped by what this tool uses them for
type Categories struct {
	TTS   []string
	Image []string
	Chat  []string
}

// ListAvailableModels lists all available OpenAI models categorized by type
func (l *Lister) ListAvailableModels() error {
	if l.apiKey == "" {
		return fmt.Errorf("OpenAI API key not found. Set OPENAI_API_KEY environment variable or configure in .sentencemine.yaml")
	}

	ctx := context.Background()
	models, err := l.client.ListModels(ctx)
	if err != nil {
		return fmt.Errorf("failed to list models: %w", err)
	}

	ids := make([]string, 0, len(models.Models))
	for _, model := range models.Models {
		ids = append(ids, model.ID)
	}

	categories := Categorize(ids)

	// Print models
	fmt.Println("Available OpenAI Models:")
	fmt.Println("\nText-to-Speech (TTS) Models:")
	if len(categories.TTS) == 0 {
		fmt.Println("  No TTS models found")
	} else {
		for _, model := range categories.TTS {
			fmt.Printf("  %s\n", model)
		}
	}

	fmt.Println("\nImage Generation Models:")
	if len(categories.Image) == 0 {
		fmt.Println("  No image models found")
	} else {
		for _, model := range categories.Image {
			fmt.Printf("  %s\n", model)
		}
	}

	fmt.Println("\nChat Models (for word explanations):")
	if len(categories.Chat) > 10 {
		// Show only relevant models
		relevantModels := []string{}
		for _, model := range categories.Chat {
			if strings.Contains(model, "gpt-4") || strings.Contains(model, "gpt-3.5") {
				relevantModels = append(relevantModels, model)
			}
		}
		for _, model := range relevantModels {
			fmt.Printf("  %s\n", model)
		}
		fmt.Printf("  ... and %d more models\n", len(categories.Chat)-len(relevantModels))
	} else {
		for _, model := range categories.Chat {
			fmt.Printf("  %s\n", model)
		}
	}

	return nil
}

// Categorize groups model IDs into the categories this tool cares about
func Categorize(ids []string) Categories {
	var categories Categories

	for _, id := range ids {
		switch {
		case strings.Contains(id, "tts") || strings.Contains(id, "audio"):
			categories.TTS = append(categories.TTS, id)
		case strings.Contains(id, "dall-e"):
			categories.Image = append(categories.Image, id)
		case strings.Contains(id, "gpt") || strings.Contains(id, "chat"):
			categories.Chat = append(categories.Chat, id)
		}
	}

	sort.Strings(categories.TTS)
	sort.Strings(categories.Image)
	sort.Strings(categories.Chat)

	return categories
}
