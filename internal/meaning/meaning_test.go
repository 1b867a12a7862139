package meaning

import (
	"strings"
	"testing"
)

func TestBuildPromptWithWord(t *testing.T) {
	prompt := BuildPrompt("let the cat out of the bag", "She let the cat out of the bag.", "")

	if !strings.Contains(prompt, "'let the cat out of the bag'") {
		t.Error("Expected prompt to quote the word")
	}
	if !strings.Contains(prompt, "She let the cat out of the bag.") {
		t.Error("Expected prompt to contain the sentence")
	}
	if !strings.Contains(prompt, "at most 15 words") {
		t.Error("Expected prompt to bound the meaning length")
	}
	if !strings.Contains(prompt, "Part of speech:") {
		t.Error("Expected prompt to request the part of speech")
	}
	if !strings.Contains(prompt, "Example:") {
		t.Error("Expected prompt to request an example sentence")
	}
	if strings.Contains(prompt, "taken from") {
		t.Error("Expected no source hint for an empty source")
	}
}

func TestBuildPromptWithoutWord(t *testing.T) {
	prompt := BuildPrompt("", "It's not rocket science.", "")

	if !strings.Contains(prompt, "this English sentence") {
		t.Error("Expected whole-sentence form when word is empty")
	}
	if !strings.Contains(prompt, "It's not rocket science.") {
		t.Error("Expected prompt to contain the sentence")
	}
	if strings.Contains(prompt, "Part of speech:") {
		t.Error("Whole-sentence prompt must not ask for a part of speech")
	}
}

func TestBuildPromptWithSource(t *testing.T) {
	prompt := BuildPrompt("gnarly", "That wave was gnarly.", "surf documentary")

	if !strings.Contains(prompt, "The sentence was taken from: surf documentary.") {
		t.Errorf("Expected source hint in prompt, got:\n%s", prompt)
	}
}

func TestBuildPromptTrimsInput(t *testing.T) {
	prompt := BuildPrompt("  word  ", "  A sentence.  ", "  ")

	if !strings.Contains(prompt, "'word'") {
		t.Error("Expected word to be trimmed")
	}
	if strings.Contains(prompt, "taken from") {
		t.Error("Whitespace-only source must be ignored")
	}
}

func TestDefaultGeneratorConfig(t *testing.T) {
	config := DefaultGeneratorConfig()

	if config.Provider != "gemini" {
		t.Errorf("Expected default provider 'gemini', got %q", config.Provider)
	}
	if config.GeminiModel != "gemini-2.5-flash" {
		t.Errorf("Unexpected default Gemini model %q", config.GeminiModel)
	}
	if config.OpenAIModel != "gpt-4o-mini" {
		t.Errorf("Unexpected default OpenAI model %q", config.OpenAIModel)
	}
}

func TestNewGeneratorValidation(t *testing.T) {
	tests := []struct {
		name   string
		config *Config
	}{
		{name: "unknown provider", config: &Config{Provider: "azure"}},
		{name: "gemini without key", config: &Config{Provider: "gemini"}},
		{name: "openai without key", config: &Config{Provider: "openai"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewGenerator(tt.config); err == nil {
				t.Error("Expected configuration error")
			}
		})
	}
}

func TestNewGeneratorOpenAI(t *testing.T) {
	gen, err := NewGenerator(&Config{Provider: "openai", OpenAIKey: "test-key", OpenAIModel: "gpt-4o-mini"})
	if err != nil {
		t.Fatalf("NewGenerator() error = %v", err)
	}

	if !strings.Contains(gen.Name(), "OpenAI") {
		t.Errorf("Unexpected provider name %q", gen.Name())
	}
	if err := gen.IsAvailable(); err != nil {
		t.Errorf("Expected provider to be available: %v", err)
	}
}

func TestExplanationCache(t *testing.T) {
	cache := NewExplanationCache()

	if _, ok := cache.Get("word", "sentence"); ok {
		t.Error("Expected empty cache miss")
	}

	cache.Add("word", "sentence", "an explanation")
	got, ok := cache.Get("word", "sentence")
	if !ok || got != "an explanation" {
		t.Errorf("Get() = %q, %v", got, ok)
	}

	// Same word in a different sentence is a different entry
	if _, ok := cache.Get("word", "other sentence"); ok {
		t.Error("Expected miss for different sentence")
	}

	if cache.Len() != 1 {
		t.Errorf("Len() = %d, want 1", cache.Len())
	}
}
