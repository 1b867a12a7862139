package processor

import (
	"context"
	"fmt"
	"path/filepath"

	"codeberg.org/snonux/sentencemine/internal"
	"codeberg.org/snonux/sentencemine/internal/audio"
	"codeberg.org/snonux/sentencemine/internal/image"
	"codeberg.org/snonux/sentencemine/internal/meaning"
)

// meaningAdapter bridges a meaning.Generator into the pipeline,
// deduplicating repeated requests through the explanation cache.
type meaningAdapter struct {
	generator meaning.Generator
	cache     *meaning.ExplanationCache
}

func (a *meaningAdapter) Explain(ctx context.Context, word, sentence, source string) (string, error) {
	if cached, ok := a.cache.Get(word, sentence); ok {
		return cached, nil
	}

	explanation, err := a.generator.Explain(ctx, word, sentence, source)
	if err != nil {
		return "", err
	}

	a.cache.Add(word, sentence, explanation)
	return explanation, nil
}

// imageAdapter bridges an image.Generator into the pipeline. Each call
// synthesizes into a fresh file under outputDir, owned by the draft.
type imageAdapter struct {
	generator image.Generator
	outputDir string
}

func (a *imageAdapter) Generate(ctx context.Context, word, sentence string) (string, error) {
	subject := word
	if subject == "" {
		subject = sentence
	}

	outputFile := filepath.Join(a.outputDir, internal.GenerateMediaID(subject)+"_image.png")
	prompt := image.BuildPrompt(word, sentence)

	if err := a.generator.GenerateImage(ctx, prompt, outputFile); err != nil {
		return "", err
	}
	return outputFile, nil
}

// speechAdapter bridges an audio.Provider into the pipeline
type speechAdapter struct {
	provider  audio.Provider
	outputDir string
	format    string
}

func (a *speechAdapter) Generate(ctx context.Context, text string) (string, error) {
	outputFile := filepath.Join(a.outputDir,
		fmt.Sprintf("%s_audio.%s", internal.GenerateMediaID(text), a.format))

	if err := a.provider.GenerateAudio(ctx, text, outputFile); err != nil {
		return "", err
	}
	return outputFile, nil
}
