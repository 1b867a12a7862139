package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"codeberg.org/snonux/sentencemine/internal/anki"
	"codeberg.org/snonux/sentencemine/internal/archive"
	"codeberg.org/snonux/sentencemine/internal/audio"
	"codeberg.org/snonux/sentencemine/internal/batch"
	"codeberg.org/snonux/sentencemine/internal/cli"
	"codeberg.org/snonux/sentencemine/internal/gui"
	"codeberg.org/snonux/sentencemine/internal/image"
	"codeberg.org/snonux/sentencemine/internal/meaning"
	"codeberg.org/snonux/sentencemine/internal/pipeline"
)

// Processor handles the main sentence mining logic
type Processor struct {
	flags *cli.Flags
	cache *meaning.ExplanationCache
}

// NewProcessor creates a new sentence processor
func NewProcessor(flags *cli.Flags) *Processor {
	return &Processor{
		flags: flags,
		cache: meaning.NewExplanationCache(),
	}
}

// ProcessSingleSentence mines one sentence from the command line
func (p *Processor) ProcessSingleSentence(sentence string) error {
	if strings.TrimSpace(sentence) == "" {
		return fmt.Errorf("sentence cannot be empty")
	}

	// Create output directory (including parent directories)
	if err := os.MkdirAll(p.flags.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	entry := batch.Entry{
		Sentence: sentence,
		Word:     p.flags.Word,
		Tags:     pipeline.ParseTags(p.flags.Tags),
	}

	fmt.Printf("\nMining: %s\n", sentence)

	ctx := context.Background()
	card, err := p.mineEntry(ctx, entry)
	if err != nil {
		return err
	}

	if p.exportMode() {
		return p.exportCards([]anki.Card{card})
	}

	return p.commitCards(ctx, []anki.Card{card})
}

// ProcessBatch mines multiple sentences from a batch file
func (p *Processor) ProcessBatch() error {
	entries, err := batch.ReadBatchFile(p.flags.BatchFile)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		return fmt.Errorf("batch file contains no sentences")
	}

	// Create output directory (including parent directories)
	if err := os.MkdirAll(p.flags.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	ctx := context.Background()

	var cards []anki.Card
	errorCount := 0

	for i, entry := range entries {
		fmt.Printf("\nMining %d/%d: %s\n", i+1, len(entries), entry.Sentence)

		card, err := p.mineEntry(ctx, entry)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error mining %q: %v\n", entry.Sentence, err)
			errorCount++
			// Continue with next sentence
			continue
		}
		cards = append(cards, card)
	}

	if len(cards) > 0 {
		if p.exportMode() {
			err = p.exportCards(cards)
		} else {
			err = p.commitCards(ctx, cards)
		}
		if err != nil {
			return err
		}
	}

	// Print summary
	fmt.Printf("\n=== Batch Mining Summary ===\n")
	fmt.Printf("Total sentences: %d\n", len(entries))
	fmt.Printf("Mined: %d\n", len(cards))
	if errorCount > 0 {
		fmt.Printf("Errors: %d\n", errorCount)
	}
	fmt.Printf("============================\n")

	return nil
}

// mineEntry runs the enrichment for one sentence and assembles a card.
// Media files land in the output directory and stay there until the
// card has been delivered.
func (p *Processor) mineEntry(ctx context.Context, entry batch.Entry) (anki.Card, error) {
	pl, err := p.BuildPipeline()
	if err != nil {
		return anki.Card{}, err
	}

	pl.SetSentence(entry.Sentence)
	pl.SetWord(entry.Word)
	pl.SetTagSource(pipeline.RenderTags(entry.Tags))

	result, err := pl.FetchEnrichment(ctx)
	if err != nil {
		return anki.Card{}, err
	}

	fmt.Printf("  Meaning: %s\n", result.Meaning)
	if result.ImagePath != "" {
		fmt.Printf("  Image: %s\n", result.ImagePath)
	}
	if result.AudioPath != "" {
		fmt.Printf("  Audio: %s\n", result.AudioPath)
	}

	tags := entry.Tags
	if tags == nil {
		tags = []string{}
	}

	return anki.Card{
		Sentence:   strings.TrimSpace(entry.Sentence),
		Word:       strings.TrimSpace(entry.Word),
		Definition: result.Meaning,
		Tags:       tags,
		ImageFile:  result.ImagePath,
		AudioFile:  result.AudioPath,
	}, nil
}

// commitCards pushes cards to the running Anki via AnkiConnect
func (p *Processor) commitCards(ctx context.Context, cards []anki.Card) error {
	store := p.buildStore()

	for _, card := range cards {
		if err := store.AddCard(ctx, card, p.flags.DeckName); err != nil {
			return fmt.Errorf("failed to add card for %q: %w", card.Sentence, err)
		}
		fmt.Printf("Added card to deck %q: %s\n", p.flags.DeckName, card.Sentence)

		// Media content travels inside the note; the local copies are
		// only kept when archiving is requested.
		if !p.flags.Archive {
			removeCardMedia(card)
		}
	}

	if p.flags.Archive {
		return archive.ArchiveMedia(p.flags.OutputDir)
	}

	return nil
}

// exportCards writes cards to an APKG or CSV file instead of AnkiConnect
func (p *Processor) exportCards(cards []anki.Card) error {
	var outputPath string
	if p.flags.APKGPath != "" {
		outputPath = p.flags.APKGPath
	} else {
		outputPath = filepath.Join(p.flags.OutputDir, "anki_import.csv")
	}

	gen := anki.NewGenerator(&anki.GeneratorOptions{
		OutputPath:     outputPath,
		IncludeHeaders: true,
	})
	for _, card := range cards {
		gen.AddCard(card)
	}

	if p.flags.APKGPath != "" {
		deckName := p.flags.DeckName
		if deckName == "" {
			deckName = strings.TrimSuffix(filepath.Base(outputPath), ".apkg")
		}
		if err := gen.GenerateAPKG(outputPath, deckName); err != nil {
			return fmt.Errorf("failed to generate APKG: %w", err)
		}
	} else {
		if err := gen.GenerateCSV(); err != nil {
			return fmt.Errorf("failed to generate CSV: %w", err)
		}
	}

	total, withAudio, withImages := gen.Stats()
	fmt.Printf("  Generated %d cards (%d with audio, %d with images) to %s\n",
		total, withAudio, withImages, outputPath)

	if p.flags.Archive {
		return archive.ArchiveMedia(p.flags.OutputDir)
	}

	return nil
}

// exportMode reports whether cards go to a file instead of AnkiConnect
func (p *Processor) exportMode() bool {
	return p.flags.APKGPath != "" || p.flags.AnkiCSV
}

// BuildPipeline assembles a card pipeline from the configured backends
func (p *Processor) BuildPipeline() (*pipeline.Pipeline, error) {
	meaningGen, err := p.buildMeaningGenerator()
	if err != nil {
		return nil, err
	}

	var imageGen pipeline.ImageGenerator
	if !p.flags.SkipImages {
		imageGen, err = p.buildImageGenerator()
		if err != nil {
			return nil, err
		}
	}

	var speechGen pipeline.SpeechGenerator
	if !p.flags.SkipAudio {
		speechGen, err = p.buildSpeechGenerator()
		if err != nil {
			return nil, err
		}
	}

	return pipeline.New(meaningGen, imageGen, speechGen, p.buildStore(), p.flags.DeckName), nil
}

func (p *Processor) buildMeaningGenerator() (pipeline.MeaningGenerator, error) {
	config := &meaning.Config{
		Provider:    p.flags.MeaningProvider,
		GeminiKey:   cli.GetGeminiKey(),
		GeminiModel: p.flags.GeminiModel,
		OpenAIKey:   cli.GetOpenAIKey(),
		OpenAIModel: p.flags.OpenAIModel,
	}

	// Use config file values if not overridden by flags
	if p.flags.GeminiModel == "gemini-2.5-flash" && viper.IsSet("meaning.gemini_model") {
		config.GeminiModel = viper.GetString("meaning.gemini_model")
	}
	if p.flags.OpenAIModel == "gpt-4o-mini" && viper.IsSet("meaning.openai_model") {
		config.OpenAIModel = viper.GetString("meaning.openai_model")
	}

	generator, err := meaning.NewGenerator(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create meaning generator: %w", err)
	}

	return &meaningAdapter{generator: generator, cache: p.cache}, nil
}

func (p *Processor) buildImageGenerator() (pipeline.ImageGenerator, error) {
	config := &image.Config{
		Provider:    p.flags.ImageProvider,
		GeminiKey:   cli.GetGeminiKey(),
		GeminiModel: p.flags.GeminiImageModel,
		OpenAIKey:   cli.GetOpenAIKey(),
		OpenAIModel: p.flags.OpenAIImageModel,
		OpenAISize:  p.flags.OpenAIImageSize,
		EnableCache: viper.GetBool("image.enable_cache"),
		CacheDir:    viper.GetString("image.cache_dir"),
	}

	if p.flags.OpenAIImageModel == "dall-e-3" && viper.IsSet("image.openai_model") {
		config.OpenAIModel = viper.GetString("image.openai_model")
	}
	if p.flags.OpenAIImageSize == "1024x1024" && viper.IsSet("image.openai_size") {
		config.OpenAISize = viper.GetString("image.openai_size")
	}

	generator, err := image.NewGenerator(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create image generator: %w", err)
	}

	return &imageAdapter{generator: generator, outputDir: p.flags.OutputDir}, nil
}

func (p *Processor) buildSpeechGenerator() (pipeline.SpeechGenerator, error) {
	config := &audio.Config{
		Provider:     p.flags.AudioProvider,
		OutputDir:    p.flags.OutputDir,
		OutputFormat: p.audioFormat(),
		GeminiKey:    cli.GetGeminiKey(),
		GeminiModel:  p.flags.GeminiTTSModel,
		GeminiVoice:  p.flags.GeminiVoice,
		OpenAIKey:    cli.GetOpenAIKey(),
		OpenAIModel:  p.flags.OpenAITTSModel,
		OpenAIVoice:  p.flags.OpenAIVoice,
		OpenAISpeed:  p.flags.OpenAISpeed,
		EnableCache:  viper.GetBool("audio.enable_cache"),
		CacheDir:     viper.GetString("audio.cache_dir"),
	}

	if config.OpenAIVoice == "" {
		config.OpenAIVoice = "alloy"
	}
	if config.CacheDir == "" {
		config.CacheDir = "./.audio_cache"
	}
	if p.flags.GeminiVoice == "Kore" && viper.IsSet("audio.gemini_voice") {
		config.GeminiVoice = viper.GetString("audio.gemini_voice")
	}
	if p.flags.OpenAITTSModel == "gpt-4o-mini-tts" && viper.IsSet("audio.openai_model") {
		config.OpenAIModel = viper.GetString("audio.openai_model")
	}

	provider, err := audio.NewProvider(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create audio provider: %w", err)
	}

	return &speechAdapter{
		provider:  provider,
		outputDir: p.flags.OutputDir,
		format:    config.OutputFormat,
	}, nil
}

// buildStore creates the AnkiConnect client
func (p *Processor) buildStore() *anki.Client {
	return anki.NewClient(p.flags.AnkiURL, p.flags.ModelName)
}

// audioFormat picks the container format for the configured backend.
// Gemini TTS delivers raw PCM which is wrapped as WAV; OpenAI can
// encode MP3 directly.
func (p *Processor) audioFormat() string {
	if p.flags.AudioProvider == "openai" {
		return "mp3"
	}
	return "wav"
}

// RunGUIMode launches the GUI application
func (p *Processor) RunGUIMode() error {
	pl, err := p.BuildPipeline()
	if err != nil {
		return err
	}

	guiConfig := &gui.Config{
		Pipeline: pl,
		DeckName: p.flags.DeckName,
		AutoPlay: !p.flags.NoAutoPlay, // Invert the flag (--no-auto-play disables auto-play)
	}

	// Only set OutputDir if it was explicitly provided via flag
	home, _ := os.UserHomeDir()
	defaultOutputDir := filepath.Join(home, ".local", "state", "sentencemine", "cards")
	if p.flags.OutputDir != defaultOutputDir {
		// User explicitly set a different output directory
		guiConfig.OutputDir = p.flags.OutputDir
	}
	// Otherwise, gui.New will use its own default (XDG state directory)

	// Create and run GUI application
	app := gui.New(guiConfig)
	app.Run()

	return nil
}

// removeCardMedia deletes the local media copies of a delivered card
func removeCardMedia(card anki.Card) {
	if card.ImageFile != "" {
		if err := os.Remove(card.ImageFile); err != nil && !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Warning: failed to remove %s: %v\n", card.ImageFile, err)
		}
	}
	if card.AudioFile != "" {
		if err := os.Remove(card.AudioFile); err != nil && !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Warning: failed to remove %s: %v\n", card.AudioFile, err)
		}
	}
}
