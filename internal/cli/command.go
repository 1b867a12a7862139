package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/sentencemine/internal"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sentencemine [sentence]",
		Short: "Sentence Mining Flashcard Generator",
		Long: `sentencemine turns sentences you encounter while reading or watching
into Anki flashcards. A language model explains the unfamiliar word in
its context, an illustrative image and a spoken-audio clip are
synthesized, and the finished card is pushed to a running Anki via
AnkiConnect.

Examples:
  sentencemine                                        # Launch interactive GUI (default)
  sentencemine "She let the cat out of the bag." \
      --word "let the cat out of the bag"             # Mine one sentence via CLI
  sentencemine --batch sentences.txt                  # Process multiple sentences from file
  sentencemine --batch sentences.txt --apkg out.apkg  # Export a deck file instead`,
		Args:    cobra.MaximumNArgs(1),
		Version: internal.Version,
	}

	// Set up flags
	setupFlags(rootCmd, flags)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Set default output directory to match GUI mode
	home, _ := os.UserHomeDir()
	defaultOutputDir := filepath.Join(home, ".local", "state", "sentencemine", "cards")

	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.sentencemine.yaml)")

	// Local flags
	cmd.Flags().StringVarP(&flags.OutputDir, "output", "o", defaultOutputDir, "Output directory for generated media")
	cmd.Flags().StringVarP(&flags.Word, "word", "w", "", "The unfamiliar word or phrase inside the sentence")
	cmd.Flags().StringVarP(&flags.Tags, "tags", "t", "", "Comma-separated tags for the card")
	cmd.Flags().StringVar(&flags.DeckName, "deck-name", flags.DeckName, "Anki deck to add cards to")
	cmd.Flags().StringVar(&flags.ModelName, "note-model", flags.ModelName, "Anki note model used for new cards")
	cmd.Flags().StringVar(&flags.AnkiURL, "anki-url", flags.AnkiURL, "AnkiConnect endpoint URL")
	cmd.Flags().StringVar(&flags.BatchFile, "batch", "", "Process sentences from file (sentence | word | tags per line)")
	cmd.Flags().StringVar(&flags.APKGPath, "apkg", "", "Write cards to an APKG deck file instead of AnkiConnect")
	cmd.Flags().BoolVar(&flags.AnkiCSV, "anki-csv", false, "Write cards to a CSV import file instead of AnkiConnect")
	cmd.Flags().BoolVar(&flags.SkipAudio, "skip-audio", false, "Skip audio synthesis")
	cmd.Flags().BoolVar(&flags.SkipImages, "skip-images", false, "Skip image synthesis")
	cmd.Flags().BoolVar(&flags.ListModels, "list-models", false, "List available OpenAI models for the current API key")
	cmd.Flags().BoolVar(&flags.Archive, "archive", false, "Archive generated media instead of deleting after commit")
	cmd.Flags().BoolVar(&flags.GUIMode, "gui", false, "Launch the GUI even when a sentence is given (GUI is the default without arguments)")
	cmd.Flags().BoolVar(&flags.NoAutoPlay, "no-auto-play", false, "Disable automatic audio playback in GUI mode (auto-play is enabled by default)")

	// Provider selection
	cmd.Flags().StringVar(&flags.MeaningProvider, "meaning-provider", flags.MeaningProvider, "Explanation backend: gemini or openai")
	cmd.Flags().StringVar(&flags.ImageProvider, "image-provider", flags.ImageProvider, "Image backend: gemini or openai")
	cmd.Flags().StringVar(&flags.AudioProvider, "audio-provider", flags.AudioProvider, "Speech backend: gemini or openai")

	// Gemini flags
	cmd.Flags().StringVar(&flags.GeminiModel, "gemini-model", flags.GeminiModel, "Gemini model for explanations")
	cmd.Flags().StringVar(&flags.GeminiImageModel, "gemini-image-model", flags.GeminiImageModel, "Gemini model for image synthesis")
	cmd.Flags().StringVar(&flags.GeminiTTSModel, "gemini-tts-model", flags.GeminiTTSModel, "Gemini model for speech synthesis")
	cmd.Flags().StringVar(&flags.GeminiVoice, "gemini-voice", flags.GeminiVoice, "Gemini prebuilt voice name")

	// OpenAI flags
	cmd.Flags().StringVar(&flags.OpenAIModel, "openai-model", flags.OpenAIModel, "OpenAI model for explanations")
	cmd.Flags().StringVar(&flags.OpenAITTSModel, "openai-tts-model", flags.OpenAITTSModel, "OpenAI TTS model: tts-1, tts-1-hd, gpt-4o-mini-tts")
	cmd.Flags().StringVar(&flags.OpenAIVoice, "openai-voice", "", "OpenAI voice: alloy, ash, coral, echo, fable, onyx, nova, shimmer")
	cmd.Flags().Float64Var(&flags.OpenAISpeed, "openai-speed", flags.OpenAISpeed, "OpenAI speech speed (0.25 to 4.0)")
	cmd.Flags().StringVar(&flags.OpenAIImageModel, "openai-image-model", flags.OpenAIImageModel, "OpenAI image model: dall-e-2 or dall-e-3")
	cmd.Flags().StringVar(&flags.OpenAIImageSize, "openai-image-size", flags.OpenAIImageSize, "Image size: 256x256, 512x512, 1024x1024 (dall-e-3: also 1024x1792, 1792x1024)")

	// Bind flags to viper
	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	viper.BindPFlag("anki.deck_name", cmd.Flags().Lookup("deck-name"))
	viper.BindPFlag("anki.note_model", cmd.Flags().Lookup("note-model"))
	viper.BindPFlag("anki.url", cmd.Flags().Lookup("anki-url"))
	viper.BindPFlag("output.directory", cmd.Flags().Lookup("output"))
	viper.BindPFlag("meaning.provider", cmd.Flags().Lookup("meaning-provider"))
	viper.BindPFlag("meaning.gemini_model", cmd.Flags().Lookup("gemini-model"))
	viper.BindPFlag("meaning.openai_model", cmd.Flags().Lookup("openai-model"))
	viper.BindPFlag("image.provider", cmd.Flags().Lookup("image-provider"))
	viper.BindPFlag("image.gemini_model", cmd.Flags().Lookup("gemini-image-model"))
	viper.BindPFlag("image.openai_model", cmd.Flags().Lookup("openai-image-model"))
	viper.BindPFlag("image.openai_size", cmd.Flags().Lookup("openai-image-size"))
	viper.BindPFlag("audio.provider", cmd.Flags().Lookup("audio-provider"))
	viper.BindPFlag("audio.gemini_model", cmd.Flags().Lookup("gemini-tts-model"))
	viper.BindPFlag("audio.gemini_voice", cmd.Flags().Lookup("gemini-voice"))
	viper.BindPFlag("audio.openai_model", cmd.Flags().Lookup("openai-tts-model"))
	viper.BindPFlag("audio.openai_voice", cmd.Flags().Lookup("openai-voice"))
	viper.BindPFlag("audio.openai_speed", cmd.Flags().Lookup("openai-speed"))
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".sentencemine" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".sentencemine")
	}

	// Environment variables
	viper.SetEnvPrefix("SENTENCEMINE")
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// GetOpenAIKey retrieves the OpenAI API key from environment or config
func GetOpenAIKey() string {
	// First check environment variable
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key
	}

	// Then check config file
	return viper.GetString("openai_key")
}

// GetGeminiKey retrieves the Gemini API key from environment or config
func GetGeminiKey() string {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return key
	}
	if key := os.Getenv("GOOGLE_API_KEY"); key != "" {
		return key
	}

	return viper.GetString("gemini_key")
}
