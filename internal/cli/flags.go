package cli

import "codeberg.org/snonux/sentencemine/internal/anki"

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile    string
	OutputDir  string
	Word       string
	Tags       string
	DeckName   string
	ModelName  string
	AnkiURL    string
	BatchFile  string
	APKGPath   string
	AnkiCSV    bool
	SkipAudio  bool
	SkipImages bool
	ListModels bool
	Archive    bool
	GUIMode    bool
	NoAutoPlay bool

	// Provider selection
	MeaningProvider string
	ImageProvider   string
	AudioProvider   string

	// Gemini flags
	GeminiModel      string
	GeminiImageModel string
	GeminiTTSModel   string
	GeminiVoice      string

	// OpenAI flags
	OpenAIModel      string
	OpenAITTSModel   string
	OpenAIVoice      string
	OpenAISpeed      float64
	OpenAIImageModel string
	OpenAIImageSize  string
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		DeckName:         "English",
		ModelName:        anki.DefaultModelName,
		AnkiURL:          anki.DefaultConnectURL,
		MeaningProvider:  "gemini",
		ImageProvider:    "gemini",
		AudioProvider:    "gemini",
		GeminiModel:      "gemini-2.5-flash",
		GeminiImageModel: "imagen-3.0-generate-001",
		GeminiTTSModel:   "gemini-2.0-flash-exp",
		GeminiVoice:      "Kore",
		OpenAIModel:      "gpt-4o-mini",
		OpenAITTSModel:   "gpt-4o-mini-tts",
		OpenAISpeed:      1.0,
		OpenAIImageModel: "dall-e-3",
		OpenAIImageSize:  "1024x1024",
	}
}
