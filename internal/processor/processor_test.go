package processor

import (
	"os"
	"path/filepath"
	"testing"

	"codeberg.org/snonux/sentencemine/internal/anki"
	"codeberg.org/snonux/sentencemine/internal/cli"
	"codeberg.org/snonux/sentencemine/internal/testutil"
)

func TestNewProcessor(t *testing.T) {
	flags := cli.NewFlags()
	p := NewProcessor(flags)

	if p == nil {
		t.Fatal("NewProcessor returned nil")
	}

	if p.flags != flags {
		t.Error("Processor flags not set correctly")
	}

	if p.cache == nil {
		t.Error("Explanation cache not initialized")
	}
}

func TestProcessSingleSentence_Empty(t *testing.T) {
	flags := cli.NewFlags()
	flags.OutputDir = t.TempDir()
	p := NewProcessor(flags)

	err := p.ProcessSingleSentence("")
	if err == nil {
		t.Error("Expected error for empty sentence")
	}

	err = p.ProcessSingleSentence("   ")
	if err == nil {
		t.Error("Expected error for whitespace-only sentence")
	}
}

func TestProcessBatch_InvalidFile(t *testing.T) {
	flags := cli.NewFlags()
	flags.BatchFile = "/nonexistent/file.txt"
	p := NewProcessor(flags)

	err := p.ProcessBatch()
	if err == nil {
		t.Error("Expected error for non-existent batch file")
	}
}

func TestProcessBatch_EmptyFile(t *testing.T) {
	tmpDir := t.TempDir()
	batchFile := filepath.Join(tmpDir, "batch.txt")
	if err := os.WriteFile(batchFile, []byte("# only comments\n\n"), 0644); err != nil {
		t.Fatalf("Failed to create test batch file: %v", err)
	}

	flags := cli.NewFlags()
	flags.OutputDir = tmpDir
	flags.BatchFile = batchFile
	p := NewProcessor(flags)

	err := p.ProcessBatch()
	if err == nil {
		t.Error("Expected error for batch file without sentences")
	}
}

func TestBuildMeaningGenerator_NoKey(t *testing.T) {
	os.Unsetenv("GEMINI_API_KEY")
	os.Unsetenv("GOOGLE_API_KEY")

	flags := cli.NewFlags()
	p := NewProcessor(flags)

	_, err := p.buildMeaningGenerator()
	if err == nil {
		t.Error("Expected error when no Gemini API key is set")
	}
}

func TestExportMode(t *testing.T) {
	flags := cli.NewFlags()
	p := NewProcessor(flags)
	if p.exportMode() {
		t.Error("Expected AnkiConnect mode by default")
	}

	flags.APKGPath = "deck.apkg"
	if !p.exportMode() {
		t.Error("Expected export mode with --apkg")
	}

	flags.APKGPath = ""
	flags.AnkiCSV = true
	if !p.exportMode() {
		t.Error("Expected export mode with --anki-csv")
	}
}

func TestAudioFormat(t *testing.T) {
	flags := cli.NewFlags()
	p := NewProcessor(flags)

	if got := p.audioFormat(); got != "wav" {
		t.Errorf("Expected wav for the Gemini backend, got %s", got)
	}

	flags.AudioProvider = "openai"
	if got := p.audioFormat(); got != "mp3" {
		t.Errorf("Expected mp3 for the OpenAI backend, got %s", got)
	}
}

func TestExportCards_CSV(t *testing.T) {
	tmpDir := t.TempDir()

	flags := cli.NewFlags()
	flags.OutputDir = tmpDir
	flags.AnkiCSV = true
	p := NewProcessor(flags)

	cards := []anki.Card{
		{Sentence: "He kicked the bucket.", Word: "kicked the bucket", Definition: "Died.", Tags: []string{"idioms"}},
		{Sentence: "She let the cat out of the bag.", Word: "let the cat out of the bag", Definition: "Revealed a secret.", Tags: []string{}},
	}

	if err := p.exportCards(cards); err != nil {
		t.Fatalf("exportCards failed: %v", err)
	}

	csvFile := filepath.Join(tmpDir, "anki_import.csv")
	if _, err := os.Stat(csvFile); os.IsNotExist(err) {
		t.Error("CSV file was not created in output directory")
	}
}

func TestExportCards_APKG(t *testing.T) {
	tmpDir := t.TempDir()
	apkgFile := filepath.Join(tmpDir, "mining.apkg")

	flags := cli.NewFlags()
	flags.OutputDir = tmpDir
	flags.APKGPath = apkgFile
	flags.DeckName = "Test Deck"
	p := NewProcessor(flags)

	audioFile, imageFile := testutil.CreateMediaFixtures(t, tmpDir)

	cards := []anki.Card{
		{
			Sentence:   "He kicked the bucket.",
			Word:       "kicked the bucket",
			Definition: "Died.",
			Tags:       []string{"idioms"},
			AudioFile:  audioFile,
			ImageFile:  imageFile,
		},
	}

	if err := p.exportCards(cards); err != nil {
		t.Fatalf("exportCards (APKG) failed: %v", err)
	}

	testutil.AssertFileExists(t, apkgFile)
}

func TestRemoveCardMedia(t *testing.T) {
	tmpDir := t.TempDir()
	audioFile, imageFile := testutil.CreateMediaFixtures(t, tmpDir)

	removeCardMedia(anki.Card{AudioFile: audioFile, ImageFile: imageFile})

	testutil.AssertFileNotExists(t, audioFile)
	testutil.AssertFileNotExists(t, imageFile)

	// Missing files are not an error
	removeCardMedia(anki.Card{AudioFile: audioFile, ImageFile: imageFile})
}
