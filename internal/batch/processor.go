package batch

import (
	"fmt"
	"os"
	"strings"

	"codeberg.org/snonux/sentencemine/internal/pipeline"
)

// Entry represents one sentence to mine from a batch file
type Entry struct {
	Sentence string
	Word     string
	Tags     []string
}

// ReadBatchFile reads sentences from a file and returns Entry slice.
// Supported line formats:
//   - sentence only:        "She let the cat out of the bag."
//   - with word:            "She let the cat out of the bag. | let the cat out of the bag"
//   - with word and tags:   "She let the cat out of the bag. | let the cat out of the bag | idioms, movie1"
//
// Blank lines and lines starting with '#' are skipped.
func ReadBatchFile(filename string) ([]Entry, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}

	var entries []Entry
	for _, line := range strings.Split(string(content), "\n") {
		line = strings.TrimRight(line, "\r")
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		entry, err := parseLine(line)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// parseLine splits one batch line into its sentence, word and tag parts
func parseLine(line string) (Entry, error) {
	parts := strings.SplitN(line, "|", 3)

	sentence := strings.TrimSpace(parts[0])
	if sentence == "" {
		return Entry{}, fmt.Errorf("batch line has no sentence: %q", line)
	}

	entry := Entry{Sentence: sentence, Tags: []string{}}
	if len(parts) > 1 {
		entry.Word = strings.TrimSpace(parts[1])
	}
	if len(parts) > 2 {
		entry.Tags = pipeline.ParseTags(parts[2])
	}

	return entry, nil
}
