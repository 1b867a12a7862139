package audio

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// maxSpeechLength bounds the text sent to a TTS backend. Longer inputs
// are almost always a paste mistake and burn API credits.
const maxSpeechLength = 1000

// ValidateText validates that the input is sensible to synthesize
func ValidateText(text string) error {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return fmt.Errorf("text cannot be empty")
	}

	if utf8.RuneCountInString(trimmed) > maxSpeechLength {
		return fmt.Errorf("text too long for speech synthesis (%d characters, max %d)",
			utf8.RuneCountInString(trimmed), maxSpeechLength)
	}

	return nil
}
