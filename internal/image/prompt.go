package image

import (
	"fmt"
	"strings"
)

// BuildPrompt renders the synthesis prompt for a mined sentence. The
// image illustrates the scene, not the typography: embedded text tends
// to come out garbled and distracts on the front of a card.
func BuildPrompt(word, sentence string) string {
	word = strings.TrimSpace(word)
	sentence = strings.TrimSpace(sentence)

	subject := sentence
	if subject == "" {
		subject = word
	}

	var b strings.Builder
	fmt.Fprintf(&b, "A realistic illustration of the following scene: %s", subject)
	if word != "" && sentence != "" {
		fmt.Fprintf(&b, " The illustration should emphasize the meaning of '%s'.", word)
	}
	b.WriteString(" Do not include any text, letters, captions or watermarks in the image.")

	return b.String()
}
