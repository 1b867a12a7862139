package meaning

import (
	"fmt"
	"strings"
)

// BuildPrompt renders the explanation request sent to the language
// model. With a word it asks for a compact dictionary-style entry
// scoped to the sentence; without one it asks for an explanation of
// the sentence as a whole. An optional source hint (e.g. the show or
// book the sentence was mined from) is appended for disambiguation.
func BuildPrompt(word, sentence, source string) string {
	var b strings.Builder

	word = strings.TrimSpace(word)
	sentence = strings.TrimSpace(sentence)
	source = strings.TrimSpace(source)

	if word == "" {
		fmt.Fprintf(&b, "Explain the meaning of this English sentence in simple words:\n\n%s\n\n", sentence)
		b.WriteString("Keep the explanation under 30 words. Respond with the explanation only, no preamble.")
	} else {
		fmt.Fprintf(&b, "Explain the meaning of '%s' as used in this sentence:\n\n%s\n\n", word, sentence)
		b.WriteString("Respond in exactly this format:\n")
		b.WriteString("Meaning: <the meaning in this context, at most 15 words>\n")
		b.WriteString("Part of speech: <noun, verb, adjective, adverb, idiom, phrasal verb, ...>\n")
		b.WriteString("Example: <one new example sentence using it the same way>")
	}

	if source != "" {
		fmt.Fprintf(&b, "\n\nThe sentence was taken from: %s.", source)
	}

	return b.String()
}
