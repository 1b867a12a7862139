// Package meaning produces short contextual explanations of a word or
// phrase as it is used inside a specific sentence. Explanations come
// from a generative language model; Gemini and OpenAI backends are
// supported behind a common Generator interface.
package meaning
