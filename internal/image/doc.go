// Package image synthesizes illustrative pictures for mined sentences
// using a generative image model. OpenAI DALL-E and Gemini Imagen
// backends are supported behind a common Generator interface.
package image
