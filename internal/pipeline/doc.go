// Package pipeline contains the card-assembly orchestration for mined
// sentences. It owns the single active draft, sequences the meaning,
// image and audio generation calls, applies their results atomically,
// and commits finished drafts to the card store. This package serves as
// the main coordinator between the generation services and the UI shell.
package pipeline
